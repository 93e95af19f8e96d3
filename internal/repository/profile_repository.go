package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/mentorship_api/internal/model"
	"github.com/Freeeeeet/mentorship_api/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const profileColumns = `
	user_id, role, first_name, last_name, bio, years_of_experience, expertise,
	skills, languages, linkedin_url, website_url, email, telegram_chat_id,
	created_at, updated_at
`

type ProfileRepository struct {
	*base.Repository
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новый профиль
func (r *ProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, role, first_name, last_name, bio, years_of_experience, expertise,
			skills, languages, linkedin_url, website_url, email, telegram_chat_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8::text[], '{}'), COALESCE($9::text[], '{}'), $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		profile.UserID,
		profile.Role,
		profile.FirstName,
		profile.LastName,
		profile.Bio,
		profile.YearsOfExperience,
		profile.Expertise,
		profile.Skills,
		profile.Languages,
		profile.LinkedInURL,
		profile.WebsiteURL,
		profile.Email,
		profile.TelegramChatID,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create profile: %w", base.MapError(err))
	}

	return nil
}

// GetByUserID получает профиль по ID пользователя
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	profile, err := scanProfile(r.QueryRow(ctx, query, userID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Профиль не найден
		}
		return nil, fmt.Errorf("get profile by user id: %w", err)
	}

	return profile, nil
}

// GetByTelegramChatID получает профиль, привязанный к чату Telegram
func (r *ProfileRepository) GetByTelegramChatID(ctx context.Context, chatID int64) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE telegram_chat_id = $1`

	profile, err := scanProfile(r.QueryRow(ctx, query, chatID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile by telegram chat id: %w", err)
	}

	return profile, nil
}

// ListByRole получает все профили с указанной ролью
func (r *ProfileRepository) ListByRole(ctx context.Context, role model.Role) ([]*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE role = $1 ORDER BY created_at`

	rows, err := r.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("list profiles by role: %w", err)
	}
	defer rows.Close()

	var profiles []*model.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

// Update обновляет профиль. Роль не меняется.
func (r *ProfileRepository) Update(ctx context.Context, profile *model.Profile) error {
	query := `
		UPDATE profiles
		SET first_name = $1, last_name = $2, bio = $3, years_of_experience = $4, expertise = $5,
		    skills = COALESCE($6::text[], '{}'), languages = COALESCE($7::text[], '{}'),
		    linkedin_url = $8, website_url = $9, email = $10, telegram_chat_id = $11,
		    updated_at = NOW()
		WHERE user_id = $12
		RETURNING updated_at
	`

	err := r.QueryRow(
		ctx, query,
		profile.FirstName,
		profile.LastName,
		profile.Bio,
		profile.YearsOfExperience,
		profile.Expertise,
		profile.Skills,
		profile.Languages,
		profile.LinkedInURL,
		profile.WebsiteURL,
		profile.Email,
		profile.TelegramChatID,
		profile.UserID,
	).Scan(&profile.UpdatedAt)

	if err != nil {
		if base.IsNotFound(err) {
			return fmt.Errorf("profile not found")
		}
		return fmt.Errorf("update profile: %w", base.MapError(err))
	}

	return nil
}

func scanProfile(row pgx.Row) (*model.Profile, error) {
	var profile model.Profile
	err := row.Scan(
		&profile.UserID,
		&profile.Role,
		&profile.FirstName,
		&profile.LastName,
		&profile.Bio,
		&profile.YearsOfExperience,
		&profile.Expertise,
		&profile.Skills,
		&profile.Languages,
		&profile.LinkedInURL,
		&profile.WebsiteURL,
		&profile.Email,
		&profile.TelegramChatID,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
