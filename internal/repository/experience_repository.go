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

const experienceColumns = `
	id, user_id, company_name, description, start_date, end_date, industry, created_at, updated_at
`

type ExperienceRepository struct {
	*base.Repository
}

func NewExperienceRepository(pool *pgxpool.Pool) *ExperienceRepository {
	return &ExperienceRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новую запись об опыте работы
func (r *ExperienceRepository) Create(ctx context.Context, exp *model.Experience) error {
	if exp.ID == uuid.Nil {
		exp.ID = uuid.New()
	}

	query := `
		INSERT INTO experiences (id, user_id, company_name, description, start_date, end_date, industry)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		exp.ID,
		exp.UserID,
		exp.CompanyName,
		exp.Description,
		exp.StartDate,
		exp.EndDate,
		exp.Industry,
	).Scan(&exp.CreatedAt, &exp.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create experience: %w", base.MapError(err))
	}

	return nil
}

// GetByID получает опыт по ID
func (r *ExperienceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Experience, error) {
	query := `SELECT ` + experienceColumns + ` FROM experiences WHERE id = $1`

	exp, err := scanExperience(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get experience by id: %w", err)
	}

	return exp, nil
}

// ListByUserID получает опыт пользователя; onlyCurrent оставляет записи без end_date
func (r *ExperienceRepository) ListByUserID(ctx context.Context, userID uuid.UUID, onlyCurrent bool) ([]*model.Experience, error) {
	query := `
		SELECT ` + experienceColumns + `
		FROM experiences
		WHERE user_id = $1 AND (NOT $2 OR end_date IS NULL)
		ORDER BY start_date DESC
	`

	rows, err := r.Query(ctx, query, userID, onlyCurrent)
	if err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}
	defer rows.Close()

	var experiences []*model.Experience
	for rows.Next() {
		exp, err := scanExperience(rows)
		if err != nil {
			return nil, fmt.Errorf("scan experience: %w", err)
		}
		experiences = append(experiences, exp)
	}

	return experiences, rows.Err()
}

// Update обновляет запись об опыте
func (r *ExperienceRepository) Update(ctx context.Context, exp *model.Experience) error {
	query := `
		UPDATE experiences
		SET company_name = $1, description = $2, start_date = $3, end_date = $4, industry = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := r.QueryRow(
		ctx, query,
		exp.CompanyName,
		exp.Description,
		exp.StartDate,
		exp.EndDate,
		exp.Industry,
		exp.ID,
	).Scan(&exp.UpdatedAt)

	if err != nil {
		if base.IsNotFound(err) {
			return fmt.Errorf("experience not found")
		}
		return fmt.Errorf("update experience: %w", err)
	}

	return nil
}

// Delete удаляет запись об опыте
func (r *ExperienceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM experiences WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete experience: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("experience not found")
	}

	return nil
}

func scanExperience(row pgx.Row) (*model.Experience, error) {
	var exp model.Experience
	err := row.Scan(
		&exp.ID,
		&exp.UserID,
		&exp.CompanyName,
		&exp.Description,
		&exp.StartDate,
		&exp.EndDate,
		&exp.Industry,
		&exp.CreatedAt,
		&exp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &exp, nil
}
