package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/mentorship_api/internal/model"
	"github.com/Freeeeeet/mentorship_api/internal/repository/base"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// telegramChatConstraint ограничение уникальности telegram_chat_id в profiles
const telegramChatConstraint = "profiles_telegram_chat_id_key"

type Profiles struct {
	profiles    ProfileStore
	experiences ExperienceStore
	logger      *zap.Logger
}

func NewProfiles(profiles ProfileStore, experiences ExperienceStore, logger *zap.Logger) *Profiles {
	return &Profiles{
		profiles:    profiles,
		experiences: experiences,
		logger:      logger,
	}
}

// CreateProfile создаёт профиль пользователя. Роль задаётся один раз.
func (s *Profiles) CreateProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	if !profile.Role.Valid() {
		return nil, ErrInvalidRole
	}

	existing, err := s.profiles.GetByUserID(ctx, profile.UserID)
	if err != nil {
		return nil, fmt.Errorf("check existing profile: %w", err)
	}
	if existing != nil {
		return nil, ErrProfileExists
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		if base.IsDuplicateOn(err, telegramChatConstraint) {
			return nil, ErrTelegramChatTaken
		}
		if errors.Is(err, base.ErrDuplicate) {
			return nil, ErrProfileExists
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}

	s.logger.Info("Profile created",
		zap.String("user_id", profile.UserID.String()),
		zap.String("role", string(profile.Role)),
	)

	return profile, nil
}

// GetProfile получает профиль по ID пользователя
func (s *Profiles) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// GetByTelegramChatID получает профиль, привязанный к чату
func (s *Profiles) GetByTelegramChatID(ctx context.Context, chatID int64) (*model.Profile, error) {
	profile, err := s.profiles.GetByTelegramChatID(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("get profile by chat: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// UpdateProfile применяет fn к сохранённому профилю и сохраняет его.
// Роль и ID пользователя после fn восстанавливаются.
func (s *Profiles) UpdateProfile(ctx context.Context, userID uuid.UUID, fn func(p *model.Profile)) (*model.Profile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	role := profile.Role
	fn(profile)
	profile.UserID, profile.Role = userID, role

	if err := s.profiles.Update(ctx, profile); err != nil {
		if errors.Is(err, base.ErrDuplicate) {
			return nil, ErrTelegramChatTaken
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.logger.Info("Profile updated", zap.String("user_id", userID.String()))
	return profile, nil
}

// AddExperience добавляет запись об опыте в профиль пользователя
func (s *Profiles) AddExperience(ctx context.Context, userID uuid.UUID, exp *model.Experience) (*model.Experience, error) {
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}
	if err := validateExperience(exp); err != nil {
		return nil, err
	}

	exp.ID = uuid.Nil
	exp.UserID = userID
	if err := s.experiences.Create(ctx, exp); err != nil {
		return nil, fmt.Errorf("create experience: %w", err)
	}

	s.logger.Info("Experience added",
		zap.String("user_id", userID.String()),
		zap.String("experience_id", exp.ID.String()),
		zap.String("industry", string(exp.Industry)),
	)

	return exp, nil
}

// ListExperiences получает опыт пользователя
func (s *Profiles) ListExperiences(ctx context.Context, userID uuid.UUID, onlyCurrent bool) ([]*model.Experience, error) {
	experiences, err := s.experiences.ListByUserID(ctx, userID, onlyCurrent)
	if err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}
	return experiences, nil
}

// UpdateExperience применяет fn к опыту владельца и сохраняет его
func (s *Profiles) UpdateExperience(ctx context.Context, actorID, id uuid.UUID, fn func(e *model.Experience)) (*model.Experience, error) {
	exp, err := s.ownedExperience(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	fn(exp)
	exp.ID, exp.UserID = id, actorID
	if err := validateExperience(exp); err != nil {
		return nil, err
	}

	if err := s.experiences.Update(ctx, exp); err != nil {
		return nil, fmt.Errorf("update experience: %w", err)
	}

	s.logger.Info("Experience updated", zap.String("experience_id", id.String()))
	return exp, nil
}

// DeleteExperience удаляет запись об опыте владельца
func (s *Profiles) DeleteExperience(ctx context.Context, actorID, id uuid.UUID) error {
	if _, err := s.ownedExperience(ctx, actorID, id); err != nil {
		return err
	}

	if err := s.experiences.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete experience: %w", err)
	}

	s.logger.Info("Experience deleted", zap.String("experience_id", id.String()))
	return nil
}

func (s *Profiles) ownedExperience(ctx context.Context, actorID, id uuid.UUID) (*model.Experience, error) {
	exp, err := s.experiences.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get experience: %w", err)
	}
	if exp == nil {
		return nil, ErrExperienceNotFound
	}
	if exp.UserID != actorID {
		return nil, ErrNotOwner
	}
	return exp, nil
}

func validateExperience(exp *model.Experience) error {
	if !exp.Industry.Valid() {
		return ErrInvalidIndustry
	}
	if exp.EndDate != nil && exp.EndDate.Before(exp.StartDate) {
		return ErrInvalidPeriod
	}
	return nil
}
