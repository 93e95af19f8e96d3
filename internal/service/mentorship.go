package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/mentorship_api/internal/model"
	"github.com/Freeeeeet/mentorship_api/internal/repository/base"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Mentorship struct {
	tx       Transactor
	pairings PairingStore
	profiles ProfileStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewMentorship(tx Transactor, pairings PairingStore, profiles ProfileStore, logger *zap.Logger) *Mentorship {
	return &Mentorship{
		tx:       tx,
		pairings: pairings,
		profiles: profiles,
		logger:   logger,
		now:      time.Now,
	}
}

// Pair закрепляет менти за ментором. У менти может быть только один ментор.
func (m *Mentorship) Pair(ctx context.Context, menteeID, mentorID uuid.UUID) (*model.MentorMentee, error) {
	if _, err := m.profileWithRole(ctx, menteeID, model.RoleMentee); err != nil {
		return nil, err
	}
	if _, err := m.profileWithRole(ctx, mentorID, model.RoleMentor); err != nil {
		return nil, err
	}

	pair := &model.MentorMentee{
		MentorID:  mentorID,
		MenteeID:  menteeID,
		StartDate: m.now().UTC(),
	}

	err := m.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := m.pairings.GetByMenteeID(ctx, menteeID)
		if err != nil {
			return fmt.Errorf("get pairing: %w", err)
		}
		if existing != nil {
			return ErrAlreadyPaired
		}

		if err := m.pairings.Create(ctx, pair); err != nil {
			if errors.Is(err, base.ErrDuplicate) {
				return ErrAlreadyPaired
			}
			return fmt.Errorf("create pairing: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("Mentee paired",
		zap.String("mentor_id", mentorID.String()),
		zap.String("mentee_id", menteeID.String()),
	)

	return pair, nil
}

// Pairings возвращает активные пары: для менти одну, для ментора всех менти
func (m *Mentorship) Pairings(ctx context.Context, userID uuid.UUID) ([]*model.MentorMentee, error) {
	profile, err := m.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	if profile.IsMentor() {
		pairs, err := m.pairings.ListByMentorID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("list pairings: %w", err)
		}
		return pairs, nil
	}

	pair, err := m.pairings.GetByMenteeID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get pairing: %w", err)
	}
	if pair == nil {
		return []*model.MentorMentee{}, nil
	}
	return []*model.MentorMentee{pair}, nil
}

// Unpair завершает пару и переносит её в историю. Сторона, вызвавшая
// завершение, записывается в triggered_by.
func (m *Mentorship) Unpair(ctx context.Context, userID, counterpartID uuid.UUID, mentorComment, menteeComment *string) (*model.MentorMenteeHistory, error) {
	profile, err := m.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	mentorID, menteeID := userID, counterpartID
	if profile.IsMentee() {
		mentorID, menteeID = counterpartID, userID
	}

	var history *model.MentorMenteeHistory
	err = m.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		pair, err := m.pairings.GetByMenteeID(ctx, menteeID)
		if err != nil {
			return fmt.Errorf("get pairing: %w", err)
		}
		if pair == nil || pair.MentorID != mentorID {
			return ErrPairingNotFound
		}

		deleted, err := m.pairings.Delete(ctx, mentorID, menteeID)
		if err != nil {
			return fmt.Errorf("delete pairing: %w", err)
		}
		if !deleted {
			return ErrPairingNotFound
		}

		history = pair.Close(m.now().UTC(), profile.Role, mentorComment, menteeComment)
		if err := m.pairings.CreateHistory(ctx, history); err != nil {
			return fmt.Errorf("archive pairing: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("Mentee unpaired",
		zap.String("mentor_id", mentorID.String()),
		zap.String("mentee_id", menteeID.String()),
		zap.String("triggered_by", string(profile.Role)),
	)

	return history, nil
}

// History получает архив пар пользователя
func (m *Mentorship) History(ctx context.Context, userID uuid.UUID) ([]*model.MentorMenteeHistory, error) {
	history, err := m.pairings.ListHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return history, nil
}

func (m *Mentorship) profileWithRole(ctx context.Context, userID uuid.UUID, role model.Role) (*model.Profile, error) {
	profile, err := m.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	if profile.Role != role {
		if role == model.RoleMentor {
			return nil, ErrNotMentor
		}
		return nil, ErrNotMentee
	}
	return profile, nil
}
