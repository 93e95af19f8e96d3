package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Freeeeeet/mentorship_api/internal/matching"
	"github.com/Freeeeeet/mentorship_api/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MentorMatch ментор с баллом для менти
type MentorMatch struct {
	Profile *model.Profile `json:"profile"`
	Score   float64        `json:"score"`
}

type Matcher struct {
	profiles    ProfileStore
	experiences ExperienceStore
	logger      *zap.Logger
}

func NewMatcher(profiles ProfileStore, experiences ExperienceStore, logger *zap.Logger) *Matcher {
	return &Matcher{
		profiles:    profiles,
		experiences: experiences,
		logger:      logger,
	}
}

// MatchForUser ранжирует менторов для менти с указанным ID
func (m *Matcher) MatchForUser(ctx context.Context, userID uuid.UUID) ([]MentorMatch, error) {
	mentee, err := m.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if mentee == nil {
		return nil, ErrProfileNotFound
	}
	if !mentee.IsMentee() {
		return nil, ErrNotMentee
	}

	return m.Match(ctx, mentee)
}

// Match оценивает всех менторов по текущему опыту менти.
// Менторы с нулевым баллом тоже попадают в результат. Сортировка по баллу
// по убыванию, затем по имени ментора и ID.
func (m *Matcher) Match(ctx context.Context, mentee *model.Profile) ([]MentorMatch, error) {
	mentors, err := m.profiles.ListByRole(ctx, model.RoleMentor)
	if err != nil {
		return nil, fmt.Errorf("list mentors: %w", err)
	}
	if len(mentors) == 0 {
		return []MentorMatch{}, nil
	}

	current, err := m.experiences.ListByUserID(ctx, mentee.UserID, true)
	if err != nil {
		return nil, fmt.Errorf("list mentee experiences: %w", err)
	}
	menteeIndustries := model.Industries(current)

	if len(menteeIndustries) == 0 {
		m.logger.Debug("Scoring every mentor as zero",
			zap.String("mentee_id", mentee.UserID.String()),
			zap.Error(ErrNoCurrentExperience),
		)
	}

	matches := make([]MentorMatch, 0, len(mentors))
	for _, mentor := range mentors {
		experiences, err := m.experiences.ListByUserID(ctx, mentor.UserID, false)
		if err != nil {
			return nil, fmt.Errorf("list mentor experiences: %w", err)
		}

		breakdown, err := matching.Score(menteeIndustries, model.Industries(experiences))
		if err != nil && !errors.Is(err, matching.ErrNoCurrentExperience) {
			return nil, fmt.Errorf("score mentor: %w", err)
		}

		matches = append(matches, MentorMatch{Profile: mentor, Score: breakdown.Score})
	}

	sortMatches(matches)

	m.logger.Info("Mentors matched",
		zap.String("mentee_id", mentee.UserID.String()),
		zap.Int("mentors", len(matches)),
	)

	return matches, nil
}

func sortMatches(matches []MentorMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Profile.LastName != b.Profile.LastName {
			return a.Profile.LastName < b.Profile.LastName
		}
		if a.Profile.FirstName != b.Profile.FirstName {
			return a.Profile.FirstName < b.Profile.FirstName
		}
		return a.Profile.UserID.String() < b.Profile.UserID.String()
	})
}
