package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/mentorship_api/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateProfile(t *testing.T) {
	db := newMemDB()
	s := NewProfiles(profileFake{db}, experienceFake{db}, zap.NewNop())
	ctx := context.Background()

	profile := &model.Profile{UserID: uuid.New(), Role: model.RoleMentee, FirstName: "Ada", LastName: "Lovelace"}
	_, err := s.CreateProfile(ctx, profile)
	require.NoError(t, err)

	_, err = s.CreateProfile(ctx, profile)
	assert.ErrorIs(t, err, ErrProfileExists)

	_, err = s.CreateProfile(ctx, &model.Profile{UserID: uuid.New(), Role: "ADMIN"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestCreateProfile_TelegramChatTaken(t *testing.T) {
	db := newMemDB()
	s := NewProfiles(profileFake{db}, experienceFake{db}, zap.NewNop())
	ctx := context.Background()

	chatID := int64(4242)
	_, err := s.CreateProfile(ctx, &model.Profile{UserID: uuid.New(), Role: model.RoleMentor, TelegramChatID: &chatID})
	require.NoError(t, err)

	_, err = s.CreateProfile(ctx, &model.Profile{UserID: uuid.New(), Role: model.RoleMentee, TelegramChatID: &chatID})
	assert.ErrorIs(t, err, ErrTelegramChatTaken)
	assert.NotErrorIs(t, err, ErrProfileExists)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpdateProfile_TelegramChatTaken(t *testing.T) {
	db := newMemDB()
	s := NewProfiles(profileFake{db}, experienceFake{db}, zap.NewNop())
	ctx := context.Background()

	chatID := int64(4242)
	linked := db.addProfile(model.RoleMentor, "Grace", "Hopper")
	linked.TelegramChatID = &chatID
	other := db.addProfile(model.RoleMentee, "Ada", "Lovelace")

	_, err := s.UpdateProfile(ctx, other.UserID, func(p *model.Profile) {
		p.TelegramChatID = &chatID
	})
	assert.ErrorIs(t, err, ErrTelegramChatTaken)
}

func TestUpdateProfile_KeepsRole(t *testing.T) {
	db := newMemDB()
	s := NewProfiles(profileFake{db}, experienceFake{db}, zap.NewNop())
	ctx := context.Background()

	mentee := db.addProfile(model.RoleMentee, "Ada", "Lovelace")

	updated, err := s.UpdateProfile(ctx, mentee.UserID, func(p *model.Profile) {
		p.FirstName = "Augusta"
		p.Role = model.RoleMentor
		p.UserID = uuid.New()
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleMentee, updated.Role)
	assert.Equal(t, mentee.UserID, updated.UserID)

	stored, err := s.GetProfile(ctx, mentee.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Augusta", stored.FirstName)
	assert.Equal(t, model.RoleMentee, stored.Role)

	_, err = s.UpdateProfile(ctx, uuid.New(), func(*model.Profile) {})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestExperiences(t *testing.T) {
	db := newMemDB()
	s := NewProfiles(profileFake{db}, experienceFake{db}, zap.NewNop())
	ctx := context.Background()

	owner := db.addProfile(model.RoleMentor, "Grace", "Hopper")
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	exp, err := s.AddExperience(ctx, owner.UserID, &model.Experience{
		CompanyName: "Navy",
		StartDate:   start,
		Industry:    model.IndustryAI,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, exp.ID)

	_, err = s.AddExperience(ctx, owner.UserID, &model.Experience{StartDate: start, Industry: "SPACE"})
	assert.ErrorIs(t, err, ErrInvalidIndustry)

	before := start.AddDate(-1, 0, 0)
	_, err = s.AddExperience(ctx, owner.UserID, &model.Experience{StartDate: start, EndDate: &before, Industry: model.IndustryAI})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = s.AddExperience(ctx, uuid.New(), &model.Experience{StartDate: start, Industry: model.IndustryAI})
	assert.ErrorIs(t, err, ErrProfileNotFound)

	end := start.AddDate(2, 0, 0)
	_, err = s.UpdateExperience(ctx, uuid.New(), exp.ID, func(e *model.Experience) { e.EndDate = &end })
	assert.ErrorIs(t, err, ErrNotOwner)

	updated, err := s.UpdateExperience(ctx, owner.UserID, exp.ID, func(e *model.Experience) { e.EndDate = &end })
	require.NoError(t, err)
	assert.False(t, updated.IsCurrent())

	current, err := s.ListExperiences(ctx, owner.UserID, true)
	require.NoError(t, err)
	assert.Empty(t, current)

	all, err := s.ListExperiences(ctx, owner.UserID, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, s.DeleteExperience(ctx, owner.UserID, exp.ID))
	assert.ErrorIs(t, s.DeleteExperience(ctx, owner.UserID, exp.ID), ErrExperienceNotFound)
}
