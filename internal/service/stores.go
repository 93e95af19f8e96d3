package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/mentorship_api/internal/model"
	"github.com/google/uuid"
)

// Интерфейсы хранилищ, их реализуют репозитории на pgx

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type ProfileStore interface {
	Create(ctx context.Context, profile *model.Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	GetByTelegramChatID(ctx context.Context, chatID int64) (*model.Profile, error)
	ListByRole(ctx context.Context, role model.Role) ([]*model.Profile, error)
	Update(ctx context.Context, profile *model.Profile) error
}

type ExperienceStore interface {
	Create(ctx context.Context, exp *model.Experience) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Experience, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, onlyCurrent bool) ([]*model.Experience, error)
	Update(ctx context.Context, exp *model.Experience) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SlotStore interface {
	Create(ctx context.Context, slot *model.TimeSlot) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*model.TimeSlot, error)
	Update(ctx context.Context, slot *model.TimeSlot) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BookingStore interface {
	Create(ctx context.Context, booking *model.Booking) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	Find(ctx context.Context, userID, slotID uuid.UUID, date time.Time) (*model.Booking, error)
	CountBySlotAndDate(ctx context.Context, slotID uuid.UUID, date time.Time) (int, error)
	OccupancyByMentor(ctx context.Context, mentorID uuid.UUID, from, to time.Time) ([]model.SlotOccupancy, error)
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error)
	ListByDate(ctx context.Context, date time.Time) ([]*model.Booking, error)
	UpdateDate(ctx context.Context, id uuid.UUID, date time.Time) error
	SetActivity(ctx context.Context, bookingID uuid.UUID, role model.Role, status model.BookingStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountCompletedSessions(ctx context.Context, userID uuid.UUID) (int, error)
}

type PairingStore interface {
	Create(ctx context.Context, pair *model.MentorMentee) error
	GetByMenteeID(ctx context.Context, menteeID uuid.UUID) (*model.MentorMentee, error)
	ListByMentorID(ctx context.Context, mentorID uuid.UUID) ([]*model.MentorMentee, error)
	Delete(ctx context.Context, mentorID, menteeID uuid.UUID) (bool, error)
	CreateHistory(ctx context.Context, h *model.MentorMenteeHistory) error
	ListHistory(ctx context.Context, userID uuid.UUID) ([]*model.MentorMenteeHistory, error)
}
