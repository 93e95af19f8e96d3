package api

import (
	"context"
	"time"

	"github.com/Freeeeeet/mentorship_api/internal/model"
	"github.com/Freeeeeet/mentorship_api/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProfileService interface {
	CreateProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, fn func(p *model.Profile)) (*model.Profile, error)
	AddExperience(ctx context.Context, userID uuid.UUID, exp *model.Experience) (*model.Experience, error)
	ListExperiences(ctx context.Context, userID uuid.UUID, onlyCurrent bool) ([]*model.Experience, error)
	UpdateExperience(ctx context.Context, actorID, id uuid.UUID, fn func(e *model.Experience)) (*model.Experience, error)
	DeleteExperience(ctx context.Context, actorID, id uuid.UUID) error
}

type MatchService interface {
	MatchForUser(ctx context.Context, userID uuid.UUID) ([]service.MentorMatch, error)
}

type MentorshipService interface {
	Pair(ctx context.Context, menteeID, mentorID uuid.UUID) (*model.MentorMentee, error)
	Pairings(ctx context.Context, userID uuid.UUID) ([]*model.MentorMentee, error)
	Unpair(ctx context.Context, userID, counterpartID uuid.UUID, mentorComment, menteeComment *string) (*model.MentorMenteeHistory, error)
	History(ctx context.Context, userID uuid.UUID) ([]*model.MentorMenteeHistory, error)
}

type SchedulerService interface {
	CreateTimeSlot(ctx context.Context, mentorID uuid.UUID, day model.Day, start, end model.TimeOfDay) (*model.TimeSlot, error)
	ListTimeSlots(ctx context.Context, mentorID uuid.UUID) ([]*model.TimeSlot, error)
	UpdateTimeSlot(ctx context.Context, actorID, slotID uuid.UUID, day model.Day, start, end model.TimeOfDay) (*model.TimeSlot, error)
	DeleteTimeSlot(ctx context.Context, actorID, slotID uuid.UUID) error
	CreateBooking(ctx context.Context, menteeID, slotID uuid.UUID, date time.Time) (*model.Booking, error)
	UpdateBooking(ctx context.Context, actorID, bookingID uuid.UUID, newDate time.Time) (*model.Booking, error)
	UpdateBookingStatus(ctx context.Context, actorID, bookingID uuid.UUID, status model.BookingStatus) (*model.Booking, error)
	GetBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*model.Booking, error)
	ListBookings(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error)
	DeleteBooking(ctx context.Context, actorID, bookingID uuid.UUID) error
	GetSessions(ctx context.Context, userID uuid.UUID) (int, error)
	ListAvailability(ctx context.Context, mentorID uuid.UUID, from, to time.Time) ([]model.Availability, error)
}

// Handler содержит зависимости HTTP-обработчиков
type Handler struct {
	profiles   ProfileService
	matcher    MatchService
	mentorship MentorshipService
	scheduler  SchedulerService
	logger     *zap.Logger
	now        func() time.Time
}

func NewHandler(
	profiles ProfileService,
	matcher MatchService,
	mentorship MentorshipService,
	scheduler SchedulerService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		profiles:   profiles,
		matcher:    matcher,
		mentorship: mentorship,
		scheduler:  scheduler,
		logger:     logger,
		now:        time.Now,
	}
}

// Register регистрирует маршруты /api/v1
func (h *Handler) Register(r fiber.Router) {
	r.Post("/profiles", h.createProfile)
	r.Get("/profiles/me", h.getMyProfile)
	r.Patch("/profiles/me", h.updateMyProfile)
	r.Get("/profiles/:userId", h.getProfile)

	r.Post("/experiences", h.addExperience)
	r.Get("/experiences", h.listExperiences)
	r.Patch("/experiences/:id", h.updateExperience)
	r.Delete("/experiences/:id", h.deleteExperience)

	r.Get("/matches/request", h.requestMatches)
	r.Get("/matches/history", h.matchHistory)
	r.Get("/matches", h.listPairings)
	r.Post("/matches", h.pair)
	r.Delete("/matches", h.unpair)

	r.Get("/timeslots", h.listTimeSlots)
	r.Post("/timeslots", h.createTimeSlot)
	r.Patch("/timeslots/:id", h.updateTimeSlot)
	r.Delete("/timeslots/:id", h.deleteTimeSlot)
	r.Post("/timeslots/:id/bookings", h.createBooking)
	r.Get("/mentors/:userId/availability", h.availability)

	r.Get("/bookings", h.listBookings)
	r.Get("/bookings/:id", h.getBooking)
	r.Patch("/bookings/:id", h.rescheduleBooking)
	r.Patch("/bookings/:id/status", h.updateBookingStatus)
	r.Delete("/bookings/:id", h.deleteBooking)

	r.Get("/sessions", h.sessions)
}
