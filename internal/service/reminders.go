package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/mentorship_api/internal/model"
	"github.com/Freeeeeet/mentorship_api/internal/notify"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Reminders рассылает напоминания о занятиях на день
type Reminders struct {
	bookings BookingStore
	profiles ProfileStore
	notifier notify.Notifier
	logger   *zap.Logger
}

func NewReminders(bookings BookingStore, profiles ProfileStore, notifier notify.Notifier, logger *zap.Logger) *Reminders {
	return &Reminders{
		bookings: bookings,
		profiles: profiles,
		notifier: notifier,
		logger:   logger,
	}
}

// SendDailyReminders напоминает обеим сторонам каждого активного бронирования на день.
// Возвращает число доставленных сообщений.
func (r *Reminders) SendDailyReminders(ctx context.Context, day time.Time) (int, error) {
	day = model.DateOnly(day)

	bookings, err := r.bookings.ListByDate(ctx, day)
	if err != nil {
		return 0, fmt.Errorf("list bookings by date: %w", err)
	}

	sent := 0
	for _, booking := range bookings {
		if !booking.Activity.IsActive() {
			continue
		}

		for _, userID := range [...]uuid.UUID{booking.UserID, booking.MentorID} {
			if ctx.Err() != nil {
				return sent, ctx.Err()
			}

			recipient, err := r.profiles.GetByUserID(ctx, userID)
			if err != nil {
				return sent, fmt.Errorf("get profile: %w", err)
			}
			if recipient == nil {
				continue
			}

			err = r.notifier.Notify(ctx, recipient, reminderMessage(booking, userID))
			if errors.Is(err, notify.ErrNoChannel) {
				r.logger.Debug("Reminder skipped, no contact channel",
					zap.String("booking_id", booking.ID.String()),
					zap.String("user_id", userID.String()),
				)
				continue
			}
			if err != nil {
				r.logger.Warn("Failed to send reminder",
					zap.String("booking_id", booking.ID.String()),
					zap.String("user_id", userID.String()),
					zap.Error(err),
				)
				continue
			}
			sent++
		}
	}

	r.logger.Info("Daily reminders sent",
		zap.String("date", day.Format(time.DateOnly)),
		zap.Int("bookings", len(bookings)),
		zap.Int("sent", sent),
	)

	return sent, nil
}

func reminderMessage(booking *model.Booking, userID uuid.UUID) notify.Message {
	with := "ментором"
	if userID == booking.MentorID {
		with = "менти"
	}
	return notify.Message{
		Subject: "Напоминание о занятии",
		Text:    fmt.Sprintf("Сегодня (%s) у вас занятие с %s.", booking.Date.Format(time.DateOnly), with),
	}
}
