package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Freeeeeet/mentorship_api/internal/lock"
	"github.com/Freeeeeet/mentorship_api/internal/model"
	"github.com/Freeeeeet/mentorship_api/internal/notify"
	"github.com/Freeeeeet/mentorship_api/internal/repository/base"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxAvailabilityDays ограничивает диапазон ListAvailability
const MaxAvailabilityDays = 31

const notifyTimeout = 30 * time.Second

type Scheduler struct {
	tx       Transactor
	slots    SlotStore
	bookings BookingStore
	profiles ProfileStore
	locker   lock.Locker
	notifier notify.Notifier
	logger   *zap.Logger
	now      func() time.Time

	notifications sync.WaitGroup
}

func NewScheduler(
	tx Transactor,
	slots SlotStore,
	bookings BookingStore,
	profiles ProfileStore,
	locker lock.Locker,
	notifier notify.Notifier,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		tx:       tx,
		slots:    slots,
		bookings: bookings,
		profiles: profiles,
		locker:   locker,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateTimeSlot публикует слот ментора. Повторный запрос с теми же
// днём и временем возвращает уже существующий слот.
func (s *Scheduler) CreateTimeSlot(ctx context.Context, mentorID uuid.UUID, day model.Day, start, end model.TimeOfDay) (*model.TimeSlot, error) {
	if err := validateWindow(day, start, end); err != nil {
		return nil, err
	}

	mentor, err := s.profiles.GetByUserID(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if mentor == nil {
		return nil, ErrProfileNotFound
	}
	if !mentor.IsMentor() {
		return nil, ErrNotMentor
	}

	slot := &model.TimeSlot{
		UserID:    mentorID,
		Day:       day,
		StartTime: start,
		EndTime:   end,
	}

	created, err := s.slots.Create(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	if created {
		s.logger.Info("Time slot created",
			zap.String("slot_id", slot.ID.String()),
			zap.String("mentor_id", mentorID.String()),
			zap.String("day", string(day)),
			zap.String("start", start.String()),
			zap.String("end", end.String()),
		)
	}

	return slot, nil
}

// ListTimeSlots получает все слоты ментора
func (s *Scheduler) ListTimeSlots(ctx context.Context, mentorID uuid.UUID) ([]*model.TimeSlot, error) {
	slots, err := s.slots.ListByUserID(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// UpdateTimeSlot меняет день и время слота. Существующие бронирования сохраняют свои даты.
func (s *Scheduler) UpdateTimeSlot(ctx context.Context, actorID, slotID uuid.UUID, day model.Day, start, end model.TimeOfDay) (*model.TimeSlot, error) {
	if err := validateWindow(day, start, end); err != nil {
		return nil, err
	}

	var slot *model.TimeSlot
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		slot, err = s.slots.GetByIDForUpdate(ctx, slotID)
		if err != nil {
			return fmt.Errorf("get slot: %w", err)
		}
		if slot == nil {
			return ErrSlotNotFound
		}
		if slot.UserID != actorID {
			return ErrNotOwner
		}
		if slot.SameWindow(day, start, end) {
			return nil
		}

		slot.Day, slot.StartTime, slot.EndTime = day, start, end
		if err := s.slots.Update(ctx, slot); err != nil {
			if errors.Is(err, base.ErrDuplicate) {
				return ErrSlotDuplicate
			}
			return fmt.Errorf("update slot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Time slot updated",
		zap.String("slot_id", slotID.String()),
		zap.String("day", string(day)),
		zap.String("start", start.String()),
		zap.String("end", end.String()),
	)

	return slot, nil
}

// DeleteTimeSlot удаляет слот вместе с бронированиями. Отсутствующий слот не ошибка.
func (s *Scheduler) DeleteTimeSlot(ctx context.Context, actorID, slotID uuid.UUID) error {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return nil
	}
	if slot.UserID != actorID {
		return ErrNotOwner
	}

	if err := s.slots.Delete(ctx, slotID); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	s.logger.Info("Time slot deleted", zap.String("slot_id", slotID.String()))
	return nil
}

// CreateBooking записывает менти на слот в конкретную дату.
// Повторная запись на тот же слот и дату возвращает существующее бронирование.
func (s *Scheduler) CreateBooking(ctx context.Context, menteeID, slotID uuid.UUID, date time.Time) (*model.Booking, error) {
	date = model.DateOnly(date)
	if date.Before(s.today()) {
		return nil, ErrDateInPast
	}

	mentee, err := s.profiles.GetByUserID(ctx, menteeID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if mentee == nil {
		return nil, ErrProfileNotFound
	}
	if !mentee.IsMentee() {
		return nil, ErrNotMentee
	}

	unlock, err := s.locker.Lock(ctx, bookingLockKey(slotID, date))
	if err != nil {
		return nil, fmt.Errorf("lock slot: %w", err)
	}
	defer unlock()

	var (
		booking *model.Booking
		created bool
	)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		slot, err := s.slots.GetByIDForUpdate(ctx, slotID)
		if err != nil {
			return fmt.Errorf("get slot: %w", err)
		}
		if slot == nil {
			return ErrSlotNotFound
		}
		if slot.UserID == menteeID {
			return ErrOwnSlot
		}
		if model.DayOf(date) != slot.Day {
			return ErrDateMismatch
		}

		existing, err := s.bookings.Find(ctx, menteeID, slotID, date)
		if err != nil {
			return fmt.Errorf("find booking: %w", err)
		}
		if existing != nil {
			booking = existing
			return nil
		}

		count, err := s.bookings.CountBySlotAndDate(ctx, slotID, date)
		if err != nil {
			return fmt.Errorf("count bookings: %w", err)
		}
		if count >= model.SlotCapacity {
			return ErrSlotOccupied
		}

		booking = &model.Booking{
			ID:         uuid.New(),
			UserID:     menteeID,
			TimeSlotID: slotID,
			Date:       date,
			MentorID:   slot.UserID,
			Day:        slot.Day,
		}
		booking.Activity = model.NewBookingActivity(booking.ID)

		created, err = s.bookings.Create(ctx, booking)
		if err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		if !created {
			booking, err = s.bookings.Find(ctx, menteeID, slotID, date)
			if err != nil {
				return fmt.Errorf("find booking: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created {
		s.logger.Info("Booking created",
			zap.String("booking_id", booking.ID.String()),
			zap.String("mentee_id", menteeID.String()),
			zap.String("slot_id", slotID.String()),
			zap.String("date", date.Format(time.DateOnly)),
		)

		s.notify(ctx, booking.MentorID, notify.Message{
			Subject: "Новая запись",
			Text: fmt.Sprintf("%s записывается к вам на занятие %s.",
				mentee.DisplayName(), date.Format(time.DateOnly)),
		})
	}

	return booking, nil
}

// UpdateBooking переносит бронирование на новую дату. Сторона, которая
// перенесла, получает статус RESCHEDULED, вторая сторона не меняется.
func (s *Scheduler) UpdateBooking(ctx context.Context, actorID, bookingID uuid.UUID, newDate time.Time) (*model.Booking, error) {
	newDate = model.DateOnly(newDate)

	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if current == nil {
		return nil, ErrBookingNotFound
	}
	role, ok := current.PartyRole(actorID)
	if !ok {
		return nil, ErrNotParty
	}
	if current.Date.Equal(newDate) {
		return current, nil
	}
	if newDate.Before(s.today()) {
		return nil, ErrDateInPast
	}

	unlock, err := s.locker.Lock(ctx, bookingLockKey(current.TimeSlotID, newDate))
	if err != nil {
		return nil, fmt.Errorf("lock slot: %w", err)
	}
	defer unlock()

	var booking *model.Booking
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		slot, err := s.slots.GetByIDForUpdate(ctx, current.TimeSlotID)
		if err != nil {
			return fmt.Errorf("get slot: %w", err)
		}
		if slot == nil {
			return ErrSlotNotFound
		}

		booking, err = s.bookings.GetByID(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("get booking: %w", err)
		}
		if booking == nil {
			return ErrBookingNotFound
		}
		if booking.Date.Equal(newDate) {
			return nil
		}
		if model.DayOf(newDate) != slot.Day {
			return ErrDateMismatch
		}

		dup, err := s.bookings.Find(ctx, booking.UserID, booking.TimeSlotID, newDate)
		if err != nil {
			return fmt.Errorf("find booking: %w", err)
		}
		if dup != nil {
			return ErrBookingExists
		}

		count, err := s.bookings.CountBySlotAndDate(ctx, booking.TimeSlotID, newDate)
		if err != nil {
			return fmt.Errorf("count bookings: %w", err)
		}
		if count >= model.SlotCapacity {
			return ErrSlotOccupied
		}

		if err := s.bookings.UpdateDate(ctx, bookingID, newDate); err != nil {
			if errors.Is(err, base.ErrDuplicate) {
				return ErrBookingExists
			}
			return fmt.Errorf("update booking date: %w", err)
		}
		if err := s.bookings.SetActivity(ctx, bookingID, role, model.BookingStatusRescheduled); err != nil {
			return fmt.Errorf("set activity: %w", err)
		}

		booking.Date = newDate
		booking.Activity.Set(role, model.BookingStatusRescheduled)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking rescheduled",
		zap.String("booking_id", bookingID.String()),
		zap.String("role", string(role)),
		zap.String("date", newDate.Format(time.DateOnly)),
	)

	s.notify(ctx, booking.Counterpart(role), notify.Message{
		Subject: "Занятие перенесено",
		Text:    fmt.Sprintf("Занятие перенесено на %s.", newDate.Format(time.DateOnly)),
	})

	return booking, nil
}

// UpdateBookingStatus выставляет статус только своей стороны
func (s *Scheduler) UpdateBookingStatus(ctx context.Context, actorID, bookingID uuid.UUID, status model.BookingStatus) (*model.Booking, error) {
	if !status.Settable() {
		return nil, ErrStatusNotSettable
	}

	var (
		booking *model.Booking
		role    model.Role
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		booking, err = s.bookings.GetByID(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("get booking: %w", err)
		}
		if booking == nil {
			return ErrBookingNotFound
		}

		var ok bool
		role, ok = booking.PartyRole(actorID)
		if !ok {
			return ErrNotParty
		}

		if err := s.bookings.SetActivity(ctx, bookingID, role, status); err != nil {
			return fmt.Errorf("set activity: %w", err)
		}
		booking.Activity.Set(role, status)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking status updated",
		zap.String("booking_id", bookingID.String()),
		zap.String("role", string(role)),
		zap.String("status", string(status)),
	)

	s.notify(ctx, booking.Counterpart(role), notify.Message{
		Subject: "Статус занятия изменён",
		Text: fmt.Sprintf("Статус занятия %s со стороны %s: %s.",
			booking.Date.Format(time.DateOnly), roleGenitive(role), statusNames[status]),
	})

	return booking, nil
}

// GetBooking получает бронирование, доступное только его сторонам
func (s *Scheduler) GetBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if _, ok := booking.PartyRole(actorID); !ok {
		return nil, ErrNotParty
	}
	return booking, nil
}

// ListBookings получает бронирования, где пользователь менти или владелец слота
func (s *Scheduler) ListBookings(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error) {
	bookings, err := s.bookings.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// DeleteBooking удаляет бронирование вместе с активностью
func (s *Scheduler) DeleteBooking(ctx context.Context, actorID, bookingID uuid.UUID) error {
	booking, err := s.GetBooking(ctx, actorID, bookingID)
	if err != nil {
		return err
	}

	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	role, _ := booking.PartyRole(actorID)
	s.logger.Info("Booking deleted",
		zap.String("booking_id", bookingID.String()),
		zap.String("role", string(role)),
	)

	s.notify(ctx, booking.Counterpart(role), notify.Message{
		Subject: "Занятие удалено",
		Text:    fmt.Sprintf("Занятие %s удалено.", booking.Date.Format(time.DateOnly)),
	})

	return nil
}

// GetSessions считает завершённые занятия пользователя
func (s *Scheduler) GetSessions(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := s.bookings.CountCompletedSessions(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

// ListAvailability возвращает все даты слотов ментора в [from, to], где остались места.
// Прошедшие даты отбрасываются до проверки длины диапазона.
func (s *Scheduler) ListAvailability(ctx context.Context, mentorID uuid.UUID, from, to time.Time) ([]model.Availability, error) {
	from, to = model.DateOnly(from), model.DateOnly(to)
	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	result := []model.Availability{}
	if today := s.today(); from.Before(today) {
		from = today
	}
	if to.Before(from) {
		return result, nil
	}
	if to.Sub(from) >= MaxAvailabilityDays*24*time.Hour {
		return nil, ErrInvalidRange
	}

	slots, err := s.slots.ListByUserID(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	if len(slots) == 0 {
		return result, nil
	}

	occupancy, err := s.bookings.OccupancyByMentor(ctx, mentorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get occupancy: %w", err)
	}

	booked := make(map[string]int, len(occupancy))
	for _, o := range occupancy {
		booked[occupancyKey(o.TimeSlotID, o.Date)] = o.Count
	}

	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		day := model.DayOf(date)
		for _, slot := range slots {
			if slot.Day != day {
				continue
			}
			count := booked[occupancyKey(slot.ID, date)]
			if count >= model.SlotCapacity {
				continue
			}
			result = append(result, model.Availability{
				TimeSlot:  slot,
				Date:      date,
				Booked:    count,
				Remaining: model.SlotCapacity - count,
			})
		}
	}

	return result, nil
}

// notify отправляет уведомление в фоне, не дожидаясь доставки.
// Контекст отвязан от запроса и ограничен notifyTimeout, ошибки только логируются.
func (s *Scheduler) notify(ctx context.Context, userID uuid.UUID, msg notify.Message) {
	ctx = context.WithoutCancel(ctx)

	s.notifications.Add(1)
	go func() {
		defer s.notifications.Done()

		ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
		defer cancel()

		recipient, err := s.profiles.GetByUserID(ctx, userID)
		if err != nil || recipient == nil {
			s.logger.Warn("Notification recipient not loaded",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
			return
		}

		err = s.notifier.Notify(ctx, recipient, msg)
		switch {
		case errors.Is(err, notify.ErrNoChannel):
			s.logger.Debug("Notification skipped, no contact channel", zap.String("user_id", userID.String()))
		case err != nil:
			s.logger.Warn("Failed to send notification",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
	}()
}

// Wait ждёт отправки уже запущенных уведомлений или отмены ctx
func (s *Scheduler) Wait(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.notifications.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("Notifications did not finish before shutdown")
	}
}

func (s *Scheduler) today() time.Time {
	return model.DateOnly(s.now())
}

func validateWindow(day model.Day, start, end model.TimeOfDay) error {
	if !day.Valid() {
		return ErrInvalidDay
	}
	if start >= end {
		return ErrInvalidTimeRange
	}
	return nil
}

func bookingLockKey(slotID uuid.UUID, date time.Time) string {
	return "booking:" + occupancyKey(slotID, date)
}

func occupancyKey(slotID uuid.UUID, date time.Time) string {
	return slotID.String() + ":" + date.Format(time.DateOnly)
}

var statusNames = map[model.BookingStatus]string{
	model.BookingStatusApproved:  "подтверждено",
	model.BookingStatusRejected:  "отклонено",
	model.BookingStatusCanceled:  "отменено",
	model.BookingStatusCompleted: "проведено",
}

func roleGenitive(role model.Role) string {
	if role == model.RoleMentor {
		return "ментора"
	}
	return "менти"
}
