package model

import (
	"time"

	"github.com/google/uuid"
)

// SlotCapacity сколько менти могут занять один слот на одну дату
const SlotCapacity = 3

type BookingStatus string

const (
	BookingStatusPending     BookingStatus = "PENDING"     // Начальный статус обеих сторон
	BookingStatusApproved    BookingStatus = "APPROVED"    // Сторона подтвердила занятие
	BookingStatusRescheduled BookingStatus = "RESCHEDULED" // Сторона перенесла дату
	BookingStatusRejected    BookingStatus = "REJECTED"    // Сторона отклонила
	BookingStatusCanceled    BookingStatus = "CANCELED"    // Сторона отменила
	BookingStatusCompleted   BookingStatus = "COMPLETED"   // Сторона отметила занятие проведённым
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusRescheduled,
		BookingStatusRejected, BookingStatusCanceled, BookingStatusCompleted:
		return true
	}
	return false
}

// Settable проверяет, может ли сторона выставить статус напрямую.
// PENDING только начальный, RESCHEDULED ставится при переносе даты.
func (s BookingStatus) Settable() bool {
	switch s {
	case BookingStatusApproved, BookingStatusRejected, BookingStatusCanceled, BookingStatusCompleted:
		return true
	}
	return false
}

// BookingActivity независимые статусы сторон бронирования
type BookingActivity struct {
	BookingID      uuid.UUID     `json:"booking_id"`
	MentorActivity BookingStatus `json:"mentor_activity"`
	MenteeActivity BookingStatus `json:"mentee_activity"`
}

// NewBookingActivity начальная активность нового бронирования
func NewBookingActivity(bookingID uuid.UUID) BookingActivity {
	return BookingActivity{
		BookingID:      bookingID,
		MentorActivity: BookingStatusPending,
		MenteeActivity: BookingStatusPending,
	}
}

// Set меняет статус стороны role, вторую сторону не трогает
func (a *BookingActivity) Set(role Role, status BookingStatus) {
	if role == RoleMentor {
		a.MentorActivity = status
		return
	}
	a.MenteeActivity = status
}

// Of возвращает статус стороны
func (a *BookingActivity) Of(role Role) BookingStatus {
	if role == RoleMentor {
		return a.MentorActivity
	}
	return a.MenteeActivity
}

// IsCompleted проверяет, отметила ли любая из сторон занятие проведённым
func (a *BookingActivity) IsCompleted() bool {
	return a.MentorActivity == BookingStatusCompleted || a.MenteeActivity == BookingStatusCompleted
}

// IsActive проверяет, что никто не отклонил и не отменил
func (a *BookingActivity) IsActive() bool {
	for _, s := range []BookingStatus{a.MentorActivity, a.MenteeActivity} {
		if s == BookingStatusRejected || s == BookingStatusCanceled {
			return false
		}
	}
	return true
}

// Booking запись менти на слот в конкретную дату
type Booking struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"` // менти
	TimeSlotID uuid.UUID       `json:"time_slot_id"`
	Date       time.Time       `json:"date"`
	Activity   BookingActivity `json:"activity"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Дополнительные поля для удобства (не из БД)
	MentorID uuid.UUID `json:"mentor_id"`
	Day      Day       `json:"day,omitempty"`
}

// PartyRole определяет, за какую сторону бронирования выступает userID
func (b *Booking) PartyRole(userID uuid.UUID) (Role, bool) {
	switch userID {
	case b.UserID:
		return RoleMentee, true
	case b.MentorID:
		return RoleMentor, true
	}
	return "", false
}

// Counterpart возвращает вторую сторону бронирования
func (b *Booking) Counterpart(role Role) uuid.UUID {
	if role == RoleMentor {
		return b.UserID
	}
	return b.MentorID
}

// DateOnly обрезает t до полуночи UTC той же даты
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
