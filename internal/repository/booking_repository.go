package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/mentorship_api/internal/model"
	"github.com/Freeeeeet/mentorship_api/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingSelect = `
	SELECT b.id, b.user_id, b.time_slot_id, b.date, a.mentor_activity, a.mentee_activity,
	       b.created_at, b.updated_at, s.user_id, s.day
	FROM bookings b
	JOIN booking_activities a ON a.booking_id = b.id
	JOIN time_slots s ON s.id = b.time_slot_id
`

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт бронирование вместе с активностью сторон одним запросом.
// Возвращает false, если такое бронирование уже существует.
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) (bool, error) {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.Activity.BookingID = booking.ID

	query := `
		WITH inserted AS (
			INSERT INTO bookings (id, user_id, time_slot_id, date)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, time_slot_id, date) DO NOTHING
			RETURNING id, created_at, updated_at
		), activity AS (
			INSERT INTO booking_activities (booking_id, mentor_activity, mentee_activity)
			SELECT id, $5, $6 FROM inserted
		)
		SELECT created_at, updated_at FROM inserted
	`

	err := r.QueryRow(
		ctx, query,
		booking.ID,
		booking.UserID,
		booking.TimeSlotID,
		booking.Date,
		booking.Activity.MentorActivity,
		booking.Activity.MenteeActivity,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		if base.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("create booking: %w", base.MapError(err))
	}

	return true, nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := scanBooking(r.QueryRow(ctx, bookingSelect+` WHERE b.id = $1`, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return booking, nil
}

// Find ищет бронирование менти на слот и дату
func (r *BookingRepository) Find(ctx context.Context, userID, slotID uuid.UUID, date time.Time) (*model.Booking, error) {
	query := bookingSelect + ` WHERE b.user_id = $1 AND b.time_slot_id = $2 AND b.date = $3`

	booking, err := scanBooking(r.QueryRow(ctx, query, userID, slotID, date))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}

	return booking, nil
}

// CountBySlotAndDate считает занятые места слота на дату
func (r *BookingRepository) CountBySlotAndDate(ctx context.Context, slotID uuid.UUID, date time.Time) (int, error) {
	var count int
	err := r.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE time_slot_id = $1 AND date = $2`,
		slotID, date,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bookings by slot and date: %w", err)
	}

	return count, nil
}

// OccupancyByMentor считает бронирования по слотам ментора в диапазоне дат
func (r *BookingRepository) OccupancyByMentor(ctx context.Context, mentorID uuid.UUID, from, to time.Time) ([]model.SlotOccupancy, error) {
	query := `
		SELECT b.time_slot_id, b.date, COUNT(*)
		FROM bookings b
		JOIN time_slots s ON s.id = b.time_slot_id
		WHERE s.user_id = $1 AND b.date >= $2 AND b.date <= $3
		GROUP BY b.time_slot_id, b.date
	`

	rows, err := r.Query(ctx, query, mentorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get occupancy by mentor: %w", err)
	}
	defer rows.Close()

	var result []model.SlotOccupancy
	for rows.Next() {
		var o model.SlotOccupancy
		if err := rows.Scan(&o.TimeSlotID, &o.Date, &o.Count); err != nil {
			return nil, fmt.Errorf("scan occupancy: %w", err)
		}
		result = append(result, o)
	}

	return result, rows.Err()
}

// ListByParticipant получает бронирования, где пользователь менти или владелец слота
func (r *BookingRepository) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error) {
	return r.list(ctx, bookingSelect+` WHERE b.user_id = $1 OR s.user_id = $1 ORDER BY b.date, s.start_time`, userID)
}

// ListByDate получает все бронирования на дату
func (r *BookingRepository) ListByDate(ctx context.Context, date time.Time) ([]*model.Booking, error) {
	return r.list(ctx, bookingSelect+` WHERE b.date = $1 ORDER BY s.start_time`, date)
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]*model.Booking, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

// UpdateDate переносит бронирование на другую дату
func (r *BookingRepository) UpdateDate(ctx context.Context, id uuid.UUID, date time.Time) error {
	affected, err := r.ExecAffected(ctx,
		`UPDATE bookings SET date = $1, updated_at = NOW() WHERE id = $2`,
		date, id,
	)
	if err != nil {
		return fmt.Errorf("update booking date: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("booking not found")
	}

	return nil
}

// SetActivity обновляет статус только одной стороны
func (r *BookingRepository) SetActivity(ctx context.Context, bookingID uuid.UUID, role model.Role, status model.BookingStatus) error {
	column := "mentee_activity"
	if role == model.RoleMentor {
		column = "mentor_activity"
	}

	affected, err := r.ExecAffected(ctx,
		`UPDATE booking_activities SET `+column+` = $1 WHERE booking_id = $2`,
		status, bookingID,
	)
	if err != nil {
		return fmt.Errorf("update booking activity: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("booking activity not found")
	}

	if _, err := r.ExecAffected(ctx, `UPDATE bookings SET updated_at = NOW() WHERE id = $1`, bookingID); err != nil {
		return fmt.Errorf("touch booking: %w", err)
	}

	return nil
}

// Delete удаляет бронирование (активность удаляется каскадом)
func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.ExecAffected(ctx, `DELETE FROM bookings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

// CountCompletedSessions считает завершённые занятия пользователя с любой стороны
func (r *BookingRepository) CountCompletedSessions(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings b
		JOIN booking_activities a ON a.booking_id = b.id
		JOIN time_slots s ON s.id = b.time_slot_id
		WHERE (b.user_id = $1 OR s.user_id = $1)
		  AND (a.mentor_activity = $2 OR a.mentee_activity = $2)
	`

	var count int
	if err := r.QueryRow(ctx, query, userID, model.BookingStatusCompleted).Scan(&count); err != nil {
		return 0, fmt.Errorf("count completed sessions: %w", err)
	}

	return count, nil
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var booking model.Booking
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.TimeSlotID,
		&booking.Date,
		&booking.Activity.MentorActivity,
		&booking.Activity.MenteeActivity,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&booking.MentorID,
		&booking.Day,
	)
	if err != nil {
		return nil, err
	}
	booking.Activity.BookingID = booking.ID
	return &booking, nil
}
