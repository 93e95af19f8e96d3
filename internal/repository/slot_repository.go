package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/mentorship_api/internal/model"
	"github.com/Freeeeeet/mentorship_api/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const slotColumns = `id, user_id, day, start_time, end_time, created_at, updated_at`

type SlotRepository struct {
	*base.Repository
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новый слот. Если такой же слот уже есть, заполняет slot
// существующими данными и возвращает false.
func (r *SlotRepository) Create(ctx context.Context, slot *model.TimeSlot) (bool, error) {
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}

	query := `
		INSERT INTO time_slots (id, user_id, day, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, day, start_time, end_time) DO NOTHING
		RETURNING created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		slot.ID,
		slot.UserID,
		slot.Day,
		toPgTime(slot.StartTime),
		toPgTime(slot.EndTime),
	).Scan(&slot.CreatedAt, &slot.UpdatedAt)

	if err == nil {
		return true, nil
	}
	if !base.IsNotFound(err) {
		return false, fmt.Errorf("create slot: %w", base.MapError(err))
	}

	// Конфликт: слот уже опубликован
	existing, err := r.Find(ctx, slot.UserID, slot.Day, slot.StartTime, slot.EndTime)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, fmt.Errorf("create slot: conflicting slot disappeared")
	}
	*slot = *existing

	return false, nil
}

// Find ищет слот ментора по дню и времени
func (r *SlotRepository) Find(ctx context.Context, userID uuid.UUID, day model.Day, start, end model.TimeOfDay) (*model.TimeSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM time_slots
		WHERE user_id = $1 AND day = $2 AND start_time = $3 AND end_time = $4
	`

	slot, err := scanSlot(r.QueryRow(ctx, query, userID, day, toPgTime(start), toPgTime(end)))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find slot: %w", err)
	}

	return slot, nil
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает слот и блокирует строку до конца транзакции
func (r *SlotRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error) {
	return r.getByID(ctx, id, true)
}

func (r *SlotRepository) getByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*model.TimeSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM time_slots WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	slot, err := scanSlot(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return slot, nil
}

// ListByUserID получает все слоты ментора
func (r *SlotRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*model.TimeSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM time_slots
		WHERE user_id = $1
		ORDER BY CASE day
			WHEN 'MONDAY' THEN 1 WHEN 'TUESDAY' THEN 2 WHEN 'WEDNESDAY' THEN 3
			WHEN 'THURSDAY' THEN 4 WHEN 'FRIDAY' THEN 5 WHEN 'SATURDAY' THEN 6 ELSE 7
		END, start_time
	`

	rows, err := r.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list slots by user: %w", err)
	}
	defer rows.Close()

	var slots []*model.TimeSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}

// Update обновляет день и время слота
func (r *SlotRepository) Update(ctx context.Context, slot *model.TimeSlot) error {
	query := `
		UPDATE time_slots
		SET day = $1, start_time = $2, end_time = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := r.QueryRow(ctx, query, slot.Day, toPgTime(slot.StartTime), toPgTime(slot.EndTime), slot.ID).
		Scan(&slot.UpdatedAt)
	if err != nil {
		if base.IsNotFound(err) {
			return fmt.Errorf("slot not found")
		}
		return fmt.Errorf("update slot: %w", base.MapError(err))
	}

	return nil
}

// Delete удаляет слот (бронирования удалятся каскадом)
func (r *SlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.ExecAffected(ctx, `DELETE FROM time_slots WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	return nil
}

func scanSlot(row pgx.Row) (*model.TimeSlot, error) {
	var (
		slot       model.TimeSlot
		start, end pgtype.Time
	)
	err := row.Scan(
		&slot.ID,
		&slot.UserID,
		&slot.Day,
		&start,
		&end,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	slot.StartTime = fromPgTime(start)
	slot.EndTime = fromPgTime(end)
	return &slot, nil
}

func toPgTime(t model.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: int64(t) * int64(time.Minute/time.Microsecond), Valid: true}
}

func fromPgTime(t pgtype.Time) model.TimeOfDay {
	return model.TimeOfDay(t.Microseconds / int64(time.Minute/time.Microsecond))
}
