package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/mentorship_api/internal/model"
	"github.com/Freeeeeet/mentorship_api/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MentorMenteeRepository хранит активные пары и их историю
type MentorMenteeRepository struct {
	*base.Repository
}

func NewMentorMenteeRepository(pool *pgxpool.Pool) *MentorMenteeRepository {
	return &MentorMenteeRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт активную пару. Повторная пара для менти даёт base.ErrDuplicate.
func (r *MentorMenteeRepository) Create(ctx context.Context, pair *model.MentorMentee) error {
	query := `
		INSERT INTO mentor_mentees (mentor_id, mentee_id, start_date)
		VALUES ($1, $2, $3)
	`

	if _, err := r.ExecAffected(ctx, query, pair.MentorID, pair.MenteeID, pair.StartDate); err != nil {
		return fmt.Errorf("create mentor mentee: %w", err)
	}

	return nil
}

// GetByMenteeID получает активную пару менти
func (r *MentorMenteeRepository) GetByMenteeID(ctx context.Context, menteeID uuid.UUID) (*model.MentorMentee, error) {
	query := `SELECT mentor_id, mentee_id, start_date FROM mentor_mentees WHERE mentee_id = $1`

	pair, err := scanPair(r.QueryRow(ctx, query, menteeID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pair by mentee: %w", err)
	}

	return pair, nil
}

// ListByMentorID получает всех менти ментора
func (r *MentorMenteeRepository) ListByMentorID(ctx context.Context, mentorID uuid.UUID) ([]*model.MentorMentee, error) {
	query := `
		SELECT mentor_id, mentee_id, start_date
		FROM mentor_mentees
		WHERE mentor_id = $1
		ORDER BY start_date
	`

	rows, err := r.Query(ctx, query, mentorID)
	if err != nil {
		return nil, fmt.Errorf("list pairs by mentor: %w", err)
	}
	defer rows.Close()

	var pairs []*model.MentorMentee
	for rows.Next() {
		pair, err := scanPair(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pair: %w", err)
		}
		pairs = append(pairs, pair)
	}

	return pairs, rows.Err()
}

// Delete удаляет активную пару. Возвращает false, если пары не было.
func (r *MentorMenteeRepository) Delete(ctx context.Context, mentorID, menteeID uuid.UUID) (bool, error) {
	affected, err := r.ExecAffected(ctx,
		`DELETE FROM mentor_mentees WHERE mentor_id = $1 AND mentee_id = $2`,
		mentorID, menteeID,
	)
	if err != nil {
		return false, fmt.Errorf("delete mentor mentee: %w", err)
	}

	return affected > 0, nil
}

// CreateHistory архивирует завершённую пару
func (r *MentorMenteeRepository) CreateHistory(ctx context.Context, h *model.MentorMenteeHistory) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}

	query := `
		INSERT INTO mentor_mentee_history
			(id, mentor_id, mentee_id, start_date, end_date, mentor_comment, mentee_comment, triggered_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.ExecAffected(ctx, query,
		h.ID,
		h.MentorID,
		h.MenteeID,
		h.StartDate,
		h.EndDate,
		h.MentorComment,
		h.MenteeComment,
		h.TriggeredBy,
	)
	if err != nil {
		return fmt.Errorf("create mentor mentee history: %w", err)
	}

	return nil
}

// ListHistory получает архив пар, где пользователь был любой из сторон
func (r *MentorMenteeRepository) ListHistory(ctx context.Context, userID uuid.UUID) ([]*model.MentorMenteeHistory, error) {
	query := `
		SELECT id, mentor_id, mentee_id, start_date, end_date, mentor_comment, mentee_comment, triggered_by
		FROM mentor_mentee_history
		WHERE mentor_id = $1 OR mentee_id = $1
		ORDER BY end_date DESC
	`

	rows, err := r.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list mentor mentee history: %w", err)
	}
	defer rows.Close()

	var history []*model.MentorMenteeHistory
	for rows.Next() {
		var h model.MentorMenteeHistory
		err := rows.Scan(
			&h.ID,
			&h.MentorID,
			&h.MenteeID,
			&h.StartDate,
			&h.EndDate,
			&h.MentorComment,
			&h.MenteeComment,
			&h.TriggeredBy,
		)
		if err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		history = append(history, &h)
	}

	return history, rows.Err()
}

func scanPair(row pgx.Row) (*model.MentorMentee, error) {
	var pair model.MentorMentee
	if err := row.Scan(&pair.MentorID, &pair.MenteeID, &pair.StartDate); err != nil {
		return nil, err
	}
	return &pair, nil
}
