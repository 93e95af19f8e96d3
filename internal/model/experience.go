package model

import (
	"time"

	"github.com/google/uuid"
)

// Experience запись об опыте работы профиля.
// EndDate == nil означает текущее место работы.
type Experience struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	CompanyName string     `json:"company_name"`
	Description *string    `json:"description,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Industry    Industry   `json:"industry"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsCurrent проверяет, продолжается ли опыт
func (e *Experience) IsCurrent() bool {
	return e.EndDate == nil
}

// Industries собирает отрасли всех записей опыта с повторами
func Industries(experiences []*Experience) []Industry {
	industries := make([]Industry, 0, len(experiences))
	for _, exp := range experiences {
		industries = append(industries, exp.Industry)
	}
	return industries
}
