package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleMentor Role = "MENTOR"
	RoleMentee Role = "MENTEE"
)

// Valid проверяет, что роль известна
func (r Role) Valid() bool {
	return r == RoleMentor || r == RoleMentee
}

// Profile профиль пользователя, ключ это ID из провайдера авторизации.
// Роль задаётся при создании и не меняется.
type Profile struct {
	UserID            uuid.UUID `json:"user_id"`
	Role              Role      `json:"role"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Bio               *string   `json:"bio,omitempty"`
	YearsOfExperience *int      `json:"years_of_experience,omitempty"`
	Expertise         *string   `json:"expertise,omitempty"`
	Skills            []string  `json:"skills"`
	Languages         []string  `json:"languages"`
	LinkedInURL       *string   `json:"linkedin_url,omitempty"`
	WebsiteURL        *string   `json:"website_url,omitempty"`
	Email             *string   `json:"email,omitempty"`
	TelegramChatID    *int64    `json:"telegram_chat_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DisplayName возвращает "Имя Фамилия" без лишних пробелов
func (p *Profile) DisplayName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

func (p *Profile) IsMentor() bool {
	return p.Role == RoleMentor
}

func (p *Profile) IsMentee() bool {
	return p.Role == RoleMentee
}
