package api

import (
	"errors"
	"strings"
	"time"

	"github.com/Freeeeeet/mentorship_api/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

type createProfileRequest struct {
	Role              model.Role `json:"role" validate:"required,oneof=MENTOR MENTEE"`
	FirstName         string     `json:"first_name" validate:"required,max=100"`
	LastName          string     `json:"last_name" validate:"required,max=100"`
	Bio               *string    `json:"bio"`
	YearsOfExperience *int       `json:"years_of_experience" validate:"omitempty,min=0,max=80"`
	Expertise         *string    `json:"expertise" validate:"omitempty,max=255"`
	Skills            []string   `json:"skills"`
	Languages         []string   `json:"languages"`
	LinkedInURL       *string    `json:"linkedin_url" validate:"omitempty,url"`
	WebsiteURL        *string    `json:"website_url" validate:"omitempty,url"`
	Email             *string    `json:"email" validate:"omitempty,email"`
	TelegramChatID    *int64     `json:"telegram_chat_id"`
}

// updateProfileRequest без роли: роль задаётся только при создании
type updateProfileRequest struct {
	FirstName         *string   `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName          *string   `json:"last_name" validate:"omitempty,min=1,max=100"`
	Bio               *string   `json:"bio"`
	YearsOfExperience *int      `json:"years_of_experience" validate:"omitempty,min=0,max=80"`
	Expertise         *string   `json:"expertise" validate:"omitempty,max=255"`
	Skills            *[]string `json:"skills"`
	Languages         *[]string `json:"languages"`
	LinkedInURL       *string   `json:"linkedin_url" validate:"omitempty,url"`
	WebsiteURL        *string   `json:"website_url" validate:"omitempty,url"`
	Email             *string   `json:"email" validate:"omitempty,email"`
	TelegramChatID    *int64    `json:"telegram_chat_id"`
}

func (r *updateProfileRequest) apply(p *model.Profile) {
	if r.FirstName != nil {
		p.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		p.LastName = *r.LastName
	}
	if r.Bio != nil {
		p.Bio = r.Bio
	}
	if r.YearsOfExperience != nil {
		p.YearsOfExperience = r.YearsOfExperience
	}
	if r.Expertise != nil {
		p.Expertise = r.Expertise
	}
	if r.Skills != nil {
		p.Skills = *r.Skills
	}
	if r.Languages != nil {
		p.Languages = *r.Languages
	}
	if r.LinkedInURL != nil {
		p.LinkedInURL = r.LinkedInURL
	}
	if r.WebsiteURL != nil {
		p.WebsiteURL = r.WebsiteURL
	}
	if r.Email != nil {
		p.Email = r.Email
	}
	if r.TelegramChatID != nil {
		p.TelegramChatID = r.TelegramChatID
	}
}

type experienceRequest struct {
	CompanyName string  `json:"company_name" validate:"required,max=255"`
	Description *string `json:"description"`
	StartDate   string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Industry    string  `json:"industry" validate:"required"`
}

func (r *experienceRequest) apply(e *model.Experience) {
	e.CompanyName = r.CompanyName
	e.Description = r.Description
	e.StartDate, _ = time.Parse(time.DateOnly, r.StartDate)
	e.EndDate = nil
	if r.EndDate != nil {
		end, _ := time.Parse(time.DateOnly, *r.EndDate)
		e.EndDate = &end
	}
	e.Industry = model.Industry(strings.ToUpper(r.Industry))
}

type pairRequest struct {
	MentorID string `json:"mentor_id" validate:"required,uuid"`
}

type unpairRequest struct {
	CounterpartID string  `json:"counterpart_id" validate:"required,uuid"`
	MentorComment *string `json:"mentor_comment"`
	MenteeComment *string `json:"mentee_comment"`
}

type timeSlotRequest struct {
	Day       string `json:"day" validate:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

func (r *timeSlotRequest) parse() (model.Day, model.TimeOfDay, model.TimeOfDay, error) {
	start, err := model.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return "", 0, 0, badRequest("start_time must be HH:MM")
	}
	end, err := model.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return "", 0, 0, badRequest("end_time must be HH:MM")
	}
	return model.Day(r.Day), start, end, nil
}

type bookingDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type bookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED CANCELED COMPLETED"`
}

type sessionsResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Sessions int       `json:"sessions"`
}

// parseBody разбирает JSON тела в req и валидирует его
func parseBody(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return badRequest("cannot parse JSON body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}

	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fe.Field()+" failed on "+fe.Tag())
	}
	return strings.Join(parts, "; ")
}

func uuidParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, badRequest(name + " must be a UUID")
	}
	return id, nil
}

// uuidQuery возвращает параметр запроса как UUID, для пустого значения fallback
func uuidQuery(c *fiber.Ctx, name string, fallback uuid.UUID) (uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, badRequest(name + " must be a UUID")
	}
	return id, nil
}

func dateQuery(c *fiber.Ctx, name string, fallback time.Time) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, badRequest(name + " must be YYYY-MM-DD")
	}
	return t, nil
}
