package api

import (
	"github.com/Freeeeeet/mentorship_api/internal/model"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) createProfile(c *fiber.Ctx) error {
	var req createProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	profile, err := h.profiles.CreateProfile(c.UserContext(), &model.Profile{
		UserID:            currentUser(c),
		Role:              req.Role,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Bio:               req.Bio,
		YearsOfExperience: req.YearsOfExperience,
		Expertise:         req.Expertise,
		Skills:            req.Skills,
		Languages:         req.Languages,
		LinkedInURL:       req.LinkedInURL,
		WebsiteURL:        req.WebsiteURL,
		Email:             req.Email,
		TelegramChatID:    req.TelegramChatID,
	})
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, profile)
}

func (h *Handler) getMyProfile(c *fiber.Ctx) error {
	profile, err := h.profiles.GetProfile(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, profile)
}

func (h *Handler) updateMyProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	profile, err := h.profiles.UpdateProfile(c.UserContext(), currentUser(c), req.apply)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, profile)
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}

	profile, err := h.profiles.GetProfile(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, profile)
}

func (h *Handler) addExperience(c *fiber.Ctx) error {
	var req experienceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var exp model.Experience
	req.apply(&exp)

	created, err := h.profiles.AddExperience(c.UserContext(), currentUser(c), &exp)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, created)
}

func (h *Handler) listExperiences(c *fiber.Ctx) error {
	userID, err := uuidQuery(c, "user_id", currentUser(c))
	if err != nil {
		return err
	}

	experiences, err := h.profiles.ListExperiences(c.UserContext(), userID, c.QueryBool("current"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, nonNil(experiences))
}

func (h *Handler) updateExperience(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req experienceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	exp, err := h.profiles.UpdateExperience(c.UserContext(), currentUser(c), id, req.apply)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, exp)
}

func (h *Handler) deleteExperience(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.profiles.DeleteExperience(c.UserContext(), currentUser(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// nonNil кодирует пустой список как [], а не null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
