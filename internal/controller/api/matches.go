package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (h *Handler) requestMatches(c *fiber.Ctx) error {
	matches, err := h.matcher.MatchForUser(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, matches)
}

func (h *Handler) listPairings(c *fiber.Ctx) error {
	pairs, err := h.mentorship.Pairings(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, nonNil(pairs))
}

func (h *Handler) pair(c *fiber.Ctx) error {
	var req pairRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	pair, err := h.mentorship.Pair(c.UserContext(), currentUser(c), uuid.MustParse(req.MentorID))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, pair)
}

func (h *Handler) unpair(c *fiber.Ctx) error {
	var req unpairRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	history, err := h.mentorship.Unpair(c.UserContext(), currentUser(c),
		uuid.MustParse(req.CounterpartID), req.MentorComment, req.MenteeComment)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, history)
}

func (h *Handler) matchHistory(c *fiber.Ctx) error {
	history, err := h.mentorship.History(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, nonNil(history))
}
