package api

import (
	"time"

	"github.com/Freeeeeet/mentorship_api/internal/model"
	"github.com/gofiber/fiber/v2"
)

const defaultAvailabilityDays = 14

func (h *Handler) listTimeSlots(c *fiber.Ctx) error {
	mentorID, err := uuidQuery(c, "user_id", currentUser(c))
	if err != nil {
		return err
	}

	slots, err := h.scheduler.ListTimeSlots(c.UserContext(), mentorID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, nonNil(slots))
}

func (h *Handler) createTimeSlot(c *fiber.Ctx) error {
	var req timeSlotRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	day, start, end, err := req.parse()
	if err != nil {
		return err
	}

	slot, err := h.scheduler.CreateTimeSlot(c.UserContext(), currentUser(c), day, start, end)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, slot)
}

func (h *Handler) updateTimeSlot(c *fiber.Ctx) error {
	slotID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req timeSlotRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	day, start, end, err := req.parse()
	if err != nil {
		return err
	}

	slot, err := h.scheduler.UpdateTimeSlot(c.UserContext(), currentUser(c), slotID, day, start, end)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, slot)
}

func (h *Handler) deleteTimeSlot(c *fiber.Ctx) error {
	slotID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.scheduler.DeleteTimeSlot(c.UserContext(), currentUser(c), slotID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) createBooking(c *fiber.Ctx) error {
	slotID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req bookingDateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	date, _ := time.Parse(time.DateOnly, req.Date)

	booking, err := h.scheduler.CreateBooking(c.UserContext(), currentUser(c), slotID, date)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, booking)
}

func (h *Handler) availability(c *fiber.Ctx) error {
	mentorID, err := uuidParam(c, "userId")
	if err != nil {
		return err
	}

	from, err := dateQuery(c, "from", model.DateOnly(h.now()))
	if err != nil {
		return err
	}
	to, err := dateQuery(c, "to", from.AddDate(0, 0, defaultAvailabilityDays-1))
	if err != nil {
		return err
	}

	availability, err := h.scheduler.ListAvailability(c.UserContext(), mentorID, from, to)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, availability)
}

func (h *Handler) listBookings(c *fiber.Ctx) error {
	bookings, err := h.scheduler.ListBookings(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, nonNil(bookings))
}

func (h *Handler) getBooking(c *fiber.Ctx) error {
	bookingID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	booking, err := h.scheduler.GetBooking(c.UserContext(), currentUser(c), bookingID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, booking)
}

func (h *Handler) rescheduleBooking(c *fiber.Ctx) error {
	bookingID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req bookingDateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	date, _ := time.Parse(time.DateOnly, req.Date)

	booking, err := h.scheduler.UpdateBooking(c.UserContext(), currentUser(c), bookingID, date)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, booking)
}

func (h *Handler) updateBookingStatus(c *fiber.Ctx) error {
	bookingID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req bookingStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	booking, err := h.scheduler.UpdateBookingStatus(c.UserContext(), currentUser(c), bookingID, model.BookingStatus(req.Status))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, booking)
}

func (h *Handler) deleteBooking(c *fiber.Ctx) error {
	bookingID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.scheduler.DeleteBooking(c.UserContext(), currentUser(c), bookingID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) sessions(c *fiber.Ctx) error {
	userID, err := uuidQuery(c, "user_id", currentUser(c))
	if err != nil {
		return err
	}

	count, err := h.scheduler.GetSessions(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, sessionsResponse{UserID: userID, Sessions: count})
}
