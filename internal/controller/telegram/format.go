package telegram

import (
	"fmt"

	"github.com/Freeeeeet/mentorship_api/internal/model"
	"github.com/google/uuid"
)

type statusDisplay struct {
	Emoji string
	Text  string
}

var statusDisplays = map[model.BookingStatus]statusDisplay{
	model.BookingStatusPending:     {"⏳", "Ожидает"},
	model.BookingStatusApproved:    {"✅", "Подтверждена"},
	model.BookingStatusRescheduled: {"🔁", "Перенесена"},
	model.BookingStatusCompleted:   {"✔️", "Завершена"},
	model.BookingStatusCanceled:    {"❌", "Отменена"},
	model.BookingStatusRejected:    {"🚫", "Отклонена"},
}

func displayStatus(status model.BookingStatus) statusDisplay {
	if display, ok := statusDisplays[status]; ok {
		return display
	}
	return statusDisplay{"❓", "Неизвестно"}
}

var weekdayNames = map[model.Day]string{
	model.DayMonday:    "Пн",
	model.DayTuesday:   "Вт",
	model.DayWednesday: "Ср",
	model.DayThursday:  "Чт",
	model.DayFriday:    "Пт",
	model.DaySaturday:  "Сб",
	model.DaySunday:    "Вс",
}

// formatBooking строка бронирования с точки зрения смотрящего
func formatBooking(b *model.Booking, viewerID uuid.UUID) string {
	role, ok := b.PartyRole(viewerID)
	if !ok {
		role = model.RoleMentee
	}
	mine := displayStatus(b.Activity.Of(role))
	other := displayStatus(b.Activity.Of(counterRole(role)))

	day := weekdayNames[b.Day]
	if day == "" {
		day = weekdayNames[model.DayOf(b.Date)]
	}

	return fmt.Sprintf("%s %s (%s): вы %s, %s %s",
		mine.Emoji,
		b.Date.Format("02.01.2006"),
		day,
		mine.Text,
		roleName(counterRole(role)),
		other.Text,
	)
}

func counterRole(role model.Role) model.Role {
	if role == model.RoleMentor {
		return model.RoleMentee
	}
	return model.RoleMentor
}

func roleName(role model.Role) string {
	if role == model.RoleMentor {
		return "ментор"
	}
	return "менти"
}

// pluralizeSessions возвращает правильное склонение слова "занятие"
func pluralizeSessions(count int) string {
	return pluralize(count, "завершённое занятие", "завершённых занятия", "завершённых занятий")
}

// pluralizeBookings возвращает правильное склонение слова "запись"
func pluralizeBookings(count int) string {
	return pluralize(count, "запись", "записи", "записей")
}

func pluralize(count int, one, few, many string) string {
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}
