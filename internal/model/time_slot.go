package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Day string

const (
	DayMonday    Day = "MONDAY"
	DayTuesday   Day = "TUESDAY"
	DayWednesday Day = "WEDNESDAY"
	DayThursday  Day = "THURSDAY"
	DayFriday    Day = "FRIDAY"
	DaySaturday  Day = "SATURDAY"
	DaySunday    Day = "SUNDAY"
)

var weekdays = map[Day]time.Weekday{
	DayMonday:    time.Monday,
	DayTuesday:   time.Tuesday,
	DayWednesday: time.Wednesday,
	DayThursday:  time.Thursday,
	DayFriday:    time.Friday,
	DaySaturday:  time.Saturday,
	DaySunday:    time.Sunday,
}

func (d Day) Valid() bool {
	_, ok := weekdays[d]
	return ok
}

// Weekday переводит день в time.Weekday
func (d Day) Weekday() time.Weekday {
	return weekdays[d]
}

// DayOf возвращает день недели календарной даты
func DayOf(t time.Time) Day {
	for d, wd := range weekdays {
		if wd == t.Weekday() {
			return d
		}
	}
	return ""
}

// TimeOfDay время суток в минутах от полуночи, в JSON "HH:MM"
type TimeOfDay int

// ParseTimeOfDay разбирает "HH:MM" или "HH:MM:SS" (секунды отбрасываются)
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	layout := "15:04"
	if strings.Count(s, ":") == 2 {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	parsed, err := ParseTimeOfDay(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TimeSlot еженедельное окно, опубликованное ментором
type TimeSlot struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Day       Day       `json:"day"`
	StartTime TimeOfDay `json:"start_time"`
	EndTime   TimeOfDay `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SameWindow проверяет, совпадает ли окно слота с заданным
func (s *TimeSlot) SameWindow(day Day, start, end TimeOfDay) bool {
	return s.Day == day && s.StartTime == start && s.EndTime == end
}

// Availability свободные места слота на конкретную дату
type Availability struct {
	TimeSlot  *TimeSlot `json:"time_slot"`
	Date      time.Time `json:"date"`
	Booked    int       `json:"booked"`
	Remaining int       `json:"remaining"`
}

// SlotOccupancy число бронирований слота на одну дату
type SlotOccupancy struct {
	TimeSlotID uuid.UUID
	Date       time.Time
	Count      int
}
