package model

import (
	"time"

	"github.com/google/uuid"
)

// MentorMentee активная пара ментор-менти. У менти не больше одной пары.
type MentorMentee struct {
	MentorID  uuid.UUID `json:"mentor_id"`
	MenteeID  uuid.UUID `json:"mentee_id"`
	StartDate time.Time `json:"start_date"`
}

// MentorMenteeHistory архивная запись о завершённой паре
type MentorMenteeHistory struct {
	ID            uuid.UUID `json:"id"`
	MentorID      uuid.UUID `json:"mentor_id"`
	MenteeID      uuid.UUID `json:"mentee_id"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	MentorComment *string   `json:"mentor_comment,omitempty"`
	MenteeComment *string   `json:"mentee_comment,omitempty"`
	TriggeredBy   Role      `json:"triggered_by"`
}

// Close превращает пару в запись истории с датой окончания end
func (m *MentorMentee) Close(end time.Time, triggeredBy Role, mentorComment, menteeComment *string) *MentorMenteeHistory {
	return &MentorMenteeHistory{
		ID:            uuid.New(),
		MentorID:      m.MentorID,
		MenteeID:      m.MenteeID,
		StartDate:     m.StartDate,
		EndDate:       end,
		MentorComment: mentorComment,
		MenteeComment: menteeComment,
		TriggeredBy:   triggeredBy,
	}
}
