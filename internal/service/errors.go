package service

import "errors"

// Виды ошибок. Конкретные ошибки оборачивают один из них, проверка через errors.Is
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrInvalidState = errors.New("invalid state")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

var (
	ErrProfileNotFound    = newError(ErrNotFound, "profile not found")
	ErrProfileExists      = newError(ErrConflict, "profile already exists")
	ErrTelegramChatTaken  = newError(ErrConflict, "telegram chat is linked to another profile")
	ErrInvalidRole        = newError(ErrValidation, "role must be MENTOR or MENTEE")
	ErrNotMentor          = newError(ErrValidation, "profile is not a mentor")
	ErrNotMentee          = newError(ErrValidation, "profile is not a mentee")
	ErrExperienceNotFound = newError(ErrNotFound, "experience not found")
	ErrInvalidIndustry    = newError(ErrValidation, "unknown industry")
	ErrInvalidPeriod      = newError(ErrValidation, "end date is before start date")
	ErrNotOwner           = newError(ErrUnauthorized, "resource belongs to another user")

	ErrSlotNotFound     = newError(ErrNotFound, "time slot not found")
	ErrSlotDuplicate    = newError(ErrConflict, "time slot already exists")
	ErrInvalidDay       = newError(ErrValidation, "day must be MONDAY..SUNDAY")
	ErrInvalidTimeRange = newError(ErrValidation, "start time must be before end time")

	ErrBookingNotFound   = newError(ErrNotFound, "booking not found")
	ErrSlotOccupied      = newError(ErrConflict, "time slot occupied for the specified date")
	ErrBookingExists     = newError(ErrConflict, "booking already exists for the specified date")
	ErrDateMismatch      = newError(ErrValidation, "date does not fall on the time slot day")
	ErrDateInPast        = newError(ErrValidation, "date is in the past")
	ErrOwnSlot           = newError(ErrValidation, "cannot book own time slot")
	ErrStatusNotSettable = newError(ErrValidation, "status must be APPROVED, REJECTED, CANCELED or COMPLETED")
	ErrNotParty          = newError(ErrUnauthorized, "user is not a party of the booking")
	ErrInvalidRange      = newError(ErrValidation, "invalid date range")

	ErrAlreadyPaired   = newError(ErrConflict, "mentee already has a mentor")
	ErrPairingNotFound = newError(ErrNotFound, "pairing not found")

	// ErrNoCurrentExperience у менти нет текущего опыта для подбора.
	// Подбор в этом случае даёт всем менторам нулевой балл.
	ErrNoCurrentExperience = newError(ErrInvalidState, "mentee has no current experience")
)
