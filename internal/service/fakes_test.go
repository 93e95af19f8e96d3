package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/mentorship_api/internal/model"
	"github.com/Freeeeeet/mentorship_api/internal/notify"
	"github.com/Freeeeeet/mentorship_api/internal/repository/base"
	"github.com/google/uuid"
)

// memDB хранилище в памяти для тестов сервисов
type memDB struct {
	mu          sync.Mutex
	profiles    map[uuid.UUID]*model.Profile
	experiences map[uuid.UUID]*model.Experience
	slots       map[uuid.UUID]*model.TimeSlot
	bookings    map[uuid.UUID]*model.Booking
	pairs       map[uuid.UUID]*model.MentorMentee // по менти
	history     []*model.MentorMenteeHistory
}

func newMemDB() *memDB {
	return &memDB{
		profiles:    make(map[uuid.UUID]*model.Profile),
		experiences: make(map[uuid.UUID]*model.Experience),
		slots:       make(map[uuid.UUID]*model.TimeSlot),
		bookings:    make(map[uuid.UUID]*model.Booking),
		pairs:       make(map[uuid.UUID]*model.MentorMentee),
	}
}

type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// профили

type profileFake struct{ db *memDB }

func (f profileFake) Create(_ context.Context, p *model.Profile) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.profiles[p.UserID]; ok {
		return &base.DuplicateError{Constraint: "profiles_pkey"}
	}
	if f.db.chatTaken(p) {
		return &base.DuplicateError{Constraint: telegramChatConstraint}
	}
	cp := *p
	f.db.profiles[p.UserID] = &cp
	return nil
}

// chatTaken повторяет UNIQUE на telegram_chat_id, вызывающий держит mu
func (db *memDB) chatTaken(p *model.Profile) bool {
	if p.TelegramChatID == nil {
		return false
	}
	for id, other := range db.profiles {
		if id != p.UserID && other.TelegramChatID != nil && *other.TelegramChatID == *p.TelegramChatID {
			return true
		}
	}
	return false
}

func (f profileFake) GetByUserID(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	p, ok := f.db.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f profileFake) GetByTelegramChatID(_ context.Context, chatID int64) (*model.Profile, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, p := range f.db.profiles {
		if p.TelegramChatID != nil && *p.TelegramChatID == chatID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f profileFake) ListByRole(_ context.Context, role model.Role) ([]*model.Profile, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []*model.Profile
	for _, p := range f.db.profiles {
		if p.Role == role {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f profileFake) Update(_ context.Context, p *model.Profile) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.profiles[p.UserID]; !ok {
		return errNotStored
	}
	if f.db.chatTaken(p) {
		return &base.DuplicateError{Constraint: telegramChatConstraint}
	}
	cp := *p
	f.db.profiles[p.UserID] = &cp
	return nil
}

// опыт

type experienceFake struct{ db *memDB }

func (f experienceFake) Create(_ context.Context, e *model.Experience) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	cp := *e
	f.db.experiences[e.ID] = &cp
	return nil
}

func (f experienceFake) GetByID(_ context.Context, id uuid.UUID) (*model.Experience, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	e, ok := f.db.experiences[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f experienceFake) ListByUserID(_ context.Context, userID uuid.UUID, onlyCurrent bool) ([]*model.Experience, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []*model.Experience
	for _, e := range f.db.experiences {
		if e.UserID != userID || (onlyCurrent && !e.IsCurrent()) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (f experienceFake) Update(_ context.Context, e *model.Experience) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	cp := *e
	f.db.experiences[e.ID] = &cp
	return nil
}

func (f experienceFake) Delete(_ context.Context, id uuid.UUID) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	delete(f.db.experiences, id)
	return nil
}

// слоты

type slotFake struct{ db *memDB }

func (f slotFake) Create(_ context.Context, s *model.TimeSlot) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, existing := range f.db.slots {
		if existing.UserID == s.UserID && existing.SameWindow(s.Day, s.StartTime, s.EndTime) {
			*s = *existing
			return false, nil
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	f.db.slots[s.ID] = &cp
	return true, nil
}

func (f slotFake) GetByID(_ context.Context, id uuid.UUID) (*model.TimeSlot, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	s, ok := f.db.slots[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f slotFake) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error) {
	return f.GetByID(ctx, id)
}

func (f slotFake) ListByUserID(_ context.Context, userID uuid.UUID) ([]*model.TimeSlot, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []*model.TimeSlot
	for _, s := range f.db.slots {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day.Weekday() != out[j].Day.Weekday() {
			return (out[i].Day.Weekday()+6)%7 < (out[j].Day.Weekday()+6)%7
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (f slotFake) Update(_ context.Context, s *model.TimeSlot) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for id, existing := range f.db.slots {
		if id != s.ID && existing.UserID == s.UserID && existing.SameWindow(s.Day, s.StartTime, s.EndTime) {
			return base.ErrDuplicate
		}
	}
	cp := *s
	f.db.slots[s.ID] = &cp
	return nil
}

func (f slotFake) Delete(_ context.Context, id uuid.UUID) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	delete(f.db.slots, id)
	for bid, b := range f.db.bookings {
		if b.TimeSlotID == id {
			delete(f.db.bookings, bid)
		}
	}
	return nil
}

// бронирования

type bookingFake struct{ db *memDB }

// joined повторяет JOIN с time_slots из репозитория, вызывающий держит mu
func (f bookingFake) joined(b *model.Booking) *model.Booking {
	cp := *b
	if s, ok := f.db.slots[b.TimeSlotID]; ok {
		cp.MentorID = s.UserID
		cp.Day = s.Day
	}
	return &cp
}

func (f bookingFake) Create(_ context.Context, b *model.Booking) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, existing := range f.db.bookings {
		if existing.UserID == b.UserID && existing.TimeSlotID == b.TimeSlotID && existing.Date.Equal(b.Date) {
			return false, nil
		}
	}
	cp := *b
	f.db.bookings[b.ID] = &cp
	return true, nil
}

func (f bookingFake) GetByID(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	b, ok := f.db.bookings[id]
	if !ok {
		return nil, nil
	}
	return f.joined(b), nil
}

func (f bookingFake) Find(_ context.Context, userID, slotID uuid.UUID, date time.Time) (*model.Booking, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, b := range f.db.bookings {
		if b.UserID == userID && b.TimeSlotID == slotID && b.Date.Equal(date) {
			return f.joined(b), nil
		}
	}
	return nil, nil
}

func (f bookingFake) CountBySlotAndDate(_ context.Context, slotID uuid.UUID, date time.Time) (int, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	n := 0
	for _, b := range f.db.bookings {
		if b.TimeSlotID == slotID && b.Date.Equal(date) {
			n++
		}
	}
	return n, nil
}

func (f bookingFake) OccupancyByMentor(_ context.Context, mentorID uuid.UUID, from, to time.Time) ([]model.SlotOccupancy, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	counts := make(map[string]*model.SlotOccupancy)
	for _, b := range f.db.bookings {
		s, ok := f.db.slots[b.TimeSlotID]
		if !ok || s.UserID != mentorID || b.Date.Before(from) || b.Date.After(to) {
			continue
		}
		key := occupancyKey(b.TimeSlotID, b.Date)
		if counts[key] == nil {
			counts[key] = &model.SlotOccupancy{TimeSlotID: b.TimeSlotID, Date: b.Date}
		}
		counts[key].Count++
	}
	out := make([]model.SlotOccupancy, 0, len(counts))
	for _, o := range counts {
		out = append(out, *o)
	}
	return out, nil
}

func (f bookingFake) ListByParticipant(_ context.Context, userID uuid.UUID) ([]*model.Booking, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []*model.Booking
	for _, b := range f.db.bookings {
		j := f.joined(b)
		if j.UserID == userID || j.MentorID == userID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f bookingFake) ListByDate(_ context.Context, date time.Time) ([]*model.Booking, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []*model.Booking
	for _, b := range f.db.bookings {
		if b.Date.Equal(date) {
			out = append(out, f.joined(b))
		}
	}
	return out, nil
}

func (f bookingFake) UpdateDate(_ context.Context, id uuid.UUID, date time.Time) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	b, ok := f.db.bookings[id]
	if !ok {
		return errNotStored
	}
	b.Date = date
	return nil
}

func (f bookingFake) SetActivity(_ context.Context, id uuid.UUID, role model.Role, status model.BookingStatus) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	b, ok := f.db.bookings[id]
	if !ok {
		return errNotStored
	}
	b.Activity.Set(role, status)
	return nil
}

func (f bookingFake) Delete(_ context.Context, id uuid.UUID) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	delete(f.db.bookings, id)
	return nil
}

func (f bookingFake) CountCompletedSessions(_ context.Context, userID uuid.UUID) (int, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	n := 0
	for _, b := range f.db.bookings {
		j := f.joined(b)
		if (j.UserID == userID || j.MentorID == userID) && j.Activity.IsCompleted() {
			n++
		}
	}
	return n, nil
}

// пары

type pairingFake struct{ db *memDB }

func (f pairingFake) Create(_ context.Context, p *model.MentorMentee) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.pairs[p.MenteeID]; ok {
		return base.ErrDuplicate
	}
	cp := *p
	f.db.pairs[p.MenteeID] = &cp
	return nil
}

func (f pairingFake) GetByMenteeID(_ context.Context, menteeID uuid.UUID) (*model.MentorMentee, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	p, ok := f.db.pairs[menteeID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f pairingFake) ListByMentorID(_ context.Context, mentorID uuid.UUID) ([]*model.MentorMentee, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []*model.MentorMentee
	for _, p := range f.db.pairs {
		if p.MentorID == mentorID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f pairingFake) Delete(_ context.Context, mentorID, menteeID uuid.UUID) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	p, ok := f.db.pairs[menteeID]
	if !ok || p.MentorID != mentorID {
		return false, nil
	}
	delete(f.db.pairs, menteeID)
	return true, nil
}

func (f pairingFake) CreateHistory(_ context.Context, h *model.MentorMenteeHistory) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	cp := *h
	f.db.history = append(f.db.history, &cp)
	return nil
}

func (f pairingFake) ListHistory(_ context.Context, userID uuid.UUID) ([]*model.MentorMenteeHistory, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []*model.MentorMenteeHistory
	for _, h := range f.db.history {
		if h.MentorID == userID || h.MenteeID == userID {
			cp := *h
			out = append(out, &cp)
		}
	}
	return out, nil
}

var errNotStored = &kindError{kind: ErrNotFound, msg: "not stored"}

// recordingNotifier запоминает сообщения по получателям
type recordingNotifier struct {
	mu   sync.Mutex
	sent map[uuid.UUID][]notify.Message
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: make(map[uuid.UUID][]notify.Message)}
}

func (n *recordingNotifier) Notify(_ context.Context, recipient *model.Profile, msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent[recipient.UserID] = append(n.sent[recipient.UserID], msg)
	return nil
}

func (n *recordingNotifier) count(userID uuid.UUID) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent[userID])
}

// заполнение данными

func (db *memDB) addProfile(role model.Role, first, last string) *model.Profile {
	p := &model.Profile{UserID: uuid.New(), Role: role, FirstName: first, LastName: last}
	db.mu.Lock()
	db.profiles[p.UserID] = p
	db.mu.Unlock()
	return p
}

func (db *memDB) addExperience(userID uuid.UUID, industry model.Industry, current bool) {
	e := &model.Experience{
		ID:          uuid.New(),
		UserID:      userID,
		CompanyName: "Acme",
		StartDate:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Industry:    industry,
	}
	if !current {
		end := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
		e.EndDate = &end
	}
	db.mu.Lock()
	db.experiences[e.ID] = e
	db.mu.Unlock()
}
