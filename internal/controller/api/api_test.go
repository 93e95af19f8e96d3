package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/mentorship_api/internal/model"
	"github.com/Freeeeeet/mentorship_api/internal/service"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type stubScheduler struct {
	SchedulerService

	createBooking  func(menteeID, slotID uuid.UUID, date time.Time) (*model.Booking, error)
	updateStatus   func(actorID, bookingID uuid.UUID, status model.BookingStatus) (*model.Booking, error)
	getBooking     func(actorID, bookingID uuid.UUID) (*model.Booking, error)
	listAvailability func(mentorID uuid.UUID, from, to time.Time) ([]model.Availability, error)
	createSlot     func(mentorID uuid.UUID, day model.Day, start, end model.TimeOfDay) (*model.TimeSlot, error)
}

func (s *stubScheduler) CreateBooking(_ context.Context, menteeID, slotID uuid.UUID, date time.Time) (*model.Booking, error) {
	return s.createBooking(menteeID, slotID, date)
}

func (s *stubScheduler) UpdateBookingStatus(_ context.Context, actorID, bookingID uuid.UUID, status model.BookingStatus) (*model.Booking, error) {
	return s.updateStatus(actorID, bookingID, status)
}

func (s *stubScheduler) GetBooking(_ context.Context, actorID, bookingID uuid.UUID) (*model.Booking, error) {
	return s.getBooking(actorID, bookingID)
}

func (s *stubScheduler) ListAvailability(_ context.Context, mentorID uuid.UUID, from, to time.Time) ([]model.Availability, error) {
	return s.listAvailability(mentorID, from, to)
}

func (s *stubScheduler) CreateTimeSlot(_ context.Context, mentorID uuid.UUID, day model.Day, start, end model.TimeOfDay) (*model.TimeSlot, error) {
	return s.createSlot(mentorID, day, start, end)
}

type stubMatcher struct {
	matches []service.MentorMatch
	err     error
}

func (m *stubMatcher) MatchForUser(context.Context, uuid.UUID) ([]service.MentorMatch, error) {
	return m.matches, m.err
}

type stubProfiles struct {
	ProfileService
	updated *model.Profile
}

func (p *stubProfiles) UpdateProfile(_ context.Context, userID uuid.UUID, fn func(p *model.Profile)) (*model.Profile, error) {
	profile := &model.Profile{UserID: userID, Role: model.RoleMentee, FirstName: "Ada", LastName: "Lovelace"}
	fn(profile)
	p.updated = profile
	return profile, nil
}

func newTestServer(scheduler SchedulerService, matcher MatchService, profiles ProfileService) *Server {
	h := NewHandler(profiles, matcher, nil, scheduler, zap.NewNop())
	h.now = func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) }
	return NewServer(Config{JWTSecret: testSecret}, h, zap.NewNop())
}

func token(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func do(t *testing.T, s *Server, method, path, bearer, body string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return resp.StatusCode, env
}

func TestHealth_IsPublic(t *testing.T) {
	s := newTestServer(&stubScheduler{}, &stubMatcher{}, &stubProfiles{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuth(t *testing.T) {
	userID := uuid.New()
	s := newTestServer(&stubScheduler{}, &stubMatcher{matches: []service.MentorMatch{}}, &stubProfiles{})

	status, env := do(t, s, http.MethodGet, "/api/v1/matches/request", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.NotEmpty(t, env.Error)

	status, _ = do(t, s, http.MethodGet, "/api/v1/matches/request", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	wrongKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userID.String()}).
		SignedString([]byte("other"))
	require.NoError(t, err)
	status, _ = do(t, s, http.MethodGet, "/api/v1/matches/request", wrongKey, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = do(t, s, http.MethodGet, "/api/v1/matches/request", token(t, jwt.MapClaims{"name": "x"}), "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = do(t, s, http.MethodGet, "/api/v1/matches/request", token(t, jwt.MapClaims{"sub": userID.String()}), "")
	assert.Equal(t, http.StatusOK, status)
}

func TestCreateBooking(t *testing.T) {
	menteeID, slotID := uuid.New(), uuid.New()

	var gotDate time.Time
	scheduler := &stubScheduler{
		createBooking: func(m, s uuid.UUID, date time.Time) (*model.Booking, error) {
			assert.Equal(t, menteeID, m)
			assert.Equal(t, slotID, s)
			gotDate = date
			return &model.Booking{ID: uuid.New(), UserID: m, TimeSlotID: s, Date: date}, nil
		},
	}
	s := newTestServer(scheduler, &stubMatcher{}, &stubProfiles{})
	bearer := token(t, jwt.MapClaims{"user_id": menteeID.String()})

	status, env := do(t, s, http.MethodPost, "/api/v1/timeslots/"+slotID.String()+"/bookings", bearer, `{"date":"2025-06-02"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), gotDate)

	var booking model.Booking
	require.NoError(t, json.Unmarshal(env.Data, &booking))
	assert.Equal(t, slotID, booking.TimeSlotID)
}

func TestCreateBooking_BadInput(t *testing.T) {
	s := newTestServer(&stubScheduler{}, &stubMatcher{}, &stubProfiles{})
	bearer := token(t, jwt.MapClaims{"user_id": uuid.NewString()})

	status, _ := do(t, s, http.MethodPost, "/api/v1/timeslots/not-a-uuid/bookings", bearer, `{"date":"2025-06-02"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env := do(t, s, http.MethodPost, "/api/v1/timeslots/"+uuid.NewString()+"/bookings", bearer, `{"date":"02.06.2025"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Error, "Date")

	status, _ = do(t, s, http.MethodPost, "/api/v1/timeslots/"+uuid.NewString()+"/bookings", bearer, `{`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"capacity", service.ErrSlotOccupied, http.StatusConflict, "time slot occupied for the specified date"},
		{"missing slot", service.ErrSlotNotFound, http.StatusNotFound, "time slot not found"},
		{"wrong weekday", service.ErrDateMismatch, http.StatusBadRequest, "date does not fall on the time slot day"},
		{"not a mentee", service.ErrNotMentee, http.StatusBadRequest, "profile is not a mentee"},
		{"storage failure", io.ErrUnexpectedEOF, http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheduler := &stubScheduler{
				createBooking: func(uuid.UUID, uuid.UUID, time.Time) (*model.Booking, error) {
					return nil, tt.err
				},
			}
			s := newTestServer(scheduler, &stubMatcher{}, &stubProfiles{})
			bearer := token(t, jwt.MapClaims{"user_id": uuid.NewString()})

			status, env := do(t, s, http.MethodPost, "/api/v1/timeslots/"+uuid.NewString()+"/bookings", bearer, `{"date":"2025-06-02"}`)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantError, env.Error)
		})
	}
}

func TestUpdateBookingStatus(t *testing.T) {
	actor, bookingID := uuid.New(), uuid.New()
	scheduler := &stubScheduler{
		updateStatus: func(a, b uuid.UUID, status model.BookingStatus) (*model.Booking, error) {
			if a != actor {
				return nil, service.ErrNotParty
			}
			activity := model.NewBookingActivity(b)
			activity.Set(model.RoleMentor, status)
			return &model.Booking{ID: b, Activity: activity}, nil
		},
	}
	s := newTestServer(scheduler, &stubMatcher{}, &stubProfiles{})
	path := "/api/v1/bookings/" + bookingID.String() + "/status"

	status, env := do(t, s, http.MethodPatch, path, token(t, jwt.MapClaims{"user_id": actor.String()}), `{"status":"APPROVED"}`)
	require.Equal(t, http.StatusOK, status)

	var booking model.Booking
	require.NoError(t, json.Unmarshal(env.Data, &booking))
	assert.Equal(t, model.BookingStatusApproved, booking.Activity.MentorActivity)
	assert.Equal(t, model.BookingStatusPending, booking.Activity.MenteeActivity)

	status, _ = do(t, s, http.MethodPatch, path, token(t, jwt.MapClaims{"user_id": uuid.NewString()}), `{"status":"APPROVED"}`)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = do(t, s, http.MethodPatch, path, token(t, jwt.MapClaims{"user_id": actor.String()}), `{"status":"PENDING"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetBooking_NotFound(t *testing.T) {
	scheduler := &stubScheduler{
		getBooking: func(uuid.UUID, uuid.UUID) (*model.Booking, error) {
			return nil, service.ErrBookingNotFound
		},
	}
	s := newTestServer(scheduler, &stubMatcher{}, &stubProfiles{})

	status, env := do(t, s, http.MethodGet, "/api/v1/bookings/"+uuid.NewString(), token(t, jwt.MapClaims{"user_id": uuid.NewString()}), "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "booking not found", env.Error)
}

func TestRequestMatches(t *testing.T) {
	mentor := &model.Profile{UserID: uuid.New(), Role: model.RoleMentor, FirstName: "Grace", LastName: "Hopper"}
	matcher := &stubMatcher{matches: []service.MentorMatch{{Profile: mentor, Score: 3.5}}}
	s := newTestServer(&stubScheduler{}, matcher, &stubProfiles{})

	status, env := do(t, s, http.MethodGet, "/api/v1/matches/request", token(t, jwt.MapClaims{"user_id": uuid.NewString()}), "")
	require.Equal(t, http.StatusOK, status)

	var matches []service.MentorMatch
	require.NoError(t, json.Unmarshal(env.Data, &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, 3.5, matches[0].Score)
	assert.Equal(t, mentor.UserID, matches[0].Profile.UserID)
}

func TestAvailability_DefaultRange(t *testing.T) {
	mentorID := uuid.New()

	var gotFrom, gotTo time.Time
	scheduler := &stubScheduler{
		listAvailability: func(m uuid.UUID, from, to time.Time) ([]model.Availability, error) {
			assert.Equal(t, mentorID, m)
			gotFrom, gotTo = from, to
			return []model.Availability{}, nil
		},
	}
	s := newTestServer(scheduler, &stubMatcher{}, &stubProfiles{})
	bearer := token(t, jwt.MapClaims{"user_id": uuid.NewString()})

	status, _ := do(t, s, http.MethodGet, "/api/v1/mentors/"+mentorID.String()+"/availability", bearer, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), gotFrom)
	assert.Equal(t, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), gotTo)

	status, _ = do(t, s, http.MethodGet, "/api/v1/mentors/"+mentorID.String()+"/availability?from=tomorrow", bearer, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCreateTimeSlot_ParsesTimes(t *testing.T) {
	mentorID := uuid.New()
	scheduler := &stubScheduler{
		createSlot: func(m uuid.UUID, day model.Day, start, end model.TimeOfDay) (*model.TimeSlot, error) {
			return &model.TimeSlot{ID: uuid.New(), UserID: m, Day: day, StartTime: start, EndTime: end}, nil
		},
	}
	s := newTestServer(scheduler, &stubMatcher{}, &stubProfiles{})
	bearer := token(t, jwt.MapClaims{"user_id": mentorID.String()})

	status, env := do(t, s, http.MethodPost, "/api/v1/timeslots", bearer, `{"day":"MONDAY","start_time":"09:30","end_time":"10:30:00"}`)
	require.Equal(t, http.StatusCreated, status)

	var slot model.TimeSlot
	require.NoError(t, json.Unmarshal(env.Data, &slot))
	assert.Equal(t, model.NewTimeOfDay(9, 30), slot.StartTime)
	assert.Equal(t, model.NewTimeOfDay(10, 30), slot.EndTime)

	status, _ = do(t, s, http.MethodPost, "/api/v1/timeslots", bearer, `{"day":"MONDAY","start_time":"9am","end_time":"10:30"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, s, http.MethodPost, "/api/v1/timeslots", bearer, `{"day":"FUNDAY","start_time":"09:00","end_time":"10:30"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUpdateProfile_IgnoresRole(t *testing.T) {
	profiles := &stubProfiles{}
	s := newTestServer(&stubScheduler{}, &stubMatcher{}, profiles)
	bearer := token(t, jwt.MapClaims{"user_id": uuid.NewString()})

	status, _ := do(t, s, http.MethodPatch, "/api/v1/profiles/me", bearer, `{"first_name":"Augusta","role":"MENTOR"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Augusta", profiles.updated.FirstName)
	assert.Equal(t, model.RoleMentee, profiles.updated.Role)
	assert.Equal(t, "Lovelace", profiles.updated.LastName)
}
