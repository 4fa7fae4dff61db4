package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/raddison/salon-booking/internal/model"
	"github.com/raddison/salon-booking/internal/repository"
	"github.com/raddison/salon-booking/internal/scheduling"
)

// bookStore is a minimal in-memory scheduling.Store for handler tests.
type bookStore struct {
	staff  []uint64
	busy   map[string][]uint64 // "date|time" -> staff ids
	nextID uint64
}

func (s *bookStore) key(date, t string) string { return date + "|" + t }

func (s *bookStore) ScheduledStaffAt(_ context.Context, date, t string) ([]uint64, error) {
	return s.busy[s.key(date, t)], nil
}

func (s *bookStore) HasScheduledAppointment(_ context.Context, date, t string, staffID uint64) (bool, error) {
	for _, id := range s.busy[s.key(date, t)] {
		if id == staffID {
			return true, nil
		}
	}
	return false, nil
}

func (s *bookStore) FreeStaffIDs(_ context.Context, excluding []uint64) ([]uint64, error) {
	var free []uint64
	for _, id := range s.staff {
		skip := false
		for _, ex := range excluding {
			if ex == id {
				skip = true
				break
			}
		}
		if !skip {
			free = append(free, id)
		}
	}
	return free, nil
}

func (s *bookStore) FreeStaff(_ context.Context, excluding []uint64) ([]model.Staff, error) {
	ids, _ := s.FreeStaffIDs(context.Background(), excluding)
	out := make([]model.Staff, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Staff{ID: id})
	}
	return out, nil
}

func (s *bookStore) BookedTimes(_ context.Context, date string, staffID *uint64) ([]string, error) {
	var times []string
	for k, ids := range s.busy {
		if !strings.HasPrefix(k, date+"|") {
			continue
		}
		if staffID == nil {
			times = append(times, strings.TrimPrefix(k, date+"|"))
			continue
		}
		for _, id := range ids {
			if id == *staffID {
				times = append(times, strings.TrimPrefix(k, date+"|"))
				break
			}
		}
	}
	return times, nil
}

func (s *bookStore) InsertAppointment(_ context.Context, _, staffID, _ uint64, date, t string, _ *string) (uint64, error) {
	k := s.key(date, t)
	s.busy[k] = append(s.busy[k], staffID)
	s.nextID++
	return s.nextID, nil
}

var _ scheduling.Store = (*bookStore)(nil)
var _ scheduling.Store = (*repository.AppointmentRepo)(nil)

func newBookingTest(staff []uint64) (*echo.Echo, *AppointmentHandler, *bookStore) {
	store := &bookStore{staff: staff, busy: map[string][]uint64{}}
	engine := scheduling.NewEngine(store)
	// The repository is only touched by the list and update endpoints, so
	// a placeholder value is fine for booking tests.
	h := &AppointmentHandler{Engine: engine, Appointments: &repository.AppointmentRepo{}, Log: zap.NewNop()}
	return echo.New(), h, store
}

func postBooking(e *echo.Echo, h *AppointmentHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Create(c); err != nil {
		panic(err)
	}
	return rec
}

func TestCreateAppointmentExplicitStaff(t *testing.T) {
	e, h, _ := newBookingTest([]uint64{1, 2})
	rec := postBooking(e, h, `{"customer_id":1,"service_id":2,"staff_id":2,"appointment_date":"2026-09-10","appointment_time":"10:00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		AppointmentID uint64 `json:"appointment_id"`
		StaffAssigned uint64 `json:"staff_assigned"`
		AutoAssigned  bool   `json:"auto_assigned"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.StaffAssigned != 2 || resp.AutoAssigned {
		t.Fatalf("got staff %d auto=%v, want staff 2 auto=false", resp.StaffAssigned, resp.AutoAssigned)
	}
	if resp.AppointmentID == 0 {
		t.Fatal("appointment_id missing from response")
	}
}

func TestCreateAppointmentStringIDsAccepted(t *testing.T) {
	e, h, _ := newBookingTest([]uint64{1})
	rec := postBooking(e, h, `{"customer_id":"1","service_id":"2","staff_id":"1","appointment_date":"2026-09-10","appointment_time":"10:00:00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestCreateAppointmentConflict(t *testing.T) {
	e, h, store := newBookingTest([]uint64{1})
	store.busy["2026-09-10|10:00:00"] = []uint64{1}
	rec := postBooking(e, h, `{"customer_id":1,"service_id":2,"staff_id":1,"appointment_date":"2026-09-10","appointment_time":"10:00"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "staff_already_booked") {
		t.Fatalf("body %q lacks conflict reason", rec.Body.String())
	}
}

func TestCreateAppointmentAutoAssign(t *testing.T) {
	e, h, store := newBookingTest([]uint64{1, 2, 3})
	store.busy["2026-09-10|10:00:00"] = []uint64{1}
	rec := postBooking(e, h, `{"customer_id":1,"service_id":2,"appointment_date":"2026-09-10","appointment_time":"10:00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		StaffAssigned uint64 `json:"staff_assigned"`
		AutoAssigned  bool   `json:"auto_assigned"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.StaffAssigned != 2 || !resp.AutoAssigned {
		t.Fatalf("got staff %d auto=%v, want staff 2 auto=true", resp.StaffAssigned, resp.AutoAssigned)
	}
}

func TestCreateAppointmentNoStaffAvailable(t *testing.T) {
	e, h, store := newBookingTest([]uint64{1})
	store.busy["2026-09-10|10:00:00"] = []uint64{1}
	rec := postBooking(e, h, `{"customer_id":1,"service_id":2,"appointment_date":"2026-09-10","appointment_time":"10:00"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "no_staff_available") {
		t.Fatalf("body %q lacks conflict reason", rec.Body.String())
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		reason string
	}{
		{"missing fields", `{"customer_id":1}`, "missing_required_fields"},
		{"bad ids", `{"customer_id":"x","service_id":2,"appointment_date":"2026-09-10","appointment_time":"10:00"}`, "invalid_integer_ids"},
		{"bad date", `{"customer_id":1,"service_id":2,"appointment_date":"10/09/2026","appointment_time":"10:00"}`, "invalid_date_format"},
		{"bad time", `{"customer_id":1,"service_id":2,"appointment_date":"2026-09-10","appointment_time":"9:00"}`, "invalid_time_format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, h, _ := newBookingTest([]uint64{1})
			rec := postBooking(e, h, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.reason) {
				t.Fatalf("body %q lacks reason %q", rec.Body.String(), tc.reason)
			}
		})
	}
}

func TestAvailableSlotsEndpoint(t *testing.T) {
	e := echo.New()
	store := &bookStore{staff: []uint64{1}, busy: map[string][]uint64{
		"2026-09-10|09:00:00": {1},
	}}
	h := NewAvailabilityHandler(scheduling.NewEngine(store))

	req := httptest.NewRequest(http.MethodGet, "/api/available-slots?date=2026-09-10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Slots(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var slots []string
	if err := json.Unmarshal(rec.Body.Bytes(), &slots); err != nil {
		t.Fatal(err)
	}
	if len(slots) != 18 {
		t.Fatalf("got %d slots, want 18 with one booked", len(slots))
	}
	for _, s := range slots {
		if s == "09:00:00" {
			t.Fatal("booked slot 09:00:00 still listed")
		}
	}
}

func TestAvailableSlotsRejectsBadDate(t *testing.T) {
	e := echo.New()
	h := NewAvailabilityHandler(scheduling.NewEngine(&bookStore{busy: map[string][]uint64{}}))
	req := httptest.NewRequest(http.MethodGet, "/api/available-slots?date=sept-10", nil)
	rec := httptest.NewRecorder()
	if err := h.Slots(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
