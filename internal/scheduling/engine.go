// Package scheduling implements the appointment booking rules: input
// validation, exact-slot conflict detection, staff auto-assignment and
// availability queries.  The engine talks to storage through the Store
// interface so the rules can be exercised against a fake in tests.
package scheduling

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/raddison/salon-booking/internal/model"
	"github.com/raddison/salon-booking/internal/repository"
)

// Store is the storage contract the engine consumes.  Date is "YYYY-MM-DD"
// and timeOfDay "HH:MM:SS", both already normalized by the engine.  A staff
// member is busy at a slot only while a Scheduled appointment holds it.
type Store interface {
	// ScheduledStaffAt returns the busy set for the exact slot.
	ScheduledStaffAt(ctx context.Context, date, timeOfDay string) ([]uint64, error)
	// HasScheduledAppointment is the exact-slot conflict check for one staff member.
	HasScheduledAppointment(ctx context.Context, date, timeOfDay string, staffID uint64) (bool, error)
	// FreeStaffIDs returns staff ids not in excluding, ascending by id.
	FreeStaffIDs(ctx context.Context, excluding []uint64) ([]uint64, error)
	// FreeStaff returns staff not in excluding, ordered by name.
	FreeStaff(ctx context.Context, excluding []uint64) ([]model.Staff, error)
	// BookedTimes returns the Scheduled times on date, optionally for one staff member.
	BookedTimes(ctx context.Context, date string, staffID *uint64) ([]string, error)
	// InsertAppointment writes a Scheduled row and returns its id.  Unknown
	// references yield repository.ErrForeignKey; a lost slot race yields
	// repository.ErrDuplicate.
	InsertAppointment(ctx context.Context, customerID, staffID, serviceID uint64, date, timeOfDay string, notes *string) (uint64, error)
}

// Engine applies the booking rules on top of a Store.
type Engine struct {
	store Store
}

// NewEngine constructs an Engine and panics when store is nil.
func NewEngine(store Store) *Engine {
	if store == nil {
		panic("nil store passed to NewEngine")
	}
	return &Engine{store: store}
}

// BookingInput carries the raw request fields.  IDs arrive as strings
// because clients send them both as JSON numbers and as strings; the engine
// owns parsing so the validation reasons stay in one place.  An empty
// StaffID requests auto-assignment.
type BookingInput struct {
	CustomerID string
	ServiceID  string
	StaffID    string
	Date       string
	Time       string
	Notes      string
}

// BookingResult reports a successful booking.
type BookingResult struct {
	AppointmentID uint64
	StaffID       uint64
	AutoAssigned  bool
}

// The format checks are syntactic only, mirroring the production behavior:
// no calendar validation (2024-02-30 passes) and no range check against the
// booking grid for explicitly requested slots.
var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)
	hhmmRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// NormalizeTime appends ":00" to a bare "HH:MM" value and reports whether
// the result is a syntactically valid "HH:MM:SS" string.  Single-digit
// hours ("9:30") are rejected.
func NormalizeTime(t string) (string, bool) {
	if hhmmRe.MatchString(t) {
		t += ":00"
	}
	return t, timeRe.MatchString(t)
}

// Book validates the input and either books the requested staff member
// (Case A) or auto-assigns the lowest-id free one (Case B).  Validation and
// conflicts are always decided before the insert; a failed availability
// lookup aborts the whole operation with no row written.
func (e *Engine) Book(ctx context.Context, in BookingInput) (*BookingResult, error) {
	if in.CustomerID == "" || in.ServiceID == "" || in.Date == "" || in.Time == "" {
		return nil, &ValidationError{Reason: ReasonMissingFields}
	}
	customerID, errC := strconv.ParseUint(in.CustomerID, 10, 64)
	serviceID, errS := strconv.ParseUint(in.ServiceID, 10, 64)
	if errC != nil || errS != nil {
		return nil, &ValidationError{Reason: ReasonInvalidIDs}
	}
	if !dateRe.MatchString(in.Date) {
		return nil, &ValidationError{Reason: ReasonInvalidDate}
	}
	timeOfDay, ok := NormalizeTime(in.Time)
	if !ok {
		return nil, &ValidationError{Reason: ReasonInvalidTime}
	}

	// A staff id that does not parse falls back to auto-assignment, the
	// same way the booking form's empty select does.
	var staffID *uint64
	if s := strings.TrimSpace(in.StaffID); s != "" {
		if id, err := strconv.ParseUint(s, 10, 64); err == nil {
			staffID = &id
		}
	}

	var notes *string
	if n := strings.TrimSpace(in.Notes); n != "" {
		notes = &n
	}

	if staffID != nil {
		// Case A: explicit staff request; reject when the exact slot is taken.
		booked, err := e.store.HasScheduledAppointment(ctx, in.Date, timeOfDay, *staffID)
		if err != nil {
			return nil, &StorageError{Op: "conflict check", Err: err}
		}
		if booked {
			return nil, &ConflictError{Reason: ReasonStaffBooked}
		}
		return e.insert(ctx, customerID, *staffID, serviceID, in.Date, timeOfDay, notes, false)
	}

	// Case B: auto-assign.  Busy set first, then the free set ordered by
	// id; the lowest free id wins.  Deterministic, not load-balanced.
	busy, err := e.store.ScheduledStaffAt(ctx, in.Date, timeOfDay)
	if err != nil {
		return nil, &StorageError{Op: "busy set query", Err: err}
	}
	free, err := e.store.FreeStaffIDs(ctx, busy)
	if err != nil {
		return nil, &StorageError{Op: "free staff query", Err: err}
	}
	if len(free) == 0 {
		return nil, &ConflictError{Reason: ReasonNoStaffAvailable}
	}
	return e.insert(ctx, customerID, free[0], serviceID, in.Date, timeOfDay, notes, true)
}

func (e *Engine) insert(ctx context.Context, customerID, staffID, serviceID uint64, date, timeOfDay string, notes *string, auto bool) (*BookingResult, error) {
	id, err := e.store.InsertAppointment(ctx, customerID, staffID, serviceID, date, timeOfDay, notes)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrForeignKey):
			return nil, &ReferenceError{Err: err}
		case errors.Is(err, repository.ErrDuplicate):
			// A concurrent booking won the slot between check and insert.
			return nil, &ConflictError{Reason: ReasonStaffBooked}
		default:
			return nil, &StorageError{Op: "insert", Err: err}
		}
	}
	return &BookingResult{AppointmentID: id, StaffID: staffID, AutoAssigned: auto}, nil
}

// AvailableSlots returns the free times of the daily grid for date,
// optionally restricted to one staff member, in grid order.
func (e *Engine) AvailableSlots(ctx context.Context, date string, staffID *uint64) ([]string, error) {
	booked, err := e.store.BookedTimes(ctx, date, staffID)
	if err != nil {
		return nil, &StorageError{Op: "booked times query", Err: err}
	}
	return FreeSlots(booked), nil
}

// AvailableStaff validates and normalizes (date, time), computes the busy
// set and returns the staff members not in it, ordered by name.  The
// normalized time is returned for echoing back to the client.
func (e *Engine) AvailableStaff(ctx context.Context, date, timeOfDay string) (string, []model.Staff, error) {
	normalized, ok := NormalizeTime(timeOfDay)
	if !ok {
		return "", nil, &ValidationError{Reason: ReasonInvalidTime}
	}
	if !dateRe.MatchString(date) {
		return "", nil, &ValidationError{Reason: ReasonInvalidDate}
	}
	busy, err := e.store.ScheduledStaffAt(ctx, date, normalized)
	if err != nil {
		return "", nil, &StorageError{Op: "busy set query", Err: err}
	}
	staff, err := e.store.FreeStaff(ctx, busy)
	if err != nil {
		return "", nil, &StorageError{Op: "free staff query", Err: err}
	}
	return normalized, staff, nil
}
