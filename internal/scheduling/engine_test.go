package scheduling

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/raddison/salon-booking/internal/model"
	"github.com/raddison/salon-booking/internal/repository"
)

// fakeStore is an in-memory Store.  busy maps "date|time" to the staff ids
// holding that slot.  failOp makes the named operation return errBoom so
// abort paths can be exercised.
type fakeStore struct {
	staff    []model.Staff
	busy     map[string][]uint64
	inserted []insertedRow
	failOp   string
	nextID   uint64
}

type insertedRow struct {
	customerID, staffID, serviceID uint64
	date, timeOfDay                string
	notes                          *string
}

var errBoom = errors.New("boom")

func newFakeStore(staff ...model.Staff) *fakeStore {
	return &fakeStore{staff: staff, busy: map[string][]uint64{}, nextID: 100}
}

func (f *fakeStore) markBusy(date, timeOfDay string, staffID uint64) {
	key := date + "|" + timeOfDay
	f.busy[key] = append(f.busy[key], staffID)
}

func (f *fakeStore) ScheduledStaffAt(_ context.Context, date, timeOfDay string) ([]uint64, error) {
	if f.failOp == "busy" {
		return nil, errBoom
	}
	return f.busy[date+"|"+timeOfDay], nil
}

func (f *fakeStore) HasScheduledAppointment(_ context.Context, date, timeOfDay string, staffID uint64) (bool, error) {
	if f.failOp == "conflict" {
		return false, errBoom
	}
	for _, id := range f.busy[date+"|"+timeOfDay] {
		if id == staffID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) FreeStaffIDs(_ context.Context, excluding []uint64) ([]uint64, error) {
	if f.failOp == "free" {
		return nil, errBoom
	}
	skip := map[uint64]struct{}{}
	for _, id := range excluding {
		skip[id] = struct{}{}
	}
	var ids []uint64
	for _, s := range f.staff {
		if _, ok := skip[s.ID]; !ok {
			ids = append(ids, s.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeStore) FreeStaff(_ context.Context, excluding []uint64) ([]model.Staff, error) {
	if f.failOp == "free" {
		return nil, errBoom
	}
	skip := map[uint64]struct{}{}
	for _, id := range excluding {
		skip[id] = struct{}{}
	}
	var out []model.Staff
	for _, s := range f.staff {
		if _, ok := skip[s.ID]; !ok {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (f *fakeStore) BookedTimes(_ context.Context, date string, staffID *uint64) ([]string, error) {
	if f.failOp == "booked" {
		return nil, errBoom
	}
	var times []string
	for key, ids := range f.busy {
		if key[:len(date)] != date {
			continue
		}
		for _, id := range ids {
			if staffID == nil || *staffID == id {
				times = append(times, key[len(date)+1:])
				break
			}
		}
	}
	return times, nil
}

func (f *fakeStore) InsertAppointment(_ context.Context, customerID, staffID, serviceID uint64, date, timeOfDay string, notes *string) (uint64, error) {
	switch f.failOp {
	case "insert":
		return 0, errBoom
	case "insert-fk":
		return 0, repository.ErrForeignKey
	case "insert-dup":
		return 0, repository.ErrDuplicate
	}
	f.inserted = append(f.inserted, insertedRow{customerID, staffID, serviceID, date, timeOfDay, notes})
	f.nextID++
	return f.nextID, nil
}

func validInput() BookingInput {
	return BookingInput{
		CustomerID: "7",
		ServiceID:  "3",
		Date:       "2025-03-10",
		Time:       "14:00",
	}
}

func threeStaff() []model.Staff {
	return []model.Staff{
		{ID: 1, FullName: "Alice Moreau", Role: "Stylist"},
		{ID: 2, FullName: "Zoe Laurent", Role: "Colorist"},
		{ID: 3, FullName: "Ben Okafor", Role: "Barber"},
	}
}

func TestBook_ExplicitStaffFree(t *testing.T) {
	store := newFakeStore(threeStaff()...)
	in := validInput()
	in.StaffID = "2"
	res, err := NewEngine(store).Book(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.StaffID != 2 || res.AutoAssigned {
		t.Fatalf("expected staff 2 without auto-assign, got %+v", res)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("expected one insert, got %d", len(store.inserted))
	}
	if got := store.inserted[0].timeOfDay; got != "14:00:00" {
		t.Fatalf("expected normalized time 14:00:00, got %s", got)
	}
}

func TestBook_ExplicitStaffBooked(t *testing.T) {
	store := newFakeStore(threeStaff()...)
	store.markBusy("2025-03-10", "14:00:00", 2)
	in := validInput()
	in.StaffID = "2"
	_, err := NewEngine(store).Book(context.Background(), in)
	var conflict *ConflictError
	if !errors.As(err, &conflict) || conflict.Reason != ReasonStaffBooked {
		t.Fatalf("expected staff_already_booked conflict, got %v", err)
	}
	if len(store.inserted) != 0 {
		t.Fatalf("conflict must not insert, got %d rows", len(store.inserted))
	}
}

func TestBook_AutoAssignLowestFreeID(t *testing.T) {
	store := newFakeStore(threeStaff()...)
	store.markBusy("2025-03-10", "14:00:00", 2)
	res, err := NewEngine(store).Book(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.StaffID != 1 || !res.AutoAssigned {
		t.Fatalf("expected auto-assigned staff 1, got %+v", res)
	}
}

func TestBook_AutoAssignSkipsBusyLowest(t *testing.T) {
	store := newFakeStore(threeStaff()...)
	store.markBusy("2025-03-10", "14:00:00", 1)
	res, err := NewEngine(store).Book(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.StaffID != 2 {
		t.Fatalf("expected staff 2, got %d", res.StaffID)
	}
}

func TestBook_NoStaffAvailable(t *testing.T) {
	store := newFakeStore(threeStaff()...)
	for _, id := range []uint64{1, 2, 3} {
		store.markBusy("2025-03-10", "14:00:00", id)
	}
	_, err := NewEngine(store).Book(context.Background(), validInput())
	var conflict *ConflictError
	if !errors.As(err, &conflict) || conflict.Reason != ReasonNoStaffAvailable {
		t.Fatalf("expected no_staff_available conflict, got %v", err)
	}
	if len(store.inserted) != 0 {
		t.Fatalf("conflict must not insert, got %d rows", len(store.inserted))
	}
}

func TestBook_ValidationReasons(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*BookingInput)
		reason string
	}{
		{"missing customer", func(in *BookingInput) { in.CustomerID = "" }, ReasonMissingFields},
		{"missing date", func(in *BookingInput) { in.Date = "" }, ReasonMissingFields},
		{"non-integer customer", func(in *BookingInput) { in.CustomerID = "abc" }, ReasonInvalidIDs},
		{"non-integer service", func(in *BookingInput) { in.ServiceID = "x1" }, ReasonInvalidIDs},
		{"bad date", func(in *BookingInput) { in.Date = "10-03-2025" }, ReasonInvalidDate},
		{"single digit hour", func(in *BookingInput) { in.Time = "9:30" }, ReasonInvalidTime},
		{"garbage time", func(in *BookingInput) { in.Time = "noonish" }, ReasonInvalidTime},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			store := newFakeStore(threeStaff()...)
			in := validInput()
			c.mutate(&in)
			_, err := NewEngine(store).Book(context.Background(), in)
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Reason != c.reason {
				t.Fatalf("expected validation reason %q, got %v", c.reason, err)
			}
			if len(store.inserted) != 0 {
				t.Fatalf("validation failure must not touch storage")
			}
		})
	}
}

func TestBook_NotesTrimmedAndEmptied(t *testing.T) {
	store := newFakeStore(threeStaff()...)
	in := validInput()
	in.Notes = "  cut and color  "
	if _, err := NewEngine(store).Book(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := store.inserted[0].notes; n == nil || *n != "cut and color" {
		t.Fatalf("expected trimmed notes, got %v", n)
	}

	in.Notes = "   "
	if _, err := NewEngine(store).Book(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := store.inserted[1].notes; n != nil {
		t.Fatalf("expected blank notes to become absent, got %q", *n)
	}
}

func TestBook_LookupFailureAbortsWithoutInsert(t *testing.T) {
	for _, op := range []string{"busy", "free"} {
		store := newFakeStore(threeStaff()...)
		store.failOp = op
		_, err := NewEngine(store).Book(context.Background(), validInput())
		var serr *StorageError
		if !errors.As(err, &serr) {
			t.Fatalf("failOp=%s: expected StorageError, got %v", op, err)
		}
		if len(store.inserted) != 0 {
			t.Fatalf("failOp=%s: lookup failure must not insert", op)
		}
	}
}

func TestBook_InsertErrorMapping(t *testing.T) {
	store := newFakeStore(threeStaff()...)
	store.failOp = "insert-fk"
	_, err := NewEngine(store).Book(context.Background(), validInput())
	var rerr *ReferenceError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected ReferenceError, got %v", err)
	}

	// A duplicate-key failure means a concurrent request won the slot.
	store = newFakeStore(threeStaff()...)
	store.failOp = "insert-dup"
	_, err = NewEngine(store).Book(context.Background(), validInput())
	var cerr *ConflictError
	if !errors.As(err, &cerr) || cerr.Reason != ReasonStaffBooked {
		t.Fatalf("expected staff_already_booked conflict, got %v", err)
	}
}

func TestBook_UnparseableStaffIDFallsBackToAuto(t *testing.T) {
	store := newFakeStore(threeStaff()...)
	in := validInput()
	in.StaffID = "nope"
	res, err := NewEngine(store).Book(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.AutoAssigned || res.StaffID != 1 {
		t.Fatalf("expected auto-assignment of staff 1, got %+v", res)
	}
}

func TestAvailableStaff_OrderedByNameWithCount(t *testing.T) {
	store := newFakeStore(threeStaff()...)
	store.markBusy("2025-03-10", "14:00:00", 2)
	normalized, staff, err := NewEngine(store).AvailableStaff(context.Background(), "2025-03-10", "14:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if normalized != "14:00:00" {
		t.Fatalf("expected normalized time 14:00:00, got %s", normalized)
	}
	if len(staff) != 2 {
		t.Fatalf("expected 2 available staff, got %d", len(staff))
	}
	if staff[0].FullName != "Alice Moreau" || staff[1].FullName != "Ben Okafor" {
		t.Fatalf("expected name order [Alice Moreau, Ben Okafor], got %+v", staff)
	}
}

func TestAvailableStaff_RejectsBadInput(t *testing.T) {
	store := newFakeStore(threeStaff()...)
	e := NewEngine(store)
	if _, _, err := e.AvailableStaff(context.Background(), "2025-03-10", "9:30"); err == nil {
		t.Fatal("expected invalid time error")
	}
	if _, _, err := e.AvailableStaff(context.Background(), "03/10/2025", "14:00"); err == nil {
		t.Fatal("expected invalid date error")
	}
}

func TestAvailableSlots_ExcludesBookedForStaff(t *testing.T) {
	store := newFakeStore(threeStaff()...)
	store.markBusy("2025-03-10", "09:30:00", 1)
	store.markBusy("2025-03-10", "11:00:00", 2)
	e := NewEngine(store)

	// Whole-salon view: both booked times are gone.
	slots, err := e.AvailableSlots(context.Background(), "2025-03-10", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 17 {
		t.Fatalf("expected 17 slots, got %d", len(slots))
	}

	// Per-staff view: only staff 1's booking blocks.
	one := uint64(1)
	slots, err = e.AvailableSlots(context.Background(), "2025-03-10", &one)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 18 {
		t.Fatalf("expected 18 slots, got %d", len(slots))
	}
	for _, s := range slots {
		if s == "09:30:00" {
			t.Fatal("staff 1's booked slot still present")
		}
	}
}
