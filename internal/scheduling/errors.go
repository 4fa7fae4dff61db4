package scheduling

import "fmt"

// Machine-readable reasons carried by validation and conflict errors.  The
// HTTP layer passes them through to clients unchanged, so they are part of
// the API surface.
const (
	ReasonMissingFields = "missing_required_fields"
	ReasonInvalidIDs    = "invalid_integer_ids"
	ReasonInvalidDate   = "invalid_date_format"
	ReasonInvalidTime   = "invalid_time_format"

	ReasonStaffBooked      = "staff_already_booked"
	ReasonNoStaffAvailable = "no_staff_available"
)

// ValidationError rejects malformed or missing input.  It is always raised
// before any storage access.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "invalid booking request: " + e.Reason }

// ConflictError rejects a booking that violates a business rule: the
// requested staff member already holds the slot, or no staff member is free
// for auto-assignment.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return "booking conflict: " + e.Reason }

// ReferenceError reports that the booking referenced a customer, staff
// member or service that does not exist.
type ReferenceError struct {
	Err error
}

func (e *ReferenceError) Error() string { return "unknown reference: " + e.Err.Error() }
func (e *ReferenceError) Unwrap() error { return e.Err }

// StorageError wraps any underlying storage failure.  Callers treat it as
// opaque; Op names the engine step that failed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("scheduling: %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }
