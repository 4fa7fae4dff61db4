package model

import "time"

// Appointment statuses as stored in the appointments.status enum.  The
// scheduling engine treats only Scheduled rows as occupying a slot;
// Completed and Cancelled both release it.
const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Appointment mirrors a row of the `appointments` table.  Date and time are
// kept as the normalized strings the API exchanges ("YYYY-MM-DD" and
// "HH:MM:SS") rather than time.Time: MySQL stores them in separate DATE and
// TIME columns and every comparison the engine performs is exact-match.
//
// Fields:
//  ID         - primary key identifier.
//  CustomerID - customer who booked.
//  StaffID    - assigned staff member (nullable until assignment).
//  ServiceID  - booked service.
//  Date       - calendar date, "YYYY-MM-DD".
//  Time       - time of day, "HH:MM:SS".
//  Status     - Scheduled, Completed or Cancelled.
//  Notes      - optional free text.
//  CreatedAt  - creation timestamp.
type Appointment struct {
	ID         uint64    // appointments.appointment_id
	CustomerID uint64    // appointments.customer_id
	StaffID    *uint64   // appointments.staff_id (nullable)
	ServiceID  uint64    // appointments.service_id
	Date       string    // appointments.appointment_date
	Time       string    // appointments.appointment_time
	Status     string    // appointments.status
	Notes      *string   // appointments.notes (nullable)
	CreatedAt  time.Time // appointments.created_at
}
