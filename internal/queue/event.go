// Package queue defines message payloads exchanged over the message broker
// and the background consumer that drains them.
package queue

// AppointmentBookedEvent is published after an appointment row is written.
// It carries enough detail for downstream consumers to log or notify
// without querying the primary database.
type AppointmentBookedEvent struct {
	AppointmentID uint64  `json:"appointment_id"`
	CustomerID    uint64  `json:"customer_id"`
	StaffID       uint64  `json:"staff_id"`
	ServiceID     uint64  `json:"service_id"`
	Date          string  `json:"appointment_date"`
	Time          string  `json:"appointment_time"`
	AutoAssigned  bool    `json:"auto_assigned"`
	Notes         *string `json:"notes,omitempty"`
	BookedAt      string  `json:"booked_at"`
}
