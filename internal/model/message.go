package model

import "time"

// Message mirrors a row of the `messages` table (the public contact form).
type Message struct {
	ID        uint64    // messages.message_id
	Name      string    // messages.name
	Email     string    // messages.email
	Subject   *string   // messages.subject (nullable)
	Message   string    // messages.message
	CreatedAt time.Time // messages.created_at
}
