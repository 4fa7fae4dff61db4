package repository

import (
	"context"
	"database/sql"

	"github.com/raddison/salon-booking/internal/model"
)

// MessageRepo stores contact-form messages.
type MessageRepo struct{ db *sql.DB }

// NewMessageRepo returns a new MessageRepo bound to the given database.
func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{db: db} }

// List returns all messages, newest first.
func (r *MessageRepo) List(ctx context.Context) ([]model.Message, error) {
	const q = `SELECT message_id, name, email, subject, message, created_at
	           FROM messages ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	messages := make([]model.Message, 0)
	for rows.Next() {
		var m model.Message
		var subject sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		if subject.Valid {
			s := subject.String
			m.Subject = &s
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// Create inserts a message and returns its ID.  A nil subject stores NULL.
func (r *MessageRepo) Create(ctx context.Context, name, email string, subject *string, body string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO messages (name, email, subject, message) VALUES (?,?,?,?)",
		name, email, subject, body)
	if err != nil {
		return 0, translateMySQL(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Delete removes a message by id.
func (r *MessageRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM messages WHERE message_id = ?", id)
	if err != nil {
		return translateMySQL(err)
	}
	return requireAffected(res)
}

// Count returns the number of messages; used by the admin stats endpoint.
func (r *MessageRepo) Count(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages").Scan(&n)
	return n, err
}
