package model

import "time"

// Admin mirrors a row of the `admins` table.  Only the bcrypt hash is
// stored; the plain password never leaves the login/change-password
// handlers.
type Admin struct {
	ID           uint64    // admins.admin_id
	Username     string    // admins.username
	PasswordHash string    // admins.password_hash
	CreatedAt    time.Time // admins.created_at
}
