package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/raddison/salon-booking/internal/model"
)

// AdminRepo manages admin accounts.  Password hashing stays in the handler
// layer; this repository only moves hashes in and out of the table.
type AdminRepo struct{ db *sql.DB }

// NewAdminRepo returns a new AdminRepo bound to the given database.
func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{db: db} }

// List returns all admins (without password hashes), newest first.
func (r *AdminRepo) List(ctx context.Context) ([]model.Admin, error) {
	const q = `SELECT admin_id, username, created_at FROM admins ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	admins := make([]model.Admin, 0)
	for rows.Next() {
		var a model.Admin
		if err := rows.Scan(&a.ID, &a.Username, &a.CreatedAt); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

// GetByUsername fetches an admin including the password hash for login
// verification.  Returns sql.ErrNoRows when the username is unknown.
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (model.Admin, error) {
	var a model.Admin
	err := r.db.QueryRowContext(ctx,
		"SELECT admin_id, username, password_hash, created_at FROM admins WHERE username = ? LIMIT 1",
		username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	return a, err
}

// GetHashByID fetches only the password hash of an admin.
func (r *AdminRepo) GetHashByID(ctx context.Context, id uint64) (string, error) {
	var hash string
	err := r.db.QueryRowContext(ctx,
		"SELECT password_hash FROM admins WHERE admin_id = ?", id).Scan(&hash)
	return hash, err
}

// Create inserts an admin with the given bcrypt hash and returns the new
// ID.  A taken username yields ErrDuplicate.
func (r *AdminRepo) Create(ctx context.Context, username, passwordHash string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO admins (username, password_hash) VALUES (?,?)",
		strings.TrimSpace(username), passwordHash)
	if err != nil {
		return 0, translateMySQL(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// UpdatePassword replaces an admin's password hash.
func (r *AdminRepo) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE admins SET password_hash = ? WHERE admin_id = ?", passwordHash, id)
	if err != nil {
		return translateMySQL(err)
	}
	return requireAffected(res)
}

// Delete removes an admin by id.
func (r *AdminRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM admins WHERE admin_id = ?", id)
	if err != nil {
		return translateMySQL(err)
	}
	return requireAffected(res)
}

// Count returns the number of admin accounts.  Deletion is refused for the
// last remaining account.
func (r *AdminRepo) Count(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM admins").Scan(&n)
	return n, err
}
