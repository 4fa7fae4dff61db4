package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/raddison/salon-booking/internal/model"
)

// StaffRepo provides CRUD operations for staff members.
type StaffRepo struct{ db *sql.DB }

// NewStaffRepo returns a new StaffRepo bound to the given database.
func NewStaffRepo(db *sql.DB) *StaffRepo { return &StaffRepo{db: db} }

// List returns all staff members ordered by name.
func (r *StaffRepo) List(ctx context.Context) ([]model.Staff, error) {
	const q = `SELECT staff_id, full_name, role, phone, email,
	                  DATE_FORMAT(hire_date, '%Y-%m-%d'), salary
	           FROM staff ORDER BY full_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	staff := make([]model.Staff, 0)
	for rows.Next() {
		var s model.Staff
		if err := rows.Scan(&s.ID, &s.FullName, &s.Role, &s.Phone, &s.Email, &s.HireDate, &s.Salary); err != nil {
			return nil, err
		}
		staff = append(staff, s)
	}
	return staff, rows.Err()
}

// Create inserts a staff member with today's date as hire_date and returns
// the new ID.  A phone or email already in use yields ErrDuplicate.
func (r *StaffRepo) Create(ctx context.Context, fullName, role, phone, email, salary string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO staff (full_name, role, phone, email, hire_date, salary) VALUES (?,?,?,?,CURDATE(),?)",
		strings.TrimSpace(fullName), strings.TrimSpace(role), strings.TrimSpace(phone), strings.TrimSpace(email), salary)
	if err != nil {
		return 0, translateMySQL(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update rewrites a staff member's mutable columns.
func (r *StaffRepo) Update(ctx context.Context, id uint64, fullName, role, phone, email, salary string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE staff SET full_name = ?, role = ?, phone = ?, email = ?, salary = ? WHERE staff_id = ?",
		strings.TrimSpace(fullName), strings.TrimSpace(role), strings.TrimSpace(phone), strings.TrimSpace(email), salary, id)
	if err != nil {
		return translateMySQL(err)
	}
	return requireAffected(res)
}

// Delete removes a staff member by id.
func (r *StaffRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM staff WHERE staff_id = ?", id)
	if err != nil {
		return translateMySQL(err)
	}
	return requireAffected(res)
}
