package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/raddison/salon-booking/internal/model"
)

// CustomerRepo provides CRUD operations for customers.  Deleting a customer
// cascades over their appointments inside a transaction.
type CustomerRepo struct{ db *sql.DB }

// NewCustomerRepo returns a new CustomerRepo bound to the given database.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

// List returns all customers ordered by name.
func (r *CustomerRepo) List(ctx context.Context) ([]model.Customer, error) {
	const q = `SELECT customer_id, full_name, phone, email, created_at
	           FROM customers ORDER BY full_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	customers := make([]model.Customer, 0)
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.FullName, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// FindIDByContact looks up a customer by phone or email and returns the id,
// or (0, nil) when no match exists.  The booking front-end uses this to
// reuse a returning customer instead of creating duplicates.
func (r *CustomerRepo) FindIDByContact(ctx context.Context, phone, email string) (uint64, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT customer_id FROM customers WHERE phone = ? OR email = ? LIMIT 1",
		phone, email).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Create inserts a customer and returns the new ID.  The caller is expected
// to have normalized phone and email; a duplicate yields ErrDuplicate.
func (r *CustomerRepo) Create(ctx context.Context, fullName, phone, email string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO customers (full_name, phone, email) VALUES (?,?,?)",
		fullName, phone, email)
	if err != nil {
		return 0, translateMySQL(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update rewrites a customer's contact details.
func (r *CustomerRepo) Update(ctx context.Context, id uint64, fullName, phone, email string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE customers SET full_name = ?, phone = ?, email = ? WHERE customer_id = ?",
		strings.TrimSpace(fullName), strings.TrimSpace(phone), strings.ToLower(strings.TrimSpace(email)), id)
	if err != nil {
		return translateMySQL(err)
	}
	return requireAffected(res)
}

// DeleteWithAppointments removes a customer and all of their appointments in
// one transaction.  ErrNotFound is returned when the customer does not
// exist; in that case any appointment deletions are rolled back as well.
func (r *CustomerRepo) DeleteWithAppointments(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, "DELETE FROM appointments WHERE customer_id = ?", id); err != nil {
		return translateMySQL(err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM customers WHERE customer_id = ?", id)
	if err != nil {
		return translateMySQL(err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Count returns the number of customers; used by the admin stats endpoint.
func (r *CustomerRepo) Count(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM customers").Scan(&n)
	return n, err
}
