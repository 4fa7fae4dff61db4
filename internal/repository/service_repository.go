package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/raddison/salon-booking/internal/model"
)

// ServiceRepo provides CRUD operations for the services catalogue.
type ServiceRepo struct{ db *sql.DB }

// NewServiceRepo returns a new ServiceRepo bound to the given database.
func NewServiceRepo(db *sql.DB) *ServiceRepo { return &ServiceRepo{db: db} }

const serviceColumns = "service_id, service_name, description, price, duration_minutes, is_premium"

// ListStandard returns all non-premium services ordered by name.  Rows with
// a NULL is_premium flag (legacy data) count as standard.
func (r *ServiceRepo) ListStandard(ctx context.Context) ([]model.Service, error) {
	const q = "SELECT " + serviceColumns + " FROM services WHERE is_premium = FALSE OR is_premium IS NULL ORDER BY service_name"
	return r.list(ctx, q)
}

// ListPremium returns all premium services ordered by name.
func (r *ServiceRepo) ListPremium(ctx context.Context) ([]model.Service, error) {
	const q = "SELECT " + serviceColumns + " FROM services WHERE is_premium = TRUE ORDER BY service_name"
	return r.list(ctx, q)
}

// ListAll returns every service, premium first, then by name.
func (r *ServiceRepo) ListAll(ctx context.Context) ([]model.Service, error) {
	const q = "SELECT " + serviceColumns + " FROM services ORDER BY is_premium DESC, service_name"
	return r.list(ctx, q)
}

func (r *ServiceRepo) list(ctx context.Context, q string) ([]model.Service, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	services := make([]model.Service, 0)
	for rows.Next() {
		var s model.Service
		var desc sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &desc, &s.Price, &s.DurationMinutes, &s.IsPremium); err != nil {
			return nil, err
		}
		if desc.Valid {
			d := desc.String
			s.Description = &d
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

// Create inserts a service and returns its ID.  A nil description stores NULL.
func (r *ServiceRepo) Create(ctx context.Context, name string, description *string, price string, durationMinutes uint32, isPremium bool) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO services (service_name, description, price, duration_minutes, is_premium) VALUES (?,?,?,?,?)",
		strings.TrimSpace(name), description, price, durationMinutes, isPremium)
	if err != nil {
		return 0, translateMySQL(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update rewrites all mutable columns of a service.  ErrNotFound is
// returned when no row has the given id.
func (r *ServiceRepo) Update(ctx context.Context, id uint64, name string, description *string, price string, durationMinutes uint32, isPremium bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE services SET service_name = ?, description = ?, price = ?, duration_minutes = ?, is_premium = ? WHERE service_id = ?",
		strings.TrimSpace(name), description, price, durationMinutes, isPremium, id)
	if err != nil {
		return translateMySQL(err)
	}
	return requireAffected(res)
}

// Delete removes a service by id.
func (r *ServiceRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM services WHERE service_id = ?", id)
	if err != nil {
		return translateMySQL(err)
	}
	return requireAffected(res)
}

// requireAffected converts a zero affected-row count into ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
