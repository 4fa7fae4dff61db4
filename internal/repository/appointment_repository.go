package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/raddison/salon-booking/internal/model"
)

// AppointmentRepo provides CRUD operations for appointments and the slot
// queries consumed by the scheduling engine.  A staff member counts as busy
// only while a Scheduled appointment holds the exact (date, time); Completed
// and Cancelled rows release the slot.
type AppointmentRepo struct{ db *sql.DB }

// NewAppointmentRepo returns a new AppointmentRepo bound to the given database.
func NewAppointmentRepo(db *sql.DB) *AppointmentRepo { return &AppointmentRepo{db: db} }

// ScheduledStaffAt returns the ids of staff holding a Scheduled appointment
// at the exact (date, time) slot - the busy set for auto-assignment.
func (r *AppointmentRepo) ScheduledStaffAt(ctx context.Context, date, timeOfDay string) ([]uint64, error) {
	const q = `SELECT staff_id FROM appointments
	           WHERE appointment_date = ? AND appointment_time = ?
	             AND status = 'Scheduled' AND staff_id IS NOT NULL`
	rows, err := r.db.QueryContext(ctx, q, date, timeOfDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// HasScheduledAppointment reports whether the given staff member already has
// a Scheduled appointment at the exact (date, time) slot.
func (r *AppointmentRepo) HasScheduledAppointment(ctx context.Context, date, timeOfDay string, staffID uint64) (bool, error) {
	const q = `SELECT appointment_id FROM appointments
	           WHERE appointment_date = ? AND appointment_time = ? AND staff_id = ?
	             AND status = 'Scheduled' LIMIT 1`
	var id uint64
	err := r.db.QueryRowContext(ctx, q, date, timeOfDay, staffID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FreeStaffIDs returns all staff ids not in excluding, ascending by id.  The
// engine auto-assigns the first one, so the order is the tie-break rule.
func (r *AppointmentRepo) FreeStaffIDs(ctx context.Context, excluding []uint64) ([]uint64, error) {
	q := "SELECT staff_id FROM staff"
	args := notInArgs(&q, "staff_id", excluding)
	q += " ORDER BY staff_id"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FreeStaff returns id, name and role for all staff not in excluding,
// ordered by name.  Backs the public available-staff endpoint.
func (r *AppointmentRepo) FreeStaff(ctx context.Context, excluding []uint64) ([]model.Staff, error) {
	q := "SELECT staff_id, full_name, role FROM staff"
	args := notInArgs(&q, "staff_id", excluding)
	q += " ORDER BY full_name"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	staff := make([]model.Staff, 0)
	for rows.Next() {
		var s model.Staff
		if err := rows.Scan(&s.ID, &s.FullName, &s.Role); err != nil {
			return nil, err
		}
		staff = append(staff, s)
	}
	return staff, rows.Err()
}

// BookedTimes returns the times on date holding a Scheduled appointment,
// optionally restricted to one staff member.  Times come back in the
// "HH:MM:SS" form the slot grid uses.
func (r *AppointmentRepo) BookedTimes(ctx context.Context, date string, staffID *uint64) ([]string, error) {
	q := `SELECT appointment_time FROM appointments
	      WHERE appointment_date = ? AND status = 'Scheduled'`
	args := []interface{}{date}
	if staffID != nil {
		q += " AND staff_id = ?"
		args = append(args, *staffID)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

// InsertAppointment writes a new row with status defaulted to Scheduled and
// returns its id.  An unknown customer, staff or service id yields
// ErrForeignKey; losing a concurrent race for the same (staff, date, time)
// slot trips the uq_scheduled_slot unique key and yields ErrDuplicate.
func (r *AppointmentRepo) InsertAppointment(ctx context.Context, customerID, staffID, serviceID uint64, date, timeOfDay string, notes *string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO appointments (customer_id, staff_id, service_id, appointment_date, appointment_time, notes) VALUES (?,?,?,?,?,?)",
		customerID, staffID, serviceID, date, timeOfDay, notes)
	if err != nil {
		return 0, translateMySQL(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// AppointmentDetail is a joined appointment row for the admin listing,
// carrying customer, staff and service display fields.
type AppointmentDetail struct {
	ID              uint64  `json:"appointment_id"`
	Date            string  `json:"appointment_date"`
	Time            string  `json:"appointment_time"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes"`
	CustomerName    string  `json:"customer_name"`
	CustomerPhone   string  `json:"customer_phone"`
	StaffName       *string `json:"staff_name"`
	ServiceName     string  `json:"service_name"`
	Price           string  `json:"price"`
	DurationMinutes uint32  `json:"duration_minutes"`
}

// ListDetailed returns every appointment joined with its customer, staff and
// service, newest first.  Staff is left-joined because unassigned or
// historically deleted staff leave the column NULL.
func (r *AppointmentRepo) ListDetailed(ctx context.Context) ([]AppointmentDetail, error) {
	const q = `SELECT a.appointment_id, DATE_FORMAT(a.appointment_date, '%Y-%m-%d'), a.appointment_time, a.status, a.notes,
	                  c.full_name, c.phone, s.full_name, sv.service_name, sv.price, sv.duration_minutes
	           FROM appointments a
	           JOIN customers c ON a.customer_id = c.customer_id
	           LEFT JOIN staff s ON a.staff_id = s.staff_id
	           JOIN services sv ON a.service_id = sv.service_id
	           ORDER BY a.appointment_date DESC, a.appointment_time DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]AppointmentDetail, 0)
	for rows.Next() {
		var d AppointmentDetail
		var notes, staffName sql.NullString
		if err := rows.Scan(&d.ID, &d.Date, &d.Time, &d.Status, &notes,
			&d.CustomerName, &d.CustomerPhone, &staffName, &d.ServiceName, &d.Price, &d.DurationMinutes); err != nil {
			return nil, err
		}
		if notes.Valid {
			n := notes.String
			d.Notes = &n
		}
		if staffName.Valid {
			s := staffName.String
			d.StaffName = &s
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// UpdateStatus sets the status of an appointment.
func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE appointments SET status = ? WHERE appointment_id = ?", status, id)
	if err != nil {
		return translateMySQL(err)
	}
	return requireAffected(res)
}

// UpdateStaff reassigns an appointment to another staff member.
func (r *AppointmentRepo) UpdateStaff(ctx context.Context, id, staffID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE appointments SET staff_id = ? WHERE appointment_id = ?", staffID, id)
	if err != nil {
		return translateMySQL(err)
	}
	return requireAffected(res)
}

// Delete removes an appointment by id.
func (r *AppointmentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM appointments WHERE appointment_id = ?", id)
	if err != nil {
		return translateMySQL(err)
	}
	return requireAffected(res)
}

// StatusCounts holds appointment totals per status for the stats endpoint.
type StatusCounts struct {
	Total     uint64 `json:"total"`
	Scheduled uint64 `json:"scheduled"`
	Completed uint64 `json:"completed"`
	Cancelled uint64 `json:"cancelled"`
}

// CountByStatus aggregates appointment counts in one query.
func (r *AppointmentRepo) CountByStatus(ctx context.Context) (StatusCounts, error) {
	const q = `SELECT COUNT(*),
	                  COALESCE(SUM(status = 'Scheduled'), 0),
	                  COALESCE(SUM(status = 'Completed'), 0),
	                  COALESCE(SUM(status = 'Cancelled'), 0)
	           FROM appointments`
	var c StatusCounts
	err := r.db.QueryRowContext(ctx, q).Scan(&c.Total, &c.Scheduled, &c.Completed, &c.Cancelled)
	return c, err
}

// Revenue sums the service price over all Completed appointments.
func (r *AppointmentRepo) Revenue(ctx context.Context) (string, error) {
	const q = `SELECT COALESCE(SUM(sv.price), 0)
	           FROM appointments a
	           JOIN services sv ON a.service_id = sv.service_id
	           WHERE a.status = 'Completed'`
	var revenue string
	err := r.db.QueryRowContext(ctx, q).Scan(&revenue)
	return revenue, err
}

// notInArgs appends a "WHERE col NOT IN (?,...)" clause to q for a non-empty
// exclusion set and returns the matching args slice.
func notInArgs(q *string, col string, excluding []uint64) []interface{} {
	if len(excluding) == 0 {
		return nil
	}
	placeholders := make([]string, len(excluding))
	args := make([]interface{}, len(excluding))
	for i, id := range excluding {
		placeholders[i] = "?"
		args[i] = id
	}
	*q += " WHERE " + col + " NOT IN (" + strings.Join(placeholders, ",") + ")"
	return args
}
