package model

import "time"

// Customer mirrors a row of the `customers` table.  Phone and email are
// unique; POST /api/customers reuses an existing row when either matches.
type Customer struct {
	ID        uint64    // customers.customer_id
	FullName  string    // customers.full_name
	Phone     string    // customers.phone
	Email     string    // customers.email
	CreatedAt time.Time // customers.created_at
}
