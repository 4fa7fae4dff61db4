package model

// Service mirrors a row of the `services` table.  Price is carried as a
// string to round-trip the DECIMAL column without float drift.
type Service struct {
	ID              uint64  // services.service_id
	Name            string  // services.service_name
	Description     *string // services.description (nullable)
	Price           string  // services.price (DECIMAL as string)
	DurationMinutes uint32  // services.duration_minutes
	IsPremium       bool    // services.is_premium
}
