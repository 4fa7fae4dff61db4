package scheduling

import "fmt"

// The booking grid is a static business rule: every day offers the same 19
// half-hour slots from 09:00 through 18:00 inclusive.  The grid is not
// persisted anywhere; availability is always "grid minus booked times".
const (
	openingHour = 9
	closingHour = 18
	slotMinutes = 30
)

// DailySlots returns the full grid in ascending order:
// "09:00:00", "09:30:00", ..., "17:30:00", "18:00:00".
func DailySlots() []string {
	var slots []string
	for hour := openingHour; hour <= closingHour; hour++ {
		for minute := 0; minute < 60; minute += slotMinutes {
			if hour == closingHour && minute > 0 {
				break
			}
			slots = append(slots, fmt.Sprintf("%02d:%02d:00", hour, minute))
		}
	}
	return slots
}

// FreeSlots subtracts the booked times from the daily grid, preserving grid
// order.  Booked times outside the grid are ignored.  Pure function, no
// side effects.
func FreeSlots(booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}
	free := make([]string, 0, 19)
	for _, slot := range DailySlots() {
		if _, ok := taken[slot]; !ok {
			free = append(free, slot)
		}
	}
	return free
}
