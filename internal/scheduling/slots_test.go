package scheduling

import "testing"

func TestDailySlots_Grid(t *testing.T) {
	slots := DailySlots()
	if len(slots) != 19 {
		t.Fatalf("expected 19 slots, got %d", len(slots))
	}
	if slots[0] != "09:00:00" {
		t.Fatalf("expected first slot 09:00:00, got %s", slots[0])
	}
	if slots[len(slots)-1] != "18:00:00" {
		t.Fatalf("expected last slot 18:00:00, got %s", slots[len(slots)-1])
	}
	for i := 1; i < len(slots); i++ {
		if slots[i] <= slots[i-1] {
			t.Fatalf("slots out of order: %s before %s", slots[i-1], slots[i])
		}
	}
}

func TestFreeSlots_NoBookings(t *testing.T) {
	free := FreeSlots(nil)
	if len(free) != 19 {
		t.Fatalf("expected full grid, got %d slots", len(free))
	}
}

func TestFreeSlots_SubtractsBooked(t *testing.T) {
	free := FreeSlots([]string{"09:30:00", "14:00:00"})
	if len(free) != 17 {
		t.Fatalf("expected 17 slots, got %d", len(free))
	}
	for _, s := range free {
		if s == "09:30:00" || s == "14:00:00" {
			t.Fatalf("booked slot %s still present", s)
		}
	}
	// grid order preserved
	if free[0] != "09:00:00" || free[1] != "10:00:00" {
		t.Fatalf("unexpected leading slots %v", free[:2])
	}
}

func TestFreeSlots_IgnoresTimesOutsideGrid(t *testing.T) {
	free := FreeSlots([]string{"08:00:00", "20:15:00"})
	if len(free) != 19 {
		t.Fatalf("expected full grid, got %d slots", len(free))
	}
}

func TestNormalizeTime(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"09:30", "09:30:00", true},
		{"09:30:00", "09:30:00", true},
		{"9:30", "", false},
		{"09-30", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := NormalizeTime(c.in)
		if ok != c.ok {
			t.Fatalf("NormalizeTime(%q): ok=%v, want %v", c.in, ok, c.ok)
		}
		if ok && got != c.want {
			t.Fatalf("NormalizeTime(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
