package bizcal

import (
	"testing"
	"time"
)

// at builds an instant in the default calendar's location.
func at(t *testing.T, y int, m time.Month, d, hh, mm int) time.Time {
	t.Helper()
	return time.Date(y, m, d, hh, mm, 0, 0, mustLoc(t))
}

func TestBusinessMinutes_EndBeforeStart(t *testing.T) {
	cal := Default()
	start := at(t, 2025, time.March, 3, 10, 0)
	if _, ok := cal.BusinessMinutes(start, start.Add(-time.Minute)); ok {
		t.Error("BusinessMinutes with end < start: ok = true, want false")
	}
}

func TestBusinessMinutes_EqualInstants(t *testing.T) {
	cal := Default()
	start := at(t, 2025, time.March, 3, 10, 0)
	got, ok := cal.BusinessMinutes(start, start)
	if !ok || got != 0 {
		t.Errorf("BusinessMinutes(t, t) = (%d, %v), want (0, true)", got, ok)
	}
}

func TestBusinessMinutes_SingleDay(t *testing.T) {
	cal := Default()
	cases := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"inside window", at(t, 2025, time.March, 3, 10, 0), at(t, 2025, time.March, 3, 11, 30), 90},
		{"start before window", at(t, 2025, time.March, 3, 6, 0), at(t, 2025, time.March, 3, 9, 0), 60},
		{"end after window", at(t, 2025, time.March, 3, 17, 0), at(t, 2025, time.March, 3, 21, 0), 60},
		{"wholly before window", at(t, 2025, time.March, 3, 5, 0), at(t, 2025, time.March, 3, 7, 0), 0},
		{"wholly after window", at(t, 2025, time.March, 3, 19, 0), at(t, 2025, time.March, 3, 20, 0), 0},
		{"whole saturday", at(t, 2025, time.March, 1, 9, 0), at(t, 2025, time.March, 1, 17, 0), 0},
		{"full working day", at(t, 2025, time.March, 3, 0, 0), at(t, 2025, time.March, 3, 23, 59), 600},
	}
	for _, tc := range cases {
		got, ok := cal.BusinessMinutes(tc.start, tc.end)
		if !ok {
			t.Errorf("%s: ok = false, want true", tc.name)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: BusinessMinutes = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestBusinessMinutes_AcrossNight(t *testing.T) {
	cal := Default()
	// Mon 17:00 -> Tue 09:00: one hour each side of the night.
	got, ok := cal.BusinessMinutes(at(t, 2025, time.March, 3, 17, 0), at(t, 2025, time.March, 4, 9, 0))
	if !ok || got != 120 {
		t.Errorf("BusinessMinutes = (%d, %v), want (120, true)", got, ok)
	}
}

func TestBusinessMinutes_AcrossWeekend(t *testing.T) {
	cal := Default()
	// Fri 2025-02-28 17:00 -> Mon 2025-03-03 09:00.
	got, ok := cal.BusinessMinutes(at(t, 2025, time.February, 28, 17, 0), at(t, 2025, time.March, 3, 9, 0))
	if !ok || got != 120 {
		t.Errorf("BusinessMinutes = (%d, %v), want (120, true)", got, ok)
	}
}

func TestBusinessMinutes_SkipsHoliday(t *testing.T) {
	cal := Default()
	// July 4, 2025 is a Friday. Thu 17:00 -> Mon 09:00 skips Fri + weekend.
	got, ok := cal.BusinessMinutes(at(t, 2025, time.July, 3, 17, 0), at(t, 2025, time.July, 7, 9, 0))
	if !ok || got != 120 {
		t.Errorf("BusinessMinutes = (%d, %v), want (120, true)", got, ok)
	}
}

func TestBusinessMinutes_MonotoneInEnd(t *testing.T) {
	cal := Default()
	start := at(t, 2025, time.July, 2, 15, 30)
	prev := 0
	for end, i := start, 0; i < 24*8; i++ {
		end = end.Add(time.Hour)
		got, ok := cal.BusinessMinutes(start, end)
		if !ok {
			t.Fatalf("ok = false at end=%s", end)
		}
		if got < prev {
			t.Fatalf("BusinessMinutes decreased: %d after %d at end=%s", got, prev, end)
		}
		prev = got
	}
}
