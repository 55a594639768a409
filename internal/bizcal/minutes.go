package bizcal

import "time"

// BusinessMinutes returns the minutes of working time between start and
// end, counted only inside the daily window on working days. ok is
// false when end precedes start; callers must surface that as "pending",
// never as zero. Equal instants yield (0, true).
func (c *Calendar) BusinessMinutes(start, end time.Time) (minutes int, ok bool) {
	if end.Before(start) {
		return 0, false
	}

	start = start.In(c.loc)
	end = end.In(c.loc)

	total := 0
	for day := midnight(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		if !c.IsWorkingDay(day) {
			continue
		}
		y, m, d := day.Date()
		winStart := time.Date(y, m, d, c.windowStart, 0, 0, 0, c.loc)
		winEnd := time.Date(y, m, d, c.windowEnd, 0, 0, 0, c.loc)

		// Clip to the interval: the first day's window starts no
		// earlier than start, the last day's ends no later than end.
		// Both clips apply on a single-day interval.
		if winStart.Before(start) {
			winStart = start
		}
		if winEnd.After(end) {
			winEnd = end
		}
		if winEnd.After(winStart) {
			total += int(winEnd.Sub(winStart) / time.Minute)
		}
	}
	return total, true
}

// midnight truncates t to the start of its calendar day in t's location.
// time.Truncate would cut on absolute intervals and drift across DST.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
