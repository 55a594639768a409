// Package bizcal implements the business-time calendar and the
// business-minute arithmetic used by the SLA duration chain.
//
// Rule: all clock math happens in one fixed region. Instants come in as
// absolute times, get converted to the calendar's location, and are
// measured against a single daily working window on working days only.
package bizcal

import (
	"sync"
	"time"
)

// Default working window, Mountain time. The brokerage operates one
// region; per-case timezones are out of scope.
const (
	DefaultRegion      = "America/Denver"
	DefaultWindowStart = 8  // 08:00 inclusive
	DefaultWindowEnd   = 18 // 18:00 exclusive
)

// Calendar classifies dates as working or non-working for one fixed
// location and holds the daily working window. Safe for concurrent use;
// the per-year holiday set is memoized behind a read-mostly lock.
type Calendar struct {
	loc         *time.Location
	windowStart int // hour of day, inclusive
	windowEnd   int // hour of day, exclusive

	mu       sync.RWMutex
	holidays map[int]map[civilDate]bool // year -> observed holiday dates
}

// civilDate is a location-independent calendar date used as a set key.
type civilDate struct {
	year  int
	month time.Month
	day   int
}

func dateOf(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{y, m, d}
}

// New returns a Calendar for the given location and working window.
// Hours are whole hours of the day; start must precede end.
func New(loc *time.Location, windowStart, windowEnd int) *Calendar {
	return &Calendar{
		loc:         loc,
		windowStart: windowStart,
		windowEnd:   windowEnd,
		holidays:    make(map[int]map[civilDate]bool),
	}
}

// Default returns the production calendar: America/Denver, 08:00-18:00.
func Default() *Calendar {
	loc, err := time.LoadLocation(DefaultRegion)
	if err != nil {
		// tzdata is compiled in on all supported platforms; a missing
		// region means a broken build, not a runtime condition.
		panic("bizcal: load location " + DefaultRegion + ": " + err.Error())
	}
	return New(loc, DefaultWindowStart, DefaultWindowEnd)
}

// Location returns the calendar's fixed location.
func (c *Calendar) Location() *time.Location { return c.loc }

// IsWorkingDay reports whether t's calendar date (in the calendar's
// location) is a working day: not a weekend, not an observed holiday.
func (c *Calendar) IsWorkingDay(t time.Time) bool {
	local := t.In(c.loc)
	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	d := dateOf(local)
	if c.holidaySet(local.Year())[d] {
		return false
	}
	// New Year's Day on a Saturday is observed Dec 31 of the prior
	// year, so a late-December date can appear in next year's set.
	return !c.holidaySet(local.Year() + 1)[d]
}

// Holidays returns the observed holiday dates for a year, ascending.
func (c *Calendar) Holidays(year int) []time.Time {
	set := c.holidaySet(year)
	out := make([]time.Time, 0, len(set))
	for d := range set {
		out = append(out, time.Date(d.year, d.month, d.day, 0, 0, 0, 0, c.loc))
	}
	sortTimes(out)
	return out
}

func sortTimes(ts []time.Time) {
	for i := 1; i < len(ts); i++ {
		for j := i; j > 0 && ts[j].Before(ts[j-1]); j-- {
			ts[j], ts[j-1] = ts[j-1], ts[j]
		}
	}
}

// holidaySet returns the memoized observed-holiday set for a year.
// A race to populate the same year computes identical values, so the
// write lock only guards the map itself.
func (c *Calendar) holidaySet(year int) map[civilDate]bool {
	c.mu.RLock()
	set, ok := c.holidays[year]
	c.mu.RUnlock()
	if ok {
		return set
	}

	set = computeHolidays(year)
	c.mu.Lock()
	if prior, ok := c.holidays[year]; ok {
		set = prior
	} else {
		c.holidays[year] = set
	}
	c.mu.Unlock()
	return set
}

// computeHolidays builds the observed US holiday set for one year.
func computeHolidays(year int) map[civilDate]bool {
	set := make(map[civilDate]bool, 11)

	fixed := func(m time.Month, d int) {
		set[observedFixed(year, m, d)] = true
	}
	pinned := func(d civilDate) {
		set[d] = true
	}

	fixed(time.January, 1)                                    // New Year's Day
	pinned(nthWeekday(year, time.January, time.Monday, 3))    // MLK Day
	pinned(nthWeekday(year, time.February, time.Monday, 3))   // Presidents' Day
	pinned(lastWeekday(year, time.May, time.Monday))          // Memorial Day
	fixed(time.June, 19)                                      // Juneteenth
	fixed(time.July, 4)                                       // Independence Day
	pinned(nthWeekday(year, time.September, time.Monday, 1))  // Labor Day
	pinned(nthWeekday(year, time.October, time.Monday, 2))    // Columbus Day
	fixed(time.November, 11)                                  // Veterans Day
	pinned(nthWeekday(year, time.November, time.Thursday, 4)) // Thanksgiving
	fixed(time.December, 25)                                  // Christmas Day

	return set
}

// observedFixed shifts a fixed-date holiday off the weekend:
// Saturday is observed the preceding Friday, Sunday the following Monday.
func observedFixed(year int, m time.Month, day int) civilDate {
	d := time.Date(year, m, day, 0, 0, 0, 0, time.UTC)
	switch d.Weekday() {
	case time.Saturday:
		d = d.AddDate(0, 0, -1)
	case time.Sunday:
		d = d.AddDate(0, 0, 1)
	}
	return dateOf(d)
}

// nthWeekday returns the n-th weekday of a month (n is 1-based):
// offset from the month's first day to the target weekday, plus n-1 weeks.
func nthWeekday(year int, m time.Month, wd time.Weekday, n int) civilDate {
	first := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(wd) - int(first.Weekday()) + 7) % 7
	return dateOf(first.AddDate(0, 0, offset+(n-1)*7))
}

// lastWeekday returns the last weekday of a month: step backward from
// the month's final day to the nearest matching weekday.
func lastWeekday(year int, m time.Month, wd time.Weekday) civilDate {
	last := time.Date(year, m+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	offset := (int(last.Weekday()) - int(wd) + 7) % 7
	return dateOf(last.AddDate(0, 0, -offset))
}
