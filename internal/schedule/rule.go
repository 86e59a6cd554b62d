// Package schedule implements the cron-like recurrence rule used by backup
// jobs. A rule holds the set of allowed values for each of the five classic
// fields and matches timestamps at minute resolution.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Rule is a parsed recurrence expression. A zero Rule matches nothing; use
// Parse to build one.
type Rule struct {
	expr       string
	minute     map[int]bool
	hour       map[int]bool
	dayOfMonth map[int]bool
	month      map[int]bool
	dayOfWeek  map[int]bool
}

type field struct {
	name string
	min  int
	max  int
}

var fields = [5]field{
	{"minute", 0, 59},
	{"hour", 0, 23},
	{"day-of-month", 1, 31},
	{"month", 1, 12},
	{"day-of-week", 0, 6},
}

// Parse parses a 5-field cron-like expression: minute, hour, day-of-month,
// month, day-of-week. Fields accept "*", single values, comma lists, ranges
// ("2-5") and steps ("*/15"). Sunday is 0.
func Parse(expr string) (*Rule, error) {
	parts := strings.Fields(expr)
	if len(parts) != 5 {
		return nil, fmt.Errorf("expected 5 fields, got %d in %q", len(parts), expr)
	}

	sets := make([]map[int]bool, 5)
	for i, f := range fields {
		set, err := parseField(parts[i], f.min, f.max)
		if err != nil {
			return nil, fmt.Errorf("%s field: %w", f.name, err)
		}
		sets[i] = set
	}

	return &Rule{
		expr:       expr,
		minute:     sets[0],
		hour:       sets[1],
		dayOfMonth: sets[2],
		month:      sets[3],
		dayOfWeek:  sets[4],
	}, nil
}

// MustParse is Parse for known-good expressions in tests and defaults.
func MustParse(expr string) *Rule {
	r, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return r
}

// String returns the original expression.
func (r *Rule) String() string { return r.expr }

// Matches reports whether t falls on an allowed minute. Resolution is one
// minute; seconds are ignored.
//
// When both day-of-month and day-of-week are restricted, BOTH must match for
// the rule to match. This is a deliberate departure from vixie cron, which
// fires when either matches: "the 1st, if it is a Sunday" is what a restricted
// backup window means here. Callers relying on the vixie OR behavior must
// split the rule in two.
func (r *Rule) Matches(t time.Time) bool {
	return r.minute[t.Minute()] &&
		r.hour[t.Hour()] &&
		r.dayOfMonth[t.Day()] &&
		r.month[int(t.Month())] &&
		r.dayOfWeek[int(t.Weekday())]
}

// Next returns the first matching minute strictly after t, or the zero time
// if no minute within roughly a year matches (possible with contradictory
// day-of-month/day-of-week restrictions).
func (r *Rule) Next(t time.Time) time.Time {
	t = t.Truncate(time.Minute)
	// 366 days of minutes
	for i := 1; i <= 366*24*60; i++ {
		next := t.Add(time.Duration(i) * time.Minute)
		if r.Matches(next) {
			return next
		}
	}
	return time.Time{}
}

func parseField(part string, min, max int) (map[int]bool, error) {
	values := make(map[int]bool)

	for _, token := range strings.Split(part, ",") {
		if err := parseToken(token, min, max, values); err != nil {
			return nil, err
		}
	}
	return values, nil
}

func parseToken(token string, min, max int, values map[int]bool) error {
	step := 1
	if idx := strings.Index(token, "/"); idx >= 0 {
		s, err := strconv.Atoi(token[idx+1:])
		if err != nil || s < 1 {
			return fmt.Errorf("invalid step: %q", token)
		}
		step = s
		token = token[:idx]
	}

	start, end := min, max
	switch {
	case token == "*":
		// full range
	case strings.Contains(token, "-"):
		bounds := strings.Split(token, "-")
		if len(bounds) != 2 {
			return fmt.Errorf("invalid range: %q", token)
		}
		lo, err1 := strconv.Atoi(bounds[0])
		hi, err2 := strconv.Atoi(bounds[1])
		if err1 != nil || err2 != nil || lo > hi || lo < min || hi > max {
			return fmt.Errorf("invalid range: %q", token)
		}
		start, end = lo, hi
	default:
		n, err := strconv.Atoi(token)
		if err != nil || n < min || n > max {
			return fmt.Errorf("invalid value: %q", token)
		}
		start, end = n, n
	}

	for i := start; i <= end; i += step {
		values[i] = true
	}
	return nil
}
