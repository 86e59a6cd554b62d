package schedule

import (
	"testing"
	"time"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		min    int
		max    int
		valid  bool
		expect []int
	}{
		{"wildcard full range", "*", 0, 5, true, []int{0, 1, 2, 3, 4, 5}},
		{"single value", "3", 0, 5, true, []int{3}},
		{"range", "2-4", 0, 5, true, []int{2, 3, 4}},
		{"mixed list", "1,3-4", 0, 5, true, []int{1, 3, 4}},
		{"step over wildcard", "*/2", 0, 5, true, []int{0, 2, 4}},
		{"step over range", "1-5/2", 0, 5, true, []int{1, 3, 5}},
		{"invalid number", "a", 0, 5, false, nil},
		{"out of bounds", "7", 0, 5, false, nil},
		{"reversed range", "4-2", 0, 5, false, nil},
		{"zero step", "*/0", 0, 5, false, nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := parseField(test.input, test.min, test.max)
			if test.valid && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !test.valid {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				return
			}
			if len(result) != len(test.expect) {
				t.Fatalf("expected %v values, got %v", test.expect, result)
			}
			for _, v := range test.expect {
				if !result[v] {
					t.Errorf("expected %d in %v", v, result)
				}
			}
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, expr := range []string{
		"",
		"0 2 * *",
		"0 2 * * * *",
		"60 * * * *",
		"* 24 * * *",
		"* * 0 * *",
		"* * * 13 *",
		"* * * * 7",
		"every day at noon",
	} {
		if _, err := Parse(expr); err == nil {
			t.Errorf("Parse(%q): expected error", expr)
		}
	}
}

func TestMatches(t *testing.T) {
	// 2026-08-01 is a Saturday.
	sat := time.Date(2026, 8, 1, 2, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		expr  string
		t     time.Time
		match bool
	}{
		{"nightly hits", "0 2 * * *", sat, true},
		{"nightly misses minute", "0 2 * * *", sat.Add(time.Minute), false},
		{"nightly misses hour", "0 2 * * *", sat.Add(time.Hour), false},
		{"weekday set hits", "0 2 * * 6", sat, true},
		{"weekday set misses", "0 2 * * 0", sat, false},
		{"seconds ignored", "0 2 * * *", sat.Add(30 * time.Second), true},
		{"every minute", "* * * * *", sat.Add(17 * time.Minute), true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := MustParse(test.expr).Matches(test.t); got != test.match {
				t.Errorf("Matches(%v) for %q = %v, want %v", test.t, test.expr, got, test.match)
			}
		})
	}
}

// Both day fields restricted means both must hold, unlike vixie cron.
func TestMatchesDayOfMonthAndDayOfWeekAreANDed(t *testing.T) {
	rule := MustParse("0 2 1 * 0") // 1st of the month AND Sunday

	sundayTheFirst := time.Date(2026, 11, 1, 2, 0, 0, 0, time.UTC)
	saturdayTheFirst := time.Date(2026, 8, 1, 2, 0, 0, 0, time.UTC)
	sundayTheNinth := time.Date(2026, 8, 9, 2, 0, 0, 0, time.UTC)

	if !rule.Matches(sundayTheFirst) {
		t.Error("expected match when both day-of-month and day-of-week hold")
	}
	if rule.Matches(saturdayTheFirst) {
		t.Error("day-of-month alone must not match when day-of-week is restricted")
	}
	if rule.Matches(sundayTheNinth) {
		t.Error("day-of-week alone must not match when day-of-month is restricted")
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		name   string
		expr   string
		from   time.Time
		expect time.Time
	}{
		{
			name:   "next quarter hour in same hour",
			expr:   "*/15 14 * * *",
			from:   time.Date(2026, 6, 21, 14, 0, 0, 0, time.UTC),
			expect: time.Date(2026, 6, 21, 14, 15, 0, 0, time.UTC),
		},
		{
			name:   "new year midnight",
			expr:   "0 0 1 1 *",
			from:   time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC),
			expect: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "next monday morning",
			expr:   "0 9 * * 1",
			from:   time.Date(2026, 6, 19, 8, 59, 0, 0, time.UTC), // Friday
			expect: time.Date(2026, 6, 22, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := MustParse(test.expr).Next(test.from); !got.Equal(test.expect) {
				t.Errorf("Next(%v) for %q = %v, want %v", test.from, test.expr, got, test.expect)
			}
		})
	}
}
