package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// ParseClock converts an "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("clock value %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("clock value %q: bad hour", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q: bad minute", s)
	}
	return h*60 + m, nil
}

// ContainsDay reports whether the rule applies on the given weekday.
func (r SpecialRateRule) ContainsDay(day time.Weekday) bool {
	for _, part := range strings.Split(r.Days, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if time.Weekday(n) == day {
			return true
		}
	}
	return false
}

// ContainsClock reports whether minute-of-day m lies in [start, end), with
// an end at or before the start meaning the window wraps across midnight.
// An equal start and end covers the full day.
func (r SpecialRateRule) ContainsClock(m int) bool {
	start, err := ParseClock(r.StartTime)
	if err != nil {
		return false
	}
	end, err := ParseClock(r.EndTime)
	if err != nil {
		return false
	}

	if start == end {
		return true
	}
	if start < end {
		return m >= start && m < end
	}
	return m >= start || m < end
}

// WindowWidth is the window length in minutes, used as the tie-break metric:
// a narrower window is considered more specific.
func (r SpecialRateRule) WindowWidth() int {
	start, err := ParseClock(r.StartTime)
	if err != nil {
		return minutesPerDay
	}
	end, err := ParseClock(r.EndTime)
	if err != nil {
		return minutesPerDay
	}

	if start == end {
		return minutesPerDay
	}
	if start < end {
		return end - start
	}
	return minutesPerDay - (start - end)
}

// MatchesAt reports whether the rule covers instant t.
func (r SpecialRateRule) MatchesAt(t time.Time) bool {
	if !r.Active {
		return false
	}
	return r.ContainsDay(t.Weekday()) && r.ContainsClock(t.Hour()*60+t.Minute())
}

// SelectBest picks the applicable rule among candidates: narrowest window
// first, then lowest ID so the choice stays deterministic.
func SelectBest(rules []SpecialRateRule) *SpecialRateRule {
	var best *SpecialRateRule
	for i := range rules {
		r := &rules[i]
		if best == nil {
			best = r
			continue
		}
		rw, bw := r.WindowWidth(), best.WindowWidth()
		if rw < bw || (rw == bw && r.ID < best.ID) {
			best = r
		}
	}
	return best
}

// FormatDays renders a weekday list back to the stored representation.
func FormatDays(days []int) string {
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(d))
	}
	return strings.Join(parts, ",")
}

// ValidDays checks every entry is a real weekday and the set is non-empty.
func ValidDays(days []int) bool {
	if len(days) == 0 {
		return false
	}
	for _, d := range days {
		if d < 0 || d > 6 {
			return false
		}
	}
	return true
}
