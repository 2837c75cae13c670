package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the length of the wraparound clock used by every schedule.
const MinutesPerDay = 24 * 60

// Parse an "HH:MM" clock string into minutes since midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("parse clock %q: %w", s, ErrMalformedTime)
	}

	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: hours: %w", s, ErrMalformedTime)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: minutes: %w", s, ErrMalformedTime)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("parse clock %q: out of range: %w", s, ErrMalformedTime)
	}

	return hours*60 + minutes, nil
}

// Format minutes since midnight as zero-padded "HH:MM".
func FormatClock(minutes int) string {
	m := ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ValidClock reports whether minutes lies in [0, MinutesPerDay).
func ValidClock(minutes int) bool {
	return minutes >= 0 && minutes < MinutesPerDay
}

// TimeDelta returns the minutes elapsed from t1 to t2, crossing midnight at most once.
func TimeDelta(t1, t2 int) int {
	if t2 >= t1 {
		return t2 - t1
	}
	return (MinutesPerDay - t1) + t2
}

// ParseTimeOfDay accepts either "HH:MM" or a bare minute count in [0, 1440).
func ParseTimeOfDay(s string) (int, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ":") {
		return ParseClock(s)
	}

	m, err := strconv.Atoi(s)
	if err != nil || !ValidClock(m) {
		return 0, fmt.Errorf("parse time of day %q: %w", s, ErrMalformedTime)
	}
	return m, nil
}
