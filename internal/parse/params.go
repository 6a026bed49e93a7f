package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the wall clock format used for reservation times.
const TimestampLayout = "2006-01-02 15:04"

var (
	wallClockRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[ T](\d{2}:\d{2})$`)
	topNRe      = regexp.MustCompile(`^\d+$`)
)

// Timestamp parses raw as "2006-01-02 15:04" (a "T" separator is accepted too)
// in loc, or as an RFC 3339 timestamp carrying its own offset.
func Timestamp(raw string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if m := wallClockRe.FindStringSubmatch(s); m != nil {
		t, err := time.ParseInLocation(TimestampLayout, m[1]+" "+m[2], loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", raw, err)
		}
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: expected %q or RFC 3339", raw, TimestampLayout)
	}
	return t, nil
}

// OptionalTimestamp is Timestamp for parameters that may be absent. An empty
// raw value yields nil.
func OptionalTimestamp(raw string, loc *time.Location) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := Timestamp(raw, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Descending parses a sort direction. An empty value means ascending.
func Descending(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "asc":
		return false, nil
	case "desc":
		return true, nil
	default:
		return false, fmt.Errorf("invalid sort direction %q: expected asc or desc", raw)
	}
}

// TopN parses a non-negative row count.
func TopN(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if !topNRe.MatchString(s) {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", raw, err)
	}
	return n, nil
}

// ID parses a positive entity id.
func ID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
