package dateinput

import (
	"fmt"
	"strings"
	"time"
)

const isoLayout = "2006-01-02"

// Resolver turns user-typed date text into a calendar day.
type Resolver interface {
	Resolve(input string, now time.Time) (time.Time, error)
}

// ResolveError reports unparseable input together with the forms we accept.
type ResolveError struct {
	Input string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("cannot read date %q: use YYYY-MM-DD (e.g. %s), today, or tomorrow",
		e.Input, time.Now().UTC().Format(isoLayout))
}

type resolver struct{}

// NewResolver accepts ISO dates plus the relative keywords today and
// tomorrow. The result is always midnight UTC of the named day.
func NewResolver() Resolver {
	return resolver{}
}

func (resolver) Resolve(input string, now time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(input)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch strings.ToLower(trimmed) {
	case "", "today":
		return day, nil
	case "tomorrow":
		return day.AddDate(0, 0, 1), nil
	}

	if parsed, err := time.Parse(isoLayout, trimmed); err == nil {
		return parsed, nil
	}
	// A full timestamp names a day too; the time of day is dropped.
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		utc := parsed.UTC()
		return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, &ResolveError{Input: input}
}
