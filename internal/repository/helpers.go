package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// stringSliceToJSON marshals a string slice for a TEXT column; nil slices
// are stored as an empty JSON array so round-trips stay stable.
func stringSliceToJSON(vals []string) (string, error) {
	if vals == nil {
		vals = []string{}
	}
	raw, err := json.Marshal(vals)
	if err != nil {
		return "", fmt.Errorf("marshaling string list: %w", err)
	}
	return string(raw), nil
}

// jsonToStringSlice unmarshals a TEXT column into a string slice, treating
// NULL and empty as no values.
func jsonToStringSlice(s sql.NullString) ([]string, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var vals []string
	if err := json.Unmarshal([]byte(s.String), &vals); err != nil {
		return nil, fmt.Errorf("unmarshaling string list: %w", err)
	}
	if len(vals) == 0 {
		return nil, nil
	}
	return vals, nil
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
