package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// EncodeCard stores an optional check-in card as JSON text. A nil card is NULL.
func EncodeCard[T any](card *T) (sql.NullString, error) {
	if card == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(card)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode card: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// DecodeCard is the inverse of EncodeCard.
func DecodeCard[T any](raw sql.NullString) (*T, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var card T
	if err := json.Unmarshal([]byte(raw.String), &card); err != nil {
		return nil, fmt.Errorf("failed to decode card: %w", err)
	}
	return &card, nil
}

// NullableString maps an optional day string to a column value.
func NullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// StringPtr is the inverse of NullableString.
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// timeLayout is fixed width so that text comparison orders timestamps.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime is the text encoding used for timestamps in SQLite.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// ParseTime parses a value written by FormatTime.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}
