package models

import (
	"bytes"
	"fmt"
	"time"
)

// Layouts accepted when decoding timestamps returned by the remote store.
// timestamptz columns come back in RFC 3339; plain timestamp columns omit the zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// Timestamp is a time.Time that is written as RFC 3339 UTC and read leniently
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t in UTC
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("timestamp must be a JSON string, got %s", data)
	}
	raw := string(data[1 : len(data)-1])
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", raw)
}
