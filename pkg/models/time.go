package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// serverTimeLayouts are the timestamp shapes the backend emits. Layouts
// without a zone marker are interpreted as UTC.
var serverTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// ParseServerTime parses a server timestamp. A value lacking an explicit
// zone marker is treated as UTC; explicit offsets are respected as-is.
func ParseServerTime(s string) (time.Time, error) {
	for _, layout := range serverTimeLayouts {
		// Layouts without a zone marker parse as UTC.
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable server timestamp %q", s)
}

// ServerTime is a time.Time whose JSON decoding accepts every timestamp
// shape the backend emits, including naive-looking UTC strings that the
// stdlib time.Time unmarshal rejects. All server timestamp fields use it.
type ServerTime struct {
	time.Time
}

// NewServerTime wraps a time.Time.
func NewServerTime(t time.Time) ServerTime {
	return ServerTime{Time: t}
}

// UnmarshalJSON implements json.Unmarshaler via ParseServerTime.
func (st *ServerTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		st.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("server timestamp: %w", err)
	}
	if s == "" {
		st.Time = time.Time{}
		return nil
	}
	t, err := ParseServerTime(s)
	if err != nil {
		return err
	}
	st.Time = t
	return nil
}

// MarshalJSON renders RFC 3339, which the server accepts everywhere.
func (st ServerTime) MarshalJSON() ([]byte, error) {
	if st.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(st.Time.UTC().Format(time.RFC3339Nano))
}
