package wellknown

import (
	"fmt"
	"strconv"
	"time"
)

// Timestamp mirrors google.protobuf.Timestamp: a point in time as a count
// of seconds and nanoseconds since the Unix epoch, UTC.
type Timestamp struct {
	Seconds int64
	Nanos   int32
}

const (
	minTimestampSeconds = -62135596800
	maxTimestampSeconds = 253402300799
)

// MarshalJSON renders an RFC 3339 UTC string. The fractional segment is
// omitted when Nanos is zero and otherwise zero-padded to 9 digits.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	ts := time.Unix(t.Seconds, int64(t.Nanos)).UTC()
	layout := "2006-01-02T15:04:05Z"
	if t.Nanos != 0 {
		layout = "2006-01-02T15:04:05.000000000Z"
	}
	s := ts.Format(layout)
	return []byte(strconv.Quote(s)), nil
}

// UnmarshalJSON parses an RFC 3339 string into Seconds/Nanos.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	sec, nanos, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Seconds, t.Nanos = sec, nanos
	return nil
}

// ParseTimestamp parses an RFC 3339 timestamp string into (seconds, nanos),
// validating both against protobuf's documented range.
func ParseTimestamp(s string) (int64, int32, error) {
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, 0, fmt.Errorf("timestamp %q: %w", s, err)
	}
	sec := parsed.Unix()
	nanos := int32(parsed.Nanosecond())
	if sec < minTimestampSeconds || sec > maxTimestampSeconds {
		return 0, 0, fmt.Errorf("timestamp %q: seconds out of range", s)
	}
	return sec, nanos, nil
}
