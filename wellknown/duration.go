// Package wellknown implements the protobuf well-known types whose JSON
// mapping replaces the default object shape.
package wellknown

import (
	"fmt"
	"strconv"
	"strings"
)

// Duration mirrors google.protobuf.Duration: a signed span of time, with
// Nanos always carrying the same sign as Seconds (or zero).
type Duration struct {
	Seconds int64
	Nanos   int32
}

const maxDurationSeconds = 315576000000

// MarshalJSON renders "<sec>[.<nanos>]s": the fractional segment is omitted
// entirely when Nanos is zero, and otherwise zero-padded to 9 digits, with a
// sign shared across both fields.
func (d Duration) MarshalJSON() ([]byte, error) {
	sec, nanos := d.Seconds, d.Nanos
	neg := sec < 0 || nanos < 0
	if sec < 0 {
		sec = -sec
	}
	if nanos < 0 {
		nanos = -nanos
	}
	sign := ""
	if neg {
		sign = "-"
	}
	var s string
	if nanos == 0 {
		s = fmt.Sprintf("%s%ds", sign, sec)
	} else {
		s = fmt.Sprintf("%s%d.%09ds", sign, sec, nanos)
	}
	return []byte(strconv.Quote(s)), nil
}

// UnmarshalJSON parses the string form, accepting from 0 up to 9
// fractional digits on input and re-signing nanos to match seconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	sec, nanos, err := ParseDuration(s)
	if err != nil {
		return err
	}
	d.Seconds, d.Nanos = sec, nanos
	return nil
}

// ParseDuration parses protobuf JSON duration syntax ("1.5s", "-2s", ...)
// into (seconds, nanos) with a shared sign.
func ParseDuration(s string) (int64, int32, error) {
	if !strings.HasSuffix(s, "s") {
		return 0, 0, fmt.Errorf("duration %q: missing 's' suffix", s)
	}
	core := strings.TrimSuffix(s, "s")
	neg := false
	switch {
	case strings.HasPrefix(core, "-"):
		neg = true
		core = core[1:]
	case strings.HasPrefix(core, "+"):
		core = core[1:]
	}

	secPart, fracPart, hasFrac := strings.Cut(core, ".")
	if secPart == "" {
		secPart = "0"
	}
	sec, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("duration %q: %w", s, err)
	}
	var nanos int64
	if hasFrac {
		if len(fracPart) > 9 {
			return 0, 0, fmt.Errorf("duration %q: too many fractional digits", s)
		}
		for len(fracPart) < 9 {
			fracPart += "0"
		}
		nanos, err = strconv.ParseInt(fracPart, 10, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("duration %q: %w", s, err)
		}
	}
	if sec > maxDurationSeconds {
		return 0, 0, fmt.Errorf("duration %q: out of range", s)
	}
	if neg {
		sec, nanos = -sec, -nanos
	}
	return sec, int32(nanos), nil
}
