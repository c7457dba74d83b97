package typewriter

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Speed is a per-operation delay. Natural asks for a fresh random delay on
// every check instead of a fixed value.
type Speed time.Duration

// Natural is the randomized speed sentinel.
const Natural Speed = -1

// Natural delay ranges, in milliseconds.
const (
	naturalDelayMin  = 120
	naturalDelayMax  = 160
	naturalDeleteMin = 40
	naturalDeleteMax = 80
)

// Millis returns a fixed speed of ms milliseconds.
func Millis(ms int) Speed {
	return Speed(time.Duration(ms) * time.Millisecond)
}

// IsNatural reports whether s is the Natural sentinel.
func (s Speed) IsNatural() bool {
	return s == Natural
}

// Duration returns the fixed delay. It is meaningless for Natural.
func (s Speed) Duration() time.Duration {
	return time.Duration(s)
}

func (s Speed) String() string {
	if s.IsNatural() {
		return "natural"
	}
	return time.Duration(s).String()
}

// MarshalText implements encoding.TextMarshaler.
func (s Speed) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts "natural", a Go duration ("75ms") or a bare number
// of milliseconds ("75").
func (s *Speed) UnmarshalText(text []byte) error {
	v, err := ParseSpeed(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSpeed parses the textual forms accepted by UnmarshalText.
func ParseSpeed(raw string) (Speed, error) {
	str := strings.TrimSpace(raw)
	if strings.EqualFold(str, "natural") {
		return Natural, nil
	}
	if ms, err := strconv.Atoi(str); err == nil {
		if ms < 0 {
			return 0, fmt.Errorf("speed %q: must be >= 0", raw)
		}
		return Millis(ms), nil
	}
	d, err := time.ParseDuration(str)
	if err != nil {
		return 0, fmt.Errorf("speed %q: want \"natural\", milliseconds or a duration", raw)
	}
	if d < 0 {
		return 0, fmt.Errorf("speed %q: must be >= 0", raw)
	}
	return Speed(d), nil
}
