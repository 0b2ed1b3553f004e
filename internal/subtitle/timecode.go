package subtitle

import (
	"fmt"
	"strconv"
	"strings"
)

// Timecode is a point in time with centisecond precision, the resolution
// subtitle formats actually store. The canonical text form is H:MM:SS.CS.
type Timecode struct {
	cs int // centiseconds since zero, never negative
}

// NewTimecode creates a timecode from milliseconds, clamping at zero and
// rounding to centisecond precision.
func NewTimecode(ms int) Timecode {
	if ms < 0 {
		ms = 0
	}
	return Timecode{cs: (ms + 5) / 10}
}

// ParseTimecode parses the canonical H:MM:SS.CS form. Minutes and seconds
// must be two digits; hours may be any width.
func ParseTimecode(s string) (Timecode, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Timecode{}, fmt.Errorf("invalid timecode %q: want H:MM:SS.CS", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return Timecode{}, fmt.Errorf("invalid timecode %q: bad hours", s)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 || len(parts[1]) != 2 {
		return Timecode{}, fmt.Errorf("invalid timecode %q: bad minutes", s)
	}

	secParts := strings.SplitN(parts[2], ".", 2)
	seconds, err := strconv.Atoi(secParts[0])
	if err != nil || seconds < 0 || seconds > 59 || len(secParts[0]) != 2 {
		return Timecode{}, fmt.Errorf("invalid timecode %q: bad seconds", s)
	}

	centis := 0
	if len(secParts) == 2 {
		centis, err = strconv.Atoi(secParts[1])
		if err != nil || centis < 0 || centis > 99 || len(secParts[1]) != 2 {
			return Timecode{}, fmt.Errorf("invalid timecode %q: bad centiseconds", s)
		}
	}

	return Timecode{cs: ((hours*60+minutes)*60+seconds)*100 + centis}, nil
}

// Milliseconds returns the timecode as milliseconds since zero.
func (t Timecode) Milliseconds() int {
	return t.cs * 10
}

// Centiseconds returns the raw centisecond count.
func (t Timecode) Centiseconds() int {
	return t.cs
}

// Before reports whether t is strictly earlier than other.
func (t Timecode) Before(other Timecode) bool {
	return t.cs < other.cs
}

// String formats the timecode as H:MM:SS.CS.
func (t Timecode) String() string {
	cs := t.cs
	hours := cs / 360000
	cs %= 360000
	minutes := cs / 6000
	cs %= 6000
	seconds := cs / 100
	cs %= 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, cs)
}
