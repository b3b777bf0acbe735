package overtime

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Shift identifies the roster a worker is on. Each code has a fixed nominal
// end of shift; work past that boundary on an ordinary day is overtime.
type Shift string

const (
	ShiftA Shift = "A"
	ShiftB Shift = "B"
)

var ErrUnknownShift = errors.New("unknown shift code")

type clock struct {
	hour, minute int
}

var shiftEnds = map[Shift]clock{
	ShiftA: {15, 30},
	ShiftB: {17, 30},
}

// ParseShift maps a shift code to a Shift. An empty code is the blank-form
// default, shift A.
func ParseShift(s string) (Shift, error) {
	code := Shift(strings.ToUpper(strings.TrimSpace(s)))
	if code == "" {
		return ShiftA, nil
	}
	if _, ok := shiftEnds[code]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownShift, s)
	}
	return code, nil
}

// Valid reports whether s is a known shift code.
func (s Shift) Valid() bool {
	_, ok := shiftEnds[s]
	return ok
}

// End returns the nominal end of the shift on the calendar day of day, in
// day's location.
func (s Shift) End(day time.Time) time.Time {
	c := shiftEnds[s]
	return at(day, c.hour, c.minute)
}

func (s Shift) String() string {
	return string(s)
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}
