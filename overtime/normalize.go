package overtime

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrMissing   = errors.New("value missing")
	ErrBadFormat = errors.New("unrecognised date/time")
)

var clockLayouts = []string{"15:04", "15:04:05"}

var dateTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// Span is a worked interval after normalization: Out is strictly after In
// whenever the span came out of Normalize with sane input.
type Span struct {
	Day time.Time
	In  time.Time
	Out time.Time
}

// ParseDay parses a calendar date to midnight in loc. A trailing time
// component is ignored.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissing
	}
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	day, err := time.ParseInLocation(DayLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadFormat, s)
	}
	return day, nil
}

// ParseClock turns a clock value into a point in time. A bare time of day is
// placed on day; a full date-time is taken as given and moved into loc.
func ParseClock(day time.Time, s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissing
	}
	if strings.Contains(s, "T") {
		for _, layout := range dateTimeLayouts {
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				return t.In(loc), nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadFormat, s)
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadFormat, s)
}

// Normalize pairs clock-in and clock-out for day. A clock-out that is not
// after clock-in belongs to the next calendar day.
func Normalize(day, in, out time.Time) Span {
	if !out.After(in) {
		out = out.AddDate(0, 0, 1)
	}
	return Span{Day: day, In: in, Out: out}
}

func (s Span) Duration() time.Duration {
	return s.Out.Sub(s.In)
}

// NightShift reports whether the span ends after 21:15 on its day.
func (s Span) NightShift() bool {
	return s.Out.After(at(s.Day, 21, 15))
}

func (s Span) valid() bool {
	return !s.Day.IsZero() && !s.In.IsZero() && s.Out.After(s.In)
}
