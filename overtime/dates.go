package overtime

import (
	"sort"
	"strings"
	"time"
)

// DayLayout is the wire format of a calendar date.
const DayLayout = "2006-01-02"

// DateSet is a read-only lookup of calendar dates. The nil set is valid and
// contains nothing, which is how an unloaded triple-OT list behaves.
type DateSet map[string]struct{}

// NewDateSet builds a set from date strings. Values carrying a time component
// are reduced to their date part; anything unparsable is skipped.
func NewDateSet(dates ...string) DateSet {
	set := make(DateSet, len(dates))
	for _, d := range dates {
		if key, ok := dateKey(d); ok {
			set[key] = struct{}{}
		}
	}
	return set
}

// Contains reports whether the calendar day of t, in t's location, is in the set.
func (s DateSet) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	_, ok := s[t.Format(DayLayout)]
	return ok
}

// Len returns the number of dates in the set.
func (s DateSet) Len() int {
	return len(s)
}

// Dates returns the members in ascending order.
func (s DateSet) Dates() []string {
	out := make([]string, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

func dateKey(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	if _, err := time.Parse(DayLayout, s); err != nil {
		return "", false
	}
	return s, true
}
