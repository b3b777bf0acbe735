package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"otconsole/overtime"
)

const maxBodyBytes = 1 << 20

var errEmptyBody = errors.New("request body is empty")

// badRequestError marks input problems that map to 400.
type badRequestError string

func (e badRequestError) Error() string { return string(e) }

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func idParam(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}

// parseDay reads a YYYY-MM-DD query value as UTC midnight, matching how
// entry dates are stored. Anything after a 'T' is ignored.
func parseDay(s string) (time.Time, error) {
	s, _, _ = strings.Cut(strings.TrimSpace(s), "T")
	return time.Parse(overtime.DayLayout, s)
}

// monthRange returns the first and last day of the month containing s,
// which may be YYYY-MM or YYYY-MM-DD.
func monthRange(s string) (time.Time, time.Time, error) {
	s = strings.TrimSpace(s)
	first, err := time.Parse("2006-01", s)
	if err != nil {
		d, dErr := parseDay(s)
		if dErr != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q", s)
		}
		first = time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return first, first.AddDate(0, 1, -1), nil
}

// currentMonth returns the bounds of the month containing now in loc.
func currentMonth(now time.Time, loc *time.Location) (time.Time, time.Time) {
	now = now.In(loc)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}
