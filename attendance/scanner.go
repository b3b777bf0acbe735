// Package attendance reads fingerprint scanner logs.
package attendance

import (
	"bufio"
	"io"
	"sort"
	"strings"
	"time"
)

// Punch is one scanner record.
type Punch struct {
	EmployeeNo string `json:"employee_no"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"01/02/2006",
	"1/2/2006",
}

// Parse reads one punch per line, taking the first three whitespace
// separated fields. Lines with fewer fields are skipped.
func Parse(r io.Reader) ([]Punch, error) {
	var punches []Punch
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			continue
		}
		punches = append(punches, Punch{EmployeeNo: fields[0], Date: fields[1], Time: fields[2]})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return punches, nil
}

// Sort orders punches by employee number, then by date. Punches whose date
// cannot be read go after the readable ones of the same employee. Ties keep
// their input order.
func Sort(punches []Punch) {
	keys := make(map[string]time.Time, len(punches))
	for _, p := range punches {
		if _, ok := keys[p.Date]; !ok {
			keys[p.Date] = parseDate(p.Date)
		}
	}

	sort.SliceStable(punches, func(i, j int) bool {
		a, b := punches[i], punches[j]
		if a.EmployeeNo != b.EmployeeNo {
			return a.EmployeeNo < b.EmployeeNo
		}
		da, db := keys[a.Date], keys[b.Date]
		switch {
		case da.IsZero() || db.IsZero():
			return !da.IsZero() && db.IsZero()
		default:
			return da.Before(db)
		}
	})
}

func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Convert parses and sorts a scanner log.
func Convert(r io.Reader) ([]Punch, error) {
	punches, err := Parse(r)
	if err != nil {
		return nil, err
	}
	Sort(punches)
	return punches, nil
}
