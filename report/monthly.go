// Package report aggregates overtime entries per employee and month.
package report

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"otconsole/models"
)

type Totals struct {
	Normal      decimal.Decimal
	Double      decimal.Decimal
	Triple      decimal.Decimal
	Confirmed   decimal.Decimal
	NightShifts int
	Entries     int
}

func (t *Totals) add(e models.OvertimeEntry) {
	t.Normal = t.Normal.Add(decimal.NewFromFloat(e.OTNormalHours))
	t.Double = t.Double.Add(decimal.NewFromFloat(e.OTDoubleHours))
	t.Triple = t.Triple.Add(decimal.NewFromFloat(e.OTTripleHours))
	t.Confirmed = t.Confirmed.Add(decimal.NewFromFloat(e.ConfirmedHours))
	if e.IsNightShift {
		t.NightShifts++
	}
	t.Entries++
}

// Overtime is the sum of the three overtime buckets.
func (t Totals) Overtime() decimal.Decimal {
	return t.Normal.Add(t.Double).Add(t.Triple)
}

// Group holds one employee's entries for one calendar month.
type Group struct {
	EmployeeNo   string
	EmployeeName string
	Year         int
	Month        time.Month
	Totals
	Entries []models.OvertimeEntry
}

type Monthly struct {
	From    string
	To      string
	Groups  []Group
	Summary Totals
}

type groupKey struct {
	employeeNo string
	year       int
	month      time.Month
}

// Build groups entries by employee and month. Groups are ordered by employee
// number then month; entries keep their input order within a group.
func Build(from, to string, entries []models.OvertimeEntry) Monthly {
	index := make(map[groupKey]int)
	m := Monthly{From: from, To: to, Groups: []Group{}}

	for _, e := range entries {
		y, mon, _ := e.Date.UTC().Date()
		key := groupKey{employeeNo: e.EmployeeNo, year: y, month: mon}

		i, ok := index[key]
		if !ok {
			i = len(m.Groups)
			index[key] = i
			m.Groups = append(m.Groups, Group{
				EmployeeNo:   e.EmployeeNo,
				EmployeeName: e.EmployeeName,
				Year:         y,
				Month:        mon,
			})
		}

		g := &m.Groups[i]
		g.Totals.add(e)
		g.Entries = append(g.Entries, e)
		m.Summary.add(e)
	}

	sort.SliceStable(m.Groups, func(i, j int) bool {
		a, b := m.Groups[i], m.Groups[j]
		if a.EmployeeNo != b.EmployeeNo {
			return a.EmployeeNo < b.EmployeeNo
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})
	return m
}

func hours(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

type totalsJSON struct {
	Normal      float64 `json:"total_ot_normal_hours"`
	Double      float64 `json:"total_ot_double_hours"`
	Triple      float64 `json:"total_ot_triple_hours"`
	Confirmed   float64 `json:"total_confirmed_hours"`
	NightShifts int     `json:"night_shift_count"`
	Entries     int     `json:"entry_count"`
}

func (t Totals) view() totalsJSON {
	return totalsJSON{
		Normal:      hours(t.Normal),
		Double:      hours(t.Double),
		Triple:      hours(t.Triple),
		Confirmed:   hours(t.Confirmed),
		NightShifts: t.NightShifts,
		Entries:     t.Entries,
	}
}

func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.view())
}

func (g Group) MarshalJSON() ([]byte, error) {
	entries := g.Entries
	if entries == nil {
		entries = []models.OvertimeEntry{}
	}
	return json.Marshal(struct {
		EmployeeNo   string `json:"employee_no"`
		EmployeeName string `json:"employee_name"`
		Year         int    `json:"year"`
		Month        int    `json:"month"`
		totalsJSON
		Entries []models.OvertimeEntry `json:"entries"`
	}{
		EmployeeNo:   g.EmployeeNo,
		EmployeeName: g.EmployeeName,
		Year:         g.Year,
		Month:        int(g.Month),
		totalsJSON:   g.Totals.view(),
		Entries:      entries,
	})
}

func (m Monthly) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		From    string  `json:"startDate"`
		To      string  `json:"endDate"`
		Groups  []Group `json:"groups"`
		Summary Totals  `json:"summary"`
	}{m.From, m.To, m.Groups, m.Summary})
}
