// Package export renders monthly reports and scanner punches as CSV and
// spreadsheet files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"otconsole/report"
)

var detailHeader = []string{
	"Employee No", "Employee Name", "Date", "Shift",
	"OT Normal", "OT Double", "OT Triple", "Confirmed",
	"Night Shift", "Approval Stage", "Reason",
}

func fixed(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func fixedDecimal(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// MonthlyCSV writes one row per entry followed by a totals row.
func MonthlyCSV(w io.Writer, m report.Monthly) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(detailHeader); err != nil {
		return err
	}
	for _, g := range m.Groups {
		for _, e := range g.Entries {
			row := []string{
				e.EmployeeNo,
				e.EmployeeName,
				e.Day(),
				e.Shift,
				fixed(e.OTNormalHours),
				fixed(e.OTDoubleHours),
				fixed(e.OTTripleHours),
				fixed(e.ConfirmedHours),
				yesNo(e.IsNightShift),
				string(e.ApprovalStage),
				e.Reason,
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	s := m.Summary
	total := []string{
		"TOTAL", fmt.Sprintf("%d entries", s.Entries), "", "",
		fixedDecimal(s.Normal), fixedDecimal(s.Double), fixedDecimal(s.Triple), fixedDecimal(s.Confirmed),
		strconv.Itoa(s.NightShifts), "", "",
	}
	if err := writer.Write(total); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}
