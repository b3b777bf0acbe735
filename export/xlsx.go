package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"otconsole/attendance"
	"otconsole/report"
)

const (
	ReportSheet     = "Monthly OT Report"
	AttendanceSheet = "Attendance"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// sheetWriter appends rows to one worksheet and tracks column widths.
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	row    int
	widths []int
}

func newSheetWriter(f *excelize.File, sheet string) *sheetWriter {
	return &sheetWriter{f: f, sheet: sheet, row: 1}
}

func (s *sheetWriter) append(values ...interface{}) error {
	if len(values) > 0 {
		cell, err := excelize.CoordinatesToCellName(1, s.row)
		if err != nil {
			return err
		}
		if err := s.f.SetSheetRow(s.sheet, cell, &values); err != nil {
			return err
		}
		for i, v := range values {
			n := len(fmt.Sprint(v))
			if i >= len(s.widths) {
				s.widths = append(s.widths, 0)
			}
			if n > s.widths[i] {
				s.widths[i] = n
			}
		}
	}
	s.row++
	return nil
}

func (s *sheetWriter) fitColumns() error {
	for i, w := range s.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := s.f.SetColWidth(s.sheet, col, col, float64(w+5)); err != nil {
			return err
		}
	}
	return nil
}

func newWorkbook(sheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// MonthlyXLSX writes the report summary followed by one block per employee
// and month.
func MonthlyXLSX(w io.Writer, m report.Monthly) error {
	f, err := newWorkbook(ReportSheet)
	if err != nil {
		return err
	}
	defer f.Close()

	s := newSheetWriter(f, ReportSheet)
	sum := m.Summary
	rows := [][]interface{}{
		{fmt.Sprintf("Overtime Report from %s to %s", m.From, m.To)},
		{},
		{"Summary"},
		{"Total OT Normal Hours", sum.Normal.Round(2).InexactFloat64()},
		{"Total OT Double Hours", sum.Double.Round(2).InexactFloat64()},
		{"Total OT Triple Hours", sum.Triple.Round(2).InexactFloat64()},
		{"Total Confirmed Hours", sum.Confirmed.Round(2).InexactFloat64()},
		{"Total Night Shifts", sum.NightShifts},
		{},
		{},
	}
	for _, r := range rows {
		if err := s.append(r...); err != nil {
			return err
		}
	}

	for _, g := range m.Groups {
		if err := s.append(
			fmt.Sprintf("Employee No: %s", g.EmployeeNo),
			fmt.Sprintf("Name: %s", g.EmployeeName),
			fmt.Sprintf("Month: %d-%02d", g.Year, int(g.Month)),
		); err != nil {
			return err
		}
		if err := s.append("Date", "OT Normal", "OT Double", "OT Triple", "Night Shift", "Reason"); err != nil {
			return err
		}
		for _, e := range g.Entries {
			if err := s.append(e.Day(), e.OTNormalHours, e.OTDoubleHours, e.OTTripleHours, yesNo(e.IsNightShift), e.Reason); err != nil {
				return err
			}
		}
		if err := s.append(); err != nil {
			return err
		}
		if err := s.append(); err != nil {
			return err
		}
	}

	if err := s.fitColumns(); err != nil {
		return err
	}
	if err := f.SetPanes(ReportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      10,
		TopLeftCell: "A11",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	return f.Write(w)
}

// PunchesXLSX writes scanner punches under an Employee_No, Date, Time header.
func PunchesXLSX(w io.Writer, punches []attendance.Punch) error {
	f, err := newWorkbook(AttendanceSheet)
	if err != nil {
		return err
	}
	defer f.Close()

	s := newSheetWriter(f, AttendanceSheet)
	if err := s.append("Employee_No", "Date", "Time"); err != nil {
		return err
	}
	for _, p := range punches {
		if err := s.append(p.EmployeeNo, p.Date, p.Time); err != nil {
			return err
		}
	}
	if err := s.fitColumns(); err != nil {
		return err
	}
	return f.Write(w)
}
