package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"otconsole/attendance"
	"otconsole/models"
	"otconsole/report"
)

func sampleReport() report.Monthly {
	entries := []models.OvertimeEntry{
		{
			ID: 1, EmployeeNo: "E100", EmployeeName: "Ani", Shift: "A",
			Date:          time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			OTNormalHours: 2.5, ConfirmedHours: 2.5,
			ApprovalStage: models.StageApproved, Reason: "line down",
		},
		{
			ID: 2, EmployeeNo: "E200", EmployeeName: "Budi", Shift: "B",
			Date:          time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			OTDoubleHours: 4, IsNightShift: true,
			ApprovalStage: models.StagePending,
		},
	}
	return report.Build("2025-06-01", "2025-06-30", entries)
}

func TestMonthlyCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MonthlyCSV(&buf, sampleReport()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, detailHeader, records[0])
	assert.Equal(t, []string{"E100", "Ani", "2025-06-02", "A", "2.50", "0.00", "0.00", "2.50", "No", "approved(production)", "line down"}, records[1])
	assert.Equal(t, []string{"E200", "Budi", "2025-06-01", "B", "0.00", "4.00", "0.00", "0.00", "Yes", "pending", ""}, records[2])
	assert.Equal(t, []string{"TOTAL", "2 entries", "", "", "2.50", "4.00", "0.00", "2.50", "1", "", ""}, records[3])
}

func TestMonthlyXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MonthlyXLSX(&buf, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ReportSheet}, f.GetSheetList())

	title, err := f.GetCellValue(ReportSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Overtime Report from 2025-06-01 to 2025-06-30", title)

	double, err := f.GetCellValue(ReportSheet, "B5")
	require.NoError(t, err)
	assert.Equal(t, "4", double)

	night, err := f.GetCellValue(ReportSheet, "B8")
	require.NoError(t, err)
	assert.Equal(t, "1", night)

	employee, err := f.GetCellValue(ReportSheet, "A11")
	require.NoError(t, err)
	assert.Equal(t, "Employee No: E100", employee)

	reason, err := f.GetCellValue(ReportSheet, "F13")
	require.NoError(t, err)
	assert.Equal(t, "line down", reason)
}

func TestPunchesXLSX(t *testing.T) {
	punches := []attendance.Punch{
		{EmployeeNo: "E1", Date: "2025-06-01", Time: "08:00"},
		{EmployeeNo: "E2", Date: "2025-06-01", Time: "07:55"},
	}

	var buf bytes.Buffer
	require.NoError(t, PunchesXLSX(&buf, punches))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(AttendanceSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Employee_No", "Date", "Time"},
		{"E1", "2025-06-01", "08:00"},
		{"E2", "2025-06-01", "07:55"},
	}, rows)
}
