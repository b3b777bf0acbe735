package models

import (
	"time"

	"gorm.io/gorm"

	"otconsole/overtime"
)

type OvertimeEntry struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	ClientRef      *string        `gorm:"uniqueIndex;size:64" json:"client_ref,omitempty"`
	EmployeeNo     string         `gorm:"not null;index;size:32" json:"employee_no"`
	EmployeeName   string         `gorm:"size:200" json:"employee_name"`
	Date           time.Time      `gorm:"not null;type:date;index" json:"date"`
	Shift          string         `gorm:"not null;size:1" json:"shift"`
	InTime         time.Time      `gorm:"not null" json:"inTime"`
	OutTime        time.Time      `gorm:"not null" json:"outTime"`
	IsNightShift   bool           `gorm:"default:false" json:"isNightShift"`
	OTNormalHours  float64        `gorm:"not null;default:0" json:"ot_normal_hours"`
	OTDoubleHours  float64        `gorm:"not null;default:0" json:"ot_double_hours"`
	OTTripleHours  float64        `gorm:"not null;default:0" json:"ot_triple_hours"`
	ConfirmedHours float64        `gorm:"not null;default:0" json:"confirmed_hours"`
	ApprovalStage  Stage          `gorm:"not null;size:32;default:pending;index" json:"approval_stage"`
	Reason         string         `gorm:"size:500" json:"reason"`
	CreatedBy      uint           `json:"created_by"`
}

// ApplyClassification replaces every derived field of e with the outcome of
// classifying span. Dates are stored in UTC with the calendar day kept.
func (e *OvertimeEntry) ApplyClassification(span overtime.Span, shift overtime.Shift, res overtime.Result) {
	e.Date = time.Date(span.Day.Year(), span.Day.Month(), span.Day.Day(), 0, 0, 0, 0, time.UTC)
	e.Shift = shift.String()
	e.InTime = span.In.UTC()
	e.OutTime = span.Out.UTC()
	e.IsNightShift = res.NightShift
	e.OTNormalHours = res.Normal.InexactFloat64()
	e.OTDoubleHours = res.Double.InexactFloat64()
	e.OTTripleHours = res.Triple.InexactFloat64()
}

// Day returns the entry's calendar date in wire format.
func (e *OvertimeEntry) Day() string {
	return e.Date.UTC().Format(overtime.DayLayout)
}

func (e *OvertimeEntry) IsConfirmed() bool {
	return e.ConfirmedHours != 0
}

type OvertimeFilter struct {
	EmployeeNo string
	From       time.Time
	To         time.Time
	Stage      Stage
	Ascending  bool
}

// Scope narrows a query on overtime_entries to the filter. From and To are
// inclusive calendar days.
func (f OvertimeFilter) Scope(db *gorm.DB) *gorm.DB {
	if f.EmployeeNo != "" {
		db = db.Where("employee_no = ?", f.EmployeeNo)
	}
	if !f.From.IsZero() {
		db = db.Where("date >= ?", f.From)
	}
	if !f.To.IsZero() {
		db = db.Where("date < ?", f.To.AddDate(0, 0, 1))
	}
	if f.Stage != "" {
		db = db.Where("approval_stage = ?", f.Stage)
	}
	if f.Ascending {
		return db.Order("date asc").Order("id asc")
	}
	return db.Order("date desc").Order("id desc")
}
