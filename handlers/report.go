package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"otconsole/config"
	"otconsole/export"
	"otconsole/models"
	"otconsole/overtime"
	"otconsole/report"
	"otconsole/response"
)

type ReportHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewReportHandler(db *gorm.DB, cfg *config.Config) *ReportHandler {
	return &ReportHandler{db: db, config: cfg}
}

// build reads startDate and endDate (inclusive, default: current month) and
// aggregates the entries in between.
func (h *ReportHandler) build(r *http.Request) (report.Monthly, error) {
	from, to := currentMonth(time.Now(), h.config.Location)

	q := r.URL.Query()
	var err error
	if s := q.Get("startDate"); s != "" {
		if from, err = parseDay(s); err != nil {
			return report.Monthly{}, badRequestError("startDate must be YYYY-MM-DD")
		}
	}
	if s := q.Get("endDate"); s != "" {
		if to, err = parseDay(s); err != nil {
			return report.Monthly{}, badRequestError("endDate must be YYYY-MM-DD")
		}
	}
	if to.Before(from) {
		return report.Monthly{}, badRequestError("endDate is before startDate")
	}

	filter := models.OvertimeFilter{
		EmployeeNo: q.Get("employee_no"),
		From:       from,
		To:         to,
		Ascending:  true,
	}
	var entries []models.OvertimeEntry
	if err := filter.Scope(h.db.WithContext(r.Context())).Find(&entries).Error; err != nil {
		return report.Monthly{}, err
	}
	return report.Build(from.Format(overtime.DayLayout), to.Format(overtime.DayLayout), entries), nil
}

func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	m, err := h.build(r)
	if err != nil {
		h.writeBuildError(w, err)
		return
	}
	response.Success(w, m)
}

func (h *ReportHandler) writeBuildError(w http.ResponseWriter, err error) {
	var bad badRequestError
	if errors.As(err, &bad) {
		response.BadRequest(w, bad.Error(), nil)
		return
	}
	response.HandleError(w, err)
}

// Export downloads the report as xlsx (default) or csv.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	m, err := h.build(r)
	if err != nil {
		h.writeBuildError(w, err)
		return
	}

	var (
		buf         bytes.Buffer
		contentType string
		ext         string
	)
	switch format := r.URL.Query().Get("format"); format {
	case "", "xlsx":
		err = export.MonthlyXLSX(&buf, m)
		contentType, ext = export.ContentTypeXLSX, "xlsx"
	case "csv":
		err = export.MonthlyCSV(&buf, m)
		contentType, ext = "text/csv", "csv"
	default:
		response.BadRequest(w, "format must be xlsx or csv", nil)
		return
	}
	if err != nil {
		response.InternalServerError(w, "Failed to render report")
		return
	}

	filename := fmt.Sprintf("OT_Report_%s_to_%s.%s", m.From, m.To, ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	_, _ = w.Write(buf.Bytes())
}
