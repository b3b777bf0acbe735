package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"otconsole/config"
	"otconsole/middleware"
	"otconsole/models"
	"otconsole/overtime"
	"otconsole/response"
)

type OvertimeHandler struct {
	db            *gorm.DB
	config        *config.Config
	notifications *NotificationHandler
}

func NewOvertimeHandler(db *gorm.DB, cfg *config.Config, notifications *NotificationHandler) *OvertimeHandler {
	return &OvertimeHandler{db: db, config: cfg, notifications: notifications}
}

type overtimeRequest struct {
	EmployeeNo     string   `json:"employee_no"`
	Date           string   `json:"date"`
	Shift          string   `json:"shift"`
	InTime         string   `json:"inTime"`
	OutTime        string   `json:"outTime"`
	Reason         string   `json:"reason"`
	ConfirmedHours *float64 `json:"confirmed_hours"`
	ClientRef      string   `json:"client_ref"`
}

func (req *overtimeRequest) draft() overtime.Draft {
	return overtime.Draft{
		Date:     req.Date,
		Shift:    req.Shift,
		ClockIn:  req.InTime,
		ClockOut: req.OutTime,
	}
}

func (req *overtimeRequest) missingFields() map[string]string {
	missing := map[string]string{}
	if strings.TrimSpace(req.EmployeeNo) == "" {
		missing["employee_no"] = "required"
	}
	if strings.TrimSpace(req.Date) == "" {
		missing["date"] = "required"
	}
	if strings.TrimSpace(req.InTime) == "" {
		missing["inTime"] = "required"
	}
	if strings.TrimSpace(req.OutTime) == "" {
		missing["outTime"] = "required"
	}
	return missing
}

type classificationResponse struct {
	Valid        bool    `json:"valid"`
	Error        string  `json:"error,omitempty"`
	Shift        string  `json:"shift,omitempty"`
	InTime       string  `json:"inTime,omitempty"`
	OutTime      string  `json:"outTime,omitempty"`
	IsNightShift bool    `json:"isNightShift"`
	Normal       float64 `json:"ot_normal_hours"`
	Double       float64 `json:"ot_double_hours"`
	Triple       float64 `json:"ot_triple_hours"`
	Total        float64 `json:"total_hours"`
	Bucket       string  `json:"bucket"`
}

func newClassificationResponse(res overtime.Result) classificationResponse {
	return classificationResponse{
		IsNightShift: res.NightShift,
		Normal:       res.Normal.InexactFloat64(),
		Double:       res.Double.InexactFloat64(),
		Triple:       res.Triple.InexactFloat64(),
		Total:        res.Total().InexactFloat64(),
		Bucket:       res.Bucket(),
	}
}

// classify runs the engine against the stored triple-OT dates.
func (h *OvertimeHandler) classify(ctx context.Context, d overtime.Draft) (overtime.Span, overtime.Shift, overtime.Result, error) {
	span, shift, err := overtime.Prepare(d, h.config.Location)
	if err != nil {
		return overtime.Span{}, "", overtime.Result{}, err
	}
	dates, err := loadTripleOTDates(ctx, h.db)
	if err != nil {
		return overtime.Span{}, "", overtime.Result{}, err
	}
	return span, shift, overtime.ClassifySpan(span, shift, dates), nil
}

func isDraftError(err error) bool {
	return errors.Is(err, overtime.ErrUnknownShift) ||
		errors.Is(err, overtime.ErrBadFormat) ||
		errors.Is(err, overtime.ErrMissing)
}

// Classify previews the classification of a draft without storing it.
// Drafts that cannot be read classify as zero.
func (h *OvertimeHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req overtimeRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	span, shift, res, err := h.classify(r.Context(), req.draft())
	switch {
	case err == nil:
	case isDraftError(err):
		out := newClassificationResponse(overtime.Classify(req.draft(), nil, h.config.Location))
		out.Error = err.Error()
		response.Success(w, out)
		return
	default:
		response.HandleError(w, err)
		return
	}

	out := newClassificationResponse(res)
	out.Valid = span.Out.After(span.In)
	out.Shift = shift.String()
	out.InTime = span.In.Format(time.RFC3339)
	out.OutTime = span.Out.Format(time.RFC3339)
	response.Success(w, out)
}

func (h *OvertimeHandler) lookupEmployee(ctx context.Context, employeeNo string) (*models.Employee, error) {
	var employee models.Employee
	if err := h.db.WithContext(ctx).Where("employee_no = ?", strings.TrimSpace(employeeNo)).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// fill validates req and writes every derived field of entry. It reports
// false after writing an error response.
func (h *OvertimeHandler) fill(w http.ResponseWriter, r *http.Request, req *overtimeRequest, entry *models.OvertimeEntry) bool {
	if missing := req.missingFields(); len(missing) > 0 {
		response.BadRequest(w, "Fill required fields.", missing)
		return false
	}

	employee, err := h.lookupEmployee(r.Context(), req.EmployeeNo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.BadRequest(w, "Unknown employee number", map[string]string{"employee_no": req.EmployeeNo})
		return false
	}
	if err != nil {
		response.HandleError(w, err)
		return false
	}

	span, shift, res, err := h.classify(r.Context(), req.draft())
	if isDraftError(err) {
		response.BadRequest(w, err.Error(), nil)
		return false
	}
	if err != nil {
		response.HandleError(w, err)
		return false
	}

	entry.EmployeeNo = employee.EmployeeNo
	entry.EmployeeName = employee.EmployeeName
	entry.Reason = strings.TrimSpace(req.Reason)
	entry.ApplyClassification(span, shift, res)
	return true
}

func (h *OvertimeHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req overtimeRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	var ref *string
	if req.ClientRef = strings.TrimSpace(req.ClientRef); req.ClientRef != "" {
		ref = &req.ClientRef
		var existing models.OvertimeEntry
		err := h.db.WithContext(r.Context()).Where("client_ref = ?", req.ClientRef).First(&existing).Error
		if err == nil {
			response.SuccessWithMessage(w, "Entry already recorded", existing)
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			response.HandleError(w, err)
			return
		}
	}

	entry := models.OvertimeEntry{
		ClientRef:     ref,
		ApprovalStage: models.StagePending,
		CreatedBy:     user.ID,
	}
	if !h.fill(w, r, &req, &entry) {
		return
	}

	if err := h.db.WithContext(r.Context()).Create(&entry).Error; err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Overtime entry created",
		"entry_id", entry.ID,
		"employee_no", entry.EmployeeNo,
		"date", entry.Day(),
		"bucket", entryBucket(&entry),
	)
	h.notifications.Publish(context.WithoutCancel(r.Context()))
	response.Created(w, "Overtime entry created", entry)
}

func entryBucket(e *models.OvertimeEntry) string {
	switch {
	case e.OTTripleHours > 0:
		return "triple"
	case e.OTDoubleHours > 0:
		return "double"
	case e.OTNormalHours > 0:
		return "normal"
	}
	return "none"
}

// listFilter builds the entry filter from query parameters.
func (h *OvertimeHandler) listFilter(r *http.Request) (models.OvertimeFilter, error) {
	q := r.URL.Query()
	f := models.OvertimeFilter{
		EmployeeNo: strings.TrimSpace(q.Get("employee_no")),
		Ascending:  q.Get("sort") == "asc",
	}

	if s := q.Get("stage"); s != "" {
		stage, err := models.ParseStage(s)
		if err != nil {
			return f, err
		}
		f.Stage = stage
	}

	var err error
	switch q.Get("period") {
	case "daily":
		if f.From, err = parseDay(q.Get("date")); err != nil {
			return f, errors.New("period=daily needs date=YYYY-MM-DD")
		}
		f.To = f.From
		return f, nil
	case "monthly":
		if f.From, f.To, err = monthRange(q.Get("date")); err != nil {
			return f, errors.New("period=monthly needs date=YYYY-MM")
		}
		return f, nil
	case "":
	default:
		return f, errors.New("period must be daily or monthly")
	}

	if s := q.Get("from"); s != "" {
		if f.From, err = parseDay(s); err != nil {
			return f, errors.New("from must be YYYY-MM-DD")
		}
	}
	if s := q.Get("to"); s != "" {
		if f.To, err = parseDay(s); err != nil {
			return f, errors.New("to must be YYYY-MM-DD")
		}
	}
	return f, nil
}

func (h *OvertimeHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := h.listFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	var entries []models.OvertimeEntry
	if err := f.Scope(h.db.WithContext(r.Context())).Find(&entries).Error; err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, entries)
}

func (h *OvertimeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	var entry models.OvertimeEntry
	if err := h.db.WithContext(r.Context()).First(&entry, id).Error; err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, entry)
}

// Update replaces the entry's inputs and recomputes every derived field.
func (h *OvertimeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	var req overtimeRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}
	if req.ConfirmedHours != nil && *req.ConfirmedHours < 0 {
		response.BadRequest(w, "confirmed_hours cannot be negative", nil)
		return
	}

	var entry models.OvertimeEntry
	if err := h.db.WithContext(r.Context()).First(&entry, id).Error; err != nil {
		response.HandleError(w, err)
		return
	}
	if !h.fill(w, r, &req, &entry) {
		return
	}
	if req.ConfirmedHours != nil {
		entry.ConfirmedHours = *req.ConfirmedHours
	}

	if err := h.db.WithContext(r.Context()).Save(&entry).Error; err != nil {
		response.HandleError(w, err)
		return
	}
	h.notifications.Publish(context.WithoutCancel(r.Context()))
	response.SuccessWithMessage(w, "Overtime entry updated", entry)
}

func (h *OvertimeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result := h.db.WithContext(r.Context()).Delete(&models.OvertimeEntry{}, id)
	if result.Error != nil {
		response.HandleError(w, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		response.NotFound(w, "Overtime entry not found")
		return
	}
	h.notifications.Publish(context.WithoutCancel(r.Context()))
	response.SuccessWithMessage(w, "Overtime entry deleted", nil)
}
