package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"otconsole/models"
	"otconsole/overtime"
	"otconsole/response"
)

type TripleOTHandler struct {
	db *gorm.DB
}

func NewTripleOTHandler(db *gorm.DB) *TripleOTHandler {
	return &TripleOTHandler{db: db}
}

func loadTripleOTDates(ctx context.Context, db *gorm.DB) (overtime.DateSet, error) {
	var rows []models.TripleOTDate
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return models.TripleOTDateSet(rows), nil
}

func (h *TripleOTHandler) List(w http.ResponseWriter, r *http.Request) {
	var dates []models.TripleOTDate
	if err := h.db.WithContext(r.Context()).Order("date asc").Find(&dates).Error; err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, dates)
}

type tripleOTRequest struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}

func (h *TripleOTHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req tripleOTRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	day, err := parseDay(req.Date)
	if err != nil {
		response.BadRequest(w, "Date must be YYYY-MM-DD", nil)
		return
	}

	row := models.TripleOTDate{
		Date:        day.Format(overtime.DayLayout),
		Description: strings.TrimSpace(req.Description),
	}
	if err := h.db.WithContext(r.Context()).Create(&row).Error; err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Triple OT date added", row)
}

func (h *TripleOTHandler) Delete(w http.ResponseWriter, r *http.Request) {
	day, err := parseDay(chi.URLParam(r, "date"))
	if err != nil {
		response.BadRequest(w, "Date must be YYYY-MM-DD", nil)
		return
	}

	result := h.db.WithContext(r.Context()).Delete(&models.TripleOTDate{}, "date = ?", day.Format(overtime.DayLayout))
	if result.Error != nil {
		response.HandleError(w, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		response.NotFound(w, "Triple OT date not found")
		return
	}
	response.SuccessWithMessage(w, "Triple OT date removed", nil)
}
