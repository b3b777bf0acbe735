package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"gorm.io/gorm"

	"otconsole/middleware"
	"otconsole/models"
	"otconsole/response"
)

type approvalRequest struct {
	Stage string `json:"stage"`
}

type bulkApprovalRequest struct {
	IDs   []uint `json:"ids"`
	Stage string `json:"stage"`
}

// ApprovalResult is the outcome for one entry of a bulk approval.
type ApprovalResult struct {
	ID    uint         `json:"id"`
	OK    bool         `json:"ok"`
	Stage models.Stage `json:"stage,omitempty"`
	Error string       `json:"error,omitempty"`
}

// setStage moves one entry to stage on behalf of role and persists only the
// stage column.
func (h *OvertimeHandler) setStage(ctx context.Context, id uint, role models.Role, stage models.Stage) (*models.OvertimeEntry, error) {
	var entry models.OvertimeEntry
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, id).Error; err != nil {
			return err
		}
		previous := entry.ApprovalStage
		if err := entry.SetStage(role, stage); err != nil {
			return err
		}
		if previous == entry.ApprovalStage {
			return nil
		}
		return tx.Model(&entry).Update("approval_stage", entry.ApprovalStage).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (h *OvertimeHandler) SetApproval(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	id, err := idParam(r, "id")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	var req approvalRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}
	stage, err := models.ParseStage(req.Stage)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	entry, err := h.setStage(r.Context(), id, user.Role, stage)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Approval stage set", "entry_id", id, "stage", stage, "by", user.ID)
	h.notifications.Publish(context.WithoutCancel(r.Context()))
	response.SuccessWithMessage(w, "Approval stage updated", entry)
}

// BulkApproval applies one stage to many entries. Each entry succeeds or
// fails on its own; the response lists one result per requested id.
func (h *OvertimeHandler) BulkApproval(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req bulkApprovalRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}
	if len(req.IDs) == 0 {
		response.BadRequest(w, "ids must not be empty", nil)
		return
	}
	stage, err := models.ParseStage(req.Stage)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	results := make([]ApprovalResult, 0, len(req.IDs))
	failed := 0
	for _, id := range req.IDs {
		res := ApprovalResult{ID: id}
		entry, err := h.setStage(r.Context(), id, user.Role, stage)
		switch {
		case err == nil:
			res.OK = true
			res.Stage = entry.ApprovalStage
		case errors.Is(err, gorm.ErrRecordNotFound):
			res.Error = "entry not found"
		case errors.Is(err, models.ErrStageTransition):
			res.Error = err.Error()
		default:
			slog.Error("Bulk approval failed", "entry_id", id, "error", err)
			res.Error = "internal error"
		}
		if !res.OK {
			failed++
		}
		results = append(results, res)
	}

	slog.Info("Bulk approval", "stage", stage, "requested", len(req.IDs), "failed", failed, "by", user.ID)
	if failed < len(req.IDs) {
		h.notifications.Publish(context.WithoutCancel(r.Context()))
	}
	if failed > 0 {
		response.MultiStatus(w, results)
		return
	}
	response.Success(w, results)
}
