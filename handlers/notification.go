package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"gorm.io/gorm"

	"otconsole/models"
	"otconsole/notify"
	"otconsole/response"
)

type NotificationHandler struct {
	db  *gorm.DB
	hub *notify.Hub
}

func NewNotificationHandler(db *gorm.DB, hub *notify.Hub) *NotificationHandler {
	return &NotificationHandler{db: db, hub: hub}
}

// summary loads only entries that can still raise a notification.
func (h *NotificationHandler) summary(ctx context.Context) (notify.Summary, error) {
	var entries []models.OvertimeEntry
	err := h.db.WithContext(ctx).
		Where("approval_stage <> ? OR confirmed_hours = 0", models.StageFinalApproved).
		Order("date desc").Order("id desc").
		Find(&entries).Error
	if err != nil {
		return notify.Summary{}, err
	}
	return notify.Summarize(entries), nil
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	s, err := h.summary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, s)
}

// Stream upgrades to a websocket that receives a fresh summary after every
// overtime change.
func (h *NotificationHandler) Stream(w http.ResponseWriter, r *http.Request) {
	s, err := h.summary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	initial, err := json.Marshal(s)
	if err != nil {
		response.InternalServerError(w, "Failed to encode notifications")
		return
	}
	if err := h.hub.Serve(w, r, initial); err != nil {
		slog.Warn("Websocket upgrade failed", "error", err)
	}
}

// Publish pushes the current summary to connected consoles.
func (h *NotificationHandler) Publish(ctx context.Context) {
	if h == nil || h.hub == nil || h.hub.Clients() == 0 {
		return
	}
	s, err := h.summary(ctx)
	if err != nil {
		slog.Error("Failed to build notification summary", "error", err)
		return
	}
	msg, err := json.Marshal(s)
	if err != nil {
		slog.Error("Failed to encode notification summary", "error", err)
		return
	}
	h.hub.Broadcast(msg)
}
