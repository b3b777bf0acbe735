package handlers

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"otconsole/database"
	"otconsole/response"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Status reports whether the database is reachable.
func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	if err := database.Ping(h.db); err != nil {
		response.ServiceUnavailable(w, "Database disconnected")
		return
	}
	response.Success(w, map[string]string{"db": "connected"})
}
