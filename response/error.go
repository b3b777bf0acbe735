package response

import (
	"errors"
	"log/slog"
	"net/http"

	"gorm.io/gorm"

	"otconsole/models"
)

// HandleError maps domain and persistence errors onto HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(w, "Record not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		Conflict(w, "Record already exists")
	case errors.Is(err, models.ErrInvalidStage):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, models.ErrStageTransition):
		Forbidden(w, err.Error())
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
