package presenter

import (
	"encoding/json"
	"net/http"

	"github.com/Varun5711/authcore/internal/apperror"
	"github.com/Varun5711/authcore/internal/models"
)

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, models.ErrorResponse{
		Success: false,
		Error:   message,
	})
}

// AppError writes err using its kind's status. 5xx responses carry a generic
// message only.
func AppError(w http.ResponseWriter, err error) {
	Error(w, apperror.StatusOf(err), apperror.PublicMessage(err))
}
