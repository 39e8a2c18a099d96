// internal/webutil/response.go
package webutil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"vocab_tutor/internal/model"
)

// HandleError maps err to an HTTP status and writes the {"error": "..."}
// body the front end expects.
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := MapErrorToStatusCode(err)

	var appErr *model.AppError
	var message string
	if errors.As(err, &appErr) {
		message = appErr.Message
	} else {
		switch {
		case errors.Is(err, model.ErrNotFound):
			message = "Resource not found"
		case errors.Is(err, model.ErrInvalidInput):
			message = "Invalid request"
		case errors.Is(err, model.ErrConflict):
			message = "Resource already exists"
		default:
			logger.Error("Unhandled error", slog.Any("error", err))
			message = "Internal server error"
		}
	}

	RespondWithJSON(w, statusCode, model.APIErrorBody{Error: message}, logger)
}

// MapErrorToStatusCode resolves application errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	var appErr *model.AppError
	if errors.As(err, &appErr) && appErr.Err != nil {
		err = appErr.Err
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithJSON writes payload as a JSON response.
func RespondWithJSON(w http.ResponseWriter, code int, payload any, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error marshaling JSON response", slog.Any("error", err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
