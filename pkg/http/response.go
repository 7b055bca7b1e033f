package http

import (
	"encoding/json"
	"net/http"

	apperrors "phonefmt/pkg/errors"
)

type SuccessResponse struct {
	Data any `json:"data,omitempty"`
}

type BatchResponse struct {
	Data   any `json:"data"`
	Count  int `json:"count"`
	Failed int `json:"failed"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes err as an ErrorResponse. Errors that are not an AppError
// become a generic 500 so internal details never reach the client.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)
	return WriteJSON(w, appErr.StatusCode(), appErr.Response())
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}

func WriteBatch(w http.ResponseWriter, data any, count int, failed int) error {
	return WriteJSON(w, http.StatusOK, BatchResponse{
		Data:   data,
		Count:  count,
		Failed: failed,
	})
}
