// Package error contains the structured error payloads returned by the API.
package error

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type Error struct {
	Code    ErrorCode `json:"code"`
	Status  int       `json:"-"`
	Message string    `json:"message"`
	ErrorID string    `json:"error_id,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// EncodeError writes a structured error payload with the status mapped
// from the error code.
func EncodeError(w http.ResponseWriter, code ErrorCode, message, errorID string) error {
	status := code.StatusCode()
	if status == 0 {
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(&Error{
		Code:    code,
		Status:  status,
		Message: message,
		ErrorID: errorID,
	})
}

// EncodeInternalError writes a generic internal server error payload.
func EncodeInternalError(w http.ResponseWriter, errorID string) error {
	return EncodeError(w, InternalServerError, "internal server error", errorID)
}
