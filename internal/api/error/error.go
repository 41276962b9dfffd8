// Package error contains the API's error payload and encoding helpers.
package error

import (
	"encoding/json"
	"net/http"
)

// Error is the JSON error payload every failing endpoint returns.
// ErrorID carries the request id so a user report can be matched to
// server logs.
type Error struct {
	Code    ErrorCode `json:"code"`
	Status  int       `json:"status"`
	Message string    `json:"message"`
	ErrorID string    `json:"error_id"`
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// EncodeError writes the error payload with the status mapped from the
// code.
func EncodeError(w http.ResponseWriter, code ErrorCode, message, errorID string) error {
	status := code.StatusCode()
	if status == 0 {
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(Error{
		Code:    code,
		Status:  status,
		Message: message,
		ErrorID: errorID,
	})
}

// EncodeInternalError writes a generic internal server error.
func EncodeInternalError(w http.ResponseWriter, errorID string) error {
	return EncodeError(w, InternalServerError, "internal server error", errorID)
}
