package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"perftrack/internal/apperror"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// ErrorCodeRecorder is implemented by response writers that want to see the
// error code of a failed response, such as the access log.
type ErrorCodeRecorder interface {
	RecordErrorCode(code string)
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	FailWithDetails(w, status, code, message, nil, requestID)
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details any, requestID string) {
	if rec, ok := w.(ErrorCodeRecorder); ok {
		rec.RecordErrorCode(code)
	}
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message, Details: details}, RequestID: requestID})
}

// FailError writes err using the status for its apperror code. Internal
// failures are logged and answered with a generic message.
func FailError(w http.ResponseWriter, err error, requestID string) {
	code := apperror.GetCode(err)
	status := StatusFor(code)
	message := err.Error()
	if code == apperror.CodeInternal {
		slog.Error("request failed", "err", err, "requestId", requestID)
		message = "internal error"
	}
	Fail(w, status, string(code), message, requestID)
}

func StatusFor(code apperror.Code) int {
	switch code {
	case apperror.CodeValidation:
		return http.StatusBadRequest
	case apperror.CodeUnauthorized:
		return http.StatusUnauthorized
	case apperror.CodeForbidden:
		return http.StatusForbidden
	case apperror.CodeNotFound:
		return http.StatusNotFound
	case apperror.CodeConstraint:
		return http.StatusConflict
	case apperror.CodeUnreachable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
