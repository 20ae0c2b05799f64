package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"perftrack/internal/transport/http/api"
)

// DecodeJSON decodes the body into dst and answers the request itself when
// that fails.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any, requestID string) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", requestID)
			return false
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return false
	}
	return true
}

// PathID parses a positive integer URL parameter.
func PathID(w http.ResponseWriter, r *http.Request, name, requestID string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		FailValidation(w, requestID, []ValidationIssue{{Field: name, Reason: "must be a positive integer"}})
		return 0, false
	}
	return id, true
}
