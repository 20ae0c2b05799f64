package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"perftrack/internal/apperror"
)

func TestFailError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{name: "constraint", err: apperror.New(apperror.CodeConstraint, "add employee: UNIQUE constraint failed"), wantStatus: http.StatusConflict, wantCode: "constraint", wantMessage: "add employee: UNIQUE constraint failed"},
		{name: "not found", err: apperror.New(apperror.CodeNotFound, "project 4 not found"), wantStatus: http.StatusNotFound, wantCode: "not_found", wantMessage: "project 4 not found"},
		{name: "unreachable", err: apperror.New(apperror.CodeUnreachable, "document store down"), wantStatus: http.StatusServiceUnavailable, wantCode: "unreachable", wantMessage: "document store down"},
		{name: "forbidden", err: apperror.New(apperror.CodeForbidden, "nope"), wantStatus: http.StatusForbidden, wantCode: "forbidden", wantMessage: "nope"},
		{name: "plain error hides detail", err: errors.New("secret driver detail"), wantStatus: http.StatusInternalServerError, wantCode: "internal", wantMessage: "internal error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			FailError(rec, tc.err, "req-1")

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			var env Envelope
			if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Success || env.Error == nil || env.Error.Code != tc.wantCode || env.Error.Message != tc.wantMessage || env.RequestID != "req-1" {
				t.Fatalf("unexpected envelope: %+v", env)
			}
		})
	}
}

type codeRecorder struct {
	*httptest.ResponseRecorder
	code string
}

func (c *codeRecorder) RecordErrorCode(code string) { c.code = code }

func TestFailReportsCodeToWriter(t *testing.T) {
	rec := &codeRecorder{ResponseRecorder: httptest.NewRecorder()}
	Fail(rec, http.StatusBadRequest, "validation", "bad", "")
	if rec.code != "validation" {
		t.Fatalf("expected recorded code, got %q", rec.code)
	}
}
