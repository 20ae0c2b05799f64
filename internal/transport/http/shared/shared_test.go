package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func TestEnumReturnsCanonicalValue(t *testing.T) {
	allowed := []string{"Planning", "Ongoing", "Completed"}
	tests := []struct {
		name      string
		value     string
		want      string
		wantIssue bool
	}{
		{name: "exact", value: "Ongoing", want: "Ongoing"},
		{name: "case folded", value: "  completed ", want: "Completed"},
		{name: "empty", value: "", want: ""},
		{name: "unknown", value: "Paused", want: "Paused", wantIssue: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := NewValidator()
			got := v.Enum("status", tc.value, allowed, "invalid status")
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
			if v.HasIssues() != tc.wantIssue {
				t.Fatalf("expected issues=%v, got %v", tc.wantIssue, v.Issues())
			}
		})
	}
}

func TestOptionalDate(t *testing.T) {
	v := NewValidator()
	if got := v.OptionalDate("hireDate", " "); got != nil {
		t.Fatalf("expected nil for blank date, got %v", got)
	}
	got := v.OptionalDate("hireDate", "2024-02-29T15:04:05Z")
	if got == nil || got.Format(DateLayout) != "2024-02-29" || got.Hour() != 0 {
		t.Fatalf("unexpected parsed date %v", got)
	}
	if v.OptionalDate("hireDate", "29/02/2024") != nil || !v.HasIssues() {
		t.Fatal("expected issue for malformed date")
	}
}

func TestIssuesAreSorted(t *testing.T) {
	v := NewValidator()
	v.Positive("projectId", 0)
	v.Positive("employeeId", -1)
	v.DateOrder("startDate", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "endDate", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	issues := v.Issues()
	if len(issues) != 4 {
		t.Fatalf("expected 4 issues, got %d", len(issues))
	}
	if issues[0].Field != "employeeId" || issues[3].Field != "startDate" {
		t.Fatalf("unexpected ordering: %+v", issues)
	}
}

func TestRejectWritesValidationEnvelope(t *testing.T) {
	v := NewValidator()
	v.Required("email", "", "email is required")
	rec := httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected reject")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Fields []ValidationIssue `json:"fields"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "validation" || len(body.Error.Details.Fields) != 1 {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query     string
		want      Pagination
		wantIssue bool
	}{
		{query: "", want: Pagination{Limit: 100}},
		{query: "limit=10&offset=20", want: Pagination{Limit: 10, Offset: 20}},
		{query: "limit=9999", want: Pagination{Limit: 500}},
		{query: "limit=abc", want: Pagination{Limit: 100}, wantIssue: true},
		{query: "offset=-5", want: Pagination{Limit: 100}, wantIssue: true},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			v := NewValidator()
			r := httptest.NewRequest(http.MethodGet, "/events?"+tc.query, nil)
			got := ParsePagination(r, v, 100, 500)
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
			if v.HasIssues() != tc.wantIssue {
				t.Fatalf("expected issues=%v", tc.wantIssue)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	if !DecodeJSON(rec, r, &dst, "req") || dst.Name != "x" {
		t.Fatalf("expected decode to succeed, got %q", dst.Name)
	}

	rec = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nope":1}`))
	if DecodeJSON(rec, r, &dst, "req") {
		t.Fatal("unknown fields must be rejected")
	}
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "invalid_payload") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("a", 64)+`"}`))
	r.Body = http.MaxBytesReader(rec, r.Body, 16)
	if DecodeJSON(rec, r, &dst, "req") {
		t.Fatal("oversized body must be rejected")
	}
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestPathID(t *testing.T) {
	router := chi.NewRouter()
	var got int64
	router.Get("/employees/{employeeID}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := PathID(w, r, "employeeID", "req")
		if !ok {
			return
		}
		got = id
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/42", nil))
	if rec.Code != http.StatusNoContent || got != 42 {
		t.Fatalf("expected id 42, got %d (status %d)", got, rec.Code)
	}

	for _, raw := range []string{"0", "-3", "abc"} {
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/"+raw, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", raw, rec.Code)
		}
	}
}
