package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"perftrack/internal/app/server"
	"perftrack/internal/domain/auth"
	"perftrack/internal/domain/performance"
	"perftrack/internal/platform/config"
	"perftrack/internal/platform/db/dbtest"
	"perftrack/internal/platform/metrics"
)

const (
	hrUser   = "hr.admin"
	hrPass   = "hr-password"
	leadUser = "team.lead"
	leadPass = "lead-password"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	RequestID string `json:"requestId"`
}

type testApp struct {
	server  *httptest.Server
	reviews *performance.MemoryStore
	cfg     config.Config
}

func testConfig() config.Config {
	return config.Config{
		Environment:      "test",
		JWTSecret:        "test-secret",
		SessionTTL:       time.Hour,
		SeedHRUsername:   hrUser,
		SeedHRPassword:   hrPass,
		SeedLeadUsername: leadUser,
		SeedLeadPassword: leadPass,
		MaxBodyBytes:     1048576,
		LoginRateLimit:   1000,
		LoginRateWindow:  time.Minute,
	}
}

func newTestApp(t *testing.T, cfg config.Config) *testApp {
	t.Helper()
	database := dbtest.NewSQLite(t)
	if err := auth.NewService(auth.NewStore(database), cfg.JWTSecret, cfg.SessionTTL).Seed(context.Background(), cfg); err != nil {
		t.Fatalf("seed: %v", err)
	}

	reviews := performance.NewMemoryStore()
	router := server.NewRouter(cfg, server.Deps{DB: database, Reviews: reviews, Metrics: metrics.New()})
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return &testApp{server: ts, reviews: reviews, cfg: cfg}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

// call expects an envelope with the given status and decodes its data into out.
func (a *testApp) call(t *testing.T, method, path, token string, body any, wantStatus int, out any) envelope {
	t.Helper()
	resp, raw := a.do(t, method, path, token, body)
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected status %d, got %d: %s", method, path, wantStatus, resp.StatusCode, raw)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("%s %s: decode envelope: %v (%s)", method, path, err, raw)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("%s %s: decode data: %v", method, path, err)
		}
	}
	return env
}

func (a *testApp) login(t *testing.T, username, password string) string {
	t.Helper()
	var data struct {
		Token string `json:"token"`
	}
	a.call(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": username, "password": password}, http.StatusOK, &data)
	if data.Token == "" {
		t.Fatal("expected token")
	}
	return data.Token
}

func (a *testApp) createEmployee(t *testing.T, token, first, last, email string) int64 {
	t.Helper()
	var emp struct {
		ID int64 `json:"employeeId"`
	}
	a.call(t, http.MethodPost, "/api/v1/employees", token, map[string]string{
		"firstName":  first,
		"lastName":   last,
		"email":      email,
		"hireDate":   "2023-01-15",
		"department": "Engineering",
	}, http.StatusCreated, &emp)
	return emp.ID
}

func (a *testApp) createProject(t *testing.T, token, name string) int64 {
	t.Helper()
	var project struct {
		ID int64 `json:"projectId"`
	}
	a.call(t, http.MethodPost, "/api/v1/projects", token, map[string]string{
		"projectName": name,
		"startDate":   "2024-01-01",
		"status":      "Ongoing",
	}, http.StatusCreated, &project)
	return project.ID
}

func (a *testApp) assign(t *testing.T, token string, employeeID, projectID int64, role string) {
	t.Helper()
	a.call(t, http.MethodPost, "/api/v1/assignments", token, map[string]any{
		"employeeId":     employeeID,
		"projectId":      projectID,
		"role":           role,
		"assignmentDate": "2024-02-01",
	}, http.StatusCreated, nil)
}

func review(employeeID int64, date string, scores [5]int, strengths string) map[string]any {
	return map[string]any{
		"employeeId":   employeeID,
		"reviewDate":   date,
		"reviewerName": "Pat Reviewer",
		"metrics": map[string]int{
			"onTimeDelivery":    scores[0],
			"qualityOfWork":     scores[1],
			"teamCollaboration": scores[2],
			"problemSolving":    scores[3],
			"communication":     scores[4],
		},
		"strengths":           strengths,
		"areasForImprovement": "",
		"comments":            "steady quarter",
		"goalsForNextPeriod":  "mentor a new hire",
	}
}
