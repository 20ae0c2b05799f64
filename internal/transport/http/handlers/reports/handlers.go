package reportshandler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"perftrack/internal/domain/auth"
	"perftrack/internal/domain/reports"
	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
	"perftrack/internal/transport/http/shared"
)

const (
	formatJSON = "json"
	formatPDF  = "pdf"
	formatCSV  = "csv"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequirePermission(auth.PermReportsRead))
		r.Get("/employee-projects", h.handleEmployeeProjects)
		r.Get("/performance/{employeeID}", h.handlePerformanceSummary)
		r.Get("/dashboard", h.handleDashboard)
	})
}

func requestedFormat(w http.ResponseWriter, r *http.Request, requestID string, allowed ...string) (string, bool) {
	v := shared.NewValidator()
	format := v.Enum("format", r.URL.Query().Get("format"), allowed, "format must be one of "+strings.Join(allowed, ", "))
	if v.Reject(w, requestID) {
		return "", false
	}
	if format == "" {
		format = formatJSON
	}
	return format, true
}

func (h *Handler) handleEmployeeProjects(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	session, _ := middleware.GetSession(r.Context())
	format, ok := requestedFormat(w, r, requestID, formatJSON, formatPDF, formatCSV)
	if !ok {
		return
	}

	rows, err := h.Service.EmployeeProjectReport(r.Context(), session)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}

	switch format {
	case formatPDF:
		var buf bytes.Buffer
		if err := reports.WriteEmployeeProjectPDF(&buf, rows); err != nil {
			api.FailError(w, err, requestID)
			return
		}
		writePDF(w, "employee-projects.pdf", buf.Bytes())
	case formatCSV:
		writeEmployeeProjectCSV(w, rows)
	default:
		api.Success(w, rows, requestID)
	}
}

func (h *Handler) handlePerformanceSummary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	session, _ := middleware.GetSession(r.Context())
	employeeID, ok := shared.PathID(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	format, ok := requestedFormat(w, r, requestID, formatJSON, formatPDF)
	if !ok {
		return
	}

	result, err := h.Service.PerformanceSummary(r.Context(), session, employeeID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}

	if format == formatPDF {
		var buf bytes.Buffer
		if err := reports.WritePerformanceSummaryPDF(&buf, result); err != nil {
			api.FailError(w, err, requestID)
			return
		}
		writePDF(w, fmt.Sprintf("performance-%d.pdf", employeeID), buf.Bytes())
		return
	}
	// Missing employees and employees without reviews are informational
	// results, not errors.
	api.Success(w, result, requestID)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	session, _ := middleware.GetSession(r.Context())
	dashboard, err := h.Service.Dashboard(r.Context(), session)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, dashboard, requestID)
}

func writePDF(w http.ResponseWriter, filename string, body []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		slog.Warn("pdf write failed", "file", filename, "err", err)
	}
}

func writeEmployeeProjectCSV(w http.ResponseWriter, rows []reports.EmployeeProjectRow) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=employee-projects.csv")
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"employee", "project", "role", "assigned_date"}); err != nil {
		slog.Warn("employee project export header failed", "err", err)
		return
	}
	for _, row := range rows {
		if err := writer.Write([]string{row.Employee, row.Project, row.Role, row.AssignedDate}); err != nil {
			slog.Warn("employee project export row failed", "err", err)
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		slog.Warn("employee project export flush failed", "err", err)
	}
}
