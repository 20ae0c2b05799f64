package corehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"perftrack/internal/domain/auth"
	"perftrack/internal/domain/core"
	"perftrack/internal/transport/http/api"
	"perftrack/internal/transport/http/middleware"
	"perftrack/internal/transport/http/shared"
)

type Handler struct {
	Service *core.Service
}

func NewHandler(service *core.Service) *Handler {
	return &Handler{Service: service}
}

// RegisterRoutes mounts the relational resources. nested routes are added under
// /employees/{employeeID} for handlers that hang off a single employee.
func (h *Handler) RegisterRoutes(r chi.Router, nested ...func(chi.Router)) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead)).Get("/", h.handleListEmployees)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite)).Post("/", h.handleCreateEmployee)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermEmployeesRead)).Get("/", h.handleGetEmployee)
			r.With(middleware.RequirePermission(auth.PermAssignmentsRead)).Get("/projects", h.handleEmployeeProjects)
			for _, register := range nested {
				register(r)
			}
		})
	})
	r.Route("/projects", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermProjectsRead)).Get("/", h.handleListProjects)
		r.With(middleware.RequirePermission(auth.PermProjectsWrite)).Post("/", h.handleCreateProject)
		r.Route("/{projectID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermProjectsRead)).Get("/", h.handleGetProject)
			r.With(middleware.RequirePermission(auth.PermProjectsWrite)).Patch("/status", h.handleUpdateProjectStatus)
		})
	})
	r.Route("/assignments", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermAssignmentsRead)).Get("/", h.handleListAssignments)
		r.With(middleware.RequirePermission(auth.PermAssignmentsWrite)).Post("/", h.handleAssignEmployee)
	})
}

type employeeRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	HireDate   string `json:"hireDate"`
	Department string `json:"department"`
}

type projectRequest struct {
	ProjectName string `json:"projectName"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Status      string `json:"status"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type assignmentRequest struct {
	EmployeeID     int64  `json:"employeeId"`
	ProjectID      int64  `json:"projectId"`
	Role           string `json:"role"`
	AssignmentDate string `json:"assignmentDate"`
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSession(r.Context())
	employees, err := h.Service.ListEmployees(r.Context(), session)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	session, _ := middleware.GetSession(r.Context())

	var payload employeeRequest
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("lastName", payload.LastName, "last name is required")
	v.Required("email", payload.Email, "email is required")
	hireDate := v.OptionalDate("hireDate", payload.HireDate)
	if v.Reject(w, requestID) {
		return
	}

	emp, err := h.Service.CreateEmployee(r.Context(), session, core.Employee{
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		Email:      payload.Email,
		HireDate:   hireDate,
		Department: payload.Department,
	})
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Created(w, emp, requestID)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	session, _ := middleware.GetSession(r.Context())
	employeeID, ok := shared.PathID(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	emp, err := h.Service.GetEmployee(r.Context(), session, employeeID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, emp, requestID)
}

func (h *Handler) handleEmployeeProjects(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	session, _ := middleware.GetSession(r.Context())
	employeeID, ok := shared.PathID(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	projects, err := h.Service.ProjectsForEmployee(r.Context(), session, employeeID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, projects, requestID)
}

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSession(r.Context())
	projects, err := h.Service.ListProjects(r.Context(), session)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, projects, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	session, _ := middleware.GetSession(r.Context())

	var payload projectRequest
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	v := shared.NewValidator()
	v.Required("projectName", payload.ProjectName, "project name is required")
	status := v.Enum("status", payload.Status, core.ProjectStatuses, "status must be Planning, Ongoing or Completed")
	startDate := v.OptionalDate("startDate", payload.StartDate)
	endDate := v.OptionalDate("endDate", payload.EndDate)
	if startDate != nil && endDate != nil {
		v.DateOrder("startDate", *startDate, "endDate", *endDate)
	}
	if v.Reject(w, requestID) {
		return
	}
	if status == "" {
		status = core.ProjectStatusPlanning
	}

	project, err := h.Service.CreateProject(r.Context(), session, core.Project{
		Name:      payload.ProjectName,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    status,
	})
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Created(w, project, requestID)
}

func (h *Handler) handleGetProject(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	session, _ := middleware.GetSession(r.Context())
	projectID, ok := shared.PathID(w, r, "projectID", requestID)
	if !ok {
		return
	}
	project, err := h.Service.GetProject(r.Context(), session, projectID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, project, requestID)
}

func (h *Handler) handleUpdateProjectStatus(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	session, _ := middleware.GetSession(r.Context())
	projectID, ok := shared.PathID(w, r, "projectID", requestID)
	if !ok {
		return
	}

	var payload statusRequest
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	v := shared.NewValidator()
	v.Required("status", payload.Status, "status is required")
	status := v.Enum("status", payload.Status, core.ProjectStatuses, "status must be Planning, Ongoing or Completed")
	if v.Reject(w, requestID) {
		return
	}

	if err := h.Service.UpdateProjectStatus(r.Context(), session, projectID, status); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, map[string]any{"projectId": projectID, "status": status}, requestID)
}

func (h *Handler) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSession(r.Context())
	assignments, err := h.Service.ListAssignments(r.Context(), session)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, assignments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAssignEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	session, _ := middleware.GetSession(r.Context())

	var payload assignmentRequest
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}
	v := shared.NewValidator()
	v.Positive("employeeId", payload.EmployeeID)
	v.Positive("projectId", payload.ProjectID)
	assignmentDate := v.OptionalDate("assignmentDate", payload.AssignmentDate)
	if v.Reject(w, requestID) {
		return
	}

	assignment, err := h.Service.AssignEmployee(r.Context(), session, core.Assignment{
		EmployeeID:     payload.EmployeeID,
		ProjectID:      payload.ProjectID,
		Role:           payload.Role,
		AssignmentDate: assignmentDate,
	})
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Created(w, assignment, requestID)
}
