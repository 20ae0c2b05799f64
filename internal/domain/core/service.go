package core

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"perftrack/internal/apperror"
	"perftrack/internal/domain/auth"
)

type Service struct {
	Store StoreAPI
	Audit Auditor

	// CheckReferences makes AssignEmployee verify both ends exist first.
	CheckReferences bool
}

func NewService(store StoreAPI, auditor Auditor, checkReferences bool) *Service {
	return &Service{Store: store, Audit: auditor, CheckReferences: checkReferences}
}

func (s *Service) CreateEmployee(ctx context.Context, session auth.Session, emp Employee) (Employee, error) {
	if err := session.Require(auth.PermEmployeesWrite); err != nil {
		return Employee{}, err
	}
	emp.FirstName = strings.TrimSpace(emp.FirstName)
	emp.LastName = strings.TrimSpace(emp.LastName)
	emp.Email = strings.TrimSpace(emp.Email)
	emp.Department = strings.TrimSpace(emp.Department)

	id, err := s.Store.CreateEmployee(ctx, emp)
	if err != nil {
		return Employee{}, err
	}
	emp.ID = id
	s.record(ctx, session, "core.employee.create", "employee", id, emp)
	return emp, nil
}

func (s *Service) GetEmployee(ctx context.Context, session auth.Session, employeeID int64) (*Employee, error) {
	if err := session.Require(auth.PermEmployeesRead); err != nil {
		return nil, err
	}
	return s.Store.GetEmployee(ctx, employeeID)
}

func (s *Service) ListEmployees(ctx context.Context, session auth.Session) ([]Employee, error) {
	if err := session.Require(auth.PermEmployeesRead); err != nil {
		return nil, err
	}
	return s.Store.ListEmployees(ctx)
}

func (s *Service) CreateProject(ctx context.Context, session auth.Session, project Project) (Project, error) {
	if err := session.Require(auth.PermProjectsWrite); err != nil {
		return Project{}, err
	}
	project.Name = strings.TrimSpace(project.Name)

	id, err := s.Store.CreateProject(ctx, project)
	if err != nil {
		return Project{}, err
	}
	project.ID = id
	s.record(ctx, session, "core.project.create", "project", id, project)
	return project, nil
}

func (s *Service) GetProject(ctx context.Context, session auth.Session, projectID int64) (*Project, error) {
	if err := session.Require(auth.PermProjectsRead); err != nil {
		return nil, err
	}
	return s.Store.GetProject(ctx, projectID)
}

func (s *Service) ListProjects(ctx context.Context, session auth.Session) ([]Project, error) {
	if err := session.Require(auth.PermProjectsRead); err != nil {
		return nil, err
	}
	return s.Store.ListProjects(ctx)
}

func (s *Service) UpdateProjectStatus(ctx context.Context, session auth.Session, projectID int64, status string) error {
	if err := session.Require(auth.PermProjectsWrite); err != nil {
		return err
	}
	if err := s.Store.UpdateProjectStatus(ctx, projectID, strings.TrimSpace(status)); err != nil {
		return err
	}
	s.record(ctx, session, "core.project.status", "project", projectID, map[string]string{"status": status})
	return nil
}

func (s *Service) AssignEmployee(ctx context.Context, session auth.Session, assignment Assignment) (Assignment, error) {
	if err := session.Require(auth.PermAssignmentsWrite); err != nil {
		return Assignment{}, err
	}
	assignment.Role = strings.TrimSpace(assignment.Role)

	if s.CheckReferences {
		if err := s.requireExists(ctx, "employee", assignment.EmployeeID, s.Store.EmployeeExists); err != nil {
			return Assignment{}, err
		}
		if err := s.requireExists(ctx, "project", assignment.ProjectID, s.Store.ProjectExists); err != nil {
			return Assignment{}, err
		}
	}

	id, err := s.Store.AssignEmployee(ctx, assignment)
	if err != nil {
		return Assignment{}, err
	}
	assignment.ID = id
	s.record(ctx, session, "core.assignment.create", "assignment", id, assignment)
	return assignment, nil
}

func (s *Service) ListAssignments(ctx context.Context, session auth.Session) ([]Assignment, error) {
	if err := session.Require(auth.PermAssignmentsRead); err != nil {
		return nil, err
	}
	return s.Store.ListAssignments(ctx)
}

func (s *Service) ProjectsForEmployee(ctx context.Context, session auth.Session, employeeID int64) ([]EmployeeProject, error) {
	if err := session.Require(auth.PermAssignmentsRead); err != nil {
		return nil, err
	}
	return s.Store.ProjectsForEmployee(ctx, employeeID)
}

// EmployeeExists is used by other domains for their own reference checks.
func (s *Service) EmployeeExists(ctx context.Context, employeeID int64) (bool, error) {
	return s.Store.EmployeeExists(ctx, employeeID)
}

func (s *Service) requireExists(ctx context.Context, entity string, id int64, exists func(context.Context, int64) (bool, error)) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.New(apperror.CodeNotFound, fmt.Sprintf("%s %d not found", entity, id))
	}
	return nil
}

func (s *Service) record(ctx context.Context, session auth.Session, action, entityType string, entityID int64, payload any) {
	if s.Audit == nil {
		return
	}
	if err := s.Audit.Record(ctx, session.Username, action, entityType, strconv.FormatInt(entityID, 10), payload); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}
