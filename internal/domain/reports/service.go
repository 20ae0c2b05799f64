package reports

import (
	"context"

	"perftrack/internal/apperror"
	"perftrack/internal/domain/auth"
	"perftrack/internal/domain/core"
	"perftrack/internal/domain/performance"
)

type StoreAPI interface {
	EmployeeProjectRows(ctx context.Context) ([]EmployeeProjectRow, error)
	Counts(ctx context.Context) (Dashboard, error)
}

type EmployeeLookup interface {
	GetEmployee(ctx context.Context, employeeID int64) (*core.Employee, error)
}

type ReviewSource interface {
	FindByEmployee(ctx context.Context, employeeID int64) ([]performance.Document, error)
	Count(ctx context.Context) (int64, error)
}

type Service struct {
	Store     StoreAPI
	Employees EmployeeLookup
	Reviews   ReviewSource
}

func NewService(store StoreAPI, employees EmployeeLookup, reviews ReviewSource) *Service {
	return &Service{Store: store, Employees: employees, Reviews: reviews}
}

func (s *Service) EmployeeProjectReport(ctx context.Context, session auth.Session) ([]EmployeeProjectRow, error) {
	if err := session.Require(auth.PermReportsRead); err != nil {
		return nil, err
	}
	return s.Store.EmployeeProjectRows(ctx)
}

// PerformanceSummary looks the employee up first; the review store is only
// queried for known employees.
func (s *Service) PerformanceSummary(ctx context.Context, session auth.Session, employeeID int64) (SummaryResult, error) {
	if err := session.Require(auth.PermReportsRead); err != nil {
		return SummaryResult{}, err
	}

	emp, err := s.Employees.GetEmployee(ctx, employeeID)
	if err != nil {
		if apperror.Is(err, apperror.CodeNotFound) {
			return employeeNotFound(employeeID), nil
		}
		return SummaryResult{}, err
	}

	docs, err := s.Reviews.FindByEmployee(ctx, employeeID)
	if err != nil {
		return SummaryResult{}, err
	}
	if len(docs) == 0 {
		return noReviews(employeeID), nil
	}

	summary := BuildPerformanceSummary(employeeID, emp.FullName(), docs)
	return SummaryResult{Status: StatusFound, EmployeeID: employeeID, Summary: &summary}, nil
}

func (s *Service) Dashboard(ctx context.Context, session auth.Session) (Dashboard, error) {
	if err := session.Require(auth.PermReportsRead); err != nil {
		return Dashboard{}, err
	}
	out, err := s.Store.Counts(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	if out.Reviews, err = s.Reviews.Count(ctx); err != nil {
		return Dashboard{}, err
	}
	return out, nil
}
