package core

import (
	"context"
	"errors"
	"testing"

	"perftrack/internal/apperror"
	"perftrack/internal/domain/auth"
)

type stubStore struct {
	StoreAPI
	employees map[int64]bool
	projects  map[int64]bool
	assigned  []Assignment
	created   []Employee
	failWith  error
}

func (s *stubStore) CreateEmployee(_ context.Context, emp Employee) (int64, error) {
	if s.failWith != nil {
		return 0, s.failWith
	}
	s.created = append(s.created, emp)
	return int64(len(s.created)), nil
}

func (s *stubStore) EmployeeExists(_ context.Context, id int64) (bool, error) {
	return s.employees[id], nil
}

func (s *stubStore) ProjectExists(_ context.Context, id int64) (bool, error) {
	return s.projects[id], nil
}

func (s *stubStore) AssignEmployee(_ context.Context, a Assignment) (int64, error) {
	s.assigned = append(s.assigned, a)
	return int64(len(s.assigned)), nil
}

type recordedEvent struct {
	actor, action, entityType, entityID string
}

type stubAuditor struct {
	events []recordedEvent
	err    error
}

func (a *stubAuditor) Record(_ context.Context, actor, action, entityType, entityID string, _ any) error {
	a.events = append(a.events, recordedEvent{actor, action, entityType, entityID})
	return a.err
}

var (
	hrSession   = auth.Session{UserID: 1, Username: "hr", Role: auth.RoleHR}
	leadSession = auth.Session{UserID: 2, Username: "lead", Role: auth.RoleTeamLead}
)

func TestCreateEmployeeRecordsAudit(t *testing.T) {
	store := &stubStore{}
	auditor := &stubAuditor{}
	svc := NewService(store, auditor, false)

	emp, err := svc.CreateEmployee(context.Background(), hrSession, Employee{FirstName: " Ada ", LastName: "Lovelace", Email: "ada@example.com "})
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}
	if emp.ID != 1 || emp.FirstName != "Ada" || store.created[0].Email != "ada@example.com" {
		t.Fatalf("expected trimmed employee with id, got %+v", emp)
	}
	if len(auditor.events) != 1 || auditor.events[0] != (recordedEvent{"hr", "core.employee.create", "employee", "1"}) {
		t.Fatalf("unexpected audit events: %+v", auditor.events)
	}
}

func TestAuditFailureDoesNotFailWrite(t *testing.T) {
	svc := NewService(&stubStore{}, &stubAuditor{err: errors.New("audit down")}, false)
	if _, err := svc.CreateEmployee(context.Background(), hrSession, Employee{FirstName: "A", LastName: "B", Email: "c@d"}); err != nil {
		t.Fatalf("audit failure must not surface: %v", err)
	}
}

func TestStoreErrorIsReturnedAsIs(t *testing.T) {
	want := apperror.New(apperror.CodeConstraint, "add employee: UNIQUE constraint failed: Employees.email")
	auditor := &stubAuditor{}
	svc := NewService(&stubStore{failWith: want}, auditor, false)

	_, err := svc.CreateEmployee(context.Background(), hrSession, Employee{FirstName: "A", LastName: "B", Email: "c@d"})
	if !errors.Is(err, want) {
		t.Fatalf("expected store error, got %v", err)
	}
	if len(auditor.events) != 0 {
		t.Fatal("failed writes must not be audited")
	}
}

func TestTeamLeadCannotCreateEmployees(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store, nil, false)

	_, err := svc.CreateEmployee(context.Background(), leadSession, Employee{FirstName: "A", LastName: "B", Email: "c@d"})
	if !apperror.Is(err, apperror.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if len(store.created) != 0 {
		t.Fatal("store must not be touched")
	}
}

func TestAssignEmployeeReferenceChecks(t *testing.T) {
	tests := []struct {
		name      string
		check     bool
		employees map[int64]bool
		projects  map[int64]bool
		wantCode  apperror.Code
		wantRows  int
	}{
		{name: "permissive inserts dangling ids", check: false, wantRows: 1},
		{name: "missing employee", check: true, projects: map[int64]bool{2: true}, wantCode: apperror.CodeNotFound},
		{name: "missing project", check: true, employees: map[int64]bool{1: true}, wantCode: apperror.CodeNotFound},
		{name: "both present", check: true, employees: map[int64]bool{1: true}, projects: map[int64]bool{2: true}, wantRows: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubStore{employees: tc.employees, projects: tc.projects}
			svc := NewService(store, nil, tc.check)

			_, err := svc.AssignEmployee(context.Background(), leadSession, Assignment{EmployeeID: 1, ProjectID: 2, Role: "Dev"})
			if tc.wantCode != "" {
				if !apperror.Is(err, tc.wantCode) {
					t.Fatalf("expected %s, got %v", tc.wantCode, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(store.assigned) != tc.wantRows {
				t.Fatalf("expected %d rows, got %d", tc.wantRows, len(store.assigned))
			}
		})
	}
}
