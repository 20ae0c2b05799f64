package core

import "context"

type StoreAPI interface {
	CreateEmployee(ctx context.Context, emp Employee) (int64, error)
	GetEmployee(ctx context.Context, employeeID int64) (*Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	EmployeeExists(ctx context.Context, employeeID int64) (bool, error)
	CreateProject(ctx context.Context, project Project) (int64, error)
	GetProject(ctx context.Context, projectID int64) (*Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	ProjectExists(ctx context.Context, projectID int64) (bool, error)
	UpdateProjectStatus(ctx context.Context, projectID int64, status string) error
	AssignEmployee(ctx context.Context, assignment Assignment) (int64, error)
	ListAssignments(ctx context.Context) ([]Assignment, error)
	ProjectsForEmployee(ctx context.Context, employeeID int64) ([]EmployeeProject, error)
}

// Auditor receives one event per successful write.
type Auditor interface {
	Record(ctx context.Context, actor, action, entityType, entityID string, payload any) error
}
