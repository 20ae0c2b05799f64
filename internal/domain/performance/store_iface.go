package performance

import "context"

type ReviewStore interface {
	Insert(ctx context.Context, review Review) error
	FindByEmployee(ctx context.Context, employeeID int64) ([]Document, error)
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

type EmployeeChecker interface {
	EmployeeExists(ctx context.Context, employeeID int64) (bool, error)
}

type Auditor interface {
	Record(ctx context.Context, actor, action, entityType, entityID string, payload any) error
}
