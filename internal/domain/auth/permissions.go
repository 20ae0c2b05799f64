package auth

import "perftrack/internal/apperror"

const (
	RoleHR       = "HR"
	RoleTeamLead = "TeamLead"
)

const (
	PermEmployeesRead    = "core.employees.read"
	PermEmployeesWrite   = "core.employees.write"
	PermProjectsRead     = "core.projects.read"
	PermProjectsWrite    = "core.projects.write"
	PermAssignmentsRead  = "core.assignments.read"
	PermAssignmentsWrite = "core.assignments.write"
	PermReviewsRead      = "performance.reviews.read"
	PermReviewsWrite     = "performance.reviews.write"
	PermReportsRead      = "reports.read"
	PermAuditRead        = "audit.read"
)

var RolePermissions = map[string][]string{
	RoleHR: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermProjectsRead,
		PermProjectsWrite,
		PermAssignmentsRead,
		PermAssignmentsWrite,
		PermReviewsRead,
		PermReviewsWrite,
		PermReportsRead,
		PermAuditRead,
	},
	RoleTeamLead: {
		PermEmployeesRead,
		PermProjectsRead,
		PermAssignmentsRead,
		PermAssignmentsWrite,
		PermReviewsRead,
		PermReviewsWrite,
		PermReportsRead,
	},
}

func ValidRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}

// Session identifies the caller of a domain operation. It is built once per
// request and passed explicitly; nothing reads it from global state.
type Session struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (s Session) Can(permission string) bool {
	for _, p := range RolePermissions[s.Role] {
		if p == permission {
			return true
		}
	}
	return false
}

func (s Session) Require(permission string) error {
	if s.Can(permission) {
		return nil
	}
	return apperror.New(apperror.CodeForbidden, "role "+s.Role+" lacks permission "+permission)
}
