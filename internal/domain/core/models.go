package core

import "time"

const (
	ProjectStatusPlanning  = "Planning"
	ProjectStatusOngoing   = "Ongoing"
	ProjectStatusCompleted = "Completed"
)

var ProjectStatuses = []string{
	ProjectStatusPlanning,
	ProjectStatusOngoing,
	ProjectStatusCompleted,
}

type Employee struct {
	ID         int64      `json:"employeeId"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Email      string     `json:"email"`
	HireDate   *time.Time `json:"hireDate,omitempty"`
	Department string     `json:"department"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type Project struct {
	ID        int64      `json:"projectId"`
	Name      string     `json:"projectName"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Status    string     `json:"status"`
}

// Assignment links an employee to a project. A nil AssignmentDate lets the
// store apply its default of the insertion date.
type Assignment struct {
	ID             int64      `json:"assignmentId"`
	EmployeeID     int64      `json:"employeeId"`
	ProjectID      int64      `json:"projectId"`
	Role           string     `json:"role"`
	AssignmentDate *time.Time `json:"assignmentDate,omitempty"`
}

type EmployeeProject struct {
	ProjectName    string     `json:"projectName"`
	Role           string     `json:"role"`
	AssignmentDate *time.Time `json:"assignmentDate,omitempty"`
}
