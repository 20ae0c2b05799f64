package core

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"perftrack/internal/apperror"
	"perftrack/internal/platform/db"
)

// Store holds the relational accessors. Every method leases its own
// connection for exactly one statement.
type Store struct {
	DB *db.DB
}

func NewStore(store *db.DB) *Store {
	return &Store{DB: store}
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) (int64, error) {
	conn, err := s.DB.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	var id int64
	err = conn.QueryRowContext(ctx, s.DB.Rebind(`
    INSERT INTO Employees (first_name, last_name, email, hire_date, department)
    VALUES (?, ?, ?, ?, ?)
    RETURNING employee_id
  `), db.NullIfEmpty(emp.FirstName), db.NullIfEmpty(emp.LastName), db.NullIfEmpty(emp.Email), db.NullableDate(emp.HireDate), db.NullIfEmpty(emp.Department)).Scan(&id)
	if err != nil {
		return 0, db.Classify(err, "add employee")
	}
	return id, nil
}

func (s *Store) GetEmployee(ctx context.Context, employeeID int64) (*Employee, error) {
	conn, err := s.DB.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	row := conn.QueryRowContext(ctx, s.DB.Rebind(`
    SELECT employee_id, first_name, last_name, email, hire_date, COALESCE(department, '')
    FROM Employees
    WHERE employee_id = ?
  `), employeeID)
	emp, err := scanEmployee(row)
	if err != nil {
		return nil, db.Classify(err, fmt.Sprintf("employee %d", employeeID))
	}
	return emp, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	conn, err := s.DB.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `
    SELECT employee_id, first_name, last_name, email, hire_date, COALESCE(department, '')
    FROM Employees
    ORDER BY employee_id
  `)
	if err != nil {
		return nil, db.Classify(err, "list employees")
	}
	defer rows.Close()

	out := make([]Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, db.Classify(err, "scan employee")
		}
		out = append(out, *emp)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(err, "list employees")
	}
	return out, nil
}

func (s *Store) EmployeeExists(ctx context.Context, employeeID int64) (bool, error) {
	return s.exists(ctx, `SELECT COUNT(1) FROM Employees WHERE employee_id = ?`, employeeID, "check employee")
}

func (s *Store) CreateProject(ctx context.Context, project Project) (int64, error) {
	conn, err := s.DB.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	var id int64
	err = conn.QueryRowContext(ctx, s.DB.Rebind(`
    INSERT INTO Projects (project_name, start_date, end_date, status)
    VALUES (?, ?, ?, ?)
    RETURNING project_id
  `), db.NullIfEmpty(project.Name), db.NullableDate(project.StartDate), db.NullableDate(project.EndDate), db.NullIfEmpty(project.Status)).Scan(&id)
	if err != nil {
		return 0, db.Classify(err, "add project")
	}
	return id, nil
}

func (s *Store) GetProject(ctx context.Context, projectID int64) (*Project, error) {
	conn, err := s.DB.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	row := conn.QueryRowContext(ctx, s.DB.Rebind(`
    SELECT project_id, project_name, start_date, end_date, COALESCE(status, '')
    FROM Projects
    WHERE project_id = ?
  `), projectID)
	project, err := scanProject(row)
	if err != nil {
		return nil, db.Classify(err, fmt.Sprintf("project %d", projectID))
	}
	return project, nil
}

func (s *Store) ListProjects(ctx context.Context) ([]Project, error) {
	conn, err := s.DB.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `
    SELECT project_id, project_name, start_date, end_date, COALESCE(status, '')
    FROM Projects
    ORDER BY project_id
  `)
	if err != nil {
		return nil, db.Classify(err, "list projects")
	}
	defer rows.Close()

	out := make([]Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, db.Classify(err, "scan project")
		}
		out = append(out, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(err, "list projects")
	}
	return out, nil
}

func (s *Store) ProjectExists(ctx context.Context, projectID int64) (bool, error) {
	return s.exists(ctx, `SELECT COUNT(1) FROM Projects WHERE project_id = ?`, projectID, "check project")
}

// UpdateProjectStatus reports not_found when no row matched.
func (s *Store) UpdateProjectStatus(ctx context.Context, projectID int64, status string) error {
	conn, err := s.DB.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, s.DB.Rebind(`UPDATE Projects SET status = ? WHERE project_id = ?`), db.NullIfEmpty(status), projectID)
	if err != nil {
		return db.Classify(err, "update project status")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return db.Classify(err, "update project status")
	}
	if affected == 0 {
		return apperror.New(apperror.CodeNotFound, fmt.Sprintf("project %d not found", projectID))
	}
	return nil
}

// AssignEmployee inserts the link row as given. Referential checks, when
// wanted, are the caller's job.
func (s *Store) AssignEmployee(ctx context.Context, assignment Assignment) (int64, error) {
	conn, err := s.DB.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	query := `
    INSERT INTO EmployeeProjects (employee_id, project_id, role)
    VALUES (?, ?, ?)
    RETURNING assignment_id
  `
	args := []any{assignment.EmployeeID, assignment.ProjectID, db.NullIfEmpty(assignment.Role)}
	if assignment.AssignmentDate != nil {
		query = `
    INSERT INTO EmployeeProjects (employee_id, project_id, role, assignment_date)
    VALUES (?, ?, ?, ?)
    RETURNING assignment_id
  `
		args = append(args, db.NullableDate(assignment.AssignmentDate))
	}

	var id int64
	if err := conn.QueryRowContext(ctx, s.DB.Rebind(query), args...).Scan(&id); err != nil {
		return 0, db.Classify(err, "assign employee")
	}
	return id, nil
}

func (s *Store) ListAssignments(ctx context.Context) ([]Assignment, error) {
	conn, err := s.DB.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `
    SELECT assignment_id, employee_id, project_id, COALESCE(role, ''), assignment_date
    FROM EmployeeProjects
    ORDER BY assignment_id
  `)
	if err != nil {
		return nil, db.Classify(err, "list assignments")
	}
	defer rows.Close()

	out := make([]Assignment, 0)
	for rows.Next() {
		var a Assignment
		var employeeID, projectID sql.NullInt64
		var assigned sql.NullString
		if err := rows.Scan(&a.ID, &employeeID, &projectID, &a.Role, &assigned); err != nil {
			return nil, db.Classify(err, "scan assignment")
		}
		a.EmployeeID = employeeID.Int64
		a.ProjectID = projectID.Int64
		if a.AssignmentDate, err = datePtr(assigned); err != nil {
			return nil, db.Classify(err, "scan assignment")
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(err, "list assignments")
	}
	return out, nil
}

// ProjectsForEmployee returns an empty slice when the employee has no
// assignments or does not exist.
func (s *Store) ProjectsForEmployee(ctx context.Context, employeeID int64) ([]EmployeeProject, error) {
	conn, err := s.DB.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, s.DB.Rebind(`
    SELECT p.project_name, COALESCE(ep.role, ''), ep.assignment_date
    FROM EmployeeProjects ep
    JOIN Projects p ON ep.project_id = p.project_id
    WHERE ep.employee_id = ?
    ORDER BY ep.assignment_id
  `), employeeID)
	if err != nil {
		return nil, db.Classify(err, "projects for employee")
	}
	defer rows.Close()

	out := make([]EmployeeProject, 0)
	for rows.Next() {
		var item EmployeeProject
		var assigned sql.NullString
		if err := rows.Scan(&item.ProjectName, &item.Role, &assigned); err != nil {
			return nil, db.Classify(err, "scan employee project")
		}
		if item.AssignmentDate, err = datePtr(assigned); err != nil {
			return nil, db.Classify(err, "scan employee project")
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(err, "projects for employee")
	}
	return out, nil
}

func (s *Store) exists(ctx context.Context, query string, id int64, op string) (bool, error) {
	conn, err := s.DB.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	var count int
	if err := conn.QueryRowContext(ctx, s.DB.Rebind(query), id).Scan(&count); err != nil {
		return false, db.Classify(err, op)
	}
	return count > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row scanner) (*Employee, error) {
	var emp Employee
	var hired sql.NullString
	if err := row.Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email, &hired, &emp.Department); err != nil {
		return nil, err
	}
	var err error
	if emp.HireDate, err = datePtr(hired); err != nil {
		return nil, err
	}
	return &emp, nil
}

func scanProject(row scanner) (*Project, error) {
	var project Project
	var start, end sql.NullString
	if err := row.Scan(&project.ID, &project.Name, &start, &end, &project.Status); err != nil {
		return nil, err
	}
	var err error
	if project.StartDate, err = datePtr(start); err != nil {
		return nil, err
	}
	if project.EndDate, err = datePtr(end); err != nil {
		return nil, err
	}
	return &project, nil
}

func datePtr(value sql.NullString) (*time.Time, error) {
	parsed, err := db.ParseDate(value)
	if err != nil || parsed.IsZero() {
		return nil, err
	}
	return &parsed, nil
}
