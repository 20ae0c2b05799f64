package reports

import (
	"context"
	"database/sql"

	"perftrack/internal/platform/db"
)

type Store struct {
	DB *db.DB
}

func NewStore(store *db.DB) *Store {
	return &Store{DB: store}
}

// EmployeeProjectRows joins assignments to both ends. Assignments whose
// employee or project is missing are left out.
func (s *Store) EmployeeProjectRows(ctx context.Context) ([]EmployeeProjectRow, error) {
	conn, err := s.DB.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `
    SELECT e.first_name || ' ' || e.last_name, p.project_name, COALESCE(ep.role, ''), ep.assignment_date
    FROM EmployeeProjects ep
    JOIN Employees e ON ep.employee_id = e.employee_id
    JOIN Projects p ON ep.project_id = p.project_id
    ORDER BY e.first_name, p.project_name
  `)
	if err != nil {
		return nil, db.Classify(err, "employee project report")
	}
	defer rows.Close()

	out := make([]EmployeeProjectRow, 0)
	for rows.Next() {
		var row EmployeeProjectRow
		var assigned sql.NullString
		if err := rows.Scan(&row.Employee, &row.Project, &row.Role, &assigned); err != nil {
			return nil, db.Classify(err, "scan report row")
		}
		if date, err := db.ParseDate(assigned); err == nil && !date.IsZero() {
			row.AssignedDate = date.Format(db.DateLayout)
		} else {
			row.AssignedDate = assigned.String
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(err, "employee project report")
	}
	return out, nil
}

func (s *Store) Counts(ctx context.Context) (Dashboard, error) {
	conn, err := s.DB.Acquire(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	defer conn.Close()

	var out Dashboard
	err = conn.QueryRowContext(ctx, `
    SELECT (SELECT COUNT(1) FROM Employees),
           (SELECT COUNT(1) FROM Projects),
           (SELECT COUNT(1) FROM EmployeeProjects)
  `).Scan(&out.Employees, &out.Projects, &out.Assignments)
	if err != nil {
		return Dashboard{}, db.Classify(err, "dashboard counts")
	}
	return out, nil
}
