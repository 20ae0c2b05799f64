package db

import (
	"context"
	"fmt"

	"perftrack/internal/platform/config"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS Employees (
    employee_id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT UNIQUE NOT NULL,
    hire_date TEXT,
    department TEXT
  )`,
	`CREATE TABLE IF NOT EXISTS Projects (
    project_id INTEGER PRIMARY KEY AUTOINCREMENT,
    project_name TEXT NOT NULL,
    start_date TEXT,
    end_date TEXT,
    status TEXT
  )`,
	`CREATE TABLE IF NOT EXISTS EmployeeProjects (
    assignment_id INTEGER PRIMARY KEY AUTOINCREMENT,
    employee_id INTEGER REFERENCES Employees(employee_id),
    project_id INTEGER REFERENCES Projects(project_id),
    role TEXT,
    assignment_date TEXT DEFAULT CURRENT_DATE
  )`,
	`CREATE TABLE IF NOT EXISTS AppUsers (
    user_id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL,
    created_at TEXT DEFAULT CURRENT_TIMESTAMP
  )`,
	`CREATE TABLE IF NOT EXISTS AuditEvents (
    event_id INTEGER PRIMARY KEY AUTOINCREMENT,
    actor TEXT,
    action TEXT NOT NULL,
    entity_type TEXT NOT NULL,
    entity_id TEXT,
    request_id TEXT,
    payload TEXT,
    created_at TEXT DEFAULT CURRENT_TIMESTAMP
  )`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS Employees (
    employee_id BIGSERIAL PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT UNIQUE NOT NULL,
    hire_date TEXT,
    department TEXT
  )`,
	`CREATE TABLE IF NOT EXISTS Projects (
    project_id BIGSERIAL PRIMARY KEY,
    project_name TEXT NOT NULL,
    start_date TEXT,
    end_date TEXT,
    status TEXT
  )`,
	`CREATE TABLE IF NOT EXISTS EmployeeProjects (
    assignment_id BIGSERIAL PRIMARY KEY,
    employee_id BIGINT REFERENCES Employees(employee_id),
    project_id BIGINT REFERENCES Projects(project_id),
    role TEXT,
    assignment_date TEXT DEFAULT CAST(CURRENT_DATE AS TEXT)
  )`,
	`CREATE TABLE IF NOT EXISTS AppUsers (
    user_id BIGSERIAL PRIMARY KEY,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL,
    created_at TEXT DEFAULT to_char(now() AT TIME ZONE 'UTC', 'YYYY-MM-DD HH24:MI:SS')
  )`,
	`CREATE TABLE IF NOT EXISTS AuditEvents (
    event_id BIGSERIAL PRIMARY KEY,
    actor TEXT,
    action TEXT NOT NULL,
    entity_type TEXT NOT NULL,
    entity_id TEXT,
    request_id TEXT,
    payload TEXT,
    created_at TEXT DEFAULT to_char(now() AT TIME ZONE 'UTC', 'YYYY-MM-DD HH24:MI:SS')
  )`,
}

// EnsureSchema creates the tables if absent. Statements run one at a time
// outside a transaction, so an interrupted run can leave a partial schema;
// rerunning completes it.
func EnsureSchema(ctx context.Context, d *DB) error {
	statements := sqliteSchema
	if d.Driver == config.DriverPostgres {
		statements = postgresSchema
	}
	for i, stmt := range statements {
		if _, err := d.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d failed: %w", i+1, Classify(err, "create schema"))
		}
	}
	return nil
}
