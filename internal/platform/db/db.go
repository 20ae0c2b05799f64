package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	_ "modernc.org/sqlite"             // registers the "sqlite" database/sql driver

	"perftrack/internal/apperror"
	"perftrack/internal/platform/config"
)

// DB is the relational store handle shared by every accessor. Accessors lease
// one connection per statement through Acquire.
type DB struct {
	*sql.DB
	Driver string
}

func Connect(ctx context.Context, cfg config.Config) (*DB, error) {
	var (
		sqlDB *sql.DB
		err   error
	)
	switch cfg.RelationalDriver {
	case config.DriverSQLite:
		sqlDB, err = sql.Open("sqlite", sqliteDSN(cfg.RelationalDSN))
	case config.DriverPostgres:
		sqlDB, err = sql.Open("pgx", cfg.RelationalDSN)
	default:
		return nil, fmt.Errorf("unsupported relational driver %q", cfg.RelationalDriver)
	}
	if err != nil {
		return nil, err
	}

	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, apperror.Wrap(apperror.CodeUnreachable, "relational store unreachable: "+err.Error(), err)
	}
	return &DB{DB: sqlDB, Driver: cfg.RelationalDriver}, nil
}

// sqliteDSN adds a busy timeout so concurrent writers wait on the file lock
// instead of failing immediately.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_pragma=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)"
}

// Acquire leases a single connection. The caller must Close it.
func (d *DB) Acquire(ctx context.Context) (*sql.Conn, error) {
	conn, err := d.Conn(ctx)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeUnreachable, "relational store unreachable: "+err.Error(), err)
	}
	return conn, nil
}

// Rebind rewrites ? placeholders into the driver's native form.
func (d *DB) Rebind(query string) string {
	if d.Driver != config.DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func NullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

const DateLayout = "2006-01-02"

func DateValue(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(DateLayout)
}

func NullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return DateValue(*t)
}

// ParseDate accepts the stored date text; timestamps keep their date part.
func ParseDate(value sql.NullString) (time.Time, error) {
	if !value.Valid || strings.TrimSpace(value.String) == "" {
		return time.Time{}, nil
	}
	raw := strings.TrimSpace(value.String)
	if len(raw) > len(DateLayout) {
		raw = raw[:len(DateLayout)]
	}
	return time.Parse(DateLayout, raw)
}
