package auth

import (
	"context"

	"perftrack/internal/platform/db"
)

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
}

type Store struct {
	DB *db.DB
}

func NewStore(store *db.DB) *Store {
	return &Store{DB: store}
}

func (s *Store) FindByUsername(ctx context.Context, username string) (User, error) {
	conn, err := s.DB.Acquire(ctx)
	if err != nil {
		return User{}, err
	}
	defer conn.Close()

	var out User
	err = conn.QueryRowContext(ctx, s.DB.Rebind(`
    SELECT user_id, username, password_hash, role
    FROM AppUsers
    WHERE username = ?
  `), username).Scan(&out.ID, &out.Username, &out.PasswordHash, &out.Role)
	if err != nil {
		return User{}, db.Classify(err, "find user "+username)
	}
	return out, nil
}

func (s *Store) CreateUser(ctx context.Context, username, passwordHash, role string) (int64, error) {
	conn, err := s.DB.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	var id int64
	err = conn.QueryRowContext(ctx, s.DB.Rebind(`
    INSERT INTO AppUsers (username, password_hash, role)
    VALUES (?, ?, ?)
    RETURNING user_id
  `), db.NullIfEmpty(username), passwordHash, role).Scan(&id)
	if err != nil {
		return 0, db.Classify(err, "create user "+username)
	}
	return id, nil
}
