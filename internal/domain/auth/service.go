package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"perftrack/internal/apperror"
	"perftrack/internal/platform/config"
)

type UserStore interface {
	FindByUsername(ctx context.Context, username string) (User, error)
	CreateUser(ctx context.Context, username, passwordHash, role string) (int64, error)
}

type Service struct {
	Store  UserStore
	Secret string
	TTL    time.Duration
}

func NewService(store UserStore, secret string, ttl time.Duration) *Service {
	return &Service{Store: store, Secret: secret, TTL: ttl}
}

// Login checks the credentials and returns a signed token for the session.
// Unknown users and wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, username, password string) (string, Session, error) {
	user, err := s.Store.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if apperror.Is(err, apperror.CodeNotFound) {
			return "", Session{}, apperror.New(apperror.CodeUnauthorized, "invalid credentials")
		}
		return "", Session{}, err
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return "", Session{}, apperror.New(apperror.CodeUnauthorized, "invalid credentials")
	}

	session := Session{UserID: user.ID, Username: user.Username, Role: user.Role}
	token, err := GenerateToken(s.Secret, session, s.TTL)
	if err != nil {
		return "", Session{}, apperror.Wrap(apperror.CodeInternal, "sign token", err)
	}
	return token, session, nil
}

// Seed creates the configured HR and team-lead accounts when they do not
// exist yet. Existing accounts are left untouched.
func (s *Service) Seed(ctx context.Context, cfg config.Config) error {
	seeds := []struct {
		username string
		password string
		role     string
	}{
		{cfg.SeedHRUsername, cfg.SeedHRPassword, RoleHR},
		{cfg.SeedLeadUsername, cfg.SeedLeadPassword, RoleTeamLead},
	}

	for _, seed := range seeds {
		if seed.username == "" || seed.password == "" {
			continue
		}
		_, err := s.Store.FindByUsername(ctx, seed.username)
		if err == nil {
			continue
		}
		if !apperror.Is(err, apperror.CodeNotFound) {
			return err
		}

		hash, err := HashPassword(seed.password)
		if err != nil {
			return apperror.Wrap(apperror.CodeInternal, "hash seed password", err)
		}
		if _, err := s.Store.CreateUser(ctx, seed.username, hash, seed.role); err != nil {
			return err
		}
		slog.Info("seeded user", "username", seed.username, "role", seed.role)
	}
	return nil
}
