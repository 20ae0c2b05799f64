package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perftrack/internal/apperror"
	"perftrack/internal/domain/auth"
	"perftrack/internal/platform/config"
	"perftrack/internal/platform/db/dbtest"
)

func newService(t *testing.T) *auth.Service {
	t.Helper()
	return auth.NewService(auth.NewStore(dbtest.NewSQLite(t)), "test-secret", time.Hour)
}

func TestSeedIsIdempotent(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	cfg := config.Config{
		SeedHRUsername:   "hr",
		SeedHRPassword:   "hr-pass",
		SeedLeadUsername: "lead",
		SeedLeadPassword: "lead-pass",
	}

	require.NoError(t, svc.Seed(ctx, cfg))
	first, err := svc.Store.FindByUsername(ctx, "hr")
	require.NoError(t, err)

	require.NoError(t, svc.Seed(ctx, cfg))
	second, err := svc.Store.FindByUsername(ctx, "hr")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	lead, err := svc.Store.FindByUsername(ctx, "lead")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleTeamLead, lead.Role)
}

func TestSeedSkipsIncompleteAccounts(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx, config.Config{SeedHRUsername: "hr"}))
	_, err := svc.Store.FindByUsername(ctx, "hr")
	assert.True(t, apperror.Is(err, apperror.CodeNotFound), "got %v", err)
}

func TestLogin(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	require.NoError(t, svc.Seed(ctx, config.Config{SeedHRUsername: "hr", SeedHRPassword: "hr-pass"}))

	token, session, err := svc.Login(ctx, " hr ", "hr-pass")
	require.NoError(t, err)
	assert.Equal(t, "hr", session.Username)
	assert.Equal(t, auth.RoleHR, session.Role)

	claims, err := auth.ParseToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, session, claims.Session())

	_, _, err = svc.Login(ctx, "hr", "nope")
	assert.True(t, apperror.Is(err, apperror.CodeUnauthorized), "got %v", err)

	_, _, err = svc.Login(ctx, "ghost", "hr-pass")
	assert.True(t, apperror.Is(err, apperror.CodeUnauthorized), "got %v", err)
}

func TestCreateUserDuplicate(t *testing.T) {
	store := auth.NewStore(dbtest.NewSQLite(t))
	ctx := context.Background()

	_, err := store.CreateUser(ctx, "hr", "hash", auth.RoleHR)
	require.NoError(t, err)
	_, err = store.CreateUser(ctx, "hr", "hash", auth.RoleHR)
	assert.True(t, apperror.Is(err, apperror.CodeConstraint), "got %v", err)
}
