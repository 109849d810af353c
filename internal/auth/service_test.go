package auth

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/purchasebook/purchasebook/internal/db"
	"github.com/purchasebook/purchasebook/internal/shared"
)

const testSecret = "test-secret"

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	pool, err := db.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })
	require.NoError(t, db.Migrate(ctx, pool))
	return pool
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewRepository(newTestDB(t)), testSecret, time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "hunter2"})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, "user", user.Role)
	require.NotEmpty(t, user.CreatedAt)
	// the hash is stored, never the plaintext
	require.NotEqual(t, "hunter2", user.PasswordHash)

	resp, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "hunter2"})
	require.NoError(t, err)
	require.Equal(t, user.ID, resp.User.ID)
	require.NotEmpty(t, resp.Token)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "  ", Password: "x"})
	require.Equal(t, shared.KindValidation, shared.KindOf(err))

	_, err = svc.Register(ctx, RegisterRequest{Username: "bob", Password: ""})
	require.Equal(t, shared.KindValidation, shared.KindOf(err))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "x"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Username: "alice", Password: "y"})
	require.Equal(t, shared.KindConflict, shared.KindOf(err))
}

func TestLoginFailureModesAreIndistinguishable(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "hunter2"})
	require.NoError(t, err)

	_, badUser := svc.Login(ctx, LoginRequest{Username: "mallory", Password: "hunter2"})
	_, badPass := svc.Login(ctx, LoginRequest{Username: "alice", Password: "wrong"})

	require.ErrorIs(t, badUser, shared.ErrInvalidCredentials)
	require.ErrorIs(t, badPass, shared.ErrInvalidCredentials)
	require.Equal(t, badUser.Error(), badPass.Error())
}

func TestIssuedTokenVerifies(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	role := "admin"
	user, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "hunter2", Role: &role})
	require.NoError(t, err)
	require.Equal(t, "admin", user.Role)

	resp, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "hunter2"})
	require.NoError(t, err)

	var parsed claims
	token, err := jwt.ParseWithClaims(resp.Token, &parsed, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)
	require.True(t, token.Valid)
	require.Equal(t, "admin", parsed.Role)
	require.NotEmpty(t, parsed.ID)
	require.WithinDuration(t, time.Now().Add(time.Hour), parsed.ExpiresAt.Time, time.Minute)
}
