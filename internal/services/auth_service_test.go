package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/aurelhaus/backend/internal/config"
	"github.com/aurelhaus/backend/internal/models"
	"github.com/aurelhaus/backend/internal/services"
	"github.com/aurelhaus/backend/internal/store/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Env:                "test",
		JWTSecret:          "test-secret",
		JWTTokenDuration:   time.Hour,
		BcryptCost:         4,
		LocalAssetsPath:    t.TempDir(),
		UploadMaxImageSize: 10 * 1024 * 1024,
		ThumbnailWidth:     300,
		ThumbnailHeight:    400,
		HomeLatestCount:    3,
	}
}

func newAuthService(t *testing.T, cfg *config.Config) (*services.AuthService, *memstore.UserStore) {
	t.Helper()
	users := memstore.NewUserStore()
	return services.NewAuthService(users, nil, cfg), users
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, users := newAuthService(t, testConfig(t))
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "password-1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "password-2")
	assert.ErrorIs(t, err, services.ErrUsernameTaken)

	count, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	svc, _ := newAuthService(t, testConfig(t))

	user, err := svc.Register(context.Background(), "alice", "password-1")
	require.NoError(t, err)
	assert.NotEqual(t, "password-1", user.Password)
	assert.NotEmpty(t, user.Password)
}

func TestLogin(t *testing.T) {
	cfg := testConfig(t)
	svc, _ := newAuthService(t, cfg)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "password-1")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "nobody", "password-1")
	assert.ErrorIs(t, err, services.ErrUnknownUser)

	_, _, err = svc.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, services.ErrInvalidCredential)

	token, user, err := svc.Login(ctx, "alice", "password-1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := svc.ValidateAccessToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
}

func TestFirstAccountIsAdmin(t *testing.T) {
	svc, _ := newAuthService(t, testConfig(t))
	ctx := context.Background()

	first, err := svc.Register(ctx, "owner", "password-1")
	require.NoError(t, err)
	second, err := svc.Register(ctx, "visitor", "password-2")
	require.NoError(t, err)

	assert.Equal(t, models.AdminUserID, first.ID)
	assert.True(t, first.IsAdmin())
	assert.False(t, second.IsAdmin())
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _ := newAuthService(t, testConfig(t))
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "password-1")
	require.NoError(t, err)
	token, _, err := svc.Login(ctx, "alice", "password-1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))
	require.NoError(t, svc.Logout(ctx, token))
	require.NoError(t, svc.Logout(ctx, "garbage-token"))
}

func TestEnsureDefaultAdmin(t *testing.T) {
	cfg := testConfig(t)
	cfg.AdminUsername = "owner"
	cfg.AdminPassword = "admin-pass"
	svc, users := newAuthService(t, cfg)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultAdmin(ctx))

	admin, err := users.FindByUsername(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, models.AdminUserID, admin.ID)

	// Second call is a no-op
	require.NoError(t, svc.EnsureDefaultAdmin(ctx))
	count, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestEnsureDefaultAdminSkippedWhenUnconfigured(t *testing.T) {
	svc, users := newAuthService(t, testConfig(t))
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultAdmin(ctx))
	count, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
