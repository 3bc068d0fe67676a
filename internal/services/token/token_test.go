package token

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/ecommerce-backend/internal/cache"
	"github.com/magabrotheeeer/ecommerce-backend/internal/config"
	"github.com/magabrotheeeer/ecommerce-backend/internal/lib/jwt"
)

func setupTestService(t *testing.T) (*Service, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	store, err := cache.InitServer(context.Background(), config.RedisConnection{
		AddressRedis: mr.Addr(),
	})
	require.NoError(t, err)

	maker := jwt.NewJWTMaker("access_secret_key", "refresh_secret_key",
		15*time.Minute, 7*24*time.Hour)
	return New(maker, store, 7*24*time.Hour), mr
}

func TestService_IssueStoreVerify(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	userUID := uuid.NewString()

	pair, err := svc.Issue(userUID)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	require.NoError(t, svc.StoreRefresh(ctx, userUID, pair.RefreshToken))

	got, err := svc.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userUID, got)
}

func TestService_VerifyRefresh_InvalidToken(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.VerifyRefresh("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_RotateAccess(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	userUID := uuid.NewString()

	pair, err := svc.Issue(userUID)
	require.NoError(t, err)
	require.NoError(t, svc.StoreRefresh(ctx, userUID, pair.RefreshToken))

	access, gotUID, err := svc.RotateAccess(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.Equal(t, userUID, gotUID)
}

func TestService_RotateAccess_AfterRevoke(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	userUID := uuid.NewString()

	pair, err := svc.Issue(userUID)
	require.NoError(t, err)
	require.NoError(t, svc.StoreRefresh(ctx, userUID, pair.RefreshToken))

	require.NoError(t, svc.Revoke(ctx, userUID))

	_, _, err = svc.RotateAccess(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_RotateAccess_SecondLoginInvalidatesFirst(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	userUID := uuid.NewString()

	first, err := svc.Issue(userUID)
	require.NoError(t, err)
	require.NoError(t, svc.StoreRefresh(ctx, userUID, first.RefreshToken))

	second, err := svc.Issue(userUID)
	require.NoError(t, err)
	require.NoError(t, svc.StoreRefresh(ctx, userUID, second.RefreshToken))

	// первый refresh-токен подписан валидно, но в кэше лежит второй
	_, _, err = svc.RotateAccess(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	access, gotUID, err := svc.RotateAccess(ctx, second.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.Equal(t, userUID, gotUID)
}

func TestService_RotateAccess_ExpiredCacheEntry(t *testing.T) {
	svc, mr := setupTestService(t)
	ctx := context.Background()
	userUID := uuid.NewString()

	pair, err := svc.Issue(userUID)
	require.NoError(t, err)
	require.NoError(t, svc.StoreRefresh(ctx, userUID, pair.RefreshToken))

	mr.FastForward(8 * 24 * time.Hour)

	_, _, err = svc.RotateAccess(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_Revoke_Idempotent(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Revoke(ctx, uuid.NewString()))
}
