package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// INFO: https://github.com/go-redis/redis/issues/1029
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
	)
}

func TestService_LoginLogout(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer func() {
		require.NoError(t, rdb.Close())
	}()

	authService := NewService(time.Hour, rdb)
	require.NotNil(t, authService)
	assert.NotNil(t, authService.redisClient)
	assert.Equal(t, time.Hour, authService.ttl)

	testToken := "test_token"
	authService.RandStringFunc = func(s int) (string, error) {
		return testToken, nil
	}

	now := time.Now()
	userID := 42
	sessionKey := sessionKeyPrefix + testToken
	sessionVal := fmt.Sprintf("%d||%d", userID, now.Unix())

	mock.ExpectSet(sessionKey, sessionVal, 0).SetVal(sessionVal)
	mock.ExpectSAdd(tokensSetKey, testToken).SetVal(1)

	token, err := authService.Login(context.Background(), userID, now)
	require.NoError(t, err)
	assert.Equal(t, testToken, token)

	mock.ExpectGet(sessionKey).SetVal(sessionVal)
	mock.ExpectDel(sessionKey).SetVal(1)
	mock.ExpectSRem(tokensSetKey, testToken).SetVal(1)

	loggedOut, err := authService.Logout(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, loggedOut)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Logout_UnknownToken(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer func() {
		require.NoError(t, rdb.Close())
	}()

	authService := NewService(time.Hour, rdb)

	mock.ExpectGet(sessionKeyPrefix + "unknown").RedisNil()

	loggedOut, err := authService.Logout(context.Background(), "unknown")
	require.NoError(t, err)
	assert.False(t, loggedOut)
}

func TestLoginChecker_UserID(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer func() {
		require.NoError(t, rdb.Close())
	}()

	checker := NewLoginChecker(time.Hour, rdb)

	now := time.Now()
	freshKey := sessionKeyPrefix + "fresh"
	mock.ExpectGet(freshKey).SetVal(fmt.Sprintf("%d||%d", 13, now.Unix()))

	userID, err := checker.UserID(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Equal(t, 13, userID)

	// expired session
	staleKey := sessionKeyPrefix + "stale"
	mock.ExpectGet(staleKey).SetVal(fmt.Sprintf("%d||%d", 13, now.Add(-2*time.Hour).Unix()))

	_, err = checker.UserID(context.Background(), "stale")
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	// unknown token
	mock.ExpectGet(sessionKeyPrefix + "unknown").RedisNil()

	_, err = checker.UserID(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	// garbage session value
	mock.ExpectGet(sessionKeyPrefix + "garbage").SetVal("not-a-session")

	_, err = checker.UserID(context.Background(), "garbage")
	require.Error(t, err)
}

func TestSessionValueRoundtrip(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	userID, createdAt, err := parseSessionValue(sessionValue(77, now))
	require.NoError(t, err)
	assert.Equal(t, 77, userID)
	assert.Equal(t, now.Unix(), createdAt.Unix())

	_, _, err = parseSessionValue("77")
	require.Error(t, err)
	_, _, err = parseSessionValue("x||123")
	require.Error(t, err)
	_, _, err = parseSessionValue("77||y")
	require.Error(t, err)
}
