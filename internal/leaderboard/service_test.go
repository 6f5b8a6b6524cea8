package leaderboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoMock struct {
	top                   []Row
	attempts              []Attempt
	topCalls              int
	challengeAttemptCalls int
}

func (r *repoMock) TopUsers(_ context.Context, _ int) ([]Row, error) {
	r.topCalls++
	return r.top, nil
}

func (r *repoMock) ChallengeAttempts(_ context.Context, _ int) ([]Attempt, error) {
	r.challengeAttemptCalls++
	return r.attempts, nil
}

func TestService_GlobalTop_Cached(t *testing.T) {
	repo := &repoMock{
		top: []Row{
			{UserID: 1, Username: "A", Points: 300},
			{UserID: 2, Username: "B", Points: 120},
		},
	}
	service := NewService(repo)
	ctx := context.Background()

	top, err := service.GlobalTop(ctx)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "A", top[0].Username)

	// second call is served from cache
	top, err = service.GlobalTop(ctx)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, 1, repo.topCalls)
}

func TestService_GlobalTop_CorruptCacheEntry(t *testing.T) {
	repo := &repoMock{
		top: []Row{
			{UserID: 1, Username: "A", Points: 300},
		},
	}
	service := NewService(repo)
	ctx := context.Background()

	err := service.cache.Set([]byte(globalTopCacheKey), []byte("{not-json"), cacheExpireSeconds)
	require.NoError(t, err)

	// a cache entry that fails to unmarshal falls through to the repo
	top, err := service.GlobalTop(ctx)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "A", top[0].Username)
	assert.Equal(t, 1, repo.topCalls)
}

func TestService_ChallengeRanking(t *testing.T) {
	repo := &repoMock{
		attempts: []Attempt{
			{UserID: 1, Username: "A", WeightKg: 100, Reps: 5},
			{UserID: 2, Username: "B", WeightKg: 100, Reps: 8},
			{UserID: 3, Username: "C", WeightKg: 90, Reps: 10},
		},
	}
	service := NewService(repo)
	ctx := context.Background()

	ranked, err := service.ChallengeRanking(ctx, 1)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "B", ranked[0].Username)

	_, err = service.ChallengeRanking(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.challengeAttemptCalls)
}

func TestService_MyStanding(t *testing.T) {
	repo := &repoMock{
		attempts: []Attempt{
			{UserID: 1, Username: "A", WeightKg: 100, Reps: 5},
			{UserID: 1, Username: "A", WeightKg: 90, Reps: 12},
		},
	}
	service := NewService(repo)

	best, err := service.MyStanding(context.Background(), 1, 1)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, 90.0, best.WeightKg)

	none, err := service.MyStanding(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Nil(t, none)
}
