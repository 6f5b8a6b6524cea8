package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2beens/fitstride/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	topUsersLimit = 10

	// leaderboards tolerate slightly stale data
	cacheExpireSeconds = 60

	globalTopCacheKey = "leaderboard::global"
)

type leaderboardRepo interface {
	TopUsers(ctx context.Context, limit int) ([]Row, error)
	ChallengeAttempts(ctx context.Context, challengeID int) ([]Attempt, error)
}

type Service struct {
	repo  leaderboardRepo
	cache *freecache.Cache
}

func NewService(repo leaderboardRepo) *Service {
	megabyte := 1024 * 1024
	return &Service{
		repo:  repo,
		cache: freecache.NewCache(megabyte),
	}
}

// GlobalTop returns the top users by cumulative points, cached briefly.
func (s *Service) GlobalTop(ctx context.Context) (_ []Row, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "leaderboard.service.globalTop")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if cached, err := s.cache.Get([]byte(globalTopCacheKey)); err == nil {
		var top []Row
		if unmarshalErr := json.Unmarshal(cached, &top); unmarshalErr != nil {
			log.Errorf("failed to unmarshal cached global leaderboard: %s", unmarshalErr)
		} else {
			return top, nil
		}
	}

	top, err := s.repo.TopUsers(ctx, topUsersLimit)
	if err != nil {
		return nil, err
	}

	s.cacheSet(globalTopCacheKey, top)

	return top, nil
}

// ChallengeRanking returns the ranking for a challenge, each user by their
// best attempt, cached briefly.
func (s *Service) ChallengeRanking(ctx context.Context, challengeID int) (_ []Attempt, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "leaderboard.service.challengeRanking")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("challenge.id", challengeID))

	cacheKey := fmt.Sprintf("leaderboard::challenge::%d", challengeID)
	if cached, err := s.cache.Get([]byte(cacheKey)); err == nil {
		var ranked []Attempt
		if unmarshalErr := json.Unmarshal(cached, &ranked); unmarshalErr != nil {
			log.Errorf("failed to unmarshal cached challenge ranking: %s", unmarshalErr)
		} else {
			return ranked, nil
		}
	}

	attempts, err := s.repo.ChallengeAttempts(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	ranked := RankAttempts(attempts, topUsersLimit)
	s.cacheSet(cacheKey, ranked)

	return ranked, nil
}

// MyStanding returns the user's best attempt in the challenge, nil when the
// user has not participated. Never cached, it is per-user.
func (s *Service) MyStanding(ctx context.Context, challengeID, userID int) (_ *Attempt, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "leaderboard.service.myStanding")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("challenge.id", challengeID),
		attribute.Int("user.id", userID),
	)

	attempts, err := s.repo.ChallengeAttempts(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	return BestAttempt(attempts, userID), nil
}

func (s *Service) cacheSet(key string, value any) {
	valueJson, err := json.Marshal(value)
	if err != nil {
		log.Errorf("failed to marshal leaderboard cache value for %s: %s", key, err)
		return
	}
	if err := s.cache.Set([]byte(key), valueJson, cacheExpireSeconds); err != nil {
		log.Errorf("failed to set leaderboard cache for %s: %s", key, err)
	}
}
