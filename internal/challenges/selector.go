package challenges

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/2beens/fitstride/internal/exercises"
	"github.com/2beens/fitstride/internal/telemetry/metrics"
	"github.com/2beens/fitstride/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type challengesRepo interface {
	GetByStartDate(ctx context.Context, startDate string) (*Challenge, error)
	GetActive(ctx context.Context, date string) (*Challenge, error)
	Add(ctx context.Context, exerciseID int, startDate, endDate string) (*Challenge, error)
}

type exercisesLister interface {
	ListAll(ctx context.Context) ([]exercises.Exercise, error)
}

// Selector makes sure every week has its challenge. It runs the same code
// path whether triggered by a page view or by the weekly background ticker.
type Selector struct {
	repo      challengesRepo
	exercises exercisesLister
	metrics   *metrics.Manager
	randIntn  func(n int) int
}

func NewSelector(repo challengesRepo, exercisesLister exercisesLister, metrics *metrics.Manager) *Selector {
	return &Selector{
		repo:      repo,
		exercises: exercisesLister,
		metrics:   metrics,
		randIntn:  rand.Intn,
	}
}

// Ensure returns the challenge for the week containing today, creating one
// with a uniformly random exercise if the week has none yet. The existence
// check by start date is the only dedup guard, so a concurrent first call can
// still insert twice, reads then settle on the oldest row.
func (s *Selector) Ensure(ctx context.Context, today time.Time) (_ *Challenge, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "challenges.selector.ensure")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	start, end := WeekWindow(today)
	span.SetAttributes(attribute.String("week.start", start))

	challenge, err := s.repo.GetByStartDate(ctx, start)
	if err == nil {
		return challenge, nil
	}
	if !errors.Is(err, ErrChallengeNotFound) {
		return nil, err
	}

	all, err := s.exercises.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	if len(all) == 0 {
		return nil, errors.New("no exercises to pick a challenge from")
	}

	picked := all[s.randIntn(len(all))]
	added, err := s.repo.Add(ctx, picked.ID, start, end)
	if err != nil {
		return nil, err
	}
	added.ExerciseName = picked.Name
	added.MuscleGroup = picked.MuscleGroup

	s.metrics.CounterChallengesSelected.Inc()
	log.Infof("new weekly challenge [%s - %s]: %s", start, end, picked.Name)

	return added, nil
}
