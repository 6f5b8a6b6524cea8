package challenges

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitstride/internal/telemetry/metrics"
	"github.com/2beens/fitstride/internal/telemetry/tracing"
	"github.com/2beens/fitstride/internal/workouts"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

type participationsRepo interface {
	GetActive(ctx context.Context, date string) (*Challenge, error)
	AddParticipation(ctx context.Context, p Participation) error
}

// Tracker records challenge participations for saved workout entries.
type Tracker struct {
	repo    participationsRepo
	metrics *metrics.Manager
}

func NewTracker(repo participationsRepo, metrics *metrics.Manager) *Tracker {
	return &Tracker{
		repo:    repo,
		metrics: metrics,
	}
}

// TrackParticipation adds one participation row for every entry matching the
// challenge active on the given date. No active challenge means nothing to
// do. Callers treat failures as warnings, a lost participation never fails
// the workout save.
func (t *Tracker) TrackParticipation(
	ctx context.Context,
	userID int,
	date string,
	entries []workouts.EntryInput,
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "challenges.tracker.track")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.String("date", date),
	)

	challenge, err := t.repo.GetActive(ctx, date)
	if err != nil {
		if errors.Is(err, ErrChallengeNotFound) {
			return nil
		}
		return fmt.Errorf("get active challenge: %w", err)
	}

	for _, e := range entries {
		if e.ExerciseID != challenge.ExerciseID {
			continue
		}
		if addErr := t.repo.AddParticipation(ctx, Participation{
			ChallengeID: challenge.ID,
			UserID:      userID,
			Date:        date,
			Sets:        e.Sets,
			WeightKg:    e.WeightKg,
			Reps:        e.Reps,
			DistanceKm:  e.DistanceKm,
		}); addErr != nil {
			err = multierr.Append(err, fmt.Errorf("participation for challenge %d: %w", challenge.ID, addErr))
			continue
		}
		t.metrics.CounterChallengeParticipations.Inc()
	}

	return err
}
