package records

import (
	"context"
	"fmt"

	"github.com/2beens/fitstride/internal/telemetry/metrics"
	"github.com/2beens/fitstride/internal/telemetry/tracing"
	"github.com/2beens/fitstride/internal/workouts"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

//go:generate mockgen -source=aggregator.go -destination=mocks_test.go -package=records

type recordsStore interface {
	UpsertIfGreater(ctx context.Context, userID, exerciseID int, weightKg float64, reps int, achievedDate string) (bool, error)
}

// Aggregator keeps personal records in sync with saved workout entries.
type Aggregator struct {
	store   recordsStore
	metrics *metrics.Manager
}

func NewAggregator(store recordsStore, metrics *metrics.Manager) *Aggregator {
	return &Aggregator{
		store:   store,
		metrics: metrics,
	}
}

// UpdateFromEntries checks each saved entry, in submission order, against the
// stored personal record for its exercise. One failed entry does not stop the
// rest, the errors are combined and returned at the end.
func (a *Aggregator) UpdateFromEntries(
	ctx context.Context,
	userID int,
	date string,
	entries []workouts.EntryInput,
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.aggregator.updateFromEntries")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.Int("entries.count", len(entries)),
	)

	for _, e := range entries {
		if e.WeightKg <= 0 {
			// bodyweight / cardio entries carry no record weight
			continue
		}

		updated, upsertErr := a.store.UpsertIfGreater(ctx, userID, e.ExerciseID, e.WeightKg, e.Reps, date)
		if upsertErr != nil {
			err = multierr.Append(err, fmt.Errorf("record for exercise %d: %w", e.ExerciseID, upsertErr))
			continue
		}
		if updated {
			log.Debugf("new personal record for user %d, exercise %d: %.1f kg", userID, e.ExerciseID, e.WeightKg)
			a.metrics.CounterPersonalRecords.Inc()
		}
	}

	return err
}
