package workouts

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitstride/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// EnsureSession inserts a workout session for (userID, date) unless one
// already exists, and returns the session id either way. The unique
// constraint on (user_id, workout_date) makes the insert a silent no-op
// for repeated saves on the same day.
func (r *Repo) EnsureSession(ctx context.Context, userID int, date string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.ensureSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.String("workout.date", date),
	)

	if _, err := r.db.Exec(
		ctx,
		`
			INSERT INTO workouts (user_id, workout_date)
			VALUES ($1, $2::date)
			ON CONFLICT (user_id, workout_date) DO NOTHING;`,
		userID, date,
	); err != nil {
		return 0, fmt.Errorf("insert workout session: %w", err)
	}

	var sessionID int
	if err := r.db.
		QueryRow(ctx, `
			SELECT workout_id
			FROM workouts
			WHERE user_id = $1 AND workout_date = $2::date;`,
			userID, date,
		).
		Scan(&sessionID); err != nil {
		return 0, fmt.Errorf("get workout session id: %w", err)
	}

	return sessionID, nil
}

// AddEntries appends the given entries to an existing session. Entries are
// additive, so saving the same exercise twice yields two rows.
func (r *Repo) AddEntries(ctx context.Context, sessionID int, entries []EntryInput) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.addEntries")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("session.id", sessionID),
		attribute.Int("entries.count", len(entries)),
	)

	for _, e := range entries {
		if _, execErr := r.db.Exec(
			ctx,
			`
				INSERT INTO workout_exercises (workout_id, exercise_id, sets, reps, weight, distance)
				VALUES ($1, $2, $3, $4, $5, $6);`,
			sessionID, e.ExerciseID, e.Sets, e.Reps, e.WeightKg, e.DistanceKm,
		); execErr != nil {
			err = multierr.Append(err, fmt.Errorf("insert entry [exercise %d]: %w", e.ExerciseID, execErr))
		}
	}

	return err
}

// DeleteSession removes the session for (userID, date) together with its
// entries. A missing session is not an error, the returned flag is false.
func (r *Repo) DeleteSession(ctx context.Context, userID int, date string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.deleteSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.String("workout.date", date),
	)

	var sessionID int
	err = r.db.
		QueryRow(ctx, `
			SELECT workout_id
			FROM workouts
			WHERE user_id = $1 AND workout_date = $2::date;`,
			userID, date,
		).
		Scan(&sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("get workout session: %w", err)
	}

	// entries first, they reference the session
	if _, err := r.db.Exec(
		ctx,
		`DELETE FROM workout_exercises WHERE workout_id = $1;`,
		sessionID,
	); err != nil {
		return false, fmt.Errorf("delete workout entries: %w", err)
	}

	if _, err := r.db.Exec(
		ctx,
		`DELETE FROM workouts WHERE workout_id = $1;`,
		sessionID,
	); err != nil {
		return false, fmt.Errorf("delete workout session: %w", err)
	}

	return true, nil
}

func (r *Repo) ListDates(ctx context.Context, userID int) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listDates")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT to_char(workout_date, 'YYYY-MM-DD')
			FROM workouts
			WHERE user_id = $1
			ORDER BY workout_date ASC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	dates := make([]string, 0)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}

	return dates, nil
}

// GetEntries returns the entries for (userID, date) joined with exercise
// metadata, in insertion order. No session or no entries means an empty
// slice, never an error.
func (r *Repo) GetEntries(ctx context.Context, userID int, date string) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.getEntries")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.String("workout.date", date),
	)

	rows, err := r.db.Query(
		ctx,
		`
			SELECT we.id, we.exercise_id, e.name, e.muscle_group,
			       we.sets, we.reps, we.weight, COALESCE(we.distance, 0)
			FROM workout_exercises we
			INNER JOIN workouts w ON w.workout_id = we.workout_id
			INNER JOIN exercises e ON e.exercise_id = we.exercise_id
			WHERE w.user_id = $1 AND w.workout_date = $2::date
			ORDER BY we.id ASC;`,
		userID, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.ExerciseID, &e.ExerciseName, &e.MuscleGroup,
			&e.Sets, &e.Reps, &e.WeightKg, &e.DistanceKm,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}
