package challenges

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitstride/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrChallengeNotFound = errors.New("challenge not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const challengeSelect = `
	SELECT wc.challenge_id, wc.exercise_id, e.name, e.muscle_group,
	       to_char(wc.start_date, 'YYYY-MM-DD'), to_char(wc.end_date, 'YYYY-MM-DD')
	FROM weekly_challenges wc
	INNER JOIN exercises e ON e.exercise_id = wc.exercise_id`

// GetByStartDate finds the challenge starting exactly on the given Monday.
// Should duplicates ever exist for the same start date, the oldest row wins.
func (r *Repo) GetByStartDate(ctx context.Context, startDate string) (_ *Challenge, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.getByStartDate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("challenge.startDate", startDate))

	var c Challenge
	err = r.db.
		QueryRow(ctx, challengeSelect+`
			WHERE wc.start_date = $1::date
			ORDER BY wc.challenge_id ASC
			LIMIT 1;`, startDate).
		Scan(&c.ID, &c.ExerciseID, &c.ExerciseName, &c.MuscleGroup, &c.StartDate, &c.EndDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}

	return &c, nil
}

// GetActive finds the challenge whose window contains the given date. When
// windows overlap, the most recently started challenge wins.
func (r *Repo) GetActive(ctx context.Context, date string) (_ *Challenge, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.getActive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("date", date))

	var c Challenge
	err = r.db.
		QueryRow(ctx, challengeSelect+`
			WHERE wc.start_date <= $1::date AND wc.end_date >= $1::date
			ORDER BY wc.start_date DESC, wc.challenge_id ASC
			LIMIT 1;`, date).
		Scan(&c.ID, &c.ExerciseID, &c.ExerciseName, &c.MuscleGroup, &c.StartDate, &c.EndDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}

	return &c, nil
}

func (r *Repo) Add(ctx context.Context, exerciseID int, startDate, endDate string) (_ *Challenge, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("exercise.id", exerciseID),
		attribute.String("challenge.startDate", startDate),
	)

	var id int
	if err := r.db.
		QueryRow(ctx, `
			INSERT INTO weekly_challenges (exercise_id, start_date, end_date)
			VALUES ($1, $2::date, $3::date)
			RETURNING challenge_id;`,
			exerciseID, startDate, endDate,
		).
		Scan(&id); err != nil {
		return nil, fmt.Errorf("insert weekly challenge: %w", err)
	}

	return &Challenge{
		ID:         id,
		ExerciseID: exerciseID,
		StartDate:  startDate,
		EndDate:    endDate,
	}, nil
}

func (r *Repo) AddParticipation(ctx context.Context, p Participation) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.addParticipation")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("challenge.id", p.ChallengeID),
		attribute.Int("user.id", p.UserID),
	)

	if _, err := r.db.Exec(
		ctx,
		`
			INSERT INTO weekly_challenge_participants (challenge_id, user_id, participation_date, sets, weight, reps, distance)
			VALUES ($1, $2, $3::date, $4, $5, $6, $7);`,
		p.ChallengeID, p.UserID, p.Date, p.Sets, p.WeightKg, p.Reps, p.DistanceKm,
	); err != nil {
		return fmt.Errorf("insert challenge participation: %w", err)
	}

	return nil
}
