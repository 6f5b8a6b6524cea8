package records

import (
	"context"
	"fmt"

	"github.com/2beens/fitstride/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// UpsertIfGreater stores a new personal record for (userID, exerciseID) only
// when weight strictly beats the stored max. The WHERE guard on the conflict
// update makes the store the single arbiter for concurrent writers, ties and
// lower weights change nothing. Returns whether a record was set or improved.
func (r *Repo) UpsertIfGreater(
	ctx context.Context,
	userID, exerciseID int,
	weightKg float64,
	reps int,
	achievedDate string,
) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.upsertIfGreater")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.Int("exercise.id", exerciseID),
		attribute.Float64("weight", weightKg),
	)

	tag, err := r.db.Exec(
		ctx,
		`
			INSERT INTO personal_records (user_id, exercise_id, max_weight, reps, achieved_date)
			VALUES ($1, $2, $3, $4, $5::date)
			ON CONFLICT (user_id, exercise_id) DO UPDATE
			SET max_weight = EXCLUDED.max_weight,
			    reps = EXCLUDED.reps,
			    achieved_date = EXCLUDED.achieved_date
			WHERE personal_records.max_weight < EXCLUDED.max_weight;`,
		userID, exerciseID, weightKg, reps, achievedDate,
	)
	if err != nil {
		return false, fmt.Errorf("upsert personal record: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ListForUser returns the user's records joined with exercise metadata,
// ordered by muscle group, heaviest first within each group.
func (r *Repo) ListForUser(ctx context.Context, userID int) (_ []PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.listForUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT pr.id, pr.exercise_id, e.name, e.muscle_group,
			       pr.max_weight, pr.reps, to_char(pr.achieved_date, 'YYYY-MM-DD')
			FROM personal_records pr
			INNER JOIN exercises e ON e.exercise_id = pr.exercise_id
			WHERE pr.user_id = $1
			ORDER BY e.muscle_group ASC, pr.max_weight DESC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rows2records(rows)
}

func rows2records(rows pgx.Rows) ([]PersonalRecord, error) {
	personalRecords := make([]PersonalRecord, 0)
	for rows.Next() {
		var pr PersonalRecord
		if err := rows.Scan(
			&pr.ID, &pr.ExerciseID, &pr.ExerciseName, &pr.MuscleGroup,
			&pr.MaxWeightKg, &pr.Reps, &pr.AchievedDate,
		); err != nil {
			return nil, err
		}
		personalRecords = append(personalRecords, pr)
	}
	return personalRecords, nil
}
