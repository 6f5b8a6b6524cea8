package leaderboard

import (
	"context"

	"github.com/2beens/fitstride/internal/telemetry/tracing"

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

// TopUsers returns the global leaderboard, up to limit users by points.
func (r *Repo) TopUsers(ctx context.Context, limit int) (_ []Row, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.leaderboard.topUsers")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT l.user_id, u.username, l.points
			FROM leaderboard l
			INNER JOIN users u ON u.user_id = l.user_id
			ORDER BY l.points DESC
			LIMIT $1;`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	top := make([]Row, 0)
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.UserID, &row.Username, &row.Points); err != nil {
			return nil, err
		}
		top = append(top, row)
	}

	return top, nil
}

// ChallengeAttempts returns all participations for a challenge in insertion
// order, the order the ranking relies on for reproducible tie-breaks.
func (r *Repo) ChallengeAttempts(ctx context.Context, challengeID int) (_ []Attempt, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.leaderboard.challengeAttempts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("challenge.id", challengeID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT p.user_id, u.username, p.weight, p.reps, COALESCE(p.distance, 0)
			FROM weekly_challenge_participants p
			INNER JOIN users u ON u.user_id = p.user_id
			WHERE p.challenge_id = $1
			ORDER BY p.id ASC;`,
		challengeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	attempts := make([]Attempt, 0)
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.UserID, &a.Username, &a.WeightKg, &a.Reps, &a.DistanceKm); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}

	return attempts, nil
}
