package workouts

import (
	"context"
	"fmt"

	"github.com/2beens/fitstride/internal/telemetry/tracing"
	"github.com/2beens/fitstride/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type workoutsRepo interface {
	EnsureSession(ctx context.Context, userID int, date string) (int, error)
	AddEntries(ctx context.Context, sessionID int, entries []EntryInput) error
	DeleteSession(ctx context.Context, userID int, date string) (bool, error)
	ListDates(ctx context.Context, userID int) ([]string, error)
	GetEntries(ctx context.Context, userID int, date string) ([]Entry, error)
}

// recordsUpdater refreshes personal records from freshly saved entries.
type recordsUpdater interface {
	UpdateFromEntries(ctx context.Context, userID int, date string, entries []EntryInput) error
}

// participationTracker records weekly challenge participations for entries
// matching the active challenge.
type participationTracker interface {
	TrackParticipation(ctx context.Context, userID int, date string, entries []EntryInput) error
}

type Service struct {
	repo    workoutsRepo
	records recordsUpdater
	tracker participationTracker
}

func NewService(repo workoutsRepo, records recordsUpdater, tracker participationTracker) *Service {
	return &Service{
		repo:    repo,
		records: records,
		tracker: tracker,
	}
}

// SaveWorkout runs the save pipeline: ensure the session exists, append the
// entries, then refresh personal records and track challenge participation.
// The two followup steps are best-effort, their failures come back as
// warnings on the result instead of failing the save.
func (s *Service) SaveWorkout(ctx context.Context, userID int, date string, entries []EntryInput) (_ *SaveResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.String("workout.date", date),
		attribute.Int("entries.count", len(entries)),
	)

	if _, err := pkg.ParseDate(date); err != nil {
		return nil, fmt.Errorf("invalid date [%s]: %w", date, err)
	}

	sessionID, err := s.repo.EnsureSession(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	if err := s.repo.AddEntries(ctx, sessionID, entries); err != nil {
		return nil, err
	}

	result := &SaveResult{
		SessionID:    sessionID,
		EntriesAdded: len(entries),
	}

	if err := s.records.UpdateFromEntries(ctx, userID, date, entries); err != nil {
		log.Errorf("workout saved for user %d, but records update failed: %s", userID, err)
		result.Warnings = append(result.Warnings, "workout saved, but personal records update failed")
	}

	if err := s.tracker.TrackParticipation(ctx, userID, date, entries); err != nil {
		log.Errorf("workout saved for user %d, but participation tracking failed: %s", userID, err)
		result.Warnings = append(result.Warnings, "workout saved, but challenge participation tracking failed")
	}

	return result, nil
}

func (s *Service) DeleteWorkout(ctx context.Context, userID int, date string) (_ *DeleteResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := pkg.ParseDate(date); err != nil {
		return nil, fmt.Errorf("invalid date [%s]: %w", date, err)
	}

	deleted, err := s.repo.DeleteSession(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	return &DeleteResult{
		Date:    date,
		Deleted: deleted,
	}, nil
}

func (s *Service) ListDates(ctx context.Context, userID int) ([]string, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.listDates")
	defer span.End()

	return s.repo.ListDates(ctx, userID)
}

func (s *Service) GetWorkout(ctx context.Context, userID int, date string) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := pkg.ParseDate(date); err != nil {
		return nil, fmt.Errorf("invalid date [%s]: %w", date, err)
	}

	entries, err := s.repo.GetEntries(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	return &Workout{
		Date:    date,
		Entries: entries,
	}, nil
}
