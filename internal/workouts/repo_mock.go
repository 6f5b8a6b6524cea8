package workouts

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

type repoMock struct {
	sessions map[string]int // "userID||date" -> session id
	entries  map[int][]EntryInput
	nextID   int
}

func newRepoMock() *repoMock {
	return &repoMock{
		sessions: make(map[string]int),
		entries:  make(map[int][]EntryInput),
		nextID:   1,
	}
}

func sessionKey(userID int, date string) string {
	return fmt.Sprintf("%d||%s", userID, date)
}

func (r *repoMock) EnsureSession(_ context.Context, userID int, date string) (int, error) {
	key := sessionKey(userID, date)
	if id, ok := r.sessions[key]; ok {
		return id, nil
	}
	id := r.nextID
	r.nextID++
	r.sessions[key] = id
	return id, nil
}

func (r *repoMock) AddEntries(_ context.Context, sessionID int, entries []EntryInput) error {
	r.entries[sessionID] = append(r.entries[sessionID], entries...)
	return nil
}

func (r *repoMock) DeleteSession(_ context.Context, userID int, date string) (bool, error) {
	key := sessionKey(userID, date)
	id, ok := r.sessions[key]
	if !ok {
		return false, nil
	}
	delete(r.entries, id)
	delete(r.sessions, key)
	return true, nil
}

func (r *repoMock) ListDates(_ context.Context, userID int) ([]string, error) {
	prefix := fmt.Sprintf("%d||", userID)
	dates := make([]string, 0)
	for key := range r.sessions {
		if strings.HasPrefix(key, prefix) {
			dates = append(dates, strings.TrimPrefix(key, prefix))
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func (r *repoMock) GetEntries(_ context.Context, userID int, date string) ([]Entry, error) {
	id, ok := r.sessions[sessionKey(userID, date)]
	if !ok {
		return []Entry{}, nil
	}
	entries := make([]Entry, 0, len(r.entries[id]))
	for i, e := range r.entries[id] {
		entries = append(entries, Entry{
			ID:         i + 1,
			ExerciseID: e.ExerciseID,
			Sets:       e.Sets,
			Reps:       e.Reps,
			WeightKg:   e.WeightKg,
			DistanceKm: e.DistanceKm,
		})
	}
	return entries, nil
}
