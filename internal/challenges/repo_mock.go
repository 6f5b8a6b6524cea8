package challenges

import (
	"context"
	"sort"
)

type repoMock struct {
	challenges     []*Challenge
	participations []Participation
	nextID         int
}

func newRepoMock() *repoMock {
	return &repoMock{
		nextID: 1,
	}
}

func (r *repoMock) GetByStartDate(_ context.Context, startDate string) (*Challenge, error) {
	var candidates []*Challenge
	for _, c := range r.challenges {
		if c.StartDate == startDate {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrChallengeNotFound
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ID < candidates[j].ID
	})
	return candidates[0], nil
}

func (r *repoMock) GetActive(_ context.Context, date string) (*Challenge, error) {
	var candidates []*Challenge
	for _, c := range r.challenges {
		if c.StartDate <= date && c.EndDate >= date {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrChallengeNotFound
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].StartDate != candidates[j].StartDate {
			return candidates[i].StartDate > candidates[j].StartDate
		}
		return candidates[i].ID < candidates[j].ID
	})
	return candidates[0], nil
}

func (r *repoMock) Add(_ context.Context, exerciseID int, startDate, endDate string) (*Challenge, error) {
	c := &Challenge{
		ID:         r.nextID,
		ExerciseID: exerciseID,
		StartDate:  startDate,
		EndDate:    endDate,
	}
	r.nextID++
	r.challenges = append(r.challenges, c)
	return c, nil
}

func (r *repoMock) AddParticipation(_ context.Context, p Participation) error {
	p.ID = r.nextID
	r.nextID++
	r.participations = append(r.participations, p)
	return nil
}
