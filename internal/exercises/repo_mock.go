package exercises

import "context"

type repoMock struct {
	exercises []Exercise
}

func newRepoMock(exercises ...Exercise) *repoMock {
	return &repoMock{
		exercises: exercises,
	}
}

func (r *repoMock) ListAll(_ context.Context) ([]Exercise, error) {
	return r.exercises, nil
}

func (r *repoMock) Get(_ context.Context, id int) (*Exercise, error) {
	for _, e := range r.exercises {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, ErrExerciseNotFound
}
