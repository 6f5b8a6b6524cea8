package workouts

import "errors"

// EntryInput is a single exercise performed within a workout, as submitted
// by the client when saving a workout for a given date.
type EntryInput struct {
	ExerciseID int     `json:"exerciseId"`
	Sets       int     `json:"sets"`
	Reps       int     `json:"reps"`
	WeightKg   float64 `json:"weight"`
	DistanceKm float64 `json:"distance,omitempty"`
}

// Validate checks the entry bounds: sets and reps must be positive,
// weight and distance cannot be negative.
func (e EntryInput) Validate() error {
	switch {
	case e.ExerciseID <= 0:
		return errors.New("invalid exercise id")
	case e.Sets <= 0:
		return errors.New("sets must be positive")
	case e.Reps <= 0:
		return errors.New("reps must be positive")
	case e.WeightKg < 0:
		return errors.New("weight cannot be negative")
	case e.DistanceKm < 0:
		return errors.New("distance cannot be negative")
	}
	return nil
}

// Entry is a stored workout entry joined with its exercise metadata.
type Entry struct {
	ID           int     `json:"id"`
	ExerciseID   int     `json:"exerciseId"`
	ExerciseName string  `json:"exerciseName"`
	MuscleGroup  string  `json:"muscleGroup"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps"`
	WeightKg     float64 `json:"weight"`
	DistanceKm   float64 `json:"distance,omitempty"`
}

type Workout struct {
	Date    string  `json:"date"`
	Entries []Entry `json:"exercises"`
}

// SaveResult reports the outcome of a workout save. Warnings carry the
// best-effort followup failures (records update, challenge participation),
// which never fail the save itself.
type SaveResult struct {
	SessionID    int      `json:"sessionId"`
	EntriesAdded int      `json:"entriesAdded"`
	Warnings     []string `json:"warnings,omitempty"`
}

// DeleteResult reports whether a session existed for the given date.
type DeleteResult struct {
	Date    string `json:"date"`
	Deleted bool   `json:"deleted"`
}
