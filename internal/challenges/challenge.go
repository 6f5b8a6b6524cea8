package challenges

import (
	"time"

	"github.com/2beens/fitstride/pkg"
)

// Challenge is the exercise picked for one Monday-to-Sunday week. All users
// see the same challenge for a given week.
type Challenge struct {
	ID           int    `json:"id"`
	ExerciseID   int    `json:"exerciseId"`
	ExerciseName string `json:"exerciseName,omitempty"`
	MuscleGroup  string `json:"muscleGroup,omitempty"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
}

// Participation is one logged attempt at the weekly challenge exercise. Every
// matching workout entry produces a row, there is no per-user dedup.
type Participation struct {
	ID          int     `json:"id"`
	ChallengeID int     `json:"challengeId"`
	UserID      int     `json:"userId"`
	Date        string  `json:"date"`
	Sets        int     `json:"sets"`
	WeightKg    float64 `json:"weight"`
	Reps        int     `json:"reps"`
	DistanceKm  float64 `json:"distance,omitempty"`
}

// WeekWindow returns the Monday and Sunday of the week containing the given
// day, as calendar dates. Monday counts as day zero of the week.
func WeekWindow(today time.Time) (start string, end string) {
	daysSinceMonday := (int(today.Weekday()) + 6) % 7
	monday := today.AddDate(0, 0, -daysSinceMonday)
	sunday := monday.AddDate(0, 0, 6)
	return pkg.DateString(monday), pkg.DateString(sunday)
}
