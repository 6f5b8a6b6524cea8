package records

// PersonalRecord is the heaviest weight a user ever logged for an exercise,
// together with the reps and date of the qualifying entry.
type PersonalRecord struct {
	ID           int     `json:"id"`
	ExerciseID   int     `json:"exerciseId"`
	ExerciseName string  `json:"exerciseName,omitempty"`
	MuscleGroup  string  `json:"muscleGroup,omitempty"`
	MaxWeightKg  float64 `json:"maxWeight"`
	Reps         int     `json:"reps"`
	AchievedDate string  `json:"achievedDate"`
}

// GroupByMuscleGroup keeps the incoming order within each group, which the
// store already sorts by max weight descending.
func GroupByMuscleGroup(records []PersonalRecord) map[string][]PersonalRecord {
	grouped := make(map[string][]PersonalRecord)
	for _, r := range records {
		grouped[r.MuscleGroup] = append(grouped[r.MuscleGroup], r)
	}
	return grouped
}
