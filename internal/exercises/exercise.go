package exercises

// Exercise is immutable reference data, seeded at db setup
type Exercise struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup"`
}

// GroupByMuscleGroup groups exercises by their muscle group tag,
// for the track-workout page
func GroupByMuscleGroup(all []Exercise) map[string][]Exercise {
	grouped := make(map[string][]Exercise)
	for _, ex := range all {
		grouped[ex.MuscleGroup] = append(grouped[ex.MuscleGroup], ex)
	}
	return grouped
}
