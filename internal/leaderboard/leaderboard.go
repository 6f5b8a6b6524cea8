package leaderboard

import "sort"

// Row is one line of the global leaderboard.
type Row struct {
	UserID   int    `json:"userId"`
	Username string `json:"username"`
	Points   int    `json:"points"`
}

// Attempt is one challenge participation, fetched in insertion order.
type Attempt struct {
	UserID     int     `json:"userId"`
	Username   string  `json:"username"`
	WeightKg   float64 `json:"weight"`
	Reps       int     `json:"reps"`
	DistanceKm float64 `json:"distance,omitempty"`
}

// beats reports whether a strictly outranks b: weight first, then reps,
// then distance. Full ties do not beat each other.
func beats(a, b Attempt) bool {
	if a.WeightKg != b.WeightKg {
		return a.WeightKg > b.WeightKg
	}
	if a.Reps != b.Reps {
		return a.Reps > b.Reps
	}
	return a.DistanceKm > b.DistanceKm
}

// RankAttempts reduces participation rows to each user's best attempt and
// ranks those by weight, reps and distance descending, keeping at most topN.
// Attempts must come in insertion order: it is the final tie-break, both for
// picking a user's best among equal attempts and for ordering fully tied
// users, so the same rows always rank the same way.
func RankAttempts(attempts []Attempt, topN int) []Attempt {
	bestByUser := make(map[int]Attempt)
	userOrder := make([]int, 0)
	for _, a := range attempts {
		best, seen := bestByUser[a.UserID]
		if !seen {
			bestByUser[a.UserID] = a
			userOrder = append(userOrder, a.UserID)
			continue
		}
		if beats(a, best) {
			bestByUser[a.UserID] = a
		}
	}

	ranked := make([]Attempt, 0, len(userOrder))
	for _, userID := range userOrder {
		ranked = append(ranked, bestByUser[userID])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return beats(ranked[i], ranked[j])
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// BestAttempt returns the user's strongest single attempt, scored as
// weight times reps. Nil when the user has no attempts.
func BestAttempt(attempts []Attempt, userID int) *Attempt {
	var best *Attempt
	for i := range attempts {
		a := attempts[i]
		if a.UserID != userID {
			continue
		}
		if best == nil || a.WeightKg*float64(a.Reps) > best.WeightKg*float64(best.Reps) {
			best = &a
		}
	}
	return best
}
