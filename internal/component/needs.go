package component

import "github.com/emberhollow/settlement/internal/data"

// DietHistorySize bounds the recent-diet ring. Variety preference looks
// this far back.
const DietHistorySize = 4

// Needs holds the bounded survival scalars, all in [0,100].
type Needs struct {
	Food      float64 `json:"food"`
	Warmth    float64 `json:"warmth"`
	Health    float64 `json:"health"`
	Happiness float64 `json:"happiness"`
	Energy    float64 `json:"energy"`

	// RecentMeals is a bounded ring of the last eaten resource kinds,
	// oldest first.
	RecentMeals []data.ResourceKind `json:"recent_meals,omitempty"`

	// IsColdSheltering is the sticky cold flag: set when warmth crosses
	// below the freezing threshold, cleared only once warmth rises above
	// the strictly higher release threshold. The asymmetric band prevents
	// oscillation at the boundary.
	IsColdSheltering bool `json:"is_cold_sheltering"`
}

// Clamp forces every scalar back into [0,100].
func (n *Needs) Clamp() {
	n.Food = clamp01(n.Food)
	n.Warmth = clamp01(n.Warmth)
	n.Health = clamp01(n.Health)
	n.Happiness = clamp01(n.Happiness)
	n.Energy = clamp01(n.Energy)
}

// RecordMeal appends kinds to the diet ring, evicting the oldest entries.
func (n *Needs) RecordMeal(kinds ...data.ResourceKind) {
	n.RecentMeals = append(n.RecentMeals, kinds...)
	if over := len(n.RecentMeals) - DietHistorySize; over > 0 {
		n.RecentMeals = append(n.RecentMeals[:0], n.RecentMeals[over:]...)
	}
}

// AteRecently reports whether kind appears in the diet ring.
func (n *Needs) AteRecently(kind data.ResourceKind) bool {
	for _, k := range n.RecentMeals {
		if k == kind {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
