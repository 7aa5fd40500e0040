package system

import (
	"github.com/emberhollow/settlement/internal/component"
	"github.com/emberhollow/settlement/internal/core/ecs"
	coresys "github.com/emberhollow/settlement/internal/core/system"
)

// NeedsDecaySystem applies the per-tick drift of every need scalar. It runs
// after the behavior pass so decisions react to the previous tick's values.
// Phase 3 (Needs).
type NeedsDecaySystem struct {
	deps *Deps
}

func NewNeedsDecaySystem(deps *Deps) *NeedsDecaySystem {
	return &NeedsDecaySystem{deps: deps}
}

func (s *NeedsDecaySystem) Phase() coresys.Phase { return coresys.PhaseNeeds }

func (s *NeedsDecaySystem) Update(tick uint64) {
	st := s.deps.State
	night := s.deps.Clock.IsNight(tick)

	ecs.Each2(st.Needs, st.Citizens, func(id ecs.EntityID, n *component.Needs, cit *component.Citizen) {
		n.Food -= FoodDecayPerTick

		if cit.IsSleeping {
			n.Energy += SleepEnergyPerTick
		} else {
			n.Energy -= EnergyDecayPerTick
		}

		s.driftWarmth(n, cit, night)

		// Health follows the worst of food and warmth.
		if n.Food <= 0 || n.Warmth <= 0 {
			n.Health -= HealthDecayStarved
		} else if n.Food > FoodMeal && n.Warmth > WarmthRelease {
			n.Health += HealthRegenPerTick
		}

		// Happiness drifts toward neutral.
		switch {
		case n.Happiness > 50:
			n.Happiness -= HappinessDriftRate
		case n.Happiness < 50:
			n.Happiness += HappinessDriftRate
		}

		n.Clamp()
	})
}

// driftWarmth pulls warmth toward the heated-interior rating when the
// citizen is inside a warm building, and decays it outdoors, faster at
// night.
func (s *NeedsDecaySystem) driftWarmth(n *component.Needs, cit *component.Citizen, night bool) {
	if b, ok := s.deps.State.Building(cit.InsideBuilding); ok && b.Warmth > 0 {
		if n.Warmth < b.Warmth {
			n.Warmth += (b.Warmth - n.Warmth) * WarmthIndoorGain
		}
		return
	}
	decay := WarmthDecayPerTick
	if night {
		decay += WarmthNightPenalty
	}
	n.Warmth -= decay
}
