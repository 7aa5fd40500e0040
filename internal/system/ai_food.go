package system

import (
	"github.com/emberhollow/settlement/internal/component"
	"github.com/emberhollow/settlement/internal/core/ecs"
	"github.com/emberhollow/settlement/internal/core/event"
)

// handleStarving is the emergency food branch: abort whatever was in flight,
// leave any occupied building, and get food by the shortest means available.
func (s *CitizenAISystem) handleStarving(id ecs.EntityID, cit *component.Citizen, pos *component.Position, needs *component.Needs, mov *component.Movement) {
	mov.Abort()
	s.deps.State.ExitBuilding(id)
	if cit.Activity != "starving" {
		event.Emit(s.deps.Bus, event.CitizenStarving{Citizen: uint64(id)})
	}
	cit.Activity = "starving"
	out := s.eatMeal(id, cit, pos, needs, mov, true)
	s.applyStuck(id, cit, pos, needs, mov, out)
}

// eatMeal feeds the citizen from the shared stockpile. Meal choice prefers
// dietary variety and cooked dishes; the meal's full effect profile applies,
// not just hunger relief. With the stockpile empty the citizen heads for the
// nearest storage instead, so arriving deliveries get eaten promptly.
//
// urgent marks the starvation branch: the activity label stays "starving"
// until the need actually recovers.
func (s *CitizenAISystem) eatMeal(id ecs.EntityID, cit *component.Citizen, pos *component.Position, needs *component.Needs, mov *component.Movement, urgent bool) outcome {
	st := s.deps.State

	if meal := st.Stockpile.PickMeal(needs.RecentMeals, s.deps.Foods); meal != nil {
		if st.Stockpile.Remove(meal.Kind, meal.StockCost) {
			needs.Food += meal.Food
			needs.Happiness += meal.Happiness
			needs.Warmth += meal.Warmth
			needs.Energy += meal.Energy
			needs.Clamp()
			if len(meal.Ingredients) > 0 {
				needs.RecordMeal(meal.Ingredients...)
			} else {
				needs.RecordMeal(meal.Kind)
			}
			if !urgent {
				cit.Activity = "eating"
			}
			mov.StuckCycles = 0
			return outcomeSettled
		}
	}

	if sid, storage := st.NearestStorage(pos.TileX, pos.TileY); storage != nil && !sid.IsZero() {
		if atBuilding(pos, storage) {
			// Standing at an empty storage. Wait here; stationary waiting
			// beside the delivery point is a deliberate choice.
			if !urgent {
				cit.Activity = "waiting for food"
			}
			mov.StuckCycles = 0
			return outcomeSettled
		}
		if s.travelTo(id, pos, mov, storage.TileX, storage.TileY) {
			if !urgent {
				cit.Activity = "seeking food"
			}
			return outcomeSettled
		}
	}
	return outcomeRestless
}
