package system

import (
	"github.com/emberhollow/settlement/internal/component"
	"github.com/emberhollow/settlement/internal/core/ecs"
	"github.com/emberhollow/settlement/internal/data"
)

// decideChild is the reduced cascade for children: survival, sleep, meals,
// festivals, school, play. No work steps, no leisure timers.
func (s *CitizenAISystem) decideChild(tick uint64, id ecs.EntityID, cit *component.Citizen, pos *component.Position, needs *component.Needs, mov *component.Movement, child *component.Child) {
	starving := needs.Food < FoodStarving

	if cit.IsSleeping {
		wake := (needs.Energy >= EnergyFull && s.deps.Clock.IsDaytime(tick)) || starving
		if !wake {
			cit.Activity = "sleeping"
			mov.StuckCycles = 0
			return
		}
		cit.IsSleeping = false
	}

	if starving {
		s.handleStarving(id, cit, pos, needs, mov)
		return
	}

	if mov.Travelling() {
		mov.StuckCycles = 0
		return
	}

	var out outcome
	switch {
	case needs.Energy < EnergyTired || s.deps.Clock.IsNight(tick):
		out = s.goHomeAndSleep(id, cit, pos, needs, mov)
	case needs.Food < FoodMeal:
		out = s.eatMeal(id, cit, pos, needs, mov, false)
	default:
		if actOut, ok := s.joinActivity(id, cit, pos, mov); ok {
			out = actOut
			break
		}
		if schoolOut, ok := s.attendSchool(id, cit, pos, mov, child, tick); ok {
			out = schoolOut
			break
		}
		out = s.wander(id, cit, pos, needs, mov)
	}
	s.applyStuck(id, cit, pos, needs, mov, out)
}

// attendSchool sends the child to a school during the day and accrues
// study progress while present. ok=false when no school stands or it is
// outside school hours.
func (s *CitizenAISystem) attendSchool(id ecs.EntityID, cit *component.Citizen, pos *component.Position, mov *component.Movement, child *component.Child, tick uint64) (outcome, bool) {
	if !s.deps.Clock.IsDaytime(tick) {
		return 0, false
	}
	st := s.deps.State

	bid, school := st.NearestBuilding(pos.TileX, pos.TileY, func(_ ecs.EntityID, b *component.Building) bool {
		return b.Kind == data.BuildingSchool
	})
	if school == nil {
		return 0, false
	}

	if atBuilding(pos, school) {
		st.EnterBuilding(id, bid)
		child.School = bid
		child.SchoolProgress += SchoolProgressPerCycle
		cit.Activity = "at school"
		mov.StuckCycles = 0
		return outcomeSettled, true
	}
	if s.travelTo(id, pos, mov, school.TileX, school.TileY) {
		cit.Activity = "heading to school"
		return outcomeSettled, true
	}
	return outcomeRestless, true
}
