package system

import (
	"github.com/emberhollow/settlement/internal/component"
	"github.com/emberhollow/settlement/internal/core/ecs"
	"github.com/emberhollow/settlement/internal/data"
)

// handleCold runs while the sticky sheltering flag is set. Returns true when
// the citizen's cycle is resolved (sheltering, heading to shelter); false
// lets the rest of the cascade proceed: either the urgent-work carve-out
// applies, or no warm shelter is reachable and standing still would change
// nothing.
func (s *CitizenAISystem) handleCold(tick uint64, id ecs.EntityID, cit *component.Citizen, pos *component.Position, needs *component.Needs, mov *component.Movement) bool {
	st := s.deps.State

	// Carve-out: warm enough to function, on duty, and the workplace is an
	// active construction or upgrade site. Such a worker keeps working
	// rather than hiding indoors while the settlement stalls.
	if needs.Warmth >= WarmthWorkCritical {
		if w, ok := st.Workers.Get(id); ok && w.OnDuty(s.deps.Clock.Hour(tick)) && s.urgentWorkPending(w) {
			return false
		}
	}

	// Below the working floor a route to the workplace is a lapsed
	// carve-out, not a shelter route. Drop it so the branches below
	// re-derive a shelter goal instead of walking the rest of the way
	// to the site.
	if mov.Travelling() {
		if w, ok := st.Workers.Get(id); ok && !w.Workplace.IsZero() {
			if b, ok := st.Building(w.Workplace); ok {
				end := mov.Path[len(mov.Path)-1]
				if manhattan(end.X, end.Y, b.TileX, b.TileY) <= AdjacentDistance {
					mov.Abort()
				}
			}
		}
	}

	// Already under a warm roof: stay put until the release threshold.
	if b, ok := st.Building(cit.InsideBuilding); ok {
		if b.Warmth >= WarmShelterFloor {
			cit.Activity = "sheltering"
			mov.StuckCycles = 0
			return true
		}
		st.ExitBuilding(id)
	}

	// En route, presumably to shelter: keep going.
	if mov.Travelling() {
		cit.Activity = "seeking warmth"
		mov.StuckCycles = 0
		return true
	}

	shelterID, shelter := st.NearestWarmShelter(id, pos.TileX, pos.TileY, WarmShelterFloor)
	if shelter == nil {
		return false
	}
	if atBuilding(pos, shelter) {
		if st.EnterBuilding(id, shelterID) {
			cit.Activity = "sheltering"
			mov.StuckCycles = 0
			return true
		}
		return false
	}
	if s.travelTo(id, pos, mov, shelter.TileX, shelter.TileY) {
		cit.Activity = "seeking warmth"
		return true
	}
	return false
}

// goHomeAndSleep routes a tired citizen to bed: assigned home first, then
// any house with a free bed, and as a last resort collapsing on the spot
// when energy is critical. Home status is re-derived from world state every
// cycle, so a house finishing construction mid-walk is picked up naturally.
func (s *CitizenAISystem) goHomeAndSleep(id ecs.EntityID, cit *component.Citizen, pos *component.Position, needs *component.Needs, mov *component.Movement) outcome {
	st := s.deps.State

	if homeID, home, ok := st.HomeOf(id); ok && home.Complete {
		if atBuilding(pos, home) {
			// A full home refuses entry; fall through to the free-bed
			// search rather than sleeping on the doorstep.
			if st.EnterBuilding(id, homeID) {
				s.fallAsleep(cit, mov)
				return outcomeSettled
			}
		} else if home.HasFreeCapacity() && s.travelTo(id, pos, mov, home.TileX, home.TileY) {
			cit.Activity = "heading home"
			return outcomeSettled
		}
	}

	if bid, house := st.NearestBuilding(pos.TileX, pos.TileY, func(_ ecs.EntityID, b *component.Building) bool {
		return b.Kind == data.BuildingHouse && b.HasFreeCapacity()
	}); house != nil {
		if atBuilding(pos, house) {
			if st.EnterBuilding(id, bid) {
				s.fallAsleep(cit, mov)
				return outcomeSettled
			}
		} else if s.travelTo(id, pos, mov, house.TileX, house.TileY) {
			cit.Activity = "finding a bed"
			return outcomeSettled
		}
	}

	if needs.Energy < EnergyCritical {
		// Nowhere to go and barely standing: sleep rough where we are.
		s.fallAsleep(cit, mov)
		return outcomeSettled
	}
	return s.wander(id, cit, pos, needs, mov)
}

func (s *CitizenAISystem) fallAsleep(cit *component.Citizen, mov *component.Movement) {
	cit.IsSleeping = true
	cit.Activity = "sleeping"
	mov.Abort()
	mov.StuckCycles = 0
}
