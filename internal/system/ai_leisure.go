package system

import (
	"github.com/emberhollow/settlement/internal/component"
	"github.com/emberhollow/settlement/internal/core/ecs"
	"github.com/emberhollow/settlement/internal/data"
	"github.com/emberhollow/settlement/internal/world"
)

// joinActivity handles collective activities (festivals). ok=false means no
// activity is running or this citizen has no part in it; the provider may
// report either at any time, including mid-phase, and the cascade simply
// moves on.
func (s *CitizenAISystem) joinActivity(id ecs.EntityID, cit *component.Citizen, pos *component.Position, mov *component.Movement) (outcome, bool) {
	prov := s.deps.activity()
	if !prov.Active() || prov.Phase() == world.ActivityEnded || prov.Phase() == world.ActivityNone {
		return 0, false
	}

	if asg, ok := prov.AssignmentFor(id); ok {
		if manhattan(pos.TileX, pos.TileY, asg.DestX, asg.DestY) <= AdjacentDistance {
			cit.Activity = asg.Label
			mov.StuckCycles = 0
			return outcomeSettled, true
		}
		if s.travelTo(id, pos, mov, asg.DestX, asg.DestY) {
			cit.Activity = asg.Label
			return outcomeSettled, true
		}
		return outcomeRestless, true
	}

	// No personal assignment yet: drift to the gathering area while the
	// activity assembles.
	if prov.Phase() == world.ActivityAssembling {
		gx, gy := prov.GatheringArea()
		if manhattan(pos.TileX, pos.TileY, gx, gy) <= SocializeRadius {
			cit.Activity = "gathering"
			mov.StuckCycles = 0
			return outcomeSettled, true
		}
		if s.travelTo(id, pos, mov, gx, gy) {
			cit.Activity = "gathering"
			return outcomeSettled, true
		}
		return outcomeRestless, true
	}
	return 0, false
}

// tryLeisure is the off-duty dispatcher: pick one pastime at random and
// start it. ok=false means the chosen pastime was unavailable (no tavern,
// no partner nearby); the cascade continues rather than retrying.
func (s *CitizenAISystem) tryLeisure(hour int, id ecs.EntityID, cit *component.Citizen, pos *component.Position, needs *component.Needs, mov *component.Movement) (outcome, bool) {
	st := s.deps.State

	switch s.deps.Rng.Intn(4) {
	case 0: // tavern visit
		if bid, tavern := st.NearestBuilding(pos.TileX, pos.TileY, func(_ ecs.EntityID, b *component.Building) bool {
			return b.Kind == data.BuildingTavern && b.HasFreeCapacity()
		}); tavern != nil {
			if atBuilding(pos, tavern) {
				st.EnterBuilding(id, bid)
				cit.TavernTicks = TavernDuration
				cit.Activity = "at the tavern"
				mov.StuckCycles = 0
				return outcomeSettled, true
			}
			if s.travelTo(id, pos, mov, tavern.TileX, tavern.TileY) {
				cit.Activity = "heading to the tavern"
				return outcomeSettled, true
			}
		}

	case 1: // sit at a campfire
		if _, fire := st.NearestBuilding(pos.TileX, pos.TileY, func(_ ecs.EntityID, b *component.Building) bool {
			return b.Kind == data.BuildingCampfire
		}); fire != nil {
			if atBuilding(pos, fire) {
				cit.CampfireTicks = CampfireDuration
				cit.Activity = "at the campfire"
				mov.StuckCycles = 0
				return outcomeSettled, true
			}
			if s.travelTo(id, pos, mov, fire.TileX, fire.TileY) {
				cit.Activity = "heading to the campfire"
				return outcomeSettled, true
			}
		}

	case 2: // nap at home
		if homeID, home, ok := st.HomeOf(id); ok && home.Complete {
			if atBuilding(pos, home) {
				st.EnterBuilding(id, homeID)
				cit.NapTicks = NapDuration
				cit.Activity = "napping"
				mov.StuckCycles = 0
				return outcomeSettled, true
			}
			if home.HasFreeCapacity() && s.travelTo(id, pos, mov, home.TileX, home.TileY) {
				cit.Activity = "heading home"
				return outcomeSettled, true
			}
		}

	case 3: // find someone to chat with
		return s.trySocialize(hour, id, cit, pos, mov)
	}
	return 0, false
}

// trySocialize pairs the citizen with the nearest idle neighbor inside the
// socialize radius and starts a chat on both sides. Both participants get
// the busy timer so neither walks off mid-conversation.
func (s *CitizenAISystem) trySocialize(hour int, id ecs.EntityID, cit *component.Citizen, pos *component.Position, mov *component.Movement) (outcome, bool) {
	st := s.deps.State

	var partnerID ecs.EntityID
	var partner *component.Citizen
	bestDist := 0
	ecs.Each2(st.Citizens, st.Positions, func(oid ecs.EntityID, other *component.Citizen, opos *component.Position) {
		if oid == id || other.IsSleeping || other.BusyTicks() > 0 {
			return
		}
		if st.Children.Has(oid) {
			return
		}
		if w, ok := st.Workers.Get(oid); ok && w.OnDuty(hour) && w.GatherPhase != component.GatherIdle {
			return
		}
		d := manhattan(pos.TileX, pos.TileY, opos.TileX, opos.TileY)
		if d > SocializeRadius {
			return
		}
		if partner == nil || d < bestDist || (d == bestDist && oid < partnerID) {
			partnerID, partner, bestDist = oid, other, d
		}
	})
	if partner == nil {
		return 0, false
	}

	cit.ChatTicks = ChatDuration
	partner.ChatTicks = ChatDuration
	cit.Activity = "chatting"
	partner.Activity = "chatting"
	mov.StuckCycles = 0
	if pmov, ok := st.Movements.Get(partnerID); ok {
		pmov.Abort()
		pmov.StuckCycles = 0
	}
	st.Relations.Increment(id, partnerID)
	return outcomeSettled, true
}

// wander picks a random walkable tile within the wander radius and strolls
// there. A bounded number of attempts keeps a citizen boxed into a tiny
// pocket from spinning; running out of attempts counts as restless.
func (s *CitizenAISystem) wander(id ecs.EntityID, cit *component.Citizen, pos *component.Position, needs *component.Needs, mov *component.Movement) outcome {
	pf := s.deps.Pathfind
	for attempt := 0; attempt < WanderAttempts; attempt++ {
		dx := s.deps.Rng.Intn(2*WanderRadius+1) - WanderRadius
		dy := s.deps.Rng.Intn(2*WanderRadius+1) - WanderRadius
		x, y := pos.TileX+dx, pos.TileY+dy
		if (x == pos.TileX && y == pos.TileY) || !pf.Grid().Walkable(x, y) {
			continue
		}
		path, found := pf.FindPath(pos.TileX, pos.TileY, x, y)
		if !found {
			continue
		}
		s.deps.State.ExitBuilding(id)
		mov.SetPath(path)
		cit.Activity = "wandering"
		if cit.HasTrait(component.TraitAdventurous) {
			needs.Happiness += WanderAdventurousBonus
			needs.Clamp()
		}
		return outcomeSettled
	}
	return outcomeRestless
}
