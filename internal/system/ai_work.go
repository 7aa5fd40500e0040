package system

import (
	"github.com/emberhollow/settlement/internal/component"
	"github.com/emberhollow/settlement/internal/core/ecs"
	"github.com/emberhollow/settlement/internal/data"
	"github.com/emberhollow/settlement/internal/world"
)

// urgentWorkPending reports whether the worker's assigned workplace is an
// active construction or upgrade site. Used by the cold-sheltering carve-out
// and by the leisure gate.
func (s *CitizenAISystem) urgentWorkPending(w *component.Worker) bool {
	if w == nil || w.Workplace.IsZero() {
		return false
	}
	b, ok := s.deps.State.Building(w.Workplace)
	return ok && (!b.Complete || b.UpgradeInProgress)
}

// workAtWorkplace dispatches an assigned worker. ok=false means the
// workplace reference turned out stale; the caller falls through to the
// laborer steps after the reference is cleared here.
func (s *CitizenAISystem) workAtWorkplace(id ecs.EntityID, cit *component.Citizen, pos *component.Position, mov *component.Movement, w *component.Worker) (outcome, bool) {
	st := s.deps.State

	b, ok := st.Building(w.Workplace)
	if !ok {
		w.Workplace = ecs.InvalidEntity
		w.AutoAssigned = false
		w.Task = ""
		w.GatherPhase = component.GatherIdle
		return 0, false
	}

	if !b.Complete || b.UpgradeInProgress {
		return s.buildAt(id, cit, pos, mov, w, b), true
	}
	def := s.deps.Buildings.Get(b.Kind)
	if def != nil && def.Extraction {
		return s.gatherCycle(id, cit, pos, mov, w, b, def), true
	}

	// Ordinary workplace: be there, be on shift.
	if atBuilding(pos, b) {
		st.EnterBuilding(id, w.Workplace)
		cit.Activity = "working"
		w.Task = "on shift"
		mov.StuckCycles = 0
		st.Skills.Grant(id, skillFor(b.Kind), WorkSkillXP)
		s.bondWithCoworkers(id, w.Workplace, b)
		return outcomeSettled, true
	}
	if s.travelTo(id, pos, mov, b.TileX, b.TileY) {
		cit.Activity = "heading to work"
		w.Task = "commuting"
		return outcomeSettled, true
	}
	return outcomeRestless, true
}

// gatherCycle is the extraction loop, resumable at any point via the saved
// GatherPhase: travel out, work the deposit, haul the load to storage,
// repeat. Quota, full storage, and depletion all end the loop at the
// trip boundary and redirect the worker to fallback labor.
func (s *CitizenAISystem) gatherCycle(id ecs.EntityID, cit *component.Citizen, pos *component.Position, mov *component.Movement, w *component.Worker, b *component.Building, def *data.BuildingDef) outcome {
	st := s.deps.State

	switch w.GatherPhase {
	case component.GatherWorking:
		w.WorkTicksLeft -= s.throttle
		cit.Activity = "extracting"
		mov.StuckCycles = 0
		if w.WorkTicksLeft <= 0 {
			w.WorkTicksLeft = 0
			w.Carrying = def.Resource
			w.CarryingAmount = GatherLoadUnits
			w.GatherPhase = component.GatherReturning
			w.Task = "hauling"
		}
		return outcomeSettled

	case component.GatherReturning:
		sid, storage := st.NearestStorage(pos.TileX, pos.TileY)
		if storage == nil || sid.IsZero() {
			return outcomeRestless
		}
		if atBuilding(pos, storage) {
			stored := st.Stockpile.Add(w.Carrying, w.CarryingAmount)
			if stored > 0 {
				w.AddGathered(w.Carrying, stored)
			}
			st.Skills.Grant(id, skillFor(b.Kind), GatherSkillXP)
			w.Carrying = ""
			w.CarryingAmount = 0
			w.GatherPhase = component.GatherIdle
			w.Task = ""
			mov.StuckCycles = 0
			return outcomeSettled
		}
		if s.travelTo(id, pos, mov, storage.TileX, storage.TileY) {
			cit.Activity = "hauling to storage"
			return outcomeSettled
		}
		return outcomeRestless
	}

	// Idle or outbound: check the trip-boundary stop conditions before
	// starting (or finishing the walk of) another trip.
	quotaMet := def.Quota > 0 && w.GatheredToday[def.Resource] >= def.Quota
	if b.Depleted || st.Stockpile.Full() || quotaMet {
		w.GatherPhase = component.GatherIdle
		return s.helpOut(id, cit, pos, mov, w)
	}

	if atBuilding(pos, b) {
		w.GatherPhase = component.GatherWorking
		w.WorkTicksLeft = GatherWorkTicks
		w.Task = "extracting"
		cit.Activity = "extracting"
		mov.StuckCycles = 0
		return outcomeSettled
	}
	if s.travelTo(id, pos, mov, b.TileX, b.TileY) {
		w.GatherPhase = component.GatherOutbound
		w.Task = "outbound"
		cit.Activity = "heading to the " + string(b.Kind)
		return outcomeSettled
	}
	return outcomeRestless
}

// helpOut redirects a worker whose extraction loop has stopped: first to the
// nearest understaffed non-extraction building, then to a construction site.
func (s *CitizenAISystem) helpOut(id ecs.EntityID, cit *component.Citizen, pos *component.Position, mov *component.Movement, w *component.Worker) outcome {
	st := s.deps.State

	capOf := func(kind data.BuildingKind) int {
		if def := s.deps.Buildings.Get(kind); def != nil {
			return def.WorkerCap
		}
		return 0
	}
	if bid, b := st.NearestUnderstaffed(pos.TileX, pos.TileY, capOf); b != nil {
		if atBuilding(pos, b) {
			st.EnterBuilding(id, bid)
			cit.Activity = "helping out"
			w.Task = "helping"
			mov.StuckCycles = 0
			st.Skills.Grant(id, skillFor(b.Kind), WorkSkillXP)
			return outcomeSettled
		}
		if s.travelTo(id, pos, mov, b.TileX, b.TileY) {
			cit.Activity = "helping out"
			w.Task = "helping"
			return outcomeSettled
		}
	}

	if _, site := st.NearestConstructionSite(pos.TileX, pos.TileY); site != nil {
		return s.buildAt(id, cit, pos, mov, w, site)
	}
	return outcomeRestless
}

// buildAt works an incomplete building or upgrade site: stationary labor
// when adjacent, travel otherwise.
func (s *CitizenAISystem) buildAt(id ecs.EntityID, cit *component.Citizen, pos *component.Position, mov *component.Movement, w *component.Worker, b *component.Building) outcome {
	if atBuilding(pos, b) {
		cit.Activity = "building"
		if w != nil {
			w.Task = "construction"
		}
		mov.StuckCycles = 0
		s.deps.State.Skills.Grant(id, world.SkillBuilding, WorkSkillXP)
		return outcomeSettled
	}
	if s.travelTo(id, pos, mov, b.TileX, b.TileY) {
		cit.Activity = "heading to the site"
		if w != nil {
			w.Task = "commuting"
		}
		return outcomeSettled
	}
	return outcomeRestless
}

// seekConstruction is the unassigned-laborer step: workers without a
// workplace pitch in at the nearest construction or upgrade site.
func (s *CitizenAISystem) seekConstruction(id ecs.EntityID, cit *component.Citizen, pos *component.Position, mov *component.Movement, w *component.Worker) (outcome, bool) {
	if w == nil || !w.Workplace.IsZero() {
		return 0, false
	}
	_, site := s.deps.State.NearestConstructionSite(pos.TileX, pos.TileY)
	if site == nil {
		return 0, false
	}
	return s.buildAt(id, cit, pos, mov, w, site), true
}

// bondWithCoworkers counts a shared shift as a relationship interaction with
// every assigned worker currently inside the same building.
func (s *CitizenAISystem) bondWithCoworkers(id, buildingID ecs.EntityID, b *component.Building) {
	st := s.deps.State
	for _, other := range b.Workers {
		if other == id {
			continue
		}
		if cit, ok := st.Citizens.Get(other); ok && cit.InsideBuilding == buildingID {
			st.Relations.Increment(id, other)
		}
	}
}

// skillFor maps a building kind to the trade skill it trains.
func skillFor(kind data.BuildingKind) world.Skill {
	switch kind {
	case data.BuildingMine, data.BuildingQuarry:
		return world.SkillMining
	case data.BuildingGatherHut:
		return world.SkillGathering
	case data.BuildingFarm:
		return world.SkillFarming
	case data.BuildingTavern:
		return world.SkillHospitable
	case data.BuildingSchool:
		return world.SkillTeaching
	default:
		return world.SkillBuilding
	}
}
