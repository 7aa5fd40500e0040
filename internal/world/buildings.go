package world

import (
	"github.com/emberhollow/settlement/internal/component"
	"github.com/emberhollow/settlement/internal/core/ecs"
	"github.com/emberhollow/settlement/internal/data"
)

func manhattan(x1, y1, x2, y2 int) int {
	dx := x1 - x2
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y2
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// NearestBuilding returns the closest completed building matching the
// filter, ranked by Manhattan distance from (x,y). Ties break on the lower
// entity id so repeated scans over unchanged state pick the same building.
func (s *State) NearestBuilding(x, y int, match func(ecs.EntityID, *component.Building) bool) (ecs.EntityID, *component.Building) {
	var bestID ecs.EntityID
	var best *component.Building
	bestDist := 0
	s.Buildings.Each(func(id ecs.EntityID, b *component.Building) {
		if !b.Complete || !match(id, b) {
			return
		}
		d := manhattan(x, y, b.TileX, b.TileY)
		if best == nil || d < bestDist || (d == bestDist && id < bestID) {
			bestID, best, bestDist = id, b, d
		}
	})
	return bestID, best
}

// NearestStorage returns the closest completed storage building.
func (s *State) NearestStorage(x, y int) (ecs.EntityID, *component.Building) {
	return s.NearestBuilding(x, y, func(_ ecs.EntityID, b *component.Building) bool {
		return b.Kind == data.BuildingStorage
	})
}

// NearestWarmShelter picks where a freezing citizen should go: assigned
// home first, then heated public buildings above the warmth floor, then any
// completed building under its occupancy cap.
func (s *State) NearestWarmShelter(id ecs.EntityID, x, y int, warmthFloor float64) (ecs.EntityID, *component.Building) {
	if homeID, home, ok := s.HomeOf(id); ok && home.Complete && home.HasFreeCapacity() {
		return homeID, home
	}
	if bid, b := s.NearestBuilding(x, y, func(_ ecs.EntityID, b *component.Building) bool {
		return b.Warmth >= warmthFloor && b.HasFreeCapacity()
	}); b != nil {
		return bid, b
	}
	return s.NearestBuilding(x, y, func(_ ecs.EntityID, b *component.Building) bool {
		return b.HasFreeCapacity()
	})
}

// NearestConstructionSite returns the closest incomplete building or active
// upgrade site.
func (s *State) NearestConstructionSite(x, y int) (ecs.EntityID, *component.Building) {
	var bestID ecs.EntityID
	var best *component.Building
	bestDist := 0
	s.Buildings.Each(func(id ecs.EntityID, b *component.Building) {
		if b.Complete && !b.UpgradeInProgress {
			return
		}
		d := manhattan(x, y, b.TileX, b.TileY)
		if best == nil || d < bestDist || (d == bestDist && id < bestID) {
			bestID, best, bestDist = id, b, d
		}
	})
	return bestID, best
}

// NearestUnderstaffed returns the closest completed non-extraction building
// with assignment room, for help-out fallback work.
func (s *State) NearestUnderstaffed(x, y int, workerCapOf func(data.BuildingKind) int) (ecs.EntityID, *component.Building) {
	return s.NearestBuilding(x, y, func(_ ecs.EntityID, b *component.Building) bool {
		cap := workerCapOf(b.Kind)
		return cap > 0 && len(b.Workers) < cap && !isExtractionKind(b.Kind)
	})
}

func isExtractionKind(kind data.BuildingKind) bool {
	switch kind {
	case data.BuildingMine, data.BuildingQuarry, data.BuildingGatherHut:
		return true
	}
	return false
}

// EnterBuilding places a citizen inside a building, bumping the occupancy
// counter. No-op when already inside it.
func (s *State) EnterBuilding(citizenID, buildingID ecs.EntityID) bool {
	cit, ok := s.Citizens.Get(citizenID)
	if !ok {
		return false
	}
	b, ok := s.Building(buildingID)
	if !ok || !b.HasFreeCapacity() {
		return false
	}
	if cit.InsideBuilding == buildingID {
		return true
	}
	s.ExitBuilding(citizenID)
	b.Occupants++
	cit.InsideBuilding = buildingID
	return true
}

// ExitBuilding removes a citizen from whatever building it occupies,
// keeping the occupancy counter consistent. Idempotent; tolerates the
// building having been destroyed.
func (s *State) ExitBuilding(citizenID ecs.EntityID) {
	cit, ok := s.Citizens.Get(citizenID)
	if !ok || cit.InsideBuilding.IsZero() {
		return
	}
	if b, ok := s.Building(cit.InsideBuilding); ok && b.Occupants > 0 {
		b.Occupants--
	}
	cit.InsideBuilding = ecs.InvalidEntity
}

// UnassignWorker removes the citizen from its workplace's assignment list
// and clears the worker's reference. Returns the workplace id, or zero when
// there was nothing to unassign.
func (s *State) UnassignWorker(citizenID ecs.EntityID) ecs.EntityID {
	w, ok := s.Workers.Get(citizenID)
	if !ok || w.Workplace.IsZero() {
		return ecs.InvalidEntity
	}
	workplace := w.Workplace
	if b, ok := s.Building(workplace); ok {
		b.RemoveWorker(citizenID)
	}
	w.Workplace = ecs.InvalidEntity
	w.AutoAssigned = false
	w.Task = ""
	w.GatherPhase = component.GatherIdle
	return workplace
}

// AssignWorker puts the citizen on the building's worker list.
func (s *State) AssignWorker(citizenID, buildingID ecs.EntityID, auto bool) bool {
	w, ok := s.Workers.Get(citizenID)
	if !ok {
		return false
	}
	b, ok := s.Building(buildingID)
	if !ok {
		return false
	}
	if !b.Employs(citizenID) {
		b.Workers = append(b.Workers, citizenID)
	}
	w.Workplace = buildingID
	w.AutoAssigned = auto
	return true
}
