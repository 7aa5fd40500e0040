package scripting

import (
	"github.com/emberhollow/settlement/internal/core/ecs"
	coresys "github.com/emberhollow/settlement/internal/core/system"
	"github.com/emberhollow/settlement/internal/engine"
	"github.com/emberhollow/settlement/internal/world"
)

// Festival adapts the Lua engine to the behavior pass's activity interface.
// It re-plans once per sim-hour and memoizes per-citizen roles between
// plans, so the VM is not consulted for every citizen every cycle.
type Festival struct {
	engine *Engine
	clock  engine.Clock

	tick     uint64
	lastHour int
	planned  bool
	plan     FestivalPlan
	roles    map[ecs.EntityID]world.ActivityAssignment
	noRole   map[ecs.EntityID]struct{}
}

var _ world.ActivityProvider = (*Festival)(nil)

func NewFestival(e *Engine, clock engine.Clock) *Festival {
	return &Festival{
		engine:   e,
		clock:    clock,
		lastHour: -1,
		roles:    make(map[ecs.EntityID]world.ActivityAssignment),
		noRole:   make(map[ecs.EntityID]struct{}),
	}
}

func (f *Festival) Active() bool {
	return f.plan.Active
}

// Phase reports the activity lifecycle stage for the behavior pass.
func (f *Festival) Phase() world.ActivityPhase {
	if !f.plan.Active {
		return world.ActivityNone
	}
	switch f.plan.Phase {
	case "assembling":
		return world.ActivityAssembling
	case "active":
		return world.ActivityActive
	case "ended":
		return world.ActivityEnded
	}
	return world.ActivityNone
}

func (f *Festival) GatheringArea() (int, int) {
	return f.plan.GatherX, f.plan.GatherY
}

// AssignmentFor returns the citizen's scripted role, consulting the VM at
// most once per citizen per plan.
func (f *Festival) AssignmentFor(id ecs.EntityID) (world.ActivityAssignment, bool) {
	if !f.plan.Active {
		return world.ActivityAssignment{}, false
	}
	if asg, ok := f.roles[id]; ok {
		return asg, true
	}
	if _, ok := f.noRole[id]; ok {
		return world.ActivityAssignment{}, false
	}

	role, ok := f.engine.FestivalRoleFor(uint64(id), f.clock.Day(f.tick), f.lastHour)
	if !ok {
		f.noRole[id] = struct{}{}
		return world.ActivityAssignment{}, false
	}
	asg := world.ActivityAssignment{
		Label: role.Label,
		DestX: role.DestX,
		DestY: role.DestY,
		Group: role.Group,
	}
	f.roles[id] = asg
	return asg, true
}

// refresh re-plans at sim-hour boundaries and drops the role memos.
func (f *Festival) refresh(tick uint64) {
	f.tick = tick
	hour := f.clock.Hour(tick)
	if f.planned && hour == f.lastHour {
		return
	}
	f.lastHour = hour
	f.planned = true
	f.plan = f.engine.PlanFestival(f.clock.Day(tick), hour)
	clear(f.roles)
	clear(f.noRole)
}

// FestivalSystem drives the festival plan from the tick loop. It runs in
// the events phase so the plan is current before any citizen decides.
type FestivalSystem struct {
	festival *Festival
}

func NewFestivalSystem(f *Festival) *FestivalSystem {
	return &FestivalSystem{festival: f}
}

func (s *FestivalSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *FestivalSystem) Update(tick uint64) {
	s.festival.refresh(tick)
}
