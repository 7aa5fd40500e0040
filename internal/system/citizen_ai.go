package system

import (
	"go.uber.org/zap"

	"github.com/emberhollow/settlement/internal/component"
	"github.com/emberhollow/settlement/internal/core/ecs"
	"github.com/emberhollow/settlement/internal/core/event"
	coresys "github.com/emberhollow/settlement/internal/core/system"
)

// outcome classifies how a decision cycle ended for one citizen.
type outcome int

const (
	// outcomeSettled: the citizen made a decision, travel acquired or a
	// deliberate stationary action (working on site, sleeping, eating).
	outcomeSettled outcome = iota
	// outcomeRestless: the cascade ran past the in-transit check without
	// acquiring a path. Feeds the stuck counter.
	outcomeRestless
)

// CitizenAISystem is the behavior engine: once every throttle interval it
// evaluates one strict priority cascade per citizen and assigns exactly one
// outcome. The first matching condition wins; everything below is skipped
// for that citizen this cycle. Phase 2 (Behavior).
//
// The throttle exists purely for performance: in-flight paths and needs
// decay advance on the unthrottled per-tick cadence regardless.
type CitizenAISystem struct {
	deps     *Deps
	throttle int
	counter  int
}

func NewCitizenAISystem(deps *Deps) *CitizenAISystem {
	throttle := deps.Config.Simulation.BehaviorThrottle
	if throttle < 1 {
		throttle = 1
	}
	return &CitizenAISystem{deps: deps, throttle: throttle}
}

func (s *CitizenAISystem) Phase() coresys.Phase { return coresys.PhaseBehavior }

// ThrottleCounter exposes the intra-interval counter for save/restore.
func (s *CitizenAISystem) ThrottleCounter() int { return s.counter }

// SetThrottleCounter restores the counter from a save.
func (s *CitizenAISystem) SetThrottleCounter(c int) {
	if c >= 0 && c < s.throttle {
		s.counter = c
	}
}

func (s *CitizenAISystem) Update(tick uint64) {
	s.counter++
	if s.counter < s.throttle {
		return
	}
	s.counter = 0

	if s.deps.Clock.StartOfDay(tick) {
		s.resetDailyQuotas()
	}
	s.tickVisitors()

	st := s.deps.State
	// Entities missing any of the four required components are skipped for
	// the cycle by construction; one citizen's anomalous data must never
	// stop the simulation of the rest.
	ecs.Each4(st.Citizens, st.Positions, st.Needs, st.Movements,
		func(id ecs.EntityID, cit *component.Citizen, pos *component.Position, needs *component.Needs, mov *component.Movement) {
			if child, ok := st.Children.Get(id); ok {
				s.decideChild(tick, id, cit, pos, needs, mov, child)
				return
			}
			s.decideCitizen(tick, id, cit, pos, needs, mov)
		})
}

func (s *CitizenAISystem) decideCitizen(tick uint64, id ecs.EntityID, cit *component.Citizen, pos *component.Position, needs *component.Needs, mov *component.Movement) {
	starving := needs.Food < FoodStarving
	freezing := needs.Warmth < WarmthFreezing
	emergency := starving || freezing

	// 1. Resumable busy actions. Emergencies force-clear the timer and
	// fall through to the rest of the cascade this same cycle.
	if cit.BusyTicks() > 0 {
		if !emergency {
			s.continueBusy(id, cit, needs, mov)
			return
		}
		cit.ClearBusyTimers()
	}

	// 2. Sleep. Wake on full energy in daytime, or on starvation, and
	// re-evaluate immediately, so a starving sleeper heads for food in the
	// same cycle it wakes.
	if cit.IsSleeping {
		wake := (needs.Energy >= EnergyFull && s.deps.Clock.IsDaytime(tick)) || starving
		if !wake {
			cit.Activity = "sleeping"
			mov.StuckCycles = 0
			return
		}
		cit.IsSleeping = false
	}

	// 3. Starvation pre-empts everything below, including cold handling.
	if starving {
		s.handleStarving(id, cit, pos, needs, mov)
		return
	}

	// 4. Cold with hysteresis: the flag sets below the freeze threshold
	// and clears only at or above the strictly higher release threshold.
	// Freezing cancels the in-flight route every cycle, not just on the
	// transition, so a route acquired under the work carve-out cannot
	// survive the warmth falling through the freeze threshold.
	if freezing {
		needs.IsColdSheltering = true
		mov.Abort()
	} else if needs.Warmth >= WarmthRelease {
		needs.IsColdSheltering = false
	}
	if needs.IsColdSheltering {
		if s.handleCold(tick, id, cit, pos, needs, mov) {
			return
		}
		// Fell through: no warm shelter reachable, or the urgent-work
		// carve-out applies. Work-seeking below proceeds only while the
		// warmth holds above the working floor.
	}

	// 5. In transit: never override a route mid-transit.
	if mov.Travelling() {
		mov.StuckCycles = 0
		return
	}

	out := s.decideIdle(tick, id, cit, pos, needs, mov)
	s.applyStuck(id, cit, pos, needs, mov, out)
}

// decideIdle covers cascade steps 6-14 for a citizen that is awake, fed,
// warm enough, and not travelling.
func (s *CitizenAISystem) decideIdle(tick uint64, id ecs.EntityID, cit *component.Citizen, pos *component.Position, needs *component.Needs, mov *component.Movement) outcome {
	hour := s.deps.Clock.Hour(tick)

	// 6. Collective activity, above ordinary work and leisure but below
	// survival.
	if out, ok := s.joinActivity(id, cit, pos, mov); ok {
		return out
	}

	// 7. Exhaustion.
	if needs.Energy < EnergyTired {
		return s.goHomeAndSleep(id, cit, pos, needs, mov)
	}

	// 8. Nighttime.
	if s.deps.Clock.IsNight(tick) {
		return s.goHomeAndSleep(id, cit, pos, needs, mov)
	}

	// 9. Scheduled meal. Pregnancy raises the threshold.
	mealAt := FoodMeal
	if cit.Pregnant {
		mealAt += FoodMealPregnantBonus
	}
	if needs.Food < mealAt {
		return s.eatMeal(id, cit, pos, needs, mov, false)
	}

	w, hasWork := s.deps.State.Workers.Get(id)
	var worker *component.Worker
	if hasWork {
		worker = w
	}

	// A sheltering citizen below the working floor only reaches this point
	// because no warm shelter was reachable; it must not pick up work, the
	// carve-out lapsed with the warmth.
	coldBenched := needs.IsColdSheltering && needs.Warmth < WarmthWorkCritical

	// 10. Off-duty leisure, unless urgently needed or mid-gather-cycle.
	offDuty := worker == nil || !worker.OnDuty(hour)
	midGather := worker != nil && worker.GatherPhase != component.GatherIdle
	if offDuty && !midGather && !s.urgentWorkPending(worker) {
		if out, ok := s.tryLeisure(hour, id, cit, pos, needs, mov); ok {
			return out
		}
	}

	// 11. Workplace dispatch. Off-duty workers only go when mid-haul or
	// when the site urgently needs hands.
	onDuty := worker != nil && worker.OnDuty(hour)
	if worker != nil && !coldBenched && !worker.Workplace.IsZero() && (onDuty || midGather || s.urgentWorkPending(worker)) {
		if out, ok := s.workAtWorkplace(id, cit, pos, mov, worker); ok {
			return out
		}
		// Stale workplace reference; fall through and re-derive.
	}

	// 12. Unassigned laborer.
	if !coldBenched {
		if out, ok := s.seekConstruction(id, cit, pos, mov, worker); ok {
			return out
		}
	}

	// 13. Socialize.
	if out, ok := s.trySocialize(hour, id, cit, pos, mov); ok {
		return out
	}

	// 14. Wander.
	return s.wander(id, cit, pos, needs, mov)
}

// continueBusy advances whichever resumable action is running: decrement by
// the throttle interval, apply the passive effect, hold the stuck counter
// at zero.
func (s *CitizenAISystem) continueBusy(id ecs.EntityID, cit *component.Citizen, needs *component.Needs, mov *component.Movement) {
	mov.StuckCycles = 0

	finish := func(name string) {
		event.Emit(s.deps.Bus, event.ActivityFinished{Citizen: uint64(id), Activity: name})
		cit.Activity = ""
	}

	switch {
	case cit.ChatTicks > 0:
		cit.ChatTicks -= s.throttle
		needs.Happiness += ChatHappinessGain
		cit.Activity = "chatting"
		if cit.ChatTicks <= 0 {
			cit.ChatTicks = 0
			finish("chat")
		}
	case cit.NapTicks > 0:
		cit.NapTicks -= s.throttle
		needs.Energy += NapEnergyGain
		cit.Activity = "napping"
		if cit.NapTicks <= 0 {
			cit.NapTicks = 0
			finish("nap")
		}
	case cit.CampfireTicks > 0:
		cit.CampfireTicks -= s.throttle
		needs.Happiness += CampfireHappinessGain
		needs.Warmth += CampfireWarmthGain
		cit.Activity = "at the campfire"
		if cit.CampfireTicks <= 0 {
			cit.CampfireTicks = 0
			finish("campfire")
		}
	case cit.TavernTicks > 0:
		cit.TavernTicks -= s.throttle
		needs.Happiness += TavernHappinessGain
		cit.Activity = "at the tavern"
		if cit.TavernTicks <= 0 {
			cit.TavernTicks = 0
			finish("tavern")
		}
	}
	needs.Clamp()
}

// applyStuck implements stuck recovery: restless cycles increment the
// counter; past the threshold the citizen is forced to wander, the counter
// resets, and an automatically assigned workplace is revoked. Manual
// assignments are never revoked here.
func (s *CitizenAISystem) applyStuck(id ecs.EntityID, cit *component.Citizen, pos *component.Position, needs *component.Needs, mov *component.Movement, out outcome) {
	if out != outcomeRestless {
		return
	}
	mov.StuckCycles++
	if mov.StuckCycles <= StuckThreshold {
		return
	}

	mov.StuckCycles = 0
	if w, ok := s.deps.State.Workers.Get(id); ok && !w.Workplace.IsZero() && w.AutoAssigned {
		workplace := s.deps.State.UnassignWorker(id)
		event.Emit(s.deps.Bus, event.WorkerUnassigned{
			Citizen:   uint64(id),
			Workplace: uint64(workplace),
			Reason:    "stuck",
		})
		s.deps.Log.Debug("stuck recovery revoked workplace",
			zap.Uint64("citizen", uint64(id)),
			zap.Uint64("workplace", uint64(workplace)),
		)
	}
	s.wander(id, cit, pos, needs, mov)
}

// tickVisitors ages transient visitors out of the settlement.
func (s *CitizenAISystem) tickVisitors() {
	st := s.deps.State
	st.Visitors.Each(func(id ecs.EntityID, v *component.Visitor) {
		v.StayTicksLeft -= s.throttle
		if v.StayTicksLeft > 0 {
			return
		}
		st.ExitBuilding(id)
		st.ECS.MarkForDestruction(id)
		event.Emit(s.deps.Bus, event.VisitorLeft{Visitor: uint64(id)})
	})
}

func (s *CitizenAISystem) resetDailyQuotas() {
	s.deps.State.Workers.Each(func(_ ecs.EntityID, w *component.Worker) {
		w.ResetDaily()
	})
}

func atBuilding(pos *component.Position, b *component.Building) bool {
	return manhattan(pos.TileX, pos.TileY, b.TileX, b.TileY) <= AdjacentDistance
}

// Neighbor deltas for routing to a tile adjacent to an unwalkable goal.
var sideDX = [4]int{0, 1, 0, -1}
var sideDY = [4]int{-1, 0, 1, 0}

// travelTo routes the citizen to (x,y), or to a walkable tile beside it when
// the goal itself is blocked (building footprints usually are). Acquiring
// travel steps the citizen outside whatever building it occupied. Returns
// false when no route exists; the caller treats that as "retry later".
func (s *CitizenAISystem) travelTo(id ecs.EntityID, pos *component.Position, mov *component.Movement, x, y int) bool {
	pf := s.deps.Pathfind
	if pf.Grid().Walkable(x, y) {
		if path, found := pf.FindPath(pos.TileX, pos.TileY, x, y); found {
			s.deps.State.ExitBuilding(id)
			mov.SetPath(path)
			return true
		}
		return false
	}
	for dir := 0; dir < 4; dir++ {
		nx := x + sideDX[dir]
		ny := y + sideDY[dir]
		if !pf.Grid().Walkable(nx, ny) {
			continue
		}
		if path, found := pf.FindPath(pos.TileX, pos.TileY, nx, ny); found {
			s.deps.State.ExitBuilding(id)
			mov.SetPath(path)
			return true
		}
	}
	return false
}
