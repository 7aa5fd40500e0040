package system

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/emberhollow/settlement/internal/core/event"
	coresys "github.com/emberhollow/settlement/internal/core/system"
)

// saveTimeout bounds one autosave round-trip; a slow database must never
// stall the tick loop longer than this.
const saveTimeout = 10 * time.Second

// Autosaver is the persistence collaborator. nil disables autosave.
type Autosaver interface {
	Record(tick uint64, kind string, payload any)
	Autosave(ctx context.Context, tick uint64, throttleCounter int) error
}

// AutosaveSystem periodically writes a world snapshot and flushes the event
// journal. Phase 5 (Persist), so it observes the fully settled tick.
type AutosaveSystem struct {
	deps     *Deps
	saver    Autosaver
	behavior *CitizenAISystem
	interval uint64
	lastTick uint64
}

// NewAutosaveSystem wires the journal subscriptions and the snapshot cadence.
// The behavior system is consulted for its throttle counter so a restored
// save resumes decision cycles exactly where they left off.
func NewAutosaveSystem(deps *Deps, saver Autosaver, behavior *CitizenAISystem) *AutosaveSystem {
	s := &AutosaveSystem{
		deps:     deps,
		saver:    saver,
		behavior: behavior,
		interval: uint64(deps.Config.Simulation.AutosaveTicks),
	}
	if saver != nil {
		event.Subscribe(deps.Bus, func(e event.WorkerUnassigned) {
			saver.Record(s.lastTick, "worker_unassigned", e)
		})
		event.Subscribe(deps.Bus, func(e event.CitizenStarving) {
			saver.Record(s.lastTick, "citizen_starving", e)
		})
		event.Subscribe(deps.Bus, func(e event.VisitorLeft) {
			saver.Record(s.lastTick, "visitor_left", e)
		})
		event.Subscribe(deps.Bus, func(e event.ActivityFinished) {
			saver.Record(s.lastTick, "activity_finished", e)
		})
	}
	return s
}

func (s *AutosaveSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *AutosaveSystem) Update(tick uint64) {
	s.lastTick = tick
	if s.saver == nil || s.interval == 0 {
		return
	}
	if tick == 0 || tick%s.interval != 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.saver.Autosave(ctx, tick, s.behavior.ThrottleCounter()); err != nil {
		s.deps.Log.Error("autosave failed", zap.Uint64("tick", tick), zap.Error(err))
		return
	}
	s.deps.Log.Info("autosaved", zap.Uint64("tick", tick))
}
