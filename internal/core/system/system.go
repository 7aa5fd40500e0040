package system

// Phase defines execution ordering within a single tick. The behavior pass
// runs after movement resolution and before needs decay so it reacts to the
// previous tick's positions and to the decay that is about to land.
type Phase int

const (
	PhaseEvents   Phase = iota // 0: swap + dispatch last tick's events
	PhaseMovement              // 1: advance entities along their paths
	PhaseBehavior              // 2: citizen decisions (throttled)
	PhaseNeeds                 // 3: needs decay, passive effects
	PhasePost                  // 4: occupancy reconciliation, stats
	PhasePersist               // 5: autosave
	PhaseCleanup               // 6: destroy queued entities
)

// System is the interface every simulation system implements.
// Update receives the current tick number; systems that run on a slower
// cadence gate on it internally.
type System interface {
	Phase() Phase
	Update(tick uint64)
}
