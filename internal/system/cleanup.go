package system

import (
	coresys "github.com/emberhollow/settlement/internal/core/system"
)

// CleanupSystem destroys entities queued during the tick and drops their
// ledger entries. Phase 6 (Cleanup), always last.
type CleanupSystem struct {
	deps *Deps
}

func NewCleanupSystem(deps *Deps) *CleanupSystem {
	return &CleanupSystem{deps: deps}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ uint64) {
	st := s.deps.State
	for _, id := range st.ECS.FlushDestroyQueue() {
		st.Skills.Forget(id)
		st.Relations.Forget(id)
	}
}
