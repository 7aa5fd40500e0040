package component

import (
	"github.com/emberhollow/settlement/internal/core/ecs"
	"github.com/emberhollow/settlement/internal/pathfind"
)

// Movement holds an entity's travel state. A non-empty Path means the
// entity is in transit and the behavior pass must not override it; only an
// emergency clears it mid-route.
type Movement struct {
	Path   pathfind.Path `json:"path"`
	Speed  float64       `json:"speed"` // tiles per tick
	Target ecs.EntityID  `json:"target,omitempty"`

	// Progress is the fractional part of a tile step carried between ticks
	// by movement resolution.
	Progress float64 `json:"progress,omitempty"`

	// StuckCycles counts consecutive throttled decision cycles in which the
	// entity acquired no travel. It increments by exactly one per such cycle
	// and resets to zero the cycle a decision produces motion.
	StuckCycles int `json:"stuck_cycles"`
}

// Travelling reports whether the entity currently follows a path.
func (m *Movement) Travelling() bool {
	return len(m.Path) > 0
}

// SetPath replaces the current route and resets the stuck counter.
func (m *Movement) SetPath(path pathfind.Path) {
	m.Path = path
	m.StuckCycles = 0
}

// Abort drops the current route, any followed target, and the partial step.
func (m *Movement) Abort() {
	m.Path = nil
	m.Target = ecs.InvalidEntity
	m.Progress = 0
}
