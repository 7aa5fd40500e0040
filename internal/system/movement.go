package system

import (
	"github.com/emberhollow/settlement/internal/component"
	"github.com/emberhollow/settlement/internal/core/ecs"
	coresys "github.com/emberhollow/settlement/internal/core/system"
)

// MovementSystem resolves travel every tick: entities with a non-empty path
// advance along it by their speed, fractional steps carrying between ticks.
// It is the only writer of Position. Phase 1 (Movement).
type MovementSystem struct {
	deps *Deps
}

func NewMovementSystem(deps *Deps) *MovementSystem {
	return &MovementSystem{deps: deps}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseMovement }

func (s *MovementSystem) Update(_ uint64) {
	st := s.deps.State
	ecs.Each2(st.Movements, st.Positions, func(id ecs.EntityID, m *component.Movement, pos *component.Position) {
		s.followTarget(id, m, pos)
		if !m.Travelling() {
			return
		}

		speed := m.Speed
		if speed <= 0 {
			speed = DefaultWalkSpeed
		}
		m.Progress += speed

		for m.Progress >= 1 && len(m.Path) > 0 {
			m.Progress--
			next := m.Path[0]
			m.Path = m.Path[1:]

			// A tile blocked after the route was computed: stop here and
			// let the next decision cycle re-path.
			if !s.deps.Pathfind.Grid().Walkable(next.X, next.Y) {
				m.Abort()
				return
			}
			pos.TileX = next.X
			pos.TileY = next.Y
		}

		if len(m.Path) == 0 {
			m.Progress = 0
			pos.OffsetX = 0
			pos.OffsetY = 0
		}
	})
}

// followTarget re-paths toward a followed entity when the target has moved
// away from the route's end. A dead target reference is dropped silently.
func (s *MovementSystem) followTarget(id ecs.EntityID, m *component.Movement, pos *component.Position) {
	if m.Target.IsZero() {
		return
	}
	st := s.deps.State
	if !st.ECS.Alive(m.Target) {
		m.Target = ecs.InvalidEntity
		return
	}
	tpos, ok := st.Positions.Get(m.Target)
	if !ok {
		m.Target = ecs.InvalidEntity
		return
	}

	// Still routed at (or near) the target, leave the path alone.
	if len(m.Path) > 0 {
		end := m.Path[len(m.Path)-1]
		if manhattan(end.X, end.Y, tpos.TileX, tpos.TileY) <= AdjacentDistance {
			return
		}
	} else if manhattan(pos.TileX, pos.TileY, tpos.TileX, tpos.TileY) <= AdjacentDistance {
		return
	}

	if path, found := s.deps.Pathfind.FindPath(pos.TileX, pos.TileY, tpos.TileX, tpos.TileY); found {
		m.Path = path
	}
}

// DefaultWalkSpeed applies when a Movement record carries no speed, in
// tiles per tick.
const DefaultWalkSpeed = 0.2

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
