package system

import (
	"github.com/emberhollow/settlement/internal/core/event"
	coresys "github.com/emberhollow/settlement/internal/core/system"
)

// EventDispatchSystem rotates the event bus at tick start and delivers the
// previous tick's events. Phase 0 (Events).
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *EventDispatchSystem) Update(_ uint64) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
