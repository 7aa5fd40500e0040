package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type buildingDone struct {
	ID uint64
}

type alarmRaised struct {
	Reason string
}

func TestEmitDeliversNextSwap(t *testing.T) {
	bus := NewBus()

	var seen []uint64
	Subscribe(bus, func(ev buildingDone) {
		seen = append(seen, ev.ID)
	})

	Emit(bus, buildingDone{ID: 7})

	// Same tick: nothing promoted yet.
	bus.DispatchAll()
	assert.Empty(t, seen)

	bus.SwapBuffers()
	bus.DispatchAll()
	require.Equal(t, []uint64{7}, seen)

	// A second swap must not replay the event.
	bus.SwapBuffers()
	bus.DispatchAll()
	assert.Equal(t, []uint64{7}, seen)
}

func TestEmitDuringDispatchLandsNextTick(t *testing.T) {
	bus := NewBus()

	var alarms []string
	Subscribe(bus, func(ev buildingDone) {
		Emit(bus, alarmRaised{Reason: "inspection"})
	})
	Subscribe(bus, func(ev alarmRaised) {
		alarms = append(alarms, ev.Reason)
	})

	Emit(bus, buildingDone{ID: 1})

	bus.SwapBuffers()
	bus.DispatchAll()
	assert.Empty(t, alarms, "cascaded event must wait a tick")

	bus.SwapBuffers()
	bus.DispatchAll()
	assert.Equal(t, []string{"inspection"}, alarms)
}

func TestDispatchKeepsEmitOrderPerType(t *testing.T) {
	bus := NewBus()

	var seen []uint64
	Subscribe(bus, func(ev buildingDone) {
		seen = append(seen, ev.ID)
	})

	for i := uint64(1); i <= 5; i++ {
		Emit(bus, buildingDone{ID: i})
	}
	bus.SwapBuffers()
	bus.DispatchAll()

	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, seen)
}

func TestFanOutToEveryHandler(t *testing.T) {
	bus := NewBus()

	var a, b int
	Subscribe(bus, func(alarmRaised) { a++ })
	Subscribe(bus, func(alarmRaised) { b++ })

	Emit(bus, alarmRaised{Reason: "drill"})
	bus.SwapBuffers()
	bus.DispatchAll()

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}

func TestNoHandlersIsSilent(t *testing.T) {
	bus := NewBus()

	Emit(bus, buildingDone{ID: 3})
	bus.SwapBuffers()
	assert.NotPanics(t, func() { bus.DispatchAll() })
}
