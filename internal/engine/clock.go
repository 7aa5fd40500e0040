// Package engine drives simulated time: the fixed-timestep game loop and
// the tick-to-calendar clock.
package engine

import "fmt"

// Calendar constants. The simulation runs at TicksPerSecond regardless of
// frame rate; one sim-hour spans TicksPerHour ticks.
const (
	TicksPerSecond = 10
	TicksPerHour   = 300
	HoursPerDay    = 24
	TicksPerDay    = TicksPerHour * HoursPerDay

	NightStartHour = 22
	NightEndHour   = 6
)

// Clock converts tick numbers into simulation calendar time.
type Clock struct{}

// Hour returns the sim-hour of day (0-23) for a tick.
func (Clock) Hour(tick uint64) int {
	return int(tick / TicksPerHour % HoursPerDay)
}

// Day returns the sim-day number, starting at 1.
func (Clock) Day(tick uint64) int {
	return int(tick/TicksPerDay) + 1
}

// IsNight reports whether the tick falls in the night span.
func (c Clock) IsNight(tick uint64) bool {
	h := c.Hour(tick)
	return h >= NightStartHour || h < NightEndHour
}

// IsDaytime is the complement of IsNight.
func (c Clock) IsDaytime(tick uint64) bool {
	return !c.IsNight(tick)
}

// StartOfDay reports whether the tick is the first of its sim-day, when
// daily tallies (gather quotas) reset.
func (Clock) StartOfDay(tick uint64) bool {
	return tick%TicksPerDay == 0
}

// String formats a tick as "Day D, HH:MM".
func (c Clock) String(tick uint64) string {
	minute := int(tick % TicksPerHour * 60 / TicksPerHour)
	return fmt.Sprintf("Day %d, %02d:%02d", c.Day(tick), c.Hour(tick), minute)
}
