package component

import "github.com/emberhollow/settlement/internal/core/ecs"

// Trait is a personality marker influencing decisions at the margin.
type Trait string

const (
	TraitAdventurous Trait = "adventurous"
	TraitSociable    Trait = "sociable"
	TraitDiligent    Trait = "diligent"
	TraitLazy        Trait = "lazy"
)

// Citizen is the identity/demographic record plus the resumable-activity
// timers. Each timer models a multi-tick busy action as plain saved state:
// the behavior pass decrements whichever timer is positive and applies the
// activity's passive effect, instead of suspending anything at runtime.
type Citizen struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Female   bool   `json:"female"`
	Pregnant bool   `json:"pregnant"`

	IsSleeping bool    `json:"is_sleeping"`
	Traits     []Trait `json:"traits,omitempty"`

	// Current activity label. Mostly for panels and debugging; the
	// starvation alert uses it to fire once per episode.
	Activity string `json:"activity,omitempty"`

	// Busy timers, in ticks. At most one is positive at a time.
	ChatTicks     int `json:"chat_ticks,omitempty"`
	NapTicks      int `json:"nap_ticks,omitempty"`
	CampfireTicks int `json:"campfire_ticks,omitempty"`
	TavernTicks   int `json:"tavern_ticks,omitempty"`

	// InsideBuilding is the building entity currently occupied, if any.
	InsideBuilding ecs.EntityID `json:"inside_building,omitempty"`
}

// HasTrait reports whether the citizen carries the trait.
func (c *Citizen) HasTrait(t Trait) bool {
	for _, have := range c.Traits {
		if have == t {
			return true
		}
	}
	return false
}

// BusyTicks returns the remaining ticks of the active resumable action,
// or 0 when idle.
func (c *Citizen) BusyTicks() int {
	switch {
	case c.ChatTicks > 0:
		return c.ChatTicks
	case c.NapTicks > 0:
		return c.NapTicks
	case c.CampfireTicks > 0:
		return c.CampfireTicks
	case c.TavernTicks > 0:
		return c.TavernTicks
	}
	return 0
}

// ClearBusyTimers force-cancels every resumable action. Emergencies call
// this before re-evaluating the cascade.
func (c *Citizen) ClearBusyTimers() {
	c.ChatTicks = 0
	c.NapTicks = 0
	c.CampfireTicks = 0
	c.TavernTicks = 0
}
