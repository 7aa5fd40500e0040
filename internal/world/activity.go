package world

import "github.com/emberhollow/settlement/internal/core/ecs"

// ActivityPhase is the lifecycle stage of a collective activity.
type ActivityPhase int

const (
	ActivityNone ActivityPhase = iota
	ActivityAssembling
	ActivityActive
	ActivityEnded
)

// ActivityAssignment tells one entity what to do during a collective
// activity: a label for panels and the tile to head for.
type ActivityAssignment struct {
	Label string
	DestX int
	DestY int
	Group bool // group activity (dance, feast) vs individual (stall visit)
}

// ActivityProvider is the external collective-activity collaborator. The
// behavior pass must handle the provider reporting no activity at any time,
// including mid-phase.
type ActivityProvider interface {
	Active() bool
	Phase() ActivityPhase
	// AssignmentFor returns the entity's current assignment; ok=false means
	// the entity has no part in the activity this cycle.
	AssignmentFor(id ecs.EntityID) (ActivityAssignment, bool)
	// GatheringArea is the tile the activity assembles around.
	GatheringArea() (x, y int)
}

// NoActivity is the always-inactive provider, used when no festival script
// is loaded.
type NoActivity struct{}

func (NoActivity) Active() bool         { return false }
func (NoActivity) Phase() ActivityPhase { return ActivityNone }
func (NoActivity) AssignmentFor(ecs.EntityID) (ActivityAssignment, bool) {
	return ActivityAssignment{}, false
}
func (NoActivity) GatheringArea() (int, int) { return 0, 0 }
