package component

import (
	"github.com/emberhollow/settlement/internal/core/ecs"
	"github.com/emberhollow/settlement/internal/data"
)

// Building is the occupancy/capacity record of a placed structure. The
// behavior pass reads and increments/decrements the counters but does not
// own them; construction logic creates and completes buildings.
type Building struct {
	Kind     data.BuildingKind `json:"kind"`
	TileX    int               `json:"tile_x"`
	TileY    int               `json:"tile_y"`
	Complete bool              `json:"complete"`

	// UpgradeInProgress marks a completed building with an active upgrade
	// site; laborers treat it like a construction site.
	UpgradeInProgress bool `json:"upgrade_in_progress,omitempty"`

	Occupants int `json:"occupants"`
	Capacity  int `json:"capacity"`

	// Workers is the assignment list, capped by the template's WorkerCap.
	Workers []ecs.EntityID `json:"workers,omitempty"`

	// Warmth is the heated-interior rating from the template.
	Warmth float64 `json:"warmth"`

	// Depleted marks an extraction building whose deposit is exhausted.
	Depleted bool `json:"depleted,omitempty"`
}

// HasFreeCapacity reports whether one more occupant fits.
func (b *Building) HasFreeCapacity() bool {
	return b.Occupants < b.Capacity
}

// Employs reports whether the worker id is on the assignment list.
func (b *Building) Employs(id ecs.EntityID) bool {
	for _, w := range b.Workers {
		if w == id {
			return true
		}
	}
	return false
}

// RemoveWorker drops the id from the assignment list, if present.
func (b *Building) RemoveWorker(id ecs.EntityID) {
	for i, w := range b.Workers {
		if w == id {
			b.Workers = append(b.Workers[:i], b.Workers[i+1:]...)
			return
		}
	}
}

// House is the home-specific record: which citizens live here.
type House struct {
	Residents []ecs.EntityID `json:"residents,omitempty"`
	Beds      int            `json:"beds"`
}

// HasFreeBed reports whether another resident fits.
func (h *House) HasFreeBed() bool {
	return len(h.Residents) < h.Beds
}

// Child marks an entity as a child; the reduced decision cascade applies.
type Child struct {
	SchoolProgress float64      `json:"school_progress"` // 0..100
	School         ecs.EntityID `json:"school,omitempty"`
}

// Visitor marks a transient entity that leaves once its stay runs out.
type Visitor struct {
	StayTicksLeft int `json:"stay_ticks_left"`
}
