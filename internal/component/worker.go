package component

import (
	"github.com/emberhollow/settlement/internal/core/ecs"
	"github.com/emberhollow/settlement/internal/data"
)

// Profession names a worker's trade.
type Profession string

const (
	ProfessionLaborer  Profession = "laborer"
	ProfessionFarmer   Profession = "farmer"
	ProfessionMiner    Profession = "miner"
	ProfessionGatherer Profession = "gatherer"
	ProfessionBuilder  Profession = "builder"
	ProfessionCook     Profession = "cook"
	ProfessionTeacher  Profession = "teacher"
	ProfessionKeeper   Profession = "keeper" // tavern/storage keeper
)

// GatherPhase is the saved program counter of the extraction cycle.
type GatherPhase string

const (
	GatherIdle      GatherPhase = ""
	GatherOutbound  GatherPhase = "outbound"  // travelling to the deposit
	GatherWorking   GatherPhase = "working"   // extracting on site
	GatherReturning GatherPhase = "returning" // carrying a load back to storage
)

// Worker holds profession, workplace assignment, carried resources, and the
// gather/mine cycle sub-state.
type Worker struct {
	Profession Profession   `json:"profession"`
	Workplace  ecs.EntityID `json:"workplace,omitempty"`

	// AutoAssigned marks jobs given out by the labor allocator. Stuck
	// recovery may revoke these; manually chosen jobs it never touches.
	AutoAssigned bool `json:"auto_assigned,omitempty"`

	// ShiftStart/ShiftEnd bound the working hours (sim-hours, 0-23).
	ShiftStart int `json:"shift_start"`
	ShiftEnd   int `json:"shift_end"`

	// Task is a free-form tag of the current job step, for panels.
	Task string `json:"task,omitempty"`

	// Carried load, for the returning leg of the gather cycle.
	Carrying       data.ResourceKind `json:"carrying,omitempty"`
	CarryingAmount float64           `json:"carrying_amount,omitempty"`

	// Gather cycle sub-state. GatheredToday keys are resource kinds, plain
	// strings, so the map serializes as a JSON object as-is.
	GatherPhase   GatherPhase                   `json:"gather_phase,omitempty"`
	WorkTicksLeft int                           `json:"work_ticks_left,omitempty"`
	GatheredToday map[data.ResourceKind]float64 `json:"gathered_today,omitempty"`
}

// OnDuty reports whether hour falls inside the shift, handling shifts that
// wrap midnight.
func (w *Worker) OnDuty(hour int) bool {
	if w.ShiftStart == w.ShiftEnd {
		return false
	}
	if w.ShiftStart < w.ShiftEnd {
		return hour >= w.ShiftStart && hour < w.ShiftEnd
	}
	return hour >= w.ShiftStart || hour < w.ShiftEnd
}

// AddGathered records extracted output against the daily quota.
func (w *Worker) AddGathered(kind data.ResourceKind, amount float64) {
	if w.GatheredToday == nil {
		w.GatheredToday = make(map[data.ResourceKind]float64, 2)
	}
	w.GatheredToday[kind] += amount
}

// ResetDaily clears the per-day gather tallies.
func (w *Worker) ResetDaily() {
	for k := range w.GatheredToday {
		delete(w.GatheredToday, k)
	}
}
