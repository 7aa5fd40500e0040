// Package system contains the per-tick simulation systems: event dispatch,
// movement resolution, the citizen behavior pass, needs decay, autosave,
// and cleanup. Systems run in fixed phase order; see core/system.
package system

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/emberhollow/settlement/internal/config"
	"github.com/emberhollow/settlement/internal/core/event"
	"github.com/emberhollow/settlement/internal/data"
	"github.com/emberhollow/settlement/internal/engine"
	"github.com/emberhollow/settlement/internal/pathfind"
	"github.com/emberhollow/settlement/internal/world"
)

// Deps bundles everything the systems share. Constructed once in main and
// passed down; no package-level state.
type Deps struct {
	State     *world.State
	Pathfind  *pathfind.Pathfinder
	Bus       *event.Bus
	Clock     engine.Clock
	Foods     *data.FoodTable
	Buildings *data.BuildingTable
	Activity  world.ActivityProvider
	Config    *config.Config
	Rng       *rand.Rand
	Log       *zap.Logger
}

// activity falls back to the no-activity provider so systems never nil-check.
func (d *Deps) activity() world.ActivityProvider {
	if d.Activity == nil {
		return world.NoActivity{}
	}
	return d.Activity
}
