// Package component defines the per-entity data records of the settlement
// simulation. Components carry state only; all behavior lives in the
// systems that read and mutate them.
package component

import "github.com/emberhollow/settlement/internal/core/ecs"

// Component kinds, one per store. The names are also the persistence keys,
// so renaming one breaks old saves.
const (
	KindPosition ecs.Kind = "position"
	KindMovement ecs.Kind = "movement"
	KindNeeds    ecs.Kind = "needs"
	KindCitizen  ecs.Kind = "citizen"
	KindWorker   ecs.Kind = "worker"
	KindFamily   ecs.Kind = "family"
	KindBuilding ecs.Kind = "building"
	KindHouse    ecs.Kind = "house"
	KindChild    ecs.Kind = "child"
	KindVisitor  ecs.Kind = "visitor"
)
