package persist

import (
	"github.com/emberhollow/settlement/internal/component"
	"github.com/emberhollow/settlement/internal/core/ecs"
	"github.com/emberhollow/settlement/internal/data"
	"github.com/emberhollow/settlement/internal/world"
)

// SnapshotDoc is one complete, self-contained world image. It carries the
// tick, the behavior throttle counter, every live entity with its
// components, and the off-entity ledgers, so a load reproduces the exact
// pre-save state, mid-interval decisions included.
type SnapshotDoc struct {
	Tick            uint64 `json:"tick"`
	ThrottleCounter int    `json:"throttle_counter"`

	Entities  []EntityDoc                              `json:"entities"`
	Stockpile map[data.ResourceKind]float64            `json:"stockpile"`
	Skills    map[ecs.EntityID]map[world.Skill]float64 `json:"skills,omitempty"`
	Relations []world.RelationEntry                    `json:"relations,omitempty"`
}

// EntityDoc is one entity's component set; absent components stay nil.
type EntityDoc struct {
	ID       ecs.EntityID        `json:"id"`
	Position *component.Position `json:"position,omitempty"`
	Movement *component.Movement `json:"movement,omitempty"`
	Needs    *component.Needs    `json:"needs,omitempty"`
	Citizen  *component.Citizen  `json:"citizen,omitempty"`
	Worker   *component.Worker   `json:"worker,omitempty"`
	Family   *component.Family   `json:"family,omitempty"`
	Building *component.Building `json:"building,omitempty"`
	House    *component.House    `json:"house,omitempty"`
	Child    *component.Child    `json:"child,omitempty"`
	Visitor  *component.Visitor  `json:"visitor,omitempty"`
}

// BuildSnapshot captures the full world state.
func BuildSnapshot(st *world.State, tick uint64, throttleCounter int) *SnapshotDoc {
	doc := &SnapshotDoc{
		Tick:            tick,
		ThrottleCounter: throttleCounter,
		Stockpile:       st.Stockpile.Export(),
		Skills:          st.Skills.Export(),
		Relations:       st.Relations.Export(),
	}

	st.ECS.Pool().Each(func(id ecs.EntityID) {
		e := EntityDoc{ID: id}
		if c, ok := st.Positions.Get(id); ok {
			e.Position = c
		}
		if c, ok := st.Movements.Get(id); ok {
			e.Movement = c
		}
		if c, ok := st.Needs.Get(id); ok {
			e.Needs = c
		}
		if c, ok := st.Citizens.Get(id); ok {
			e.Citizen = c
		}
		if c, ok := st.Workers.Get(id); ok {
			e.Worker = c
		}
		if c, ok := st.Families.Get(id); ok {
			e.Family = c
		}
		if c, ok := st.Buildings.Get(id); ok {
			e.Building = c
		}
		if c, ok := st.Houses.Get(id); ok {
			e.House = c
		}
		if c, ok := st.Children.Get(id); ok {
			e.Child = c
		}
		if c, ok := st.Visitors.Get(id); ok {
			e.Visitor = c
		}
		doc.Entities = append(doc.Entities, e)
	})
	return doc
}

// RestoreSnapshot rebuilds world state from a snapshot. The target state
// must be freshly constructed; entity ids are restored verbatim and the
// id counter advances past the highest loaded id so new entities never
// collide with saved ones.
func RestoreSnapshot(st *world.State, doc *SnapshotDoc) {
	st.Stockpile.Import(doc.Stockpile)
	st.Skills.Import(doc.Skills)
	st.Relations.Import(doc.Relations)

	for i := range doc.Entities {
		e := &doc.Entities[i]
		st.ECS.Pool().Restore(e.ID)
		if e.Position != nil {
			st.Positions.Set(e.ID, e.Position)
		}
		if e.Movement != nil {
			st.Movements.Set(e.ID, e.Movement)
		}
		if e.Needs != nil {
			st.Needs.Set(e.ID, e.Needs)
		}
		if e.Citizen != nil {
			st.Citizens.Set(e.ID, e.Citizen)
		}
		if e.Worker != nil {
			st.Workers.Set(e.ID, e.Worker)
		}
		if e.Family != nil {
			st.Families.Set(e.ID, e.Family)
		}
		if e.Building != nil {
			st.Buildings.Set(e.ID, e.Building)
		}
		if e.House != nil {
			st.Houses.Set(e.ID, e.House)
		}
		if e.Child != nil {
			st.Children.Set(e.ID, e.Child)
		}
		if e.Visitor != nil {
			st.Visitors.Set(e.ID, e.Visitor)
		}
	}
}
