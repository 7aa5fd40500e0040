// Package world holds the live settlement state: the entity/component
// stores, the building registry helpers, the resource stockpile, and the
// skill/relationship ledgers.
package world

import (
	"github.com/emberhollow/settlement/internal/component"
	"github.com/emberhollow/settlement/internal/core/ecs"
)

// State is the complete mutable world. One State lives for the duration of
// one simulated game; on load it is reconstructed wholesale.
type State struct {
	ECS *ecs.World

	Positions *ecs.Store[component.Position]
	Movements *ecs.Store[component.Movement]
	Needs     *ecs.Store[component.Needs]
	Citizens  *ecs.Store[component.Citizen]
	Workers   *ecs.Store[component.Worker]
	Families  *ecs.Store[component.Family]
	Buildings *ecs.Store[component.Building]
	Houses    *ecs.Store[component.House]
	Children  *ecs.Store[component.Child]
	Visitors  *ecs.Store[component.Visitor]

	Stockpile *Stockpile
	Skills    *SkillLedger
	Relations *RelationshipLedger
}

// NewState creates an empty world with every component store registered.
func NewState() *State {
	w := ecs.NewWorld()
	s := &State{
		ECS:       w,
		Positions: ecs.NewStore[component.Position](component.KindPosition),
		Movements: ecs.NewStore[component.Movement](component.KindMovement),
		Needs:     ecs.NewStore[component.Needs](component.KindNeeds),
		Citizens:  ecs.NewStore[component.Citizen](component.KindCitizen),
		Workers:   ecs.NewStore[component.Worker](component.KindWorker),
		Families:  ecs.NewStore[component.Family](component.KindFamily),
		Buildings: ecs.NewStore[component.Building](component.KindBuilding),
		Houses:    ecs.NewStore[component.House](component.KindHouse),
		Children:  ecs.NewStore[component.Child](component.KindChild),
		Visitors:  ecs.NewStore[component.Visitor](component.KindVisitor),
		Stockpile: NewStockpile(0),
		Skills:    NewSkillLedger(),
		Relations: NewRelationshipLedger(),
	}
	w.Register(s.Positions)
	w.Register(s.Movements)
	w.Register(s.Needs)
	w.Register(s.Citizens)
	w.Register(s.Workers)
	w.Register(s.Families)
	w.Register(s.Buildings)
	w.Register(s.Houses)
	w.Register(s.Children)
	w.Register(s.Visitors)
	return s
}

// Building returns the building component for id, treating a missing or
// dead referent as absent.
func (s *State) Building(id ecs.EntityID) (*component.Building, bool) {
	if id.IsZero() || !s.ECS.Alive(id) {
		return nil, false
	}
	return s.Buildings.Get(id)
}

// HomeOf resolves a citizen's assigned home through the family record.
func (s *State) HomeOf(id ecs.EntityID) (ecs.EntityID, *component.Building, bool) {
	fam, ok := s.Families.Get(id)
	if !ok {
		return ecs.InvalidEntity, nil, false
	}
	b, ok := s.Building(fam.Home)
	if !ok {
		return ecs.InvalidEntity, nil, false
	}
	return fam.Home, b, true
}
