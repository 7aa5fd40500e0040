package persist

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberhollow/settlement/internal/component"
	"github.com/emberhollow/settlement/internal/core/ecs"
	"github.com/emberhollow/settlement/internal/data"
	"github.com/emberhollow/settlement/internal/pathfind"
	"github.com/emberhollow/settlement/internal/world"
)

func buildTestWorld(t *testing.T) (*world.State, ecs.EntityID, ecs.EntityID) {
	t.Helper()
	st := world.NewState()

	house := st.ECS.CreateEntity()
	st.Buildings.Set(house, &component.Building{
		Kind:     data.BuildingHouse,
		TileX:    10,
		TileY:    10,
		Complete: true,
		Capacity: 5,
		Warmth:   60,
	})
	st.Houses.Set(house, &component.House{Beds: 5})

	cit := st.ECS.CreateEntity()
	st.Citizens.Set(cit, &component.Citizen{
		Name:     "Betha Briar",
		Age:      34,
		Activity: "working",
		NapTicks: 12,
	})
	st.Positions.Set(cit, &component.Position{TileX: 11, TileY: 10})
	st.Movements.Set(cit, &component.Movement{
		Speed:       0.2,
		Path:        pathfind.Path{{X: 12, Y: 10}, {X: 13, Y: 10}},
		Progress:    0.4,
		StuckCycles: 2,
	})
	st.Needs.Set(cit, &component.Needs{
		Food:             48,
		Warmth:           25,
		Energy:           70,
		Happiness:        55,
		Health:           92,
		RecentMeals:      []data.ResourceKind{data.ResourceGrain},
		IsColdSheltering: true,
	})
	st.Workers.Set(cit, &component.Worker{
		Profession:     component.ProfessionMiner,
		Workplace:      house,
		AutoAssigned:   true,
		GatherPhase:    component.GatherReturning,
		Carrying:       data.ResourceIronOre,
		CarryingAmount: 2,
	})
	st.Families.Set(cit, &component.Family{Home: house})

	st.Stockpile.Add(data.ResourceWood, 25)
	st.Stockpile.Add(data.ResourceBerries, 8)
	st.Skills.Grant(cit, world.SkillMining, 6.5)
	st.Relations.Increment(cit, house) // arbitrary pair, counts survive

	return st, cit, house
}

func TestSnapshotRoundTripThroughJSON(t *testing.T) {
	st, cit, house := buildTestWorld(t)

	doc := BuildSnapshot(st, 4217, 3)
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded SnapshotDoc
	require.NoError(t, json.Unmarshal(raw, &decoded))

	fresh := world.NewState()
	RestoreSnapshot(fresh, &decoded)

	assert.Equal(t, uint64(4217), decoded.Tick)
	assert.Equal(t, 3, decoded.ThrottleCounter)

	require.True(t, fresh.ECS.Alive(cit))
	require.True(t, fresh.ECS.Alive(house))

	gotCit, ok := fresh.Citizens.Get(cit)
	require.True(t, ok)
	assert.Equal(t, "Betha Briar", gotCit.Name)
	assert.Equal(t, 12, gotCit.NapTicks, "mid-activity timers survive")

	gotMov, ok := fresh.Movements.Get(cit)
	require.True(t, ok)
	assert.Len(t, gotMov.Path, 2, "an in-transit route survives")
	assert.InDelta(t, 0.4, gotMov.Progress, 1e-9)
	assert.Equal(t, 2, gotMov.StuckCycles)

	gotNeeds, ok := fresh.Needs.Get(cit)
	require.True(t, ok)
	assert.True(t, gotNeeds.IsColdSheltering, "sticky cold flag survives")
	assert.Equal(t, []data.ResourceKind{data.ResourceGrain}, gotNeeds.RecentMeals)

	gotWorker, ok := fresh.Workers.Get(cit)
	require.True(t, ok)
	assert.Equal(t, component.GatherReturning, gotWorker.GatherPhase, "gather program counter survives")
	assert.Equal(t, data.ResourceIronOre, gotWorker.Carrying)
	assert.True(t, gotWorker.AutoAssigned)

	assert.Equal(t, 25.0, fresh.Stockpile.Stock(data.ResourceWood))
	assert.Equal(t, 6.5, fresh.Skills.Experience(cit, world.SkillMining))
	assert.Equal(t, 1, fresh.Relations.Count(cit, house))
}

func TestRestoreAdvancesIDCounterPastLoaded(t *testing.T) {
	st, _, _ := buildTestWorld(t)
	doc := BuildSnapshot(st, 1, 0)

	fresh := world.NewState()
	RestoreSnapshot(fresh, doc)

	next := fresh.ECS.CreateEntity()
	for _, e := range doc.Entities {
		assert.NotEqual(t, e.ID, next, "new entities never reuse restored ids")
	}
}

func TestSnapshotOmitsDeadEntities(t *testing.T) {
	st, cit, _ := buildTestWorld(t)
	st.ECS.DestroyEntity(cit)

	doc := BuildSnapshot(st, 1, 0)
	for _, e := range doc.Entities {
		assert.NotEqual(t, cit, e.ID)
	}
}
