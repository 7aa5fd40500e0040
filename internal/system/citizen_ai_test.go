package system

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emberhollow/settlement/internal/component"
	"github.com/emberhollow/settlement/internal/config"
	"github.com/emberhollow/settlement/internal/core/ecs"
	"github.com/emberhollow/settlement/internal/core/event"
	"github.com/emberhollow/settlement/internal/data"
	"github.com/emberhollow/settlement/internal/engine"
	"github.com/emberhollow/settlement/internal/pathfind"
	"github.com/emberhollow/settlement/internal/world"
)

const (
	dayTick   = 8 * engine.TicksPerHour  // 08:00
	nightTick = 23 * engine.TicksPerHour // 23:00
)

type aiFixture struct {
	st   *world.State
	grid *pathfind.Grid
	deps *Deps
	sys  *CitizenAISystem
}

func newAIFixture(t *testing.T) *aiFixture {
	t.Helper()
	grid := pathfind.NewGrid(32, 32)
	cfg := config.Default()
	cfg.Simulation.BehaviorThrottle = 1
	st := world.NewState()
	deps := &Deps{
		State:     st,
		Pathfind:  pathfind.NewPathfinder(grid, 64),
		Bus:       event.NewBus(),
		Clock:     engine.Clock{},
		Foods:     data.DefaultFoodTable(),
		Buildings: data.DefaultBuildingTable(),
		Config:    cfg,
		Rng:       rand.New(rand.NewSource(7)),
		Log:       zap.NewNop(),
	}
	return &aiFixture{st: st, grid: grid, deps: deps, sys: NewCitizenAISystem(deps)}
}

func (f *aiFixture) addCitizen(x, y int) ecs.EntityID {
	id := f.st.ECS.CreateEntity()
	f.st.Citizens.Set(id, &component.Citizen{Name: "Maro", Age: 30})
	f.st.Positions.Set(id, &component.Position{TileX: x, TileY: y})
	f.st.Needs.Set(id, &component.Needs{Food: 80, Warmth: 80, Energy: 80, Happiness: 50, Health: 100})
	f.st.Movements.Set(id, &component.Movement{Speed: 0.2})
	return id
}

func (f *aiFixture) addBuilding(kind data.BuildingKind, x, y int, warmth float64, capacity int) ecs.EntityID {
	id := f.st.ECS.CreateEntity()
	f.st.Buildings.Set(id, &component.Building{
		Kind:     kind,
		TileX:    x,
		TileY:    y,
		Complete: true,
		Capacity: capacity,
		Warmth:   warmth,
	})
	return id
}

// dispatch flushes the event bus one tick forward so subscribers fire.
func (f *aiFixture) dispatch() {
	f.deps.Bus.SwapBuffers()
	f.deps.Bus.DispatchAll()
}

func TestStarvationPreemptsBusyAndCold(t *testing.T) {
	f := newAIFixture(t)
	id := f.addCitizen(5, 5)

	cit, _ := f.st.Citizens.Get(id)
	needs, _ := f.st.Needs.Get(id)
	mov, _ := f.st.Movements.Get(id)

	cit.ChatTicks = 50 // mid-chat
	needs.Food = 10    // starving
	needs.Warmth = 10  // also freezing, but food wins
	f.st.Stockpile.Add(data.ResourceBerries, 10)

	var fired []event.CitizenStarving
	event.Subscribe(f.deps.Bus, func(e event.CitizenStarving) { fired = append(fired, e) })

	f.sys.Update(dayTick)
	f.dispatch()

	assert.Equal(t, 0, cit.BusyTicks(), "emergency must clear busy timers")
	assert.Greater(t, needs.Food, FoodStarving, "citizen should have eaten from stock")
	assert.False(t, mov.Travelling())
	require.Len(t, fired, 1)
	assert.Equal(t, uint64(id), fired[0].Citizen)
}

func TestStarvationEventFiresOnce(t *testing.T) {
	f := newAIFixture(t)
	id := f.addCitizen(5, 5)
	needs, _ := f.st.Needs.Get(id)
	needs.Food = 5 // starving, and no stock to fix it

	var count int
	event.Subscribe(f.deps.Bus, func(event.CitizenStarving) { count++ })

	f.sys.Update(dayTick)
	f.sys.Update(dayTick)
	f.sys.Update(dayTick)
	f.dispatch()
	f.dispatch()

	assert.Equal(t, 1, count, "starvation fires on first detection only")
}

func TestColdHysteresisSequence(t *testing.T) {
	f := newAIFixture(t)
	f.addBuilding(data.BuildingHouse, 5, 5, 50, 4)
	id := f.addCitizen(5, 6) // adjacent to the warm house

	cit, _ := f.st.Citizens.Get(id)
	needs, _ := f.st.Needs.Get(id)

	// Warmth 50: above freeze threshold, flag stays off.
	needs.Warmth = 50
	f.sys.Update(dayTick)
	assert.False(t, needs.IsColdSheltering)

	// Drops to 15: flag sets, citizen shelters in the warm house.
	needs.Warmth = 15
	f.sys.Update(dayTick)
	assert.True(t, needs.IsColdSheltering)
	assert.Equal(t, "sheltering", cit.Activity)
	assert.False(t, cit.InsideBuilding.IsZero())

	// Recovers to 45: above freezing but below release, still sheltering.
	needs.Warmth = 45
	f.sys.Update(dayTick)
	assert.True(t, needs.IsColdSheltering, "hysteresis holds between thresholds")
	assert.Equal(t, "sheltering", cit.Activity)

	// 65 crosses the release threshold: flag clears, normal behavior resumes.
	needs.Warmth = 65
	f.sys.Update(dayTick)
	assert.False(t, needs.IsColdSheltering)
	assert.NotEqual(t, "sheltering", cit.Activity)
}

func TestColdWorkCarveOut(t *testing.T) {
	f := newAIFixture(t)
	// An incomplete workshop right next to the citizen.
	site := f.st.ECS.CreateEntity()
	f.st.Buildings.Set(site, &component.Building{Kind: data.BuildingWorkshop, TileX: 5, TileY: 5})

	id := f.addCitizen(5, 6)
	needs, _ := f.st.Needs.Get(id)
	cit, _ := f.st.Citizens.Get(id)
	f.st.Workers.Set(id, &component.Worker{
		Profession: component.ProfessionBuilder,
		Workplace:  site,
		ShiftStart: 6,
		ShiftEnd:   20,
	})

	needs.Warmth = 40 // sheltering band, but above the work-critical floor
	needs.IsColdSheltering = true

	f.sys.Update(dayTick)

	assert.True(t, needs.IsColdSheltering, "flag stays until release threshold")
	assert.Equal(t, "building", cit.Activity, "urgent construction overrides sheltering")
}

func TestFreezingCancelsCarveOutRoute(t *testing.T) {
	f := newAIFixture(t)
	site := f.st.ECS.CreateEntity()
	f.st.Buildings.Set(site, &component.Building{Kind: data.BuildingWorkshop, TileX: 20, TileY: 20})
	f.addBuilding(data.BuildingHouse, 5, 8, 50, 4)

	id := f.addCitizen(5, 5)
	cit, _ := f.st.Citizens.Get(id)
	needs, _ := f.st.Needs.Get(id)
	mov, _ := f.st.Movements.Get(id)
	f.st.Workers.Set(id, &component.Worker{
		Profession: component.ProfessionBuilder,
		Workplace:  site,
		ShiftStart: 6,
		ShiftEnd:   20,
	})

	// Sheltering band but above the working floor: the carve-out routes
	// the builder to the site.
	needs.Warmth = 40
	needs.IsColdSheltering = true
	f.sys.Update(dayTick)
	require.True(t, mov.Travelling())
	require.Equal(t, pathfind.Tile{X: 20, Y: 20}, mov.Path[len(mov.Path)-1])

	// Warmth collapses through the freeze threshold mid-commute: the work
	// route dies and a shelter route replaces it.
	needs.Warmth = 10
	f.sys.Update(dayTick)

	assert.True(t, needs.IsColdSheltering)
	assert.Equal(t, "seeking warmth", cit.Activity)
	require.True(t, mov.Travelling())
	assert.Equal(t, pathfind.Tile{X: 5, Y: 8}, mov.Path[len(mov.Path)-1],
		"route must target the shelter, not the site")
}

func TestCarveOutLapsesBelowWorkingFloor(t *testing.T) {
	f := newAIFixture(t)
	site := f.st.ECS.CreateEntity()
	f.st.Buildings.Set(site, &component.Building{Kind: data.BuildingWorkshop, TileX: 20, TileY: 20})
	f.addBuilding(data.BuildingHouse, 5, 8, 50, 4)

	id := f.addCitizen(5, 5)
	cit, _ := f.st.Citizens.Get(id)
	needs, _ := f.st.Needs.Get(id)
	mov, _ := f.st.Movements.Get(id)
	f.st.Workers.Set(id, &component.Worker{
		Profession: component.ProfessionBuilder,
		Workplace:  site,
		ShiftStart: 6,
		ShiftEnd:   20,
	})

	needs.Warmth = 40
	needs.IsColdSheltering = true
	f.sys.Update(dayTick)
	require.Equal(t, pathfind.Tile{X: 20, Y: 20}, mov.Path[len(mov.Path)-1])

	// Cooling below the working floor, though not yet freezing, lapses the
	// carve-out; the commute is dropped in favor of shelter.
	needs.Warmth = 30
	f.sys.Update(dayTick)

	assert.Equal(t, "seeking warmth", cit.Activity)
	require.True(t, mov.Travelling())
	assert.Equal(t, pathfind.Tile{X: 5, Y: 8}, mov.Path[len(mov.Path)-1])
}

func TestStuckRecoveryUnassignsAutoWorker(t *testing.T) {
	f := newAIFixture(t)
	workplace := f.addBuilding(data.BuildingWorkshop, 20, 20, 0, 4)

	id := f.addCitizen(2, 2)
	// Box the citizen in so every route fails.
	f.grid.SetTerrainBlocked(1, 2, true)
	f.grid.SetTerrainBlocked(3, 2, true)
	f.grid.SetTerrainBlocked(2, 1, true)
	f.grid.SetTerrainBlocked(2, 3, true)

	w := &component.Worker{
		Profession:   component.ProfessionBuilder,
		Workplace:    workplace,
		AutoAssigned: true,
		ShiftStart:   6,
		ShiftEnd:     20,
	}
	f.st.Workers.Set(id, w)
	f.st.AssignWorker(id, workplace, true)
	mov, _ := f.st.Movements.Get(id)

	var unassigned []event.WorkerUnassigned
	event.Subscribe(f.deps.Bus, func(e event.WorkerUnassigned) { unassigned = append(unassigned, e) })

	// Threshold restless cycles: counter climbs, job keeps its holder.
	for i := 0; i < StuckThreshold; i++ {
		f.sys.Update(dayTick)
	}
	assert.Equal(t, StuckThreshold, mov.StuckCycles)
	assert.Equal(t, workplace, w.Workplace)

	// One more restless cycle triggers recovery.
	f.sys.Update(dayTick)
	f.dispatch()

	assert.Equal(t, 0, mov.StuckCycles, "recovery resets the counter")
	assert.True(t, w.Workplace.IsZero(), "auto-assigned job revoked")
	assert.False(t, w.AutoAssigned)
	require.Len(t, unassigned, 1)
	assert.Equal(t, "stuck", unassigned[0].Reason)
	assert.Equal(t, uint64(workplace), unassigned[0].Workplace)

	b, ok := f.st.Building(workplace)
	require.True(t, ok)
	assert.False(t, b.Employs(id), "assignment list cleared too")
}

func TestManualAssignmentSurvivesStuck(t *testing.T) {
	f := newAIFixture(t)
	workplace := f.addBuilding(data.BuildingWorkshop, 20, 20, 0, 4)

	id := f.addCitizen(2, 2)
	f.grid.SetTerrainBlocked(1, 2, true)
	f.grid.SetTerrainBlocked(3, 2, true)
	f.grid.SetTerrainBlocked(2, 1, true)
	f.grid.SetTerrainBlocked(2, 3, true)

	w := &component.Worker{
		Profession: component.ProfessionBuilder,
		Workplace:  workplace,
		ShiftStart: 6,
		ShiftEnd:   20,
	}
	f.st.Workers.Set(id, w)
	mov, _ := f.st.Movements.Get(id)

	for i := 0; i < StuckThreshold+1; i++ {
		f.sys.Update(dayTick)
	}

	assert.Equal(t, workplace, w.Workplace, "manual assignments never revoked")
	assert.Equal(t, 0, mov.StuckCycles, "recovery still resets the counter")
}

func TestMealBeforeWork(t *testing.T) {
	f := newAIFixture(t)
	workplace := f.addBuilding(data.BuildingWorkshop, 5, 5, 0, 4)

	id := f.addCitizen(5, 6)
	needs, _ := f.st.Needs.Get(id)
	cit, _ := f.st.Citizens.Get(id)
	f.st.Workers.Set(id, &component.Worker{
		Profession: component.ProfessionBuilder,
		Workplace:  workplace,
		ShiftStart: 6,
		ShiftEnd:   20,
	})

	needs.Food = 40 // hungry but not starving
	f.st.Stockpile.Add(data.ResourceBerries, 10)

	f.sys.Update(dayTick)

	assert.Equal(t, "eating", cit.Activity, "a scheduled meal outranks the shift")
	assert.Greater(t, needs.Food, 40.0)
}

func TestPregnancyRaisesMealThreshold(t *testing.T) {
	f := newAIFixture(t)
	id := f.addCitizen(5, 5)
	needs, _ := f.st.Needs.Get(id)
	cit, _ := f.st.Citizens.Get(id)
	cit.Female = true
	cit.Pregnant = true

	needs.Food = FoodMeal + 5 // above the normal cutoff, below the raised one
	f.st.Stockpile.Add(data.ResourceBerries, 10)

	f.sys.Update(dayTick)

	assert.Equal(t, "eating", cit.Activity)
	assert.Greater(t, needs.Food, FoodMeal+5)
}

func TestNightSleepAndHungryWake(t *testing.T) {
	f := newAIFixture(t)
	home := f.addBuilding(data.BuildingHouse, 5, 5, 30, 4)
	id := f.addCitizen(5, 6)
	f.st.Families.Set(id, &component.Family{Home: home})

	cit, _ := f.st.Citizens.Get(id)
	needs, _ := f.st.Needs.Get(id)

	f.sys.Update(nightTick)
	assert.True(t, cit.IsSleeping, "night sends the citizen to bed")
	assert.Equal(t, home, cit.InsideBuilding)

	// Still night, still tired: stays asleep.
	f.sys.Update(nightTick)
	assert.True(t, cit.IsSleeping)

	// Starvation wakes the sleeper and the same cycle reacts to it.
	needs.Food = 5
	f.sys.Update(nightTick)
	assert.False(t, cit.IsSleeping, "starvation interrupts sleep")
	assert.Equal(t, "starving", cit.Activity)
}

func TestFullHomeSendsSleeperToAnotherBed(t *testing.T) {
	f := newAIFixture(t)
	home := f.addBuilding(data.BuildingHouse, 5, 5, 0, 1)
	f.addBuilding(data.BuildingHouse, 15, 5, 0, 4)

	id := f.addCitizen(5, 6) // on the home's doorstep
	f.st.Families.Set(id, &component.Family{Home: home})

	cit, _ := f.st.Citizens.Get(id)
	needs, _ := f.st.Needs.Get(id)
	mov, _ := f.st.Movements.Get(id)

	hb, _ := f.st.Building(home)
	hb.Occupants = hb.Capacity // every bed taken

	needs.Energy = 20 // tired, not collapsing
	f.sys.Update(nightTick)

	assert.False(t, cit.IsSleeping, "a refused doorstep is not a bed")
	assert.Equal(t, "finding a bed", cit.Activity)
	require.True(t, mov.Travelling())
	assert.Equal(t, pathfind.Tile{X: 15, Y: 5}, mov.Path[len(mov.Path)-1])
}

func TestCriticalEnergySleepsRoughWhenNoBedFree(t *testing.T) {
	f := newAIFixture(t)
	home := f.addBuilding(data.BuildingHouse, 5, 5, 0, 1)
	hb, _ := f.st.Building(home)
	hb.Occupants = hb.Capacity

	id := f.addCitizen(5, 6)
	f.st.Families.Set(id, &component.Family{Home: home})
	cit, _ := f.st.Citizens.Get(id)
	needs, _ := f.st.Needs.Get(id)

	needs.Energy = 5 // collapsing; no free bed anywhere
	f.sys.Update(nightTick)

	assert.True(t, cit.IsSleeping)
	assert.Equal(t, "sleeping", cit.Activity)
}

func TestDaytimeWakeOnFullEnergy(t *testing.T) {
	f := newAIFixture(t)
	id := f.addCitizen(5, 5)
	cit, _ := f.st.Citizens.Get(id)
	needs, _ := f.st.Needs.Get(id)

	cit.IsSleeping = true
	needs.Energy = 100

	f.sys.Update(dayTick)
	assert.False(t, cit.IsSleeping)
}

func TestBusyTimerRunsDownAndFinishes(t *testing.T) {
	f := newAIFixture(t)
	id := f.addCitizen(5, 5)
	cit, _ := f.st.Citizens.Get(id)
	needs, _ := f.st.Needs.Get(id)
	cit.ChatTicks = 2

	var finished []event.ActivityFinished
	event.Subscribe(f.deps.Bus, func(e event.ActivityFinished) { finished = append(finished, e) })

	before := needs.Happiness
	f.sys.Update(dayTick)
	assert.Equal(t, 1, cit.ChatTicks)
	assert.Equal(t, "chatting", cit.Activity)
	assert.Greater(t, needs.Happiness, before)

	f.sys.Update(dayTick)
	f.dispatch()
	assert.Equal(t, 0, cit.ChatTicks)
	require.Len(t, finished, 1)
	assert.Equal(t, "chat", finished[0].Activity)
}

func TestGatherCycle(t *testing.T) {
	f := newAIFixture(t)
	mine := f.addBuilding(data.BuildingMine, 5, 5, 0, 2)
	f.addBuilding(data.BuildingStorage, 5, 7, 0, 4)

	id := f.addCitizen(5, 6) // adjacent to both mine and storage
	w := &component.Worker{
		Profession: component.ProfessionMiner,
		Workplace:  mine,
		ShiftStart: 6,
		ShiftEnd:   20,
	}
	f.st.Workers.Set(id, w)
	f.st.AssignWorker(id, mine, false)

	// Cycle 1: on site, starts extracting.
	f.sys.Update(dayTick)
	assert.Equal(t, component.GatherWorking, w.GatherPhase)
	assert.Equal(t, GatherWorkTicks, w.WorkTicksLeft)

	// Fast-forward the on-site work to its last tick.
	w.WorkTicksLeft = 1
	f.sys.Update(dayTick)
	assert.Equal(t, component.GatherReturning, w.GatherPhase)
	assert.Equal(t, data.ResourceIronOre, w.Carrying)
	assert.Equal(t, GatherLoadUnits, w.CarryingAmount)

	// Cycle 3: adjacent to storage, deposits the load.
	f.sys.Update(dayTick)
	assert.Equal(t, component.GatherIdle, w.GatherPhase)
	assert.Equal(t, data.ResourceKind(""), w.Carrying)
	assert.Equal(t, GatherLoadUnits, f.st.Stockpile.Stock(data.ResourceIronOre))
	assert.Equal(t, GatherLoadUnits, w.GatheredToday[data.ResourceIronOre])
	assert.Greater(t, f.st.Skills.Experience(id, world.SkillMining), 0.0)

	// Cycle 4: quota permitting, the loop starts over.
	f.sys.Update(dayTick)
	assert.Equal(t, component.GatherWorking, w.GatherPhase)
}

func TestGatherStopsWhenStorageFull(t *testing.T) {
	f := newAIFixture(t)
	mine := f.addBuilding(data.BuildingMine, 5, 5, 0, 2)
	f.addBuilding(data.BuildingStorage, 5, 7, 0, 4)
	id := f.addCitizen(5, 6)
	w := &component.Worker{
		Profession: component.ProfessionMiner,
		Workplace:  mine,
		ShiftStart: 6,
		ShiftEnd:   20,
	}
	f.st.Workers.Set(id, w)

	f.st.Stockpile.SetCapacity(1)
	f.st.Stockpile.Add(data.ResourceWood, 1)
	require.True(t, f.st.Stockpile.Full())

	cit, _ := f.st.Citizens.Get(id)

	f.sys.Update(dayTick)

	assert.Equal(t, component.GatherIdle, w.GatherPhase, "no new trip while storage is full")
	// The understaffed storage barn next door is the fallback job.
	assert.Equal(t, "helping out", cit.Activity)
	assert.Equal(t, 0.0, f.st.Stockpile.Stock(data.ResourceIronOre))
}

func TestVisitorLeavesWhenStayExpires(t *testing.T) {
	f := newAIFixture(t)
	id := f.st.ECS.CreateEntity()
	f.st.Visitors.Set(id, &component.Visitor{StayTicksLeft: 1})

	var left []event.VisitorLeft
	event.Subscribe(f.deps.Bus, func(e event.VisitorLeft) { left = append(left, e) })

	f.sys.Update(dayTick)
	destroyed := f.st.ECS.FlushDestroyQueue()
	f.dispatch()

	assert.Contains(t, destroyed, id)
	assert.False(t, f.st.ECS.Alive(id))
	require.Len(t, left, 1)
	assert.Equal(t, uint64(id), left[0].Visitor)
}

func TestChildAttendsSchool(t *testing.T) {
	f := newAIFixture(t)
	school := f.addBuilding(data.BuildingSchool, 5, 5, 20, 10)

	id := f.addCitizen(5, 6)
	child := &component.Child{}
	f.st.Children.Set(id, child)
	cit, _ := f.st.Citizens.Get(id)

	f.sys.Update(dayTick)

	assert.Equal(t, "at school", cit.Activity)
	assert.Equal(t, school, child.School)
	assert.Equal(t, SchoolProgressPerCycle, child.SchoolProgress)

	// At night the child goes home to sleep instead.
	f.sys.Update(nightTick)
	assert.NotEqual(t, "at school", cit.Activity)
}

func TestSocializeStartsChatOnBothSides(t *testing.T) {
	f := newAIFixture(t)
	a := f.addCitizen(5, 5)
	b := f.addCitizen(5, 7) // inside the socialize radius

	citA, _ := f.st.Citizens.Get(a)
	citB, _ := f.st.Citizens.Get(b)
	movA, _ := f.st.Movements.Get(a)

	out, ok := f.sys.trySocialize(8, a, citA, mustGet(t, f.st.Positions, a), movA)
	require.True(t, ok)
	assert.Equal(t, outcomeSettled, out)

	assert.Equal(t, ChatDuration, citA.ChatTicks)
	assert.Equal(t, ChatDuration, citB.ChatTicks)
	assert.Equal(t, 1, f.st.Relations.Count(a, b))
}

func TestWanderRespectsBlockedTiles(t *testing.T) {
	f := newAIFixture(t)
	id := f.addCitizen(2, 2)
	f.grid.SetTerrainBlocked(1, 2, true)
	f.grid.SetTerrainBlocked(3, 2, true)
	f.grid.SetTerrainBlocked(2, 1, true)
	f.grid.SetTerrainBlocked(2, 3, true)

	cit, _ := f.st.Citizens.Get(id)
	pos, _ := f.st.Positions.Get(id)
	needs, _ := f.st.Needs.Get(id)
	mov, _ := f.st.Movements.Get(id)

	out := f.sys.wander(id, cit, pos, needs, mov)
	assert.Equal(t, outcomeRestless, out, "boxed-in wander gives up after its attempts")
	assert.False(t, mov.Travelling())
}

func mustGet[T any](t *testing.T, s *ecs.Store[T], id ecs.EntityID) *T {
	t.Helper()
	v, ok := s.Get(id)
	require.True(t, ok)
	return v
}
