package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/emberhollow/settlement/internal/component"
	"github.com/emberhollow/settlement/internal/config"
	"github.com/emberhollow/settlement/internal/core/ecs"
	"github.com/emberhollow/settlement/internal/core/event"
	coresys "github.com/emberhollow/settlement/internal/core/system"
	"github.com/emberhollow/settlement/internal/data"
	"github.com/emberhollow/settlement/internal/engine"
	"github.com/emberhollow/settlement/internal/pathfind"
	"github.com/emberhollow/settlement/internal/persist"
	"github.com/emberhollow/settlement/internal/scripting"
	"github.com/emberhollow/settlement/internal/system"
	"github.com/emberhollow/settlement/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m           Emberhollow  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      settlement simulation server         \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mSettlement:\033[0m %s\n\n", name)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("EMBERHOLLOW_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = config.Default()
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name)

	// 3. Connect to PostgreSQL and run migrations. An empty DSN runs the
	// simulation fully in memory: no snapshots, no journal.
	var db *persist.DB
	if cfg.Database.DSN != "" {
		printSection("Database")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err = persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK("migrations applied")
		fmt.Println()
	}

	// 4. Load data tables
	printSection("Data")

	foods, err := data.LoadFoodTable(cfg.Server.DataDir + "/yaml/food_list.yaml")
	if err != nil {
		log.Warn("food list missing, using built-in table", zap.Error(err))
		foods = data.DefaultFoodTable()
	}
	printStat("food defs", foods.Count())

	buildings, err := data.LoadBuildingTable(cfg.Server.DataDir + "/yaml/building_list.yaml")
	if err != nil {
		log.Warn("building list missing, using built-in table", zap.Error(err))
		buildings = data.DefaultBuildingTable()
	}
	printStat("building defs", buildings.Count())

	names, err := data.LoadNameTable(cfg.Server.DataDir + "/yaml/name_list.yaml")
	if err != nil {
		log.Warn("name list missing, using built-in pool", zap.Error(err))
		names = data.DefaultNameTable()
	}

	// 5. Terrain and pathfinding grid
	var grid *pathfind.Grid
	info, tiles, err := data.LoadTerrain(cfg.Server.DataDir+"/yaml/map_list.yaml", cfg.Server.DataDir+"/map")
	if err != nil {
		log.Warn("terrain missing, using open ground", zap.Error(err))
		info = data.MapInfo{Name: "open ground", Width: 64, Height: 64}
		grid = pathfind.NewGrid(info.Width, info.Height)
	} else {
		grid = pathfind.NewGridFromTiles(tiles, info.Width, info.Height)
	}
	printStat("map tiles", info.Width*info.Height)
	pf := pathfind.NewPathfinder(grid, cfg.Pathfinder.CacheSize)

	// 6. Lua scripting engine
	luaEngine, err := scripting.NewEngine(cfg.Server.ScriptDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	printOK("lua scripts loaded")

	// 7. World state: restore the latest snapshot, or seed a fresh
	// settlement on an empty database.
	state := world.NewState()
	state.Stockpile.SetCapacity(cfg.Simulation.StorageCapacity)

	var saver *persist.Saver
	var startTick uint64
	var throttleCounter int
	loaded := false
	if db != nil {
		saver = persist.NewSaver(state, db, log)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		tick, counter, ok, err := saver.LoadLatest(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		if ok {
			startTick, throttleCounter, loaded = tick, counter, true
			printOK(fmt.Sprintf("snapshot restored (tick %d)", tick))
		}
	}
	if !loaded {
		seedSettlement(state, grid, buildings, names, cfg, rand.New(rand.NewSource(cfg.Server.Seed)))
		printOK("fresh settlement seeded")
	}
	// Building footprints block movement whether seeded or restored.
	blockBuildingTiles(state, grid)
	pf.Invalidate()
	printStat("citizens", state.Citizens.Len())
	printStat("buildings", state.Buildings.Len())
	fmt.Println()

	// 8. Systems
	clock := engine.Clock{}
	bus := event.NewBus()
	festival := scripting.NewFestival(luaEngine, clock)
	deps := &system.Deps{
		State:     state,
		Pathfind:  pf,
		Bus:       bus,
		Clock:     clock,
		Foods:     foods,
		Buildings: buildings,
		Activity:  festival,
		Config:    cfg,
		Rng:       rand.New(rand.NewSource(cfg.Server.Seed + 1)),
		Log:       log,
	}

	behavior := system.NewCitizenAISystem(deps)
	behavior.SetThrottleCounter(throttleCounter)

	runner := coresys.NewRunner()
	runner.Register(scripting.NewFestivalSystem(festival))
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(system.NewMovementSystem(deps))
	runner.Register(behavior)
	runner.Register(system.NewNeedsDecaySystem(deps))
	if saver != nil {
		runner.Register(system.NewAutosaveSystem(deps, saver, behavior))
	}
	runner.Register(system.NewCleanupSystem(deps))

	// 9. Game loop
	loop := engine.NewGameLoop(runner, log)
	loop.SetTick(startTick)
	loop.SetSpeed(cfg.Simulation.Speed)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	printSection("Ready")
	printReady(fmt.Sprintf("simulating %q at %d ticks/sec, speed x%.1f",
		info.Name, engine.TicksPerSecond, loop.Speed()))
	printReady(clock.String(startTick))
	fmt.Println()

	go loop.Run()

	sig := <-shutdownCh
	log.Info("shutdown signal", zap.String("signal", sig.String()))
	loop.Stop()

	if saver != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := saver.Autosave(ctx, loop.Tick(), behavior.ThrottleCounter()); err != nil {
			log.Error("final save failed", zap.Error(err))
		} else {
			log.Info("final save written", zap.Uint64("tick", loop.Tick()))
		}
	}
	log.Info("stopped", zap.String("time", clock.String(loop.Tick())))
	return nil
}

// blockBuildingTiles marks every building footprint as unwalkable so routes
// go around buildings and stop on adjacent tiles.
func blockBuildingTiles(state *world.State, grid *pathfind.Grid) {
	state.Buildings.Each(func(_ ecs.EntityID, b *component.Building) {
		grid.SetStructBlocked(b.TileX, b.TileY, true)
	})
}

// seedBuilding creates one completed building entity from its template.
func seedBuilding(state *world.State, defs *data.BuildingTable, kind data.BuildingKind, x, y int) ecs.EntityID {
	def := defs.Get(kind)
	id := state.ECS.CreateEntity()
	b := &component.Building{Kind: kind, TileX: x, TileY: y, Complete: true}
	if def != nil {
		b.Capacity = def.Capacity
		b.Warmth = def.Warmth
	}
	state.Buildings.Set(id, b)
	if def != nil && def.Housing {
		state.Houses.Set(id, &component.House{Beds: def.Capacity})
	}
	return id
}

// seedSettlement stocks a fresh world: a small village around the map
// center, its citizens, and a starting larder.
func seedSettlement(state *world.State, grid *pathfind.Grid, defs *data.BuildingTable, names *data.NameTable, cfg *config.Config, rng *rand.Rand) {
	cx, cy := grid.Width()/2, grid.Height()/2

	storage := seedBuilding(state, defs, data.BuildingStorage, cx, cy)
	tavern := seedBuilding(state, defs, data.BuildingTavern, cx+3, cy)
	seedBuilding(state, defs, data.BuildingCampfire, cx, cy+3)
	workshop := seedBuilding(state, defs, data.BuildingWorkshop, cx-3, cy)
	school := seedBuilding(state, defs, data.BuildingSchool, cx, cy-3)
	farm := seedBuilding(state, defs, data.BuildingFarm, cx+6, cy+3)
	mine := seedBuilding(state, defs, data.BuildingMine, cx-8, cy-6)
	quarry := seedBuilding(state, defs, data.BuildingQuarry, cx+8, cy-6)
	hut := seedBuilding(state, defs, data.BuildingGatherHut, cx-6, cy+6)

	houses := make([]ecs.EntityID, 0, 6)
	for i := 0; i < 6; i++ {
		houses = append(houses, seedBuilding(state, defs, data.BuildingHouse, cx-5+i*2, cy+5))
	}

	// Round-robin job pool; laborers (zero id) take construction work.
	jobs := []ecs.EntityID{mine, quarry, hut, farm, workshop, tavern, storage, school, 0}
	traits := []component.Trait{component.TraitAdventurous, component.TraitSociable, component.TraitDiligent, component.TraitLazy}

	count := cfg.Simulation.InitialCitizens
	for i := 0; i < count; i++ {
		id := state.ECS.CreateEntity()
		home := houses[i%len(houses)]
		hb, _ := state.Buildings.Get(home)

		cit := &component.Citizen{
			Name:   names.Pick(uint64(i)),
			Age:    18 + rng.Intn(40),
			Female: i%2 == 0,
		}
		if rng.Intn(3) == 0 {
			cit.Traits = append(cit.Traits, traits[rng.Intn(len(traits))])
		}
		state.Citizens.Set(id, cit)
		state.Positions.Set(id, &component.Position{TileX: hb.TileX, TileY: hb.TileY + 1})
		state.Movements.Set(id, &component.Movement{Speed: 0.2})
		state.Needs.Set(id, &component.Needs{
			Food:      60 + rng.Float64()*30,
			Warmth:    70 + rng.Float64()*20,
			Energy:    60 + rng.Float64()*40,
			Happiness: 50,
			Health:    100,
		})
		state.Families.Set(id, &component.Family{Home: home})
		if h, ok := state.Houses.Get(home); ok && h.HasFreeBed() {
			h.Residents = append(h.Residents, id)
		}

		// Every fifth citizen is a child; the rest work.
		if i%5 == 4 {
			state.Children.Set(id, &component.Child{})
			continue
		}
		w := &component.Worker{
			Profession: component.ProfessionLaborer,
			ShiftStart: 7,
			ShiftEnd:   18,
		}
		state.Workers.Set(id, w)
		if job := jobs[i%len(jobs)]; !job.IsZero() {
			state.AssignWorker(id, job, true)
		}
	}

	// Starting larder.
	state.Stockpile.Add(data.ResourceBerries, cfg.Simulation.InitialFoodUnits*0.4)
	state.Stockpile.Add(data.ResourceGrain, cfg.Simulation.InitialFoodUnits*0.3)
	state.Stockpile.Add(data.ResourceFish, cfg.Simulation.InitialFoodUnits*0.3)
	state.Stockpile.Add(data.ResourceWood, 40)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
