package system

// Need thresholds, all on the 0-100 scale.
const (
	// FoodStarving triggers the emergency food branch; it pre-empts
	// everything, including cold handling.
	FoodStarving = 20.0
	// FoodMeal triggers an ordinary scheduled meal.
	FoodMeal = 50.0
	// FoodMealPregnantBonus raises the meal threshold for pregnant citizens.
	FoodMealPregnantBonus = 10.0

	// WarmthFreezing sets the sticky sheltering flag; WarmthRelease clears
	// it. The gap is the hysteresis band; release must stay strictly above
	// freezing or shelter-seeking oscillates at the boundary.
	WarmthFreezing = 20.0
	WarmthRelease  = 60.0
	// WarmthWorkCritical gates the carve-out that lets a sheltering worker
	// leave for urgent on-duty work.
	WarmthWorkCritical = 35.0
	// WarmShelterFloor is the minimum heated-interior rating that counts as
	// a genuine warm shelter.
	WarmShelterFloor = 40.0

	EnergyTired    = 25.0
	EnergyCritical = 10.0
	EnergyFull     = 100.0
)

// Stuck recovery.
const (
	// StuckThreshold is the number of consecutive restless decision cycles
	// after which recovery kicks in.
	StuckThreshold = 3
)

// Busy action durations, in ticks.
const (
	ChatDuration     = 40
	NapDuration      = 120
	CampfireDuration = 150
	TavernDuration   = 200
)

// Passive per-cycle effects of busy actions (applied once per throttled
// decision cycle while the timer runs).
const (
	ChatHappinessGain     = 1.5
	NapEnergyGain         = 4.0
	CampfireHappinessGain = 1.0
	CampfireWarmthGain    = 3.0
	TavernHappinessGain   = 2.0

	WanderAdventurousBonus = 2.0
)

// Gather cycle tuning.
const (
	GatherWorkTicks        = 60  // on-site extraction time per load
	GatherLoadUnits        = 2.0 // units carried per trip
	GatherSkillXP          = 1.0
	WorkSkillXP            = 0.5
	SchoolProgressPerCycle = 0.5
)

// Distances, in tiles.
const (
	AdjacentDistance = 1 // "at" a building
	SocializeRadius  = 6
	WanderRadius     = 8
	WanderAttempts   = 6
)

// Per-tick needs decay rates.
const (
	FoodDecayPerTick   = 0.010
	EnergyDecayPerTick = 0.008
	WarmthDecayPerTick = 0.012
	WarmthNightPenalty = 0.010 // extra decay at night, outdoors
	WarmthIndoorGain   = 0.05  // approach rate toward building warmth
	SleepEnergyPerTick = 0.05
	HappinessDriftRate = 0.002 // drift toward neutral 50
	HealthDecayStarved = 0.02  // per tick at food or warmth zero
	HealthRegenPerTick = 0.004 // when fed and warm
)
