package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BuildingKind names a building template.
type BuildingKind string

const (
	BuildingHouse     BuildingKind = "house"
	BuildingStorage   BuildingKind = "storage"
	BuildingTavern    BuildingKind = "tavern"
	BuildingMine      BuildingKind = "mine"
	BuildingQuarry    BuildingKind = "quarry"
	BuildingGatherHut BuildingKind = "gather_hut"
	BuildingFarm      BuildingKind = "farm"
	BuildingWorkshop  BuildingKind = "workshop"
	BuildingSchool    BuildingKind = "school"
	BuildingCampfire  BuildingKind = "campfire"
)

// BuildingDef is one building template from the YAML table.
type BuildingDef struct {
	Kind       BuildingKind `yaml:"kind"`
	Name       string       `yaml:"name"`
	Capacity   int          `yaml:"capacity"`   // max simultaneous occupants
	WorkerCap  int          `yaml:"worker_cap"` // max assigned workers
	Warmth     float64      `yaml:"warmth"`     // heated-interior rating, 0 = unheated
	Extraction bool         `yaml:"extraction"` // mines, quarries, gathering huts
	Resource   ResourceKind `yaml:"resource"`   // extraction output
	Quota      float64      `yaml:"quota"`      // per-day production quota per worker
	Housing    bool         `yaml:"housing"`    // counts as a home
}

// BuildingTable indexes building templates by kind.
type BuildingTable struct {
	byKind map[BuildingKind]*BuildingDef
}

type buildingListFile struct {
	Buildings []BuildingDef `yaml:"buildings"`
}

// LoadBuildingTable reads building templates from YAML.
func LoadBuildingTable(path string) (*BuildingTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read building list %s: %w", path, err)
	}
	var file buildingListFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse building list: %w", err)
	}

	t := &BuildingTable{byKind: make(map[BuildingKind]*BuildingDef, len(file.Buildings))}
	for i := range file.Buildings {
		def := &file.Buildings[i]
		if def.Kind == "" {
			return nil, fmt.Errorf("building entry %d (%s): missing kind", i, def.Name)
		}
		if def.Extraction && def.Resource == "" {
			return nil, fmt.Errorf("building %s: extraction without resource", def.Kind)
		}
		t.byKind[def.Kind] = def
	}
	return t, nil
}

func (t *BuildingTable) Count() int { return len(t.byKind) }

// Get returns the template for a kind, or nil if unknown.
func (t *BuildingTable) Get(kind BuildingKind) *BuildingDef {
	return t.byKind[kind]
}

// DefaultBuildingTable returns the built-in template set.
func DefaultBuildingTable() *BuildingTable {
	defs := []BuildingDef{
		{Kind: BuildingHouse, Name: "house", Capacity: 5, Warmth: 60, Housing: true},
		{Kind: BuildingStorage, Name: "storage barn", Capacity: 8, WorkerCap: 2},
		{Kind: BuildingTavern, Name: "tavern", Capacity: 12, WorkerCap: 3, Warmth: 70},
		{Kind: BuildingMine, Name: "iron mine", Capacity: 6, WorkerCap: 6, Extraction: true, Resource: ResourceIronOre, Quota: 8},
		{Kind: BuildingQuarry, Name: "stone quarry", Capacity: 6, WorkerCap: 6, Extraction: true, Resource: ResourceStone, Quota: 10},
		{Kind: BuildingGatherHut, Name: "gathering hut", Capacity: 4, WorkerCap: 4, Extraction: true, Resource: ResourceBerries, Quota: 12},
		{Kind: BuildingFarm, Name: "farm", Capacity: 6, WorkerCap: 6},
		{Kind: BuildingWorkshop, Name: "workshop", Capacity: 4, WorkerCap: 4, Warmth: 40},
		{Kind: BuildingSchool, Name: "school", Capacity: 20, WorkerCap: 2, Warmth: 55},
		{Kind: BuildingCampfire, Name: "campfire", Capacity: 10, Warmth: 65},
	}
	t := &BuildingTable{byKind: make(map[BuildingKind]*BuildingDef, len(defs))}
	for i := range defs {
		t.byKind[defs[i].Kind] = &defs[i]
	}
	return t
}
