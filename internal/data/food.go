package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FoodTable holds every edible definition, raw and cooked.
type FoodTable struct {
	byKind map[ResourceKind]*FoodDef
	raw    []ResourceKind
	cooked []ResourceKind
}

type foodListFile struct {
	Foods []FoodDef `yaml:"foods"`
}

// LoadFoodTable reads food definitions from YAML.
func LoadFoodTable(path string) (*FoodTable, error) {
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read food list %s: %w", path, err)
	}
	var file foodListFile
	if err := yaml.Unmarshal(rawBytes, &file); err != nil {
		return nil, fmt.Errorf("parse food list: %w", err)
	}

	t := &FoodTable{
		byKind: make(map[ResourceKind]*FoodDef, len(file.Foods)),
	}
	for i := range file.Foods {
		def := &file.Foods[i]
		if def.Kind == "" {
			return nil, fmt.Errorf("food entry %d (%s): missing kind", i, def.Name)
		}
		if def.StockCost <= 0 {
			def.StockCost = 1
		}
		t.byKind[def.Kind] = def
		if def.Cooked {
			t.cooked = append(t.cooked, def.Kind)
		} else {
			t.raw = append(t.raw, def.Kind)
		}
	}
	return t, nil
}

func (t *FoodTable) Count() int { return len(t.byKind) }

// Get returns the definition for a kind, or nil if it is not edible.
func (t *FoodTable) Get(kind ResourceKind) *FoodDef {
	return t.byKind[kind]
}

// RawKinds returns edible raw resources in file order.
func (t *FoodTable) RawKinds() []ResourceKind { return t.raw }

// CookedKinds returns cooked dishes in file order.
func (t *FoodTable) CookedKinds() []ResourceKind { return t.cooked }

// DefaultFoodTable returns the built-in table used when no YAML file is
// supplied (tests, headless tools).
func DefaultFoodTable() *FoodTable {
	t := &FoodTable{byKind: make(map[ResourceKind]*FoodDef, 8)}
	defs := []FoodDef{
		{Kind: ResourceBerries, Name: "berries", Food: 20},
		{Kind: ResourceFish, Name: "fish", Food: 25},
		{Kind: ResourceGrain, Name: "grain", Food: 20},
		{Kind: ResourceMeat, Name: "meat", Food: 30},
		{Kind: ResourceVegetables, Name: "vegetables", Food: 22},
		{Kind: "stew", Name: "hearty stew", Cooked: true, StockCost: 0.5,
			Food: 45, Happiness: 6, Warmth: 8, Ingredients: []ResourceKind{ResourceMeat, ResourceVegetables}},
		{Kind: "bread", Name: "fresh bread", Cooked: true, StockCost: 0.5,
			Food: 40, Happiness: 4, Energy: 5, Ingredients: []ResourceKind{ResourceGrain}},
		{Kind: "grilled_fish", Name: "grilled fish", Cooked: true, StockCost: 0.5,
			Food: 42, Happiness: 5, Ingredients: []ResourceKind{ResourceFish}},
	}
	for i := range defs {
		def := &defs[i]
		if def.StockCost <= 0 {
			def.StockCost = 1
		}
		t.byKind[def.Kind] = def
		if def.Cooked {
			t.cooked = append(t.cooked, def.Kind)
		} else {
			t.raw = append(t.raw, def.Kind)
		}
	}
	return t
}
