// Package data loads the static simulation tables from YAML: resource and
// dish definitions, building templates, the terrain map, and name pools.
// Tables are immutable after load and shared by reference.
package data

// ResourceKind names a stockpiled resource. Values come from the YAML
// tables, so the type is open; unknown kinds simply have zero stock.
type ResourceKind string

const (
	ResourceWood       ResourceKind = "wood"
	ResourceStone      ResourceKind = "stone"
	ResourceIronOre    ResourceKind = "iron_ore"
	ResourceBerries    ResourceKind = "berries"
	ResourceFish       ResourceKind = "fish"
	ResourceGrain      ResourceKind = "grain"
	ResourceMeat       ResourceKind = "meat"
	ResourceVegetables ResourceKind = "vegetables"
	ResourceFirewood   ResourceKind = "firewood"
)

// FoodDef describes one edible resource or cooked dish.
type FoodDef struct {
	Kind      ResourceKind `yaml:"kind"`
	Name      string       `yaml:"name"`
	Cooked    bool         `yaml:"cooked"`
	StockCost float64      `yaml:"stock_cost"` // units removed per meal
	Food      float64      `yaml:"food"`       // need restoration
	Happiness float64      `yaml:"happiness"`  // secondary buffs, cooked dishes only
	Warmth    float64      `yaml:"warmth"`
	Energy    float64      `yaml:"energy"`
	// Ingredients holds the raw kinds a cooked dish draws from; the diet
	// history records these, not the dish itself.
	Ingredients []ResourceKind `yaml:"ingredients,omitempty"`
}
