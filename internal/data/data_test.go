package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFoodTableSplitsRawAndCooked(t *testing.T) {
	path := writeFile(t, t.TempDir(), "food.yaml", `
foods:
  - kind: berries
    name: berries
    food: 20
  - kind: stew
    name: stew
    cooked: true
    stock_cost: 0.5
    food: 45
    ingredients: [meat]
`)
	table, err := LoadFoodTable(path)
	require.NoError(t, err)

	assert.Equal(t, 2, table.Count())
	assert.Equal(t, []ResourceKind{ResourceBerries}, table.RawKinds())
	assert.Equal(t, []ResourceKind{"stew"}, table.CookedKinds())

	berries := table.Get(ResourceBerries)
	require.NotNil(t, berries)
	assert.Equal(t, 1.0, berries.StockCost, "missing stock cost defaults to one unit")

	stew := table.Get("stew")
	require.NotNil(t, stew)
	assert.Equal(t, 0.5, stew.StockCost)
	assert.Equal(t, []ResourceKind{ResourceMeat}, stew.Ingredients)
}

func TestLoadFoodTableRejectsMissingKind(t *testing.T) {
	path := writeFile(t, t.TempDir(), "food.yaml", `
foods:
  - name: nameless
    food: 10
`)
	_, err := LoadFoodTable(path)
	assert.Error(t, err)
}

func TestLoadBuildingTableRejectsExtractionWithoutResource(t *testing.T) {
	path := writeFile(t, t.TempDir(), "buildings.yaml", `
buildings:
  - kind: mine
    name: mine
    extraction: true
`)
	_, err := LoadBuildingTable(path)
	assert.Error(t, err)
}

func TestLoadBuildingTableIndexesByKind(t *testing.T) {
	path := writeFile(t, t.TempDir(), "buildings.yaml", `
buildings:
  - kind: house
    name: house
    capacity: 5
    warmth: 60
    housing: true
  - kind: mine
    name: mine
    worker_cap: 6
    extraction: true
    resource: iron_ore
    quota: 8
`)
	table, err := LoadBuildingTable(path)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Count())

	mine := table.Get(BuildingMine)
	require.NotNil(t, mine)
	assert.True(t, mine.Extraction)
	assert.Equal(t, ResourceIronOre, mine.Resource)
	assert.Equal(t, 8.0, mine.Quota)
	assert.Nil(t, table.Get(BuildingTavern))
}

func TestLoadNameTablePickIsDeterministic(t *testing.T) {
	path := writeFile(t, t.TempDir(), "names.yaml", `
first: [Ada, Bram]
family: [Stone, Vale]
`)
	table, err := LoadNameTable(path)
	require.NoError(t, err)

	assert.Equal(t, "Ada Stone", table.Pick(0))
	assert.Equal(t, "Bram Stone", table.Pick(1))
	assert.Equal(t, "Ada Vale", table.Pick(2))
	assert.Equal(t, table.Pick(3), table.Pick(3))
}

func TestLoadNameTableRejectsEmptyPool(t *testing.T) {
	path := writeFile(t, t.TempDir(), "names.yaml", "first: []\nfamily: [Stone]\n")
	_, err := LoadNameTable(path)
	assert.Error(t, err)
}

func TestLoadTerrainReadsTileGrid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "map_list.yaml", `
map:
  name: testvale
  width: 3
  height: 2
  tile_file: tiles.csv
`)
	writeFile(t, dir, "tiles.csv", "# comment row\n0,1,2\n0,0,1\n")

	info, tiles, err := LoadTerrain(filepath.Join(dir, "map_list.yaml"), dir)
	require.NoError(t, err)

	assert.Equal(t, "testvale", info.Name)
	require.Len(t, tiles, 6)

	// Flat layout is [x*height + y]: file rows are y, columns are x.
	assert.Equal(t, byte(0), tiles[0*2+0])
	assert.Equal(t, byte(1), tiles[1*2+0])
	assert.Equal(t, byte(2), tiles[2*2+0])
	assert.Equal(t, byte(1), tiles[2*2+1])
}

func TestLoadTerrainRejectsBadDimensions(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "map_list.yaml", `
map:
  name: broken
  width: 0
  height: 4
  tile_file: tiles.csv
`)
	_, _, err := LoadTerrain(path, dir)
	assert.Error(t, err)
}
