// Package pathfind provides A* shortest-path search over the settlement's
// tile grid, with a bounded LRU result cache.
package pathfind

// Tile flag constants. The grid stores one byte per tile; static terrain
// flags come from the map files, the dynamic block bit is flipped at runtime
// when buildings are placed or removed.
const (
	tileTerrainBlocked byte = 0x01 // water, rock; never walkable
	tileRoad           byte = 0x02 // road built on the tile
	tileStructBlocked  byte = 0x80 // dynamic: building footprint
)

// Grid is the walkability grid. Tiles are stored in a flat array indexed
// [x * height + y], row-major by X the way the map files are laid out.
type Grid struct {
	tiles  []byte
	width  int
	height int
}

func NewGrid(width, height int) *Grid {
	return &Grid{
		tiles:  make([]byte, width*height),
		width:  width,
		height: height,
	}
}

// NewGridFromTiles wraps an already loaded flat tile array.
// len(tiles) must be width*height.
func NewGridFromTiles(tiles []byte, width, height int) *Grid {
	return &Grid{tiles: tiles, width: width, height: height}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) tileAt(x, y int) byte {
	if !g.InBounds(x, y) {
		return tileTerrainBlocked
	}
	return g.tiles[x*g.height+y]
}

// Walkable reports whether a tile is a valid step: in bounds and not
// flagged as movement-blocking, statically or dynamically.
func (g *Grid) Walkable(x, y int) bool {
	return g.tileAt(x, y)&(tileTerrainBlocked|tileStructBlocked) == 0
}

func (g *Grid) IsRoad(x, y int) bool {
	return g.tileAt(x, y)&tileRoad != 0
}

// SetTerrainBlocked flips the static terrain block flag. Callers that change
// walkability must invalidate the pathfinder cache afterwards.
func (g *Grid) SetTerrainBlocked(x, y int, blocked bool) {
	g.setFlag(x, y, tileTerrainBlocked, blocked)
}

// SetStructBlocked flips the dynamic building-footprint flag. Same cache
// invalidation contract as SetTerrainBlocked.
func (g *Grid) SetStructBlocked(x, y int, blocked bool) {
	g.setFlag(x, y, tileStructBlocked, blocked)
}

// SetRoad marks or clears a road tile. Roads do not change walkability but
// callers conventionally invalidate anyway, since route costs may shift.
func (g *Grid) SetRoad(x, y int, road bool) {
	g.setFlag(x, y, tileRoad, road)
}

func (g *Grid) setFlag(x, y int, flag byte, on bool) {
	if !g.InBounds(x, y) {
		return
	}
	if on {
		g.tiles[x*g.height+y] |= flag
	} else {
		g.tiles[x*g.height+y] &^= flag
	}
}
