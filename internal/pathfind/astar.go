package pathfind

import "container/heap"

// Tile is one waypoint in a computed path.
type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Path is an ordered sequence of tiles from just after the start tile to the
// goal tile inclusive.
type Path []Tile

// Four-connected neighbor deltas, fixed order for deterministic expansion.
var neighborDX = [4]int{0, 1, 0, -1}
var neighborDY = [4]int{-1, 0, 1, 0}

// Step costs. Roads cost half of open ground, so routes bend toward them
// when the detour is cheap enough. The heuristic stays admissible because
// it charges the road cost per tile.
const (
	roadStepCost = 1
	openStepCost = 2
)

// Pathfinder runs A* searches over a Grid and caches results. Not safe for
// concurrent use; the simulation is single-threaded by construction.
type Pathfinder struct {
	grid  *Grid
	cache *pathCache
}

func NewPathfinder(grid *Grid, cacheSize int) *Pathfinder {
	return &Pathfinder{
		grid:  grid,
		cache: newPathCache(cacheSize),
	}
}

func (p *Pathfinder) Grid() *Grid { return p.grid }

// Invalidate drops every cached path. Callers that change tile walkability
// must call this or risk handing out stale routes.
func (p *Pathfinder) Invalidate() {
	p.cache.clear()
}

// FindPath computes the cheapest 4-connected route from (sx,sy) to (gx,gy),
// preferring road tiles over open ground.
// The returned path excludes the start tile and ends on the goal tile.
// found=false with a nil path means no route exists, never fatal; callers
// retry later or pick a different goal.
func (p *Pathfinder) FindPath(sx, sy, gx, gy int) (Path, bool) {
	if !p.grid.InBounds(sx, sy) || !p.grid.Walkable(gx, gy) {
		return nil, false
	}
	if sx == gx && sy == gy {
		return Path{}, true
	}

	key := cacheKey{sx: sx, sy: sy, gx: gx, gy: gy}
	if path, found, ok := p.cache.get(key); ok {
		return path, found
	}

	path, found := p.search(sx, sy, gx, gy)
	p.cache.put(key, path, found)
	return path, found
}

type node struct {
	x, y   int
	g      int // cost from start
	f      int // g + heuristic
	seq    int // insertion sequence, for deterministic tie-breaks
	parent int32
}

// stepCost is the price of entering a tile.
func (p *Pathfinder) stepCost(x, y int) int {
	if p.grid.IsRoad(x, y) {
		return roadStepCost
	}
	return openStepCost
}

func manhattan(x1, y1, x2, y2 int) int {
	dx := x1 - x2
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y2
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

func (p *Pathfinder) search(sx, sy, gx, gy int) (Path, bool) {
	h := p.grid.height

	// Nodes are appended to a flat arena; parent links are arena indices, so
	// path reconstruction never chases pointers.
	arena := make([]node, 0, 256)
	arena = append(arena, node{
		x: sx, y: sy,
		g:      0,
		f:      manhattan(sx, sy, gx, gy),
		parent: -1,
	})

	open := &openHeap{arena: &arena}
	heap.Init(open)
	heap.Push(open, 0)

	bestG := map[int]int{sx*h + sy: 0}
	seq := 0

	for open.Len() > 0 {
		cur := heap.Pop(open).(int)
		n := arena[cur]

		if n.x == gx && n.y == gy {
			return reconstruct(arena, cur), true
		}

		// A stale entry: a cheaper route to this tile was found after this
		// node was pushed.
		if g, ok := bestG[n.x*h+n.y]; ok && g < n.g {
			continue
		}

		for dir := 0; dir < 4; dir++ {
			nx := n.x + neighborDX[dir]
			ny := n.y + neighborDY[dir]
			if !p.grid.Walkable(nx, ny) {
				continue
			}
			ng := n.g + p.stepCost(nx, ny)
			if g, ok := bestG[nx*h+ny]; ok && g <= ng {
				continue
			}
			bestG[nx*h+ny] = ng
			seq++
			arena = append(arena, node{
				x: nx, y: ny,
				g:      ng,
				f:      ng + manhattan(nx, ny, gx, gy),
				seq:    seq,
				parent: int32(cur),
			})
			heap.Push(open, len(arena)-1)
		}
	}

	return nil, false
}

func reconstruct(arena []node, goal int) Path {
	length := 0
	for i := int32(goal); arena[i].parent >= 0; i = arena[i].parent {
		length++
	}
	path := make(Path, length)
	for i := int32(goal); arena[i].parent >= 0; i = arena[i].parent {
		length--
		path[length] = Tile{X: arena[i].x, Y: arena[i].y}
	}
	return path
}

// openHeap orders arena indices by f-cost, breaking ties by insertion
// sequence so repeated searches over an unchanged grid expand nodes in the
// same order and return identical paths.
type openHeap struct {
	arena *[]node
	items []int
}

func (h *openHeap) Len() int { return len(h.items) }

func (h *openHeap) Less(i, j int) bool {
	a := (*h.arena)[h.items[i]]
	b := (*h.arena)[h.items[j]]
	if a.f != b.f {
		return a.f < b.f
	}
	return a.seq < b.seq
}

func (h *openHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

func (h *openHeap) Push(x any) {
	h.items = append(h.items, x.(int))
}

func (h *openHeap) Pop() any {
	old := h.items
	n := len(old)
	x := old[n-1]
	h.items = old[:n-1]
	return x
}
