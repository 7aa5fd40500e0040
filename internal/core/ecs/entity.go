package ecs

// EntityID is an opaque identifier. An entity has no inherent type; its
// capabilities are exactly the component stores that hold data for it.
type EntityID uint64

// InvalidEntity is the zero id; no live entity ever carries it.
const InvalidEntity EntityID = 0

func (id EntityID) IsZero() bool { return id == InvalidEntity }

// EntityPool hands out monotonically increasing ids. Ids are never reused:
// stale references held by other components (home, workplace, partner) are
// detected with Alive() rather than generation counters, so a saved game can
// round-trip ids verbatim.
type EntityPool struct {
	next  EntityID
	alive map[EntityID]struct{}
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		next:  1,
		alive: make(map[EntityID]struct{}, 1024),
	}
}

func (p *EntityPool) Create() EntityID {
	id := p.next
	p.next++
	p.alive[id] = struct{}{}
	return id
}

func (p *EntityPool) Alive(id EntityID) bool {
	_, ok := p.alive[id]
	return ok
}

// Destroy removes the id from the live set. Idempotent.
func (p *EntityPool) Destroy(id EntityID) {
	delete(p.alive, id)
}

func (p *EntityPool) Len() int {
	return len(p.alive)
}

// Each visits every live entity. Order is unspecified.
func (p *EntityPool) Each(fn func(EntityID)) {
	for id := range p.alive {
		fn(id)
	}
}

// Restore re-registers an id loaded from a save and bumps the counter past it
// so future Create calls stay monotonic.
func (p *EntityPool) Restore(id EntityID) {
	p.alive[id] = struct{}{}
	if id >= p.next {
		p.next = id + 1
	}
}
