package ecs

// World is the top-level entity/component container. It owns the entity
// pool, the set of registered component stores, and a deferred destruction
// queue flushed at end of tick by the cleanup system.
type World struct {
	pool         *EntityPool
	stores       map[Kind]AnyStore
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		stores:       make(map[Kind]AnyStore, 16),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool { return w.pool }

// Register adds a component store. Registering the same kind twice replaces
// the previous store; callers register everything once at startup.
func (w *World) Register(store AnyStore) {
	w.stores[store.Kind()] = store
}

// StoreFor returns the untyped store for a kind, or nil if the kind was
// never registered. Unknown kinds are not an error; they query as empty.
func (w *World) StoreFor(kind Kind) AnyStore {
	return w.stores[kind]
}

// Kinds returns every registered component kind. Order is unspecified.
func (w *World) Kinds() []Kind {
	kinds := make([]Kind, 0, len(w.stores))
	for k := range w.stores {
		kinds = append(kinds, k)
	}
	return kinds
}

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// DestroyEntity removes the entity from every registered store and from the
// live set. Idempotent; no partial state is observable afterwards.
func (w *World) DestroyEntity(id EntityID) {
	for _, s := range w.stores {
		s.Remove(id)
	}
	w.pool.Destroy(id)
}

// Has reports whether the entity currently holds a component of the kind.
func (w *World) Has(id EntityID, kind Kind) bool {
	s := w.stores[kind]
	return s != nil && s.Has(id)
}

// Query returns the ids that hold every listed kind, iterating the smallest
// candidate store and filtering against the rest. An unregistered kind
// behaves as an empty store. Result order is unspecified.
func (w *World) Query(kinds ...Kind) []EntityID {
	if len(kinds) == 0 {
		return nil
	}

	var smallest AnyStore
	for _, k := range kinds {
		s := w.stores[k]
		if s == nil {
			return nil
		}
		if smallest == nil || s.Len() < smallest.Len() {
			smallest = s
		}
	}

	out := make([]EntityID, 0, smallest.Len())
	for _, id := range smallest.IDs() {
		ok := true
		for _, k := range kinds {
			s := w.stores[k]
			if s == smallest {
				continue
			}
			if !s.Has(id) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, id)
		}
	}
	return out
}

// MarkForDestruction queues an entity for end-of-tick cleanup. Systems that
// destroy entities while iterating a store use this instead of DestroyEntity.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys all queued entities and returns their ids so
// callers can drop ledger entries. Called by the cleanup system at the end
// of each tick.
func (w *World) FlushDestroyQueue() []EntityID {
	if len(w.destroyQueue) == 0 {
		return nil
	}
	destroyed := make([]EntityID, len(w.destroyQueue))
	copy(destroyed, w.destroyQueue)
	for _, id := range w.destroyQueue {
		w.DestroyEntity(id)
	}
	w.destroyQueue = w.destroyQueue[:0]
	return destroyed
}
