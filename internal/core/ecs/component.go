package ecs

// Kind names a component type. Every store registers under exactly one Kind;
// queries intersect stores by Kind.
type Kind string

// AnyStore is the untyped view of a component store. The World uses it for
// bulk entity cleanup, Kind-based queries, and snapshot export.
type AnyStore interface {
	Kind() Kind
	Has(id EntityID) bool
	Remove(id EntityID)
	Len() int
	// IDs returns the ids present in the store. Order is unspecified.
	IDs() []EntityID
}

// Store is a generic typed map store for one component kind.
// No reflect and no interface{} in the hot path, pure generics.
type Store[T any] struct {
	kind Kind
	data map[EntityID]*T
}

func NewStore[T any](kind Kind) *Store[T] {
	return &Store[T]{
		kind: kind,
		data: make(map[EntityID]*T, 256),
	}
}

func (s *Store[T]) Kind() Kind { return s.kind }

// Set inserts or replaces the component for id.
func (s *Store[T]) Set(id EntityID, c *T) {
	s.data[id] = c
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *Store[T]) Remove(id EntityID) {
	delete(s.data, id)
}

func (s *Store[T]) Len() int {
	return len(s.data)
}

func (s *Store[T]) IDs() []EntityID {
	ids := make([]EntityID, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids
}

func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for id, c := range s.data {
		fn(id, c)
	}
}
