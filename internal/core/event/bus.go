package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event queue. An event emitted during tick N
// becomes visible to handlers in tick N+1, after the dispatch system swaps
// the buffers at tick start. Handlers are optional observers; the
// simulation never blocks on, or branches over, an event being seen.
type Bus struct {
	pending  map[reflect.Type][]any // written this tick
	ready    map[reflect.Type][]any // dispatched this tick
	handlers map[reflect.Type][]any

	mu sync.Mutex // guards handler registration only
}

func NewBus() *Bus {
	return &Bus{
		pending:  make(map[reflect.Type][]any),
		ready:    make(map[reflect.Type][]any),
		handlers: make(map[reflect.Type][]any),
	}
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Emit queues an event for delivery next tick.
func Emit[T any](b *Bus, ev T) {
	k := typeKey[T]()
	b.pending[k] = append(b.pending[k], ev)
}

// Subscribe registers a handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	k := typeKey[T]()
	b.handlers[k] = append(b.handlers[k], fn)
}

// SwapBuffers promotes the pending buffer for dispatch and recycles the
// old one. Called once at tick start, before DispatchAll.
func (b *Bus) SwapBuffers() {
	b.pending, b.ready = b.ready, b.pending
	for k := range b.pending {
		b.pending[k] = b.pending[k][:0]
	}
}

// DispatchAll delivers every promoted event to its type's handlers.
func (b *Bus) DispatchAll() {
	for k, events := range b.ready {
		handlers := b.handlers[k]
		if len(handlers) == 0 {
			continue
		}
		for _, ev := range events {
			for _, h := range handlers {
				// Emit and Subscribe key on the same concrete type, so
				// the call signature always matches.
				reflect.ValueOf(h).Call([]reflect.Value{reflect.ValueOf(ev)})
			}
		}
	}
}
