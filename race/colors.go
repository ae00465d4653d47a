package race

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// PoolExhaustionError means more entities were simultaneously tracked than
// the colour pool can stably service.
type PoolExhaustionError struct {
	PoolSize int
	Awaiting string
}

func (e *PoolExhaustionError) Error() string {
	return fmt.Sprintf("colour pool of %d exhausted while %q awaits a colour", e.PoolSize, e.Awaiting)
}

// A ColorAllocator hands a colour from a finite pool to every tracked entity
// and reclaims it when the entity stops being requested. An entity that was
// coloured in the previous frame keeps its colour; a live colour is never
// shared between two entities.
type ColorAllocator struct {
	poolSize      int
	previous      map[string]colorful.Color // reservations carried from the last finalized frame
	previousOrder []string                  // Request order of the last finalized frame
	current       map[string]colorful.Color // reservations confirmed this frame
	currentOrder  []string
	pending       []string         // entities awaiting a colour, in Request order
	free          []colorful.Color // unreserved colours, handed out FIFO
}

// NewColorAllocator creates a ColorAllocator over the given pool.
func NewColorAllocator(pool []colorful.Color) *ColorAllocator {
	a := new(ColorAllocator)
	a.poolSize = len(pool)
	a.previous = make(map[string]colorful.Color)
	a.current = make(map[string]colorful.Color)
	a.free = make([]colorful.Color, len(pool))
	copy(a.free, pool)
	return a
}

// Request re-reserves the entity's previous colour, or queues the entity to
// receive one at the next Finalize.
func (a *ColorAllocator) Request(name string) {
	a.currentOrder = append(a.currentOrder, name)
	if c, ok := a.previous[name]; ok {
		a.current[name] = c
		return
	}
	a.pending = append(a.pending, name)
}

// Finalize closes out the frame: colours that were not re-requested return
// to the free pool, then queued entities receive colours in the order they
// asked. The frame's reservations become the previous reservations for the
// next cycle.
func (a *ColorAllocator) Finalize() error {
	// Release in last frame's request order, not map order, so repeated
	// runs hand the same colours to the same entities.
	for _, name := range a.previousOrder {
		if _, ok := a.current[name]; !ok {
			a.free = append(a.free, a.previous[name])
		}
	}

	for _, name := range a.pending {
		if len(a.free) == 0 {
			return &PoolExhaustionError{PoolSize: a.poolSize, Awaiting: name}
		}
		a.current[name] = a.free[0]
		a.free = a.free[1:]
	}

	a.previous = a.current
	a.previousOrder = a.currentOrder
	a.current = make(map[string]colorful.Color)
	a.currentOrder = nil
	a.pending = a.pending[:0]
	return nil
}

// Color returns the colour reserved for name in the last finalized frame.
func (a *ColorAllocator) Color(name string) (colorful.Color, bool) {
	c, ok := a.previous[name]
	return c, ok
}

// ReservedCount and FreeCount describe the pool partition after Finalize.
func (a *ColorAllocator) ReservedCount() int { return len(a.previous) }
func (a *ColorAllocator) FreeCount() int     { return len(a.free) }
