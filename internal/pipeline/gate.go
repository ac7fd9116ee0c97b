package pipeline

import "sync"

// Gate bounds the number of simultaneously processing requests. It performs
// immediate accept/reject only; denied callers are never queued.
type Gate struct {
	ceiling int
	slots   chan struct{}
}

// NewGate creates a gate with the given ceiling. Ceilings below 1 are raised
// to 1 so the service can always make progress.
func NewGate(ceiling int) *Gate {
	if ceiling < 1 {
		ceiling = 1
	}
	return &Gate{ceiling: ceiling, slots: make(chan struct{}, ceiling)}
}

// Slot is the capability returned by a successful acquire. Releasing it more
// than once is a no-op; processing must not proceed without one.
type Slot struct {
	gate *Gate
	once sync.Once
}

// Release returns the slot's capacity to the gate. Safe to call from a defer
// on any exit path, including after a panic.
func (s *Slot) Release() {
	if s == nil {
		return
	}
	s.once.Do(func() { <-s.gate.slots })
}

// TryAcquire claims one unit of capacity without blocking. Under contention
// for the last slot exactly one caller wins.
func (g *Gate) TryAcquire() (*Slot, bool) {
	select {
	case g.slots <- struct{}{}:
		return &Slot{gate: g}, true
	default:
		return nil, false
	}
}

// GateSnapshot is a point-in-time view of gate occupancy. It may be
// momentarily stale under concurrent modification.
type GateSnapshot struct {
	Active    int
	Ceiling   int
	Accepting bool
}

// Snapshot reads the current occupancy without blocking acquirers.
func (g *Gate) Snapshot() GateSnapshot {
	active := len(g.slots)
	return GateSnapshot{
		Active:    active,
		Ceiling:   g.ceiling,
		Accepting: active < g.ceiling,
	}
}
