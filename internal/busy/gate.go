// internal/busy/gate.go
package busy

import "sync"

// Gate tracks outstanding operations behind a shared busy indicator. The
// state is an integer counter, not a boolean: with overlapping operations a
// boolean would be cleared by whichever finishes first while others are
// still running.
type Gate struct {
	mu       sync.Mutex
	count    int
	onChange func(busy bool)
}

func NewGate() *Gate {
	return &Gate{}
}

// OnChange registers a callback fired when the gate transitions between idle
// and busy (not on every increment).
func (g *Gate) OnChange(cb func(busy bool)) {
	g.mu.Lock()
	g.onChange = cb
	g.mu.Unlock()
}

// Do runs fn with the gate held. The gate is released on every exit path and
// fn's error is returned unchanged.
func (g *Gate) Do(fn func() error) error {
	g.inc()
	defer g.dec()
	return fn()
}

// Busy reports whether at least one tracked operation is outstanding.
func (g *Gate) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.count > 0
}

func (g *Gate) inc() {
	g.mu.Lock()
	g.count++
	first := g.count == 1
	cb := g.onChange
	g.mu.Unlock()
	if first && cb != nil {
		cb(true)
	}
}

func (g *Gate) dec() {
	g.mu.Lock()
	g.count--
	last := g.count == 0
	cb := g.onChange
	g.mu.Unlock()
	if last && cb != nil {
		cb(false)
	}
}
