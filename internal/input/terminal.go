package input

import (
	"sync"
	"time"
)

// DefaultTerminalHold bridges the initial auto-repeat delay of most terminals.
const DefaultTerminalHold = 350 * time.Millisecond

var terminalBindings = map[string]Key{
	"up": KeyUp, "w": KeyUp, "k": KeyUp,
	"down": KeyDown, "s": KeyDown, "j": KeyDown,
	"left": KeyLeft, "a": KeyLeft, "h": KeyLeft,
	"right": KeyRight, "d": KeyRight, "l": KeyRight,
	"q": KeyWater,
	"e": KeyFertilize,
}

// Terminal converts key names from a terminal UI into held keys. Terminals
// only report presses, so every press becomes a pulse that auto-repeat keeps
// refreshing while the key stays down.
type Terminal struct {
	mu     sync.Mutex
	queue  []Key
	pulser *Pulser
}

// NewTerminal returns a producer holding each key for hold after its latest
// press.
func NewTerminal(hold time.Duration, now Clock) *Terminal {
	if hold <= 0 {
		hold = DefaultTerminalHold
	}
	return &Terminal{pulser: NewPulser(hold, now)}
}

// HandleKey queues a key by its terminal name. It reports whether the name is
// bound.
func (t *Terminal) HandleKey(name string) bool {
	k, ok := terminalBindings[name]
	if !ok {
		return false
	}
	t.mu.Lock()
	t.queue = append(t.queue, k)
	t.mu.Unlock()
	return true
}

// Update implements Producer.
func (t *Terminal) Update(sink Sink) {
	t.pulser.Flush(sink)
	t.mu.Lock()
	queue := t.queue
	t.queue = nil
	t.mu.Unlock()
	for _, k := range queue {
		t.pulser.Trigger(k, sink)
	}
}
