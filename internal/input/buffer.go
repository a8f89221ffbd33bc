package input

import "sync"

// Sink receives held-state changes from producers.
type Sink interface {
	Set(k Key, down bool)
}

// Buffer accumulates held states between ticks. Producers may write from any
// goroutine; the tick loop calls Sample once at the start of each tick.
type Buffer struct {
	mu   sync.Mutex
	held [keyCount]bool
	prev [keyCount]bool
}

// NewBuffer returns an empty buffer with every key released.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Set records the latest held state for k. Toggling a key twice between
// samples collapses to the final state.
func (b *Buffer) Set(k Key, down bool) {
	if k >= keyCount {
		return
	}
	b.mu.Lock()
	b.held[k] = down
	b.mu.Unlock()
}

// Press marks k as held.
func (b *Buffer) Press(k Key) { b.Set(k, true) }

// Release marks k as released.
func (b *Buffer) Release(k Key) { b.Set(k, false) }

// Sample freezes the current held states into a Snapshot. A key counts as
// pressed when it is held now and was not held at the previous sample.
func (b *Buffer) Sample() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	var s Snapshot
	s.held = b.held
	for i := range b.held {
		s.pressed[i] = b.held[i] && !b.prev[i]
	}
	b.prev = b.held
	return s
}

// Reset releases every key and forgets the previous sample.
func (b *Buffer) Reset() {
	b.mu.Lock()
	b.held = [keyCount]bool{}
	b.prev = [keyCount]bool{}
	b.mu.Unlock()
}

// Snapshot is the immutable input state consumed by a single tick.
type Snapshot struct {
	held    [keyCount]bool
	pressed [keyCount]bool
}

// SnapshotOf builds a snapshot directly. Keys listed in pressed are also held.
func SnapshotOf(held []Key, pressed []Key) Snapshot {
	var s Snapshot
	for _, k := range held {
		if k < keyCount {
			s.held[k] = true
		}
	}
	for _, k := range pressed {
		if k < keyCount {
			s.held[k] = true
			s.pressed[k] = true
		}
	}
	return s
}

// Held reports whether k is down during this tick.
func (s Snapshot) Held(k Key) bool {
	return k < keyCount && s.held[k]
}

// Pressed reports whether k went from up to down since the previous tick.
func (s Snapshot) Pressed(k Key) bool {
	return k < keyCount && s.pressed[k]
}

// Moving reports whether any direction is held.
func (s Snapshot) Moving() bool {
	return s.held[KeyUp] || s.held[KeyDown] || s.held[KeyLeft] || s.held[KeyRight]
}

// Actions lists the interactions triggered this tick, water first.
func (s Snapshot) Actions() []Action {
	var out []Action
	if s.pressed[KeyWater] {
		out = append(out, ActionWater)
	}
	if s.pressed[KeyFertilize] {
		out = append(out, ActionFertilize)
	}
	return out
}
