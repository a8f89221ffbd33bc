package input

import "time"

// Clock returns the current time. Tests inject a fake one.
type Clock func() time.Time

// Pulser turns discrete triggers into a key held for a fixed duration.
type Pulser struct {
	hold    time.Duration
	now     Clock
	pending map[Key]time.Time
}

// NewPulser returns a pulser holding keys for hold. A nil clock uses time.Now.
func NewPulser(hold time.Duration, now Clock) *Pulser {
	if now == nil {
		now = time.Now
	}
	return &Pulser{hold: hold, now: now, pending: make(map[Key]time.Time)}
}

// Trigger presses k and schedules its release. Triggering a held key extends
// the hold without producing a new press.
func (p *Pulser) Trigger(k Key, sink Sink) {
	p.pending[k] = p.now().Add(p.hold)
	sink.Set(k, true)
}

// Flush releases every key whose hold has elapsed.
func (p *Pulser) Flush(sink Sink) {
	now := p.now()
	for k, until := range p.pending {
		if !now.Before(until) {
			delete(p.pending, k)
			sink.Set(k, false)
		}
	}
}

// Active reports whether k is currently held by the pulser.
func (p *Pulser) Active(k Key) bool {
	_, ok := p.pending[k]
	return ok
}
