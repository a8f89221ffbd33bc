package input

import (
	"math"
	"time"
)

// Gesture is the coarse hand pose reported by the classifier.
type Gesture uint8

const (
	GestureNone Gesture = iota
	GestureOpen
	GestureClosed
)

func (g Gesture) String() string {
	switch g {
	case GestureOpen:
		return "open"
	case GestureClosed:
		return "closed"
	default:
		return "none"
	}
}

// Action is the interaction a gesture triggers: an open hand fertilizes and
// a closed fist waters.
func (g Gesture) Action() Action {
	switch g {
	case GestureOpen:
		return ActionFertilize
	case GestureClosed:
		return ActionWater
	}
	return ActionNone
}

// Hand landmark indices in the 21-point model.
const (
	LandmarkWrist     = 0
	LandmarkIndexTip  = 8
	LandmarkMiddleTip = 12
	LandmarkRingTip   = 16
	LandmarkPinkyTip  = 20
	LandmarkCount     = 21
)

var fingertips = [...]int{LandmarkIndexTip, LandmarkMiddleTip, LandmarkRingTip, LandmarkPinkyTip}

// Point is a landmark position in camera pixels.
type Point struct {
	X, Y float64
}

// Hand is a single detection.
type Hand struct {
	Landmarks []Point
}

// HandSource supplies the most recent detection. ok is false while no hand is
// visible.
type HandSource interface {
	Latest() (hand Hand, ok bool)
}

// GestureConfig tunes classification and press synthesis.
type GestureConfig struct {
	OpenThreshold   float64       // average fingertip distance above which the hand is open
	ClosedThreshold float64       // average fingertip distance below which the hand is closed
	DebounceFrames  int           // frames to ignore after a gesture fires
	PressDuration   time.Duration // how long the synthetic key stays down
}

// DefaultGestureConfig returns the thresholds tuned for a 640x480 camera feed.
func DefaultGestureConfig() GestureConfig {
	return GestureConfig{
		OpenThreshold:   150,
		ClosedThreshold: 100,
		DebounceFrames:  30,
		PressDuration:   100 * time.Millisecond,
	}
}

// Classify maps a detection to a gesture by the mean distance of the four
// fingertips to the wrist.
func Classify(h Hand, cfg GestureConfig) Gesture {
	if len(h.Landmarks) < LandmarkCount {
		return GestureNone
	}
	wrist := h.Landmarks[LandmarkWrist]
	total := 0.0
	for _, idx := range fingertips {
		tip := h.Landmarks[idx]
		total += math.Hypot(tip.X-wrist.X, tip.Y-wrist.Y)
	}
	avg := total / float64(len(fingertips))
	switch {
	case avg > cfg.OpenThreshold:
		return GestureOpen
	case avg < cfg.ClosedThreshold:
		return GestureClosed
	}
	return GestureNone
}

// GestureProducer turns classified hand poses into interaction key pulses.
type GestureProducer struct {
	cfg      GestureConfig
	src      HandSource
	pulser   *Pulser
	last     Gesture
	debounce int
	onFire   []func(Gesture)
}

// NewGesture builds a producer polling src once per frame.
func NewGesture(src HandSource, cfg GestureConfig, now Clock) *GestureProducer {
	return &GestureProducer{
		cfg:    cfg,
		src:    src,
		pulser: NewPulser(cfg.PressDuration, now),
	}
}

// OnFire registers a callback invoked whenever a gesture triggers a press.
func (g *GestureProducer) OnFire(fn func(Gesture)) { g.onFire = append(g.onFire, fn) }

// Last returns the most recent gesture that fired, or GestureNone once reset.
func (g *GestureProducer) Last() Gesture { return g.last }

// Update implements Producer.
func (g *GestureProducer) Update(sink Sink) {
	g.pulser.Flush(sink)
	hand, ok := g.src.Latest()
	if !ok {
		return
	}
	if g.debounce > 0 {
		g.debounce--
	}
	gesture := Classify(hand, g.cfg)
	if g.debounce > 0 {
		return
	}
	if gesture == GestureNone {
		g.last = GestureNone
		return
	}
	if gesture != g.last {
		g.fire(sink, gesture)
	}
}

func (g *GestureProducer) fire(sink Sink, gesture Gesture) {
	k, ok := gesture.Action().Key()
	if !ok {
		return
	}
	g.last = gesture
	g.debounce = g.cfg.DebounceFrames
	g.pulser.Trigger(k, sink)
	for _, fn := range g.onFire {
		fn(gesture)
	}
}
