package input

import (
	"bytes"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

type fakeHands struct {
	hand Hand
	ok   bool
}

func (f *fakeHands) Latest() (Hand, bool) { return f.hand, f.ok }

// handWithSpread places the four fingertips straight above the wrist.
func handWithSpread(d float64) Hand {
	h := Hand{Landmarks: make([]Point, LandmarkCount)}
	h.Landmarks[LandmarkWrist] = Point{X: 300, Y: 400}
	for _, idx := range fingertips {
		h.Landmarks[idx] = Point{X: 300, Y: 400 - d}
	}
	return h
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func TestClassifyThresholds(t *testing.T) {
	cfg := DefaultGestureConfig()
	cases := []struct {
		spread float64
		want   Gesture
	}{
		{200, GestureOpen},
		{150, GestureNone},
		{120, GestureNone},
		{100, GestureNone},
		{60, GestureClosed},
	}
	for _, tc := range cases {
		if got := Classify(handWithSpread(tc.spread), cfg); got != tc.want {
			t.Fatalf("spread %v: expected %v, got %v", tc.spread, tc.want, got)
		}
	}
	if Classify(Hand{Landmarks: make([]Point, 5)}, cfg) != GestureNone {
		t.Fatalf("incomplete hands must classify as none")
	}
}

func TestGestureFiresOncePerPose(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	src := &fakeHands{hand: handWithSpread(200), ok: true}
	g := NewGesture(src, DefaultGestureConfig(), clock.Now)
	var fired []Gesture
	g.OnFire(func(x Gesture) { fired = append(fired, x) })
	b := NewBuffer()

	g.Update(b)
	if s := b.Sample(); !s.Pressed(KeyFertilize) {
		t.Fatalf("expected an open hand to press fertilize")
	}
	for i := 0; i < 100; i++ {
		clock.now = clock.now.Add(16 * time.Millisecond)
		g.Update(b)
		if b.Sample().Pressed(KeyFertilize) {
			t.Fatalf("holding the same pose must not fire again (frame %d)", i)
		}
	}
	if len(fired) != 1 || g.Last() != GestureOpen {
		t.Fatalf("expected one open gesture, got %v", fired)
	}
}

func TestGestureDebounceAndRelease(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	src := &fakeHands{hand: handWithSpread(60), ok: true}
	cfg := DefaultGestureConfig()
	g := NewGesture(src, cfg, clock.Now)
	b := NewBuffer()

	g.Update(b)
	if !b.Sample().Pressed(KeyWater) {
		t.Fatalf("expected a fist to press water")
	}
	clock.now = clock.now.Add(cfg.PressDuration)
	g.Update(b)
	if b.Sample().Held(KeyWater) {
		t.Fatalf("expected the synthetic press to release after %v", cfg.PressDuration)
	}

	// switching pose inside the debounce window is ignored
	src.hand = handWithSpread(200)
	for i := 1; i < cfg.DebounceFrames-1; i++ {
		g.Update(b)
		if b.Sample().Pressed(KeyFertilize) {
			t.Fatalf("fired during debounce at frame %d", i)
		}
	}
	g.Update(b)
	if !b.Sample().Pressed(KeyFertilize) {
		t.Fatalf("expected fertilize once the debounce elapsed")
	}
}

func TestGestureNoneResetsLastAfterDebounce(t *testing.T) {
	src := &fakeHands{hand: handWithSpread(60), ok: true}
	cfg := DefaultGestureConfig()
	cfg.DebounceFrames = 2
	g := NewGesture(src, cfg, nil)
	b := NewBuffer()

	g.Update(b)
	b.Sample()
	src.hand = handWithSpread(120)
	g.Update(b)
	if g.Last() != GestureClosed {
		t.Fatalf("none during debounce must keep the last gesture")
	}
	g.Update(b)
	if g.Last() != GestureNone {
		t.Fatalf("expected none to reset the last gesture, got %v", g.Last())
	}
}

func TestGestureIgnoresMissingHand(t *testing.T) {
	src := &fakeHands{}
	cfg := DefaultGestureConfig()
	cfg.DebounceFrames = 3
	g := NewGesture(src, cfg, nil)
	g.debounce = 3
	b := NewBuffer()
	for i := 0; i < 10; i++ {
		g.Update(b)
	}
	if g.debounce != 3 {
		t.Fatalf("debounce should only count down while a hand is visible, got %d", g.debounce)
	}
}

func TestStreamHandsDecodesFrames(t *testing.T) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	open := handWithSpread(200)
	frame := HandFrame{Landmarks: make([][2]float64, len(open.Landmarks))}
	for i, p := range open.Landmarks {
		frame.Landmarks[i] = [2]float64{p.X, p.Y}
	}
	if err := enc.Encode(HandFrame{}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := enc.Encode(frame); err != nil {
		t.Fatalf("encode: %v", err)
	}

	s := NewStreamHands(&buf)
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("stream did not finish")
	}
	if err := s.Err(); err != nil {
		t.Fatalf("unexpected stream error: %v", err)
	}
	hand, ok := s.Latest()
	if !ok {
		t.Fatalf("expected the last frame to carry a hand")
	}
	if Classify(hand, DefaultGestureConfig()) != GestureOpen {
		t.Fatalf("expected decoded hand to classify as open")
	}
}

func TestStreamHandsReportsGarbage(t *testing.T) {
	s := NewStreamHands(bytes.NewReader([]byte{0xc1}))
	<-s.Done()
	if s.Err() == nil {
		t.Fatalf("expected a decode error for an invalid msgpack byte")
	}
	if _, ok := s.Latest(); ok {
		t.Fatalf("expected no hand after a failed stream")
	}
}

func TestTerminalPulses(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	term := NewTerminal(300*time.Millisecond, clock.Now)
	b := NewBuffer()

	if term.HandleKey("x") {
		t.Fatalf("unbound keys must be rejected")
	}
	term.HandleKey("right")
	term.Update(b)
	if !b.Sample().Held(KeyRight) {
		t.Fatalf("expected right held after a press")
	}
	clock.now = clock.now.Add(200 * time.Millisecond)
	term.HandleKey("l")
	term.Update(b)
	clock.now = clock.now.Add(200 * time.Millisecond)
	term.Update(b)
	if !b.Sample().Held(KeyRight) {
		t.Fatalf("auto-repeat should keep right held")
	}
	clock.now = clock.now.Add(200 * time.Millisecond)
	term.Update(b)
	if b.Sample().Held(KeyRight) {
		t.Fatalf("expected right released once repeats stop")
	}
}

func TestGestureActions(t *testing.T) {
	if GestureOpen.Action() != ActionFertilize || GestureClosed.Action() != ActionWater {
		t.Fatalf("open fertilizes and closed waters")
	}
	if _, ok := GestureNone.Action().Key(); ok {
		t.Fatalf("none must not map to a key")
	}
}
