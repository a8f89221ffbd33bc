package app

import (
	"fmt"
	"log"
	"os"
	"strings"

	"grove/internal/config"
	"grove/internal/core"
	"grove/internal/events"
	"grove/internal/input"
	"grove/internal/sims/garden"
	"grove/internal/ui"
)

const defaultTPS = 60

// Session is a loaded world plus the pieces every frontend wires the same way.
type Session struct {
	World   *garden.World
	Bus     *events.Bus
	File    *config.File
	Gesture *input.GestureProducer // nil unless gesture input is active
	TPS     int

	stream *os.File
}

// Open loads the game file and map, builds the world for the chosen variant
// and starts the hand stream when gesture input is requested.
func Open(cfg *Config) (*Session, error) {
	file := &config.File{}
	if cfg.ConfigPath != "" {
		f, err := config.Load(cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		file = f
	}

	variant := firstNonEmpty(cfg.Variant, file.Variant, garden.NameKeyboard)
	factory, ok := core.Sims()[variant]
	if !ok {
		return nil, fmt.Errorf("unknown variant %q (available: %s)", variant, strings.Join(core.Names(), ", "))
	}
	overrides := file.Overrides()
	if cfg.MapPath != "" {
		overrides["map"] = cfg.MapPath
	}
	sim, err := factory(overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", variant, err)
	}
	world, ok := sim.(*garden.World)
	if !ok {
		return nil, fmt.Errorf("variant %q is not a garden", variant)
	}
	world.Reset(cfg.Seed)

	s := &Session{
		World: world,
		Bus:   events.NewBus(),
		File:  file,
		TPS:   defaultTPS,
	}
	if file.Window.TPS > 0 {
		s.TPS = file.Window.TPS
	}
	if cfg.TPS > 0 {
		s.TPS = cfg.TPS
	}
	world.SetEventBus(s.Bus)
	logEvents(s.Bus)

	m := world.Map()
	log.Printf("[Garden] %s: %dx%d tiles, %d obstacles, %d trees", world.Name(), m.Cols, m.Rows, len(m.Obstacles()), len(m.Seeds()))

	source := cfg.Input
	if source == "" {
		source = file.Input.Source
	}
	if source == "" && variant == garden.NameGesture {
		source = config.InputGesture
	}
	if source == config.InputGesture {
		if err := s.openGesture(firstNonEmpty(cfg.HandStream, file.Input.HandStream)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Session) openGesture(path string) error {
	if path == "" {
		return fmt.Errorf("gesture input needs a hand stream (-hand-stream or input.handStream)")
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open hand stream: %w", err)
	}
	s.stream = f
	hands := input.NewStreamHands(f)
	go func() {
		<-hands.Done()
		if err := hands.Err(); err != nil {
			log.Printf("[Gesture] stream stopped: %v", err)
			return
		}
		log.Printf("[Gesture] stream ended")
	}()

	s.Gesture = input.NewGesture(hands, s.File.GestureConfig(input.DefaultGestureConfig()), nil)
	s.Gesture.OnFire(func(g input.Gesture) {
		log.Printf("[Gesture] %s hand -> %s", g, g.Action())
	})
	log.Printf("[Gesture] reading landmarks from %s", path)
	return nil
}

// Producer combines the frontend's own producer with gesture input when
// active.
func (s *Session) Producer(native input.Producer) input.Producer {
	if s.Gesture == nil {
		return native
	}
	return input.NewMulti(native, s.Gesture)
}

// Close releases the hand stream.
func (s *Session) Close() error {
	if s.stream == nil {
		return nil
	}
	return s.stream.Close()
}

func logEvents(bus *events.Bus) {
	bus.OnStageAdvanced(func(e events.StageAdvanced) {
		log.Printf("[Garden] tick %d: tree #%d reached %s", e.Tick, e.Tree+1, ui.ProgressLabel(e.Stage))
	})
	bus.OnActionApplied(func(e events.ActionApplied) {
		log.Printf("[Garden] tick %d: %s tree #%d", e.Tick, e.Action, e.Tree+1)
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
