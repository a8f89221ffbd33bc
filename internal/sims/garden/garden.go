package garden

import (
	"errors"
	"fmt"

	"grove/internal/collision"
	"grove/internal/core"
	"grove/internal/events"
	"grove/internal/input"
	"grove/internal/tilemap"
)

// Registered preset names.
const (
	NameKeyboard = "garden"
	NameGesture  = "garden-gesture"
)

// World is a tree-tending garden: a player walking a static tile map and the
// trees it tends.
type World struct {
	name    string
	cfg     Config
	tiles   *tilemap.Map
	engine  *collision.Engine
	bus     *events.Bus
	initial State
	state   State
}

// New builds a world over an already parsed map.
func New(m *tilemap.Map, cfg Config) (*World, error) {
	if m == nil {
		return nil, errors.New("garden: nil map")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("garden: %w", err)
	}
	engine, err := collision.NewEngine(m.Obstacles(), cfg.Params.Hitbox())
	if err != nil {
		return nil, fmt.Errorf("garden: %w", err)
	}
	w := &World{name: NameKeyboard, cfg: cfg, tiles: m, engine: engine}
	w.initial = w.spawn()
	w.Reset(cfg.Seed)
	return w, nil
}

// NewWithConfig loads the map named by cfg and builds a world over it.
func NewWithConfig(cfg Config) (*World, error) {
	m, err := tilemap.Load(cfg.MapPath, cfg.Map)
	if err != nil {
		return nil, err
	}
	return New(m, cfg)
}

func (w *World) spawn() State {
	p := w.cfg.Params
	size := w.tiles.WorldSize()
	probe := p.Hitbox()
	player := Player{
		X:      core.Clamp(size.W/2-p.StartOffsetX, 0, size.W-probe.W),
		Y:      core.Clamp(size.H/2-p.StartOffsetY, 0, size.H-probe.H),
		W:      p.PlayerWidth,
		H:      p.PlayerHeight,
		Speed:  p.PlayerSpeed,
		Facing: 1,
		State:  Idle,
		FrameY: RowDown,
	}
	seeds := w.tiles.Seeds()
	trees := make([]Tree, len(seeds))
	for i, seed := range seeds {
		trees[i] = Tree{
			X:           seed.Bounds.X,
			Y:           seed.Bounds.Y,
			W:           seed.Bounds.W,
			H:           seed.Bounds.H,
			GrowthSpeed: p.GrowthSpeed,
		}
	}
	return State{
		World:    size,
		Viewport: w.cfg.Viewport,
		Player:   player,
		Camera:   FollowCamera(player, size, w.cfg.Viewport, w.centerOffset()),
		Trees:    trees,
		Nearby:   -1,
		spent:    -1,
	}
}

func (w *World) centerOffset() core.Vec {
	probe := w.cfg.Params.Hitbox()
	return core.Vec{X: probe.W / 2, Y: probe.H / 2}
}

func (w *World) Name() string { return w.name }

// Size returns the world extent.
func (w *World) Size() core.Size { return w.state.World }

// State exposes the live state for render consumers. It must only be read
// between ticks.
func (w *World) State() *State { return &w.state }

// Map returns the parsed tile map.
func (w *World) Map() *tilemap.Map { return w.tiles }

// Collider returns the collision engine built from the map.
func (w *World) Collider() *collision.Engine { return w.engine }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// SetEventBus routes simulation events to bus. A nil bus disables events.
func (w *World) SetEventBus(bus *events.Bus) { w.bus = bus }

// Reset restores the freshly loaded state. The garden has no random
// elements; the seed is only recorded.
func (w *World) Reset(seed int64) {
	w.cfg.Seed = seed
	w.state = w.initial.Clone()
}

// Step advances the simulation by one tick.
func (w *World) Step(in input.Snapshot) {
	s := &w.state
	p := w.cfg.Params
	s.Tick++

	Move(&s.Player, in, w.engine, s.World, w.engine.Probe())
	animate(&s.Player, s.Tick, p.AnimationPeriod, p.AnimationFrames)
	s.Camera = FollowCamera(s.Player, s.World, s.Viewport, w.centerOffset())

	w.updateProximity()
	for _, a := range in.Actions() {
		w.ApplyAction(a)
	}

	for i := range s.Trees {
		if Grow(&s.Trees[i], p) {
			w.bus.PublishStageAdvanced(events.StageAdvanced{Tick: s.Tick, Tree: i, Stage: s.Trees[i].Stage})
		}
	}
	w.bus.Flush()
}

func init() {
	core.Register(NameKeyboard, presetFactory(NameKeyboard, DefaultConfig))
	core.Register(NameGesture, presetFactory(NameGesture, GestureConfig))
}

func presetFactory(name string, base func() Config) core.Factory {
	return func(cfg map[string]string) (core.Sim, error) {
		w, err := newPreset(name, base(), cfg)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
}

func newPreset(name string, base Config, overrides map[string]string) (*World, error) {
	w, err := NewWithConfig(ApplyMap(base, overrides))
	if err != nil {
		return nil, err
	}
	w.name = name
	return w, nil
}
