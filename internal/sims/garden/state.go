package garden

import "grove/internal/core"

const (
	// MaxStage is the terminal growth stage.
	MaxStage = 3
	// GrowthTarget is the growth value that advances a stage.
	GrowthTarget = 100.0
)

// MoveState is the player's locomotion state.
type MoveState uint8

const (
	Idle MoveState = iota
	Walking
)

func (m MoveState) String() string {
	if m == Walking {
		return "walk"
	}
	return "idle"
}

// Sprite sheet rows.
const (
	RowDown     = 0
	RowUp       = 1
	RowSideways = 2
)

// Player is the controllable character. X and Y are the top-left corner of
// the collision probe.
type Player struct {
	X, Y   float64
	W, H   float64
	Speed  float64
	Facing int // -1 left, +1 right
	State  MoveState
	FrameX int
	FrameY int
}

// Camera is the top-left corner of the visible viewport in world units.
type Camera struct {
	X, Y float64
}

// Tree is a growable plant created from a map seed.
type Tree struct {
	X, Y, W, H  float64
	Stage       int
	Growth      float64
	GrowthSpeed float64
	Watered     bool
	Fertilized  bool
}

// Bounds returns the tree's sprite rectangle.
func (t Tree) Bounds() core.Rect { return core.Rect{X: t.X, Y: t.Y, W: t.W, H: t.H} }

// Center returns the midpoint used for proximity checks.
func (t Tree) Center() core.Vec { return t.Bounds().Center() }

// Mature reports whether the tree reached the terminal stage.
func (t Tree) Mature() bool { return t.Stage >= MaxStage }

// State is everything a tick mutates. Render consumers read it between ticks.
type State struct {
	Tick     uint64
	World    core.Size
	Viewport core.Size

	Player Player
	Camera Camera
	Trees  []Tree

	Nearby          int // index into Trees, -1 when no tree is in range
	ShowInteraction bool

	spent int // tree whose interaction window has been used, -1 when none
}

// NearbyTree returns the tree currently in range.
func (s *State) NearbyTree() (*Tree, bool) {
	if s.Nearby < 0 || s.Nearby >= len(s.Trees) {
		return nil, false
	}
	return &s.Trees[s.Nearby], true
}

// Clone returns a deep copy.
func (s State) Clone() State {
	trees := make([]Tree, len(s.Trees))
	copy(trees, s.Trees)
	s.Trees = trees
	return s
}
