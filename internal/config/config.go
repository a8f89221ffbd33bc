package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"grove/internal/input"
)

// Input sources accepted by the input section.
const (
	InputKeyboard = "keyboard"
	InputGesture  = "gesture"
	InputTerminal = "terminal"
)

// File is the YAML game file. Zero values keep the preset's defaults.
type File struct {
	Variant     string            `yaml:"variant"`
	Map         string            `yaml:"map"`
	World       WorldSection      `yaml:"world"`
	Player      PlayerSection     `yaml:"player"`
	Growth      GrowthSection     `yaml:"growth"`
	Interaction InteractionConfig `yaml:"interaction"`
	Input       InputSection      `yaml:"input"`
	Gesture     GestureSection    `yaml:"gesture"`
	Sprites     Sprites           `yaml:"sprites"`
	Window      WindowSection     `yaml:"window"`
}

type WorldSection struct {
	Scale          float64 `yaml:"scale"`
	ReferenceSize  float64 `yaml:"referenceSize"`
	ViewportWidth  float64 `yaml:"viewportWidth"`
	ViewportHeight float64 `yaml:"viewportHeight"`
}

type PlayerSection struct {
	Speed           float64 `yaml:"speed"`
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	HitboxScale     float64 `yaml:"hitboxScale"`
	AnimationPeriod int     `yaml:"animationPeriod"`
}

type GrowthSection struct {
	BaseSpeed           float64 `yaml:"baseSpeed"`
	WaterMultiplier     float64 `yaml:"waterMultiplier"`
	FertilizeMultiplier float64 `yaml:"fertilizeMultiplier"`
	// PinTerminal keeps mature trees at full growth. Unset keeps the preset.
	PinTerminal *bool `yaml:"pinTerminal"`
}

type InteractionConfig struct {
	Radius *float64 `yaml:"radius"`
}

type InputSection struct {
	Source       string `yaml:"source"`
	HandStream   string `yaml:"handStream"`
	TerminalHold int    `yaml:"terminalHoldMs"`
}

type GestureSection struct {
	OpenThreshold   float64 `yaml:"openThreshold"`
	ClosedThreshold float64 `yaml:"closedThreshold"`
	DebounceFrames  int     `yaml:"debounceFrames"`
	PressDuration   int     `yaml:"pressDurationMs"`
}

// Sprites names the image files used by the GUI renderer. When any sprite is
// configured, both player sheets are required.
type Sprites struct {
	Background  string `yaml:"background"`
	PlayerIdle  string `yaml:"playerIdle"`
	PlayerWalk  string `yaml:"playerWalk"`
	Tree        string `yaml:"tree"`
	FrameWidth  int    `yaml:"frameWidth"`
	FrameHeight int    `yaml:"frameHeight"`
}

// Configured reports whether any sprite path is set.
func (s Sprites) Configured() bool {
	return s.Background != "" || s.PlayerIdle != "" || s.PlayerWalk != "" || s.Tree != ""
}

type WindowSection struct {
	Title string  `yaml:"title"`
	TPS   int     `yaml:"tps"`
	Scale float64 `yaml:"scale"`
}

// Load reads, parses and validates a game file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return &f, nil
}

// ValidationError lists every problem found in a game file.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Validate checks value ranges and cross-field requirements.
func (f *File) Validate() error {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}
	nonNegative := func(name string, v float64) {
		if v < 0 {
			addf("%s must not be negative, got %v", name, v)
		}
	}

	nonNegative("world.scale", f.World.Scale)
	nonNegative("world.referenceSize", f.World.ReferenceSize)
	nonNegative("world.viewportWidth", f.World.ViewportWidth)
	nonNegative("world.viewportHeight", f.World.ViewportHeight)
	nonNegative("player.speed", f.Player.Speed)
	nonNegative("player.width", f.Player.Width)
	nonNegative("player.height", f.Player.Height)
	nonNegative("player.hitboxScale", f.Player.HitboxScale)
	nonNegative("growth.baseSpeed", f.Growth.BaseSpeed)
	nonNegative("growth.waterMultiplier", f.Growth.WaterMultiplier)
	nonNegative("growth.fertilizeMultiplier", f.Growth.FertilizeMultiplier)
	if f.Interaction.Radius != nil {
		nonNegative("interaction.radius", *f.Interaction.Radius)
	}
	if f.Player.AnimationPeriod < 0 {
		addf("player.animationPeriod must not be negative, got %d", f.Player.AnimationPeriod)
	}

	switch f.Input.Source {
	case "", InputKeyboard, InputGesture, InputTerminal:
	default:
		addf("input.source must be one of keyboard, gesture, terminal; got %q", f.Input.Source)
	}
	if f.Input.TerminalHold < 0 {
		addf("input.terminalHoldMs must not be negative, got %d", f.Input.TerminalHold)
	}

	g := f.Gesture
	if g.OpenThreshold < 0 || g.ClosedThreshold < 0 {
		addf("gesture thresholds must not be negative")
	}
	if g.OpenThreshold > 0 && g.ClosedThreshold > 0 && g.ClosedThreshold >= g.OpenThreshold {
		addf("gesture.closedThreshold (%v) must be below gesture.openThreshold (%v)", g.ClosedThreshold, g.OpenThreshold)
	}
	if g.DebounceFrames < 0 || g.PressDuration < 0 {
		addf("gesture.debounceFrames and gesture.pressDurationMs must not be negative")
	}

	if f.Sprites.Configured() {
		if f.Sprites.PlayerIdle == "" {
			addf("sprites.playerIdle is required when sprites are configured")
		}
		if f.Sprites.PlayerWalk == "" {
			addf("sprites.playerWalk is required when sprites are configured")
		}
	}
	if f.Sprites.FrameWidth < 0 || f.Sprites.FrameHeight < 0 {
		addf("sprites frame size must not be negative")
	}

	if f.Window.TPS < 0 {
		addf("window.tps must not be negative, got %d", f.Window.TPS)
	}
	nonNegative("window.scale", f.Window.Scale)

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Overrides renders the simulation settings as the string map understood by
// the garden factories. Unset fields are omitted.
func (f *File) Overrides() map[string]string {
	out := map[string]string{}
	if f.Map != "" {
		out["map"] = f.Map
	}
	putFloat := func(key string, v float64) {
		if v > 0 {
			out[key] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	putFloat("scale", f.World.Scale)
	putFloat("reference_size", f.World.ReferenceSize)
	putFloat("viewport_w", f.World.ViewportWidth)
	putFloat("viewport_h", f.World.ViewportHeight)
	putFloat("player_speed", f.Player.Speed)
	putFloat("player_width", f.Player.Width)
	putFloat("player_height", f.Player.Height)
	putFloat("hitbox_scale", f.Player.HitboxScale)
	putFloat("growth_speed", f.Growth.BaseSpeed)
	putFloat("water_multiplier", f.Growth.WaterMultiplier)
	putFloat("fertilize_multiplier", f.Growth.FertilizeMultiplier)
	if f.Interaction.Radius != nil {
		out["interaction_radius"] = strconv.FormatFloat(*f.Interaction.Radius, 'f', -1, 64)
	}
	if f.Growth.PinTerminal != nil {
		out["pin_terminal_growth"] = strconv.FormatBool(*f.Growth.PinTerminal)
	}
	if f.Player.AnimationPeriod > 0 {
		out["animation_period"] = strconv.Itoa(f.Player.AnimationPeriod)
	}
	return out
}

// GestureConfig overlays the gesture section onto base.
func (f *File) GestureConfig(base input.GestureConfig) input.GestureConfig {
	g := f.Gesture
	if g.OpenThreshold > 0 {
		base.OpenThreshold = g.OpenThreshold
	}
	if g.ClosedThreshold > 0 {
		base.ClosedThreshold = g.ClosedThreshold
	}
	if g.DebounceFrames > 0 {
		base.DebounceFrames = g.DebounceFrames
	}
	if g.PressDuration > 0 {
		base.PressDuration = time.Duration(g.PressDuration) * time.Millisecond
	}
	return base
}

// TerminalHold returns the configured terminal key hold, or the input
// package default.
func (f *File) TerminalHold() time.Duration {
	if f.Input.TerminalHold > 0 {
		return time.Duration(f.Input.TerminalHold) * time.Millisecond
	}
	return input.DefaultTerminalHold
}
