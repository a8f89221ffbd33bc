package garden

import (
	"fmt"
	"strconv"

	"grove/internal/core"
	"grove/internal/tilemap"
)

// Params holds the tunable movement, growth and interaction values.
type Params struct {
	PlayerSpeed  float64 // world units per tick per held direction
	PlayerWidth  float64 // sprite size in world units
	PlayerHeight float64
	HitboxScale  float64 // collision probe size relative to the sprite
	StartOffsetX float64 // spawn offset left of the world center
	StartOffsetY float64 // spawn offset above the world center

	GrowthSpeed         float64
	WaterMultiplier     float64
	FertilizeMultiplier float64
	PinTerminalGrowth   bool // hold growth at GrowthTarget once a tree matures

	InteractionRadius float64

	AnimationPeriod int // ticks per walk frame
	AnimationFrames int
}

// Config controls a garden world.
type Config struct {
	MapPath  string
	Map      tilemap.Options
	Viewport core.Size
	Seed     int64

	Params Params
}

// DefaultConfig returns the keyboard-tuned preset.
func DefaultConfig() Config {
	return Config{
		MapPath:  "assets/collisions.txt",
		Map:      tilemap.DefaultOptions(),
		Viewport: core.Size{W: 600, H: 300},
		Seed:     1,
		Params: Params{
			PlayerSpeed:         5,
			PlayerWidth:         32,
			PlayerHeight:        32,
			HitboxScale:         2,
			StartOffsetX:        95,
			StartOffsetY:        20,
			GrowthSpeed:         0.05,
			WaterMultiplier:     1.5,
			FertilizeMultiplier: 100,
			PinTerminalGrowth:   true,
			InteractionRadius:   60,
			AnimationPeriod:     10,
			AnimationFrames:     3,
		},
	}
}

// GestureConfig returns the preset tuned for hand-gesture play, where actions
// are slower to issue and both boosts are milder.
func GestureConfig() Config {
	c := DefaultConfig()
	c.Params.WaterMultiplier = 2
	c.Params.FertilizeMultiplier = 2
	return c
}

// Hitbox returns the collision probe size.
func (p Params) Hitbox() core.Size {
	return core.Size{W: p.PlayerWidth * p.HitboxScale, H: p.PlayerHeight * p.HitboxScale}
}

// Validate reports the first parameter that would break the simulation.
func (c Config) Validate() error {
	p := c.Params
	switch {
	case p.PlayerSpeed < 0:
		return fmt.Errorf("player speed must not be negative, got %v", p.PlayerSpeed)
	case p.PlayerWidth <= 0 || p.PlayerHeight <= 0:
		return fmt.Errorf("player size must be positive, got %vx%v", p.PlayerWidth, p.PlayerHeight)
	case p.HitboxScale <= 0:
		return fmt.Errorf("hitbox scale must be positive, got %v", p.HitboxScale)
	case p.GrowthSpeed <= 0:
		return fmt.Errorf("growth speed must be positive, got %v", p.GrowthSpeed)
	case p.WaterMultiplier <= 0 || p.FertilizeMultiplier <= 0:
		return fmt.Errorf("growth multipliers must be positive, got water=%v fertilize=%v", p.WaterMultiplier, p.FertilizeMultiplier)
	case p.InteractionRadius < 0:
		return fmt.Errorf("interaction radius must not be negative, got %v", p.InteractionRadius)
	case p.AnimationPeriod <= 0 || p.AnimationFrames <= 0:
		return fmt.Errorf("animation period and frame count must be positive")
	case c.Viewport.W <= 0 || c.Viewport.H <= 0:
		return fmt.Errorf("viewport must be positive, got %vx%v", c.Viewport.W, c.Viewport.H)
	}
	return nil
}

// FromMap applies string overrides on top of the keyboard preset.
func FromMap(cfg map[string]string) Config {
	return ApplyMap(DefaultConfig(), cfg)
}

// ApplyMap overlays flag-style key/value pairs onto c. Unparseable or
// out-of-range values are ignored.
func ApplyMap(c Config, cfg map[string]string) Config {
	if cfg == nil {
		return c
	}
	if v, ok := cfg["map"]; ok && v != "" {
		c.MapPath = v
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	positive := func(key string, dst *float64) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
				*dst = parsed
			}
		}
	}
	nonNegative := func(key string, dst *float64) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
				*dst = parsed
			}
		}
	}
	positive("scale", &c.Map.Scale)
	positive("reference_size", &c.Map.ReferenceSize)
	positive("tree_width", &c.Map.TreeWidth)
	positive("tree_height", &c.Map.TreeHeight)
	positive("viewport_w", &c.Viewport.W)
	positive("viewport_h", &c.Viewport.H)
	nonNegative("player_speed", &c.Params.PlayerSpeed)
	positive("player_width", &c.Params.PlayerWidth)
	positive("player_height", &c.Params.PlayerHeight)
	positive("hitbox_scale", &c.Params.HitboxScale)
	nonNegative("start_offset_x", &c.Params.StartOffsetX)
	nonNegative("start_offset_y", &c.Params.StartOffsetY)
	positive("growth_speed", &c.Params.GrowthSpeed)
	positive("water_multiplier", &c.Params.WaterMultiplier)
	positive("fertilize_multiplier", &c.Params.FertilizeMultiplier)
	nonNegative("interaction_radius", &c.Params.InteractionRadius)
	if v, ok := cfg["pin_terminal_growth"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.PinTerminalGrowth = parsed
		}
	}
	if v, ok := cfg["animation_period"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.AnimationPeriod = parsed
		}
	}
	if v, ok := cfg["animation_frames"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.AnimationFrames = parsed
		}
	}
	return c
}
