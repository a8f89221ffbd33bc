package garden

import (
	"strconv"

	"grove/internal/core"
)

func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				{Key: "map", Label: "Map", Type: core.ParamTypeString, Value: w.cfg.MapPath},
				floatParam("scale", "Scale", w.cfg.Map.Scale),
				intParam("rows", "Rows", w.tiles.Rows),
				intParam("cols", "Columns", w.tiles.Cols),
				intParam("trees", "Trees", len(w.state.Trees)),
				int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name: "Player",
			Params: []core.Parameter{
				floatParam("player_speed", "Speed", params.PlayerSpeed),
				floatParam("hitbox_scale", "Hitbox scale", params.HitboxScale),
				intParam("animation_period", "Animation period", params.AnimationPeriod),
			},
		},
		{
			Name: "Growth",
			Params: []core.Parameter{
				floatParam("growth_speed", "Growth speed", params.GrowthSpeed),
				floatParam("water_multiplier", "Water multiplier", params.WaterMultiplier),
				floatParam("fertilize_multiplier", "Fertilize multiplier", params.FertilizeMultiplier),
				boolParam("pin_terminal_growth", "Pin mature growth", params.PinTerminalGrowth),
			},
		},
		{
			Name: "Interaction",
			Params: []core.Parameter{
				floatParam("interaction_radius", "Radius", params.InteractionRadius),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values adjustable while the game runs.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "player_speed", Label: "Speed", Type: core.ParamTypeFloat, Step: 1, Min: 0, HasMin: true, Max: 20, HasMax: true},
		{Key: "growth_speed", Label: "Growth", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, HasMin: true, Max: 5, HasMax: true},
		{Key: "water_multiplier", Label: "Water x", Type: core.ParamTypeFloat, Step: 0.5, Min: 0.5, HasMin: true, Max: 100, HasMax: true},
		{Key: "fertilize_multiplier", Label: "Fert. x", Type: core.ParamTypeFloat, Step: 0.5, Min: 0.5, HasMin: true, Max: 200, HasMax: true},
		{Key: "interaction_radius", Label: "Radius", Type: core.ParamTypeFloat, Step: 10, Min: 0, HasMin: true, Max: 300, HasMax: true},
		{Key: "animation_period", Label: "Anim", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true, Max: 60, HasMax: true},
		{Key: "pin_terminal_growth", Label: "Pin", Type: core.ParamTypeBool},
	}
}

func (w *World) control(key string) (core.ParameterControl, bool) {
	for _, c := range w.ParameterControls() {
		if c.Key == key {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

// SetFloatParameter updates a float control, clamping to its bounds.
func (w *World) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := w.control(key)
	if !ok || ctrl.Type != core.ParamTypeFloat {
		return false
	}
	value = ctrl.Clamp(value)
	p := &w.cfg.Params
	switch key {
	case "player_speed":
		p.PlayerSpeed = value
		w.state.Player.Speed = value
		w.initial.Player.Speed = value
	case "growth_speed":
		p.GrowthSpeed = value
		for i := range w.state.Trees {
			w.state.Trees[i].GrowthSpeed = value
		}
		for i := range w.initial.Trees {
			w.initial.Trees[i].GrowthSpeed = value
		}
	case "water_multiplier":
		p.WaterMultiplier = value
	case "fertilize_multiplier":
		p.FertilizeMultiplier = value
	case "interaction_radius":
		p.InteractionRadius = value
	default:
		return false
	}
	return true
}

// SetIntParameter updates an integer control, clamping to its bounds.
func (w *World) SetIntParameter(key string, value int) bool {
	ctrl, ok := w.control(key)
	if !ok || ctrl.Type != core.ParamTypeInt {
		return false
	}
	value = int(ctrl.Clamp(float64(value)))
	switch key {
	case "animation_period":
		w.cfg.Params.AnimationPeriod = value
	default:
		return false
	}
	return true
}

// SetBoolParameter updates a boolean control. Disabling the pin does not
// touch trees that already matured.
func (w *World) SetBoolParameter(key string, value bool) bool {
	switch key {
	case "pin_terminal_growth":
		w.cfg.Params.PinTerminalGrowth = value
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}
