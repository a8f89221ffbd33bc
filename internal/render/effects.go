package render

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"grove/internal/events"
)

const (
	popScale    = 1.3
	popDuration = 0.4
	fadeSeconds = 0.15
)

// Effects holds short presentation tweens driven by simulation events. It
// never feeds back into the simulation.
type Effects struct {
	pops   map[int]*gween.Tween
	scales map[int]float32

	menu       *gween.Tween
	menuAlpha  float32
	menuTarget float32
	menuShown  bool
}

// NewEffects returns an idle effect set.
func NewEffects() *Effects {
	return &Effects{
		pops:   make(map[int]*gween.Tween),
		scales: make(map[int]float32),
	}
}

// Attach subscribes the effects to bus.
func (e *Effects) Attach(bus *events.Bus) {
	bus.OnStageAdvanced(func(ev events.StageAdvanced) { e.StagePop(ev.Tree) })
	bus.OnEligibilityChanged(func(ev events.EligibilityChanged) { e.SetMenuVisible(ev.Eligible) })
}

// StagePop starts the grow-in bounce on a tree.
func (e *Effects) StagePop(tree int) {
	e.pops[tree] = gween.New(popScale, 1, popDuration, ease.OutBack)
	e.scales[tree] = popScale
}

// SetMenuVisible fades the interaction menu in or out.
func (e *Effects) SetMenuVisible(v bool) {
	if v == e.menuShown {
		return
	}
	e.menuShown = v
	e.menuTarget = 0
	if v {
		e.menuTarget = 1
	}
	e.menu = gween.New(e.menuAlpha, e.menuTarget, fadeSeconds, ease.OutQuad)
}

// Update advances every running tween by dt seconds.
func (e *Effects) Update(dt float32) {
	for tree, tw := range e.pops {
		v, done := tw.Update(dt)
		e.scales[tree] = v
		if done {
			delete(e.pops, tree)
			delete(e.scales, tree)
		}
	}
	if e.menu != nil {
		v, done := e.menu.Update(dt)
		e.menuAlpha = v
		if done {
			e.menuAlpha = e.menuTarget
			e.menu = nil
		}
	}
}

// TreeScale is the draw scale for a tree, 1 when no pop is running.
func (e *Effects) TreeScale(tree int) float64 {
	if s, ok := e.scales[tree]; ok {
		return float64(s)
	}
	return 1
}

// MenuAlpha is the current interaction menu opacity in [0, 1].
func (e *Effects) MenuAlpha() float64 {
	return float64(e.menuAlpha)
}

// Busy reports whether any tween is still running.
func (e *Effects) Busy() bool {
	return len(e.pops) > 0 || e.menu != nil
}
