package garden

import (
	"grove/internal/core"
	"grove/internal/events"
	"grove/internal/input"
)

// nearbyTree returns the first tree, in storage order, whose center lies
// within radius of center, or -1.
func nearbyTree(trees []Tree, center core.Vec, radius float64) int {
	for i := range trees {
		if core.Dist(center, trees[i].Center()) <= radius {
			return i
		}
	}
	return -1
}

// playerCenter is the midpoint of the collision probe.
func (w *World) playerCenter() core.Vec {
	probe := w.engine.Probe()
	p := w.state.Player
	return core.Vec{X: p.X + probe.W/2, Y: p.Y + probe.H/2}
}

// updateProximity recomputes which tree is in range. A spent interaction
// window stays closed until the player leaves range or another tree takes
// over.
func (w *World) updateProximity() {
	s := &w.state
	idx := nearbyTree(s.Trees, w.playerCenter(), w.cfg.Params.InteractionRadius)
	if idx != s.spent {
		s.spent = -1
	}
	prevNearby, prevShow := s.Nearby, s.ShowInteraction
	s.Nearby = idx
	s.ShowInteraction = idx >= 0 && s.spent != idx
	if s.Nearby != prevNearby || s.ShowInteraction != prevShow {
		w.bus.PublishEligibilityChanged(events.EligibilityChanged{
			Tick:     s.Tick,
			Tree:     s.Nearby,
			Eligible: s.ShowInteraction,
		})
	}
}

// ApplyAction waters or fertilizes the tree in range. It reports false and
// changes nothing when no tree is eligible.
func (w *World) ApplyAction(a input.Action) bool {
	s := &w.state
	if !s.ShowInteraction {
		return false
	}
	t, ok := s.NearbyTree()
	if !ok {
		return false
	}
	switch a {
	case input.ActionWater:
		t.Watered = true
	case input.ActionFertilize:
		t.Fertilized = true
	default:
		return false
	}
	s.ShowInteraction = false
	s.spent = s.Nearby
	w.bus.PublishActionApplied(events.ActionApplied{Tick: s.Tick, Tree: s.Nearby, Action: a})
	w.bus.PublishEligibilityChanged(events.EligibilityChanged{Tick: s.Tick, Tree: s.Nearby, Eligible: false})
	return true
}
