package core

import (
	"sort"

	"grove/internal/input"
)

// Size describes an extent in world units.
type Size struct {
	W float64
	H float64
}

// Sim defines the minimal contract a frame loop drives.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step(in input.Snapshot)
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Names lists the registered simulation names in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
