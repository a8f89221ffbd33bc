package garden

// Grow applies one tick of growth to t and reports whether it advanced a
// stage. Mature trees do not grow.
func Grow(t *Tree, p Params) bool {
	if t.Stage >= MaxStage {
		return false
	}
	rate := t.GrowthSpeed
	if t.Watered {
		rate *= p.WaterMultiplier
	}
	if t.Fertilized {
		rate *= p.FertilizeMultiplier
	}
	t.Growth += rate
	if t.Growth < GrowthTarget {
		return false
	}
	t.Growth = 0
	t.Stage++
	t.Watered = false
	t.Fertilized = false
	if t.Stage == MaxStage && p.PinTerminalGrowth {
		t.Growth = GrowthTarget
	}
	return true
}

// TicksToStage counts the ticks a fresh tree needs to reach stage under a
// fixed care regime, with the flags re-applied after every stage. It returns
// -1 when limit is exceeded.
func TicksToStage(p Params, stage int, watered, fertilized bool, limit int) int {
	t := Tree{GrowthSpeed: p.GrowthSpeed}
	for ticks := 1; ticks <= limit; ticks++ {
		t.Watered = watered
		t.Fertilized = fertilized
		Grow(&t, p)
		if t.Stage >= stage {
			return ticks
		}
	}
	return -1
}
