package garden

import "grove/internal/core"

// FollowCamera centers the viewport on the player, offset by centerOffset,
// and clamps each axis to [0, max(0, world-viewport)].
func FollowCamera(p Player, world, viewport core.Size, centerOffset core.Vec) Camera {
	x := p.X - viewport.W/2 + centerOffset.X
	y := p.Y - viewport.H/2 + centerOffset.Y
	return Camera{
		X: clampAxis(x, world.W, viewport.W),
		Y: clampAxis(y, world.H, viewport.H),
	}
}

func clampAxis(v, world, view float64) float64 {
	upper := world - view
	if upper < 0 {
		upper = 0
	}
	return core.Clamp(v, 0, upper)
}
