package garden

import (
	"grove/internal/core"
	"grove/internal/input"
)

// Collider answers whether the probe at a position would hit an obstacle.
type Collider interface {
	WouldCollide(x, y float64) bool
}

// Move advances the player by one tick of held directions. X is resolved
// before Y so a blocked diagonal slides along the wall, then the position is
// clamped so the probe stays inside bounds.
func Move(p *Player, in input.Snapshot, c Collider, bounds, probe core.Size) {
	newX, newY := p.X, p.Y
	if in.Held(input.KeyUp) {
		newY -= p.Speed
		p.FrameY = RowUp
	}
	if in.Held(input.KeyDown) {
		newY += p.Speed
		p.FrameY = RowDown
	}
	if in.Held(input.KeyLeft) {
		newX -= p.Speed
		p.FrameY = RowSideways
		p.Facing = -1
	}
	if in.Held(input.KeyRight) {
		newX += p.Speed
		p.FrameY = RowSideways
		p.Facing = 1
	}

	if in.Moving() {
		p.State = Walking
	} else {
		p.State = Idle
	}

	if !c.WouldCollide(newX, p.Y) {
		p.X = newX
	}
	if !c.WouldCollide(p.X, newY) {
		p.Y = newY
	}

	p.X = core.Clamp(p.X, 0, bounds.W-probe.W)
	p.Y = core.Clamp(p.Y, 0, bounds.H-probe.H)
}

// animate steps the walk cycle every period ticks.
func animate(p *Player, tick uint64, period, frames int) {
	if period <= 0 || frames <= 0 {
		return
	}
	if tick%uint64(period) == 0 {
		p.FrameX = (p.FrameX + 1) % frames
	}
}
