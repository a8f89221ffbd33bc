//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"grove/internal/render"
	"grove/internal/sims/garden"
)

var (
	rectColor   = color.RGBA{R: 220, G: 70, B: 70, A: 255}
	probeColor  = color.RGBA{R: 80, G: 160, B: 240, A: 255}
	radiusColor = color.RGBA{R: 240, G: 220, B: 80, A: 255}
)

// Overlay draws optional debugging visuals over the viewport.
type Overlay struct {
	world    *garden.World
	renderer *render.Renderer

	showMask   bool
	showRects  bool
	showRadius bool
	showInfo   bool
}

// NewOverlay constructs an overlay with every layer hidden.
func NewOverlay(world *garden.World, renderer *render.Renderer) *Overlay {
	return &Overlay{world: world, renderer: renderer}
}

// Update toggles layers on the number keys 1-4.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showMask = !o.showMask
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showRects = !o.showRects
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showRadius = !o.showRadius
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit4) {
		o.showInfo = !o.showInfo
	}
}

// Draw paints the enabled layers.
func (o *Overlay) Draw(screen *ebiten.Image) {
	st := o.world.State()
	if o.showMask && o.renderer != nil {
		o.renderer.DrawMask(screen, o.world)
	}
	if o.showRects {
		for _, r := range o.world.Collider().Obstacles() {
			s := render.ToScreen(r, st.Camera)
			if render.OnScreen(s, st.Viewport) {
				vector.StrokeRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), 1, rectColor, false)
			}
		}
		probe := o.world.Collider().Hitbox(st.Player.X, st.Player.Y)
		s := render.ToScreen(probe, st.Camera)
		vector.StrokeRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), 2, probeColor, false)
	}
	if o.showRadius {
		probe := o.world.Collider().Hitbox(st.Player.X, st.Player.Y)
		c := probe.Center()
		radius := o.world.Config().Params.InteractionRadius
		vector.StrokeCircle(screen, float32(c.X-st.Camera.X), float32(c.Y-st.Camera.Y), float32(radius), 1, radiusColor, true)
		for _, t := range st.Trees {
			tc := t.Center()
			vector.DrawFilledCircle(screen, float32(tc.X-st.Camera.X), float32(tc.Y-st.Camera.Y), 3, radiusColor, true)
		}
	}
	if o.showInfo {
		p := st.Player
		msg := fmt.Sprintf("tick %d  tps %.0f\npos %.0f,%.0f  %s\ncam %.0f,%.0f\nnearby %d  show %v",
			st.Tick, ebiten.ActualTPS(), p.X, p.Y, p.State, st.Camera.X, st.Camera.Y, st.Nearby, st.ShowInteraction)
		ebitenutil.DebugPrintAt(screen, msg, 4, 4)
	}
}
