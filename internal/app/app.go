//go:build ebiten

package app

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"grove/internal/input"
	"grove/internal/render"
	"grove/internal/sims/garden"
	"grove/internal/ui"
)

const (
	hudWidth    = 260
	stripHeight = 110
)

// Game adapts a garden session to the ebiten.Game interface.
type Game struct {
	world    *garden.World
	buf      *input.Buffer
	producer input.Producer

	renderer *render.Renderer
	effects  *render.Effects
	hud      *ui.HUD
	overlay  *ui.Overlay

	dt       float32
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the session. sprites may be nil.
func New(s *Session, sprites *render.Sprites, seed int64) *Game {
	w := s.World
	fx := render.NewEffects()
	fx.Attach(s.Bus)
	r := render.NewRenderer(sprites, fx, w.Config().Map)
	g := &Game{
		world:    w,
		buf:      input.NewBuffer(),
		producer: s.Producer(input.NewKeyboard()),
		renderer: r,
		effects:  fx,
		hud:      ui.NewHUD(w, hudWidth, stripHeight),
		overlay:  ui.NewOverlay(w, r),
		dt:       1 / float32(s.TPS),
		seed:     seed,
	}
	if s.Gesture != nil {
		g.hud.SetStatus("gesture: waiting")
		s.Gesture.OnFire(func(gs input.Gesture) {
			g.hud.SetStatus(fmt.Sprintf("gesture: %s -> %s", gs, gs.Action()))
		})
	}
	return g
}

// Reset restores the world and clears held input.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.world.Reset(seed)
	g.buf.Reset()
	g.tickOnce = false
}

// Update polls input and advances the simulation by one tick.
func (g *Game) Update() error {
	// Q waters, so only Escape quits.
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}

	g.overlay.Update()
	g.hud.Update(g.viewportWidth())

	g.producer.Update(g.buf)
	if !g.paused || g.tickOnce {
		g.world.Step(g.buf.Sample())
		g.tickOnce = false
	}
	g.effects.Update(g.dt)
	return nil
}

// Draw renders the viewport, overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	vw, vh := g.viewportWidth(), g.viewportHeight()
	viewport := screen.SubImage(image.Rect(0, 0, vw, vh)).(*ebiten.Image)
	g.renderer.Draw(viewport, g.world)
	g.overlay.Draw(viewport)
	g.hud.Draw(screen, vw, vh)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.viewportWidth() + hudWidth, g.viewportHeight() + stripHeight
}

func (g *Game) viewportWidth() int  { return int(g.world.State().Viewport.W) }
func (g *Game) viewportHeight() int { return int(g.world.State().Viewport.H) }
