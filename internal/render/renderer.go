//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"grove/internal/core"
	"grove/internal/sims/garden"
	"grove/internal/tilemap"
)

var (
	groundColor   = color.RGBA{R: 86, G: 138, B: 74, A: 255}
	obstacleColor = color.RGBA{R: 112, G: 96, B: 84, A: 255}
	soilColor     = color.RGBA{R: 120, G: 88, B: 56, A: 255}
	trunkColor    = color.RGBA{R: 98, G: 70, B: 44, A: 255}
	leafColor     = color.RGBA{R: 46, G: 110, B: 52, A: 255}
	playerColor   = color.RGBA{R: 236, G: 200, B: 120, A: 255}
	menuBg        = color.RGBA{R: 16, G: 16, B: 20, A: 220}
	menuFg        = color.RGBA{R: 230, G: 230, B: 240, A: 255}
)

// Renderer draws a garden world into the viewport.
type Renderer struct {
	sprites *Sprites
	effects *Effects
	mask    *GridPainter
	treeW   int
	treeH   int
}

// NewRenderer builds a renderer. sprites and effects may be nil.
func NewRenderer(sprites *Sprites, effects *Effects, opts tilemap.Options) *Renderer {
	return &Renderer{
		sprites: sprites,
		effects: effects,
		treeW:   int(opts.TreeWidth),
		treeH:   int(opts.TreeHeight),
	}
}

// Draw paints the ground, trees, player and interaction menu.
func (r *Renderer) Draw(screen *ebiten.Image, w *garden.World) {
	st := w.State()
	r.drawGround(screen, st, w.Map())
	for i := range st.Trees {
		r.drawTree(screen, st, i, w.Map().Scale)
	}
	r.drawPlayer(screen, st, w.Collider().Probe())
	r.drawMenu(screen, st)
}

// DrawMask paints the collision mask overlay.
func (r *Renderer) DrawMask(screen *ebiten.Image, w *garden.World) {
	m := w.Map()
	if r.mask == nil {
		r.mask = NewGridPainter(m.Cols, m.Rows)
	}
	r.mask.Blit(screen, m, w.State().Camera)
}

func (r *Renderer) drawGround(screen *ebiten.Image, st *garden.State, m *tilemap.Map) {
	if r.sprites != nil && r.sprites.Background != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(m.Scale, m.Scale)
		op.GeoM.Translate(-st.Camera.X, -st.Camera.Y)
		screen.DrawImage(r.sprites.Background, op)
		return
	}
	screen.Fill(groundColor)
	for row := 0; row < m.Rows; row++ {
		for col := 0; col < m.Cols; col++ {
			code := m.Code(col, row)
			if code == tilemap.CodeWalkable {
				continue
			}
			rect := ToScreen(m.TileRect(col, row), st.Camera)
			if !OnScreen(rect, st.Viewport) {
				continue
			}
			clr := obstacleColor
			if code == tilemap.CodeTree {
				clr = soilColor
			}
			vector.DrawFilledRect(screen, float32(rect.X), float32(rect.Y), float32(rect.W), float32(rect.H), clr, false)
		}
	}
}

func (r *Renderer) drawTree(screen *ebiten.Image, st *garden.State, i int, scale float64) {
	t := st.Trees[i]
	rect := ToScreen(t.Bounds(), st.Camera)
	if !OnScreen(rect, st.Viewport) {
		return
	}
	pop := 1.0
	if r.effects != nil {
		pop = r.effects.TreeScale(i)
	}

	if r.sprites != nil {
		if r.sprites.Tree == nil || r.treeW <= 0 || r.treeH <= 0 {
			return
		}
		frame := r.sprites.Tree.SubImage(TreeFrame(t.Stage, r.treeW, r.treeH)).(*ebiten.Image)
		op := &ebiten.DrawImageOptions{}
		// scale around the trunk base
		op.GeoM.Translate(-float64(r.treeW)/2, -float64(r.treeH))
		op.GeoM.Scale(scale*pop, scale*pop)
		op.GeoM.Translate(rect.X+rect.W/2, rect.Y+rect.H)
		screen.DrawImage(frame, op)
		return
	}

	baseX := float32(rect.X + rect.W/2)
	baseY := float32(rect.Y + rect.H)
	trunkW := float32(rect.W / 6)
	trunkH := float32(rect.H/3) * float32(t.Stage+1) / float32(garden.MaxStage+1)
	vector.DrawFilledRect(screen, baseX-trunkW/2, baseY-trunkH, trunkW, trunkH, trunkColor, false)
	radius := float32(rect.W/2) * float32(t.Stage+1) / float32(garden.MaxStage+1) * float32(pop)
	vector.DrawFilledCircle(screen, baseX, baseY-trunkH-radius/2, radius, leafColor, true)
}

func (r *Renderer) drawPlayer(screen *ebiten.Image, st *garden.State, probe core.Size) {
	p := st.Player
	rect := ToScreen(core.Rect{X: p.X, Y: p.Y, W: probe.W, H: probe.H}, st.Camera)

	if r.sprites != nil {
		sheet := r.sprites.Player(p.State)
		if sheet == nil {
			return
		}
		fw, fh := r.sprites.FrameW, r.sprites.FrameH
		frame := sheet.SubImage(SheetFrame(p.FrameX, p.FrameY, fw, fh)).(*ebiten.Image)
		op := &ebiten.DrawImageOptions{}
		sx := rect.W / float64(fw)
		sy := rect.H / float64(fh)
		if p.Facing < 0 && p.FrameY == garden.RowSideways {
			op.GeoM.Scale(-1, 1)
			op.GeoM.Translate(float64(fw), 0)
		}
		op.GeoM.Scale(sx, sy)
		op.GeoM.Translate(rect.X, rect.Y)
		screen.DrawImage(frame, op)
		return
	}

	vector.DrawFilledRect(screen, float32(rect.X+rect.W/4), float32(rect.Y+rect.H/4), float32(rect.W/2), float32(rect.H*3/4), playerColor, false)
	eyeX := rect.X + rect.W/2 + float64(p.Facing)*rect.W/8
	vector.DrawFilledCircle(screen, float32(eyeX), float32(rect.Y+rect.H/2.5), 3, color.Black, true)
}

func (r *Renderer) drawMenu(screen *ebiten.Image, st *garden.State) {
	alpha := 0.0
	if st.ShowInteraction {
		alpha = 1
	}
	if r.effects != nil {
		alpha = r.effects.MenuAlpha()
	}
	if alpha <= 0 {
		return
	}
	t, ok := st.NearbyTree()
	if !ok {
		return
	}
	rect := ToScreen(t.Bounds(), st.Camera)
	lines := []string{"Q  Water", "E  Fertilize"}
	const (
		lineH = 16
		boxW  = 110
		pad   = 6
	)
	boxH := len(lines)*lineH + pad*2
	x := int(rect.X+rect.W/2) - boxW/2
	y := int(rect.Y) - boxH - 8
	if y < 0 {
		y = int(rect.Bottom()) + 8
	}

	vector.DrawFilledRect(screen, float32(x), float32(y), boxW, float32(boxH), fade(menuBg, alpha), false)
	vector.StrokeRect(screen, float32(x), float32(y), boxW, float32(boxH), 1, fade(menuFg, alpha*0.8), false)
	fg := fade(menuFg, alpha)
	for i, line := range lines {
		text.Draw(screen, line, basicfont.Face7x13, x+pad, y+pad+(i+1)*lineH-4, fg)
	}
}

// fade scales a premultiplied color by alpha.
func fade(c color.RGBA, alpha float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}
