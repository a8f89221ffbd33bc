//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"grove/internal/sims/garden"
	"grove/internal/tilemap"
)

// GridPainter uploads the tile code grid into a one-pixel-per-tile image and
// stretches it over the world as a collision mask overlay.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit paints the map's tile codes aligned with the world under cam.
func (gp *GridPainter) Blit(dst *ebiten.Image, m *tilemap.Map, cam garden.Camera) {
	cells := m.Codes()
	if len(cells) != gp.w*gp.h {
		return
	}
	fillPaletteRGBA(gp.buf, cells, tilePalette)
	gp.img.WritePixels(gp.buf)

	cell := m.CellSize()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(cell, cell)
	op.GeoM.Translate(-cam.X, -cam.Y)
	dst.DrawImage(gp.img, op)
}
