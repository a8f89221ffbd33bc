package render

import (
	"image"
	"image/color"

	"grove/internal/collision"
	"grove/internal/core"
	"grove/internal/sims/garden"
	"grove/internal/tilemap"
)

// tilePalette colors the collision mask overlay, indexed by tile code.
var tilePalette = []color.RGBA{
	tilemap.CodeWalkable: {0, 0, 0, 0},
	tilemap.CodeObstacle: {200, 60, 60, 110},
	tilemap.CodeTree:     {60, 200, 90, 110},
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette.
// Values past the end of the palette use its last entry. An empty palette
// clears the buffer to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
		return
	}
	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// SheetFrame returns the source rectangle of cell (col, row) in a sprite sheet
// laid out on a w x h grid.
func SheetFrame(col, row, w, h int) image.Rectangle {
	x, y := col*w, row*h
	return image.Rect(x, y, x+w, y+h)
}

// TreeFrame picks the sheet column for a growth stage.
func TreeFrame(stage, w, h int) image.Rectangle {
	if stage < 0 {
		stage = 0
	}
	if stage > garden.MaxStage {
		stage = garden.MaxStage
	}
	return SheetFrame(stage, 0, w, h)
}

// ToScreen converts a world rectangle into viewport coordinates.
func ToScreen(r core.Rect, cam garden.Camera) core.Rect {
	return core.Rect{X: r.X - cam.X, Y: r.Y - cam.Y, W: r.W, H: r.H}
}

// OnScreen reports whether a screen-space rectangle intersects the viewport.
func OnScreen(r core.Rect, view core.Size) bool {
	return collision.Overlaps(r, core.Rect{W: view.W, H: view.H})
}
