package tilemap

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"grove/internal/core"
)

// Tile codes understood by the loader.
const (
	CodeWalkable uint8 = 0
	CodeObstacle uint8 = 1
	CodeTree     uint8 = 2
)

// DefaultReferenceSize is the pixel width of the map artwork the grid was
// traced from.
const DefaultReferenceSize = 512

// ErrMalformedMap is matched by every parse failure.
var ErrMalformedMap = errors.New("malformed map")

// MapParseError locates a parse failure. Row and Col are 1-based; Col is zero
// when the whole row is at fault.
type MapParseError struct {
	Row    int
	Col    int
	Token  string
	Reason string
}

func (e *MapParseError) Error() string {
	switch {
	case e.Row == 0:
		return fmt.Sprintf("malformed map: %s", e.Reason)
	case e.Col == 0:
		return fmt.Sprintf("malformed map: row %d: %s", e.Row, e.Reason)
	default:
		return fmt.Sprintf("malformed map: row %d col %d (%q): %s", e.Row, e.Col, e.Token, e.Reason)
	}
}

func (e *MapParseError) Unwrap() error { return ErrMalformedMap }

// Options control how grid cells translate to world units.
type Options struct {
	ReferenceSize float64 // artwork width in pixels, divided evenly among columns
	Scale         float64 // world units per artwork pixel
	TreeWidth     float64 // tree sprite size in artwork pixels
	TreeHeight    float64
}

// DefaultOptions matches the bundled artwork.
func DefaultOptions() Options {
	return Options{
		ReferenceSize: DefaultReferenceSize,
		Scale:         3,
		TreeWidth:     32,
		TreeHeight:    48,
	}
}

func (o Options) validate() error {
	if o.ReferenceSize <= 0 {
		return fmt.Errorf("reference size must be positive, got %v", o.ReferenceSize)
	}
	if o.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", o.Scale)
	}
	if o.TreeWidth <= 0 || o.TreeHeight <= 0 {
		return fmt.Errorf("tree size must be positive, got %vx%v", o.TreeWidth, o.TreeHeight)
	}
	return nil
}

// Seed is a tree placement derived from a code-2 cell.
type Seed struct {
	Row, Col int
	Bounds   core.Rect
}

// Map is an immutable parsed tile grid.
type Map struct {
	Rows, Cols int
	TileSize   float64 // unscaled, in artwork pixels
	Scale      float64

	codes     *core.ByteGrid
	obstacles []core.Rect
	seeds     []Seed
}

// Load reads and parses a map file.
func Load(path string, opts Options) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file: %w", err)
	}
	m, err := Parse(string(data), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse builds a Map from rows of whitespace-separated integer codes. Blank
// lines are skipped.
func Parse(text string, opts Options) (*Map, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	var rows [][]uint8
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		row := len(rows) + 1
		if len(rows) > 0 && len(fields) != len(rows[0]) {
			return nil, &MapParseError{
				Row:    row,
				Reason: fmt.Sprintf("expected %d columns, got %d", len(rows[0]), len(fields)),
			}
		}
		codes := make([]uint8, len(fields))
		for i, tok := range fields {
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, &MapParseError{Row: row, Col: i + 1, Token: tok, Reason: "not an integer"}
			}
			if v < int(CodeWalkable) || v > int(CodeTree) {
				return nil, &MapParseError{Row: row, Col: i + 1, Token: tok, Reason: "unknown tile code"}
			}
			codes[i] = uint8(v)
		}
		rows = append(rows, codes)
	}
	if len(rows) == 0 {
		return nil, &MapParseError{Reason: "no rows"}
	}

	m := &Map{
		Rows:     len(rows),
		Cols:     len(rows[0]),
		Scale:    opts.Scale,
		TileSize: opts.ReferenceSize / float64(len(rows[0])),
		codes:    core.NewByteGrid(len(rows[0]), len(rows)),
	}
	cell := m.CellSize()
	treeW := opts.TreeWidth * opts.Scale
	treeH := opts.TreeHeight * opts.Scale
	for r, codes := range rows {
		for c, code := range codes {
			m.codes.Set(c, r, code)
			if code == CodeWalkable {
				continue
			}
			tile := m.TileRect(c, r)
			m.obstacles = append(m.obstacles, tile)
			if code == CodeTree {
				m.seeds = append(m.seeds, Seed{
					Row: r,
					Col: c,
					Bounds: core.Rect{
						X: tile.X + (cell-treeW)/2,
						Y: tile.Y + (cell-treeH)/2,
						W: treeW,
						H: treeH,
					},
				})
			}
		}
	}
	return m, nil
}

// CellSize is the world-space side length of one tile.
func (m *Map) CellSize() float64 { return m.TileSize * m.Scale }

// TileRect returns the world rectangle covered by the tile at (col, row).
func (m *Map) TileRect(col, row int) core.Rect {
	cell := m.CellSize()
	return core.Rect{X: float64(col) * cell, Y: float64(row) * cell, W: cell, H: cell}
}

// Code returns the tile code at (col, row).
func (m *Map) Code(col, row int) uint8 { return m.codes.At(col, row) }

// Codes exposes the row-major code grid. Callers must not modify it.
func (m *Map) Codes() []uint8 { return m.codes.Cells() }

// WorldSize returns the world extent covered by the grid.
func (m *Map) WorldSize() core.Size {
	cell := m.CellSize()
	return core.Size{W: float64(m.Cols) * cell, H: float64(m.Rows) * cell}
}

// Obstacles returns a copy of the collision rectangles, one per blocking tile
// in row-major order.
func (m *Map) Obstacles() []core.Rect {
	out := make([]core.Rect, len(m.obstacles))
	copy(out, m.obstacles)
	return out
}

// Seeds returns a copy of the tree placements in row-major order.
func (m *Map) Seeds() []Seed {
	out := make([]Seed, len(m.seeds))
	copy(out, m.seeds)
	return out
}
