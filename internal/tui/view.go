package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"grove/internal/collision"
	"grove/internal/core"
	"grove/internal/sims/garden"
	"grove/internal/tilemap"
	"grove/internal/ui"
)

// World units covered by one terminal character. Characters are roughly
// twice as tall as they are wide.
const (
	charW = 12.0
	charH = 24.0
)

var (
	groundStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1f2a1a")).
			Foreground(lipgloss.Color("#2f3f28"))

	rockStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#3a3a3a")).
			Foreground(lipgloss.Color("#6a6a6a"))

	soilStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#3b2a1a")).
			Foreground(lipgloss.Color("#5a4026"))

	treeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1f2a1a")).
			Foreground(lipgloss.Color("#44cc66")).
			Bold(true)

	nearbyTreeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2c3f26")).
			Foreground(lipgloss.Color("#88ff99")).
			Bold(true)

	matureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffd54a")).
			Bold(true)

	playerStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1f2a1a")).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#446644"))

	hudStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#446644")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#88dd66")).
			Bold(true)

	menuStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#44aaff")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777777"))
)

var stageGlyphs = [garden.MaxStage + 1]rune{',', 't', 'T', '♣'}

type cell struct {
	glyph rune
	style *lipgloss.Style
}

// renderScreen lays the viewport out next to the HUD.
func renderScreen(s *garden.State, w *garden.World, status string) string {
	board := boxStyle.Render(renderBoard(s, w.Map()))
	hud := renderHUD(s, w.Name(), status)
	return lipgloss.JoinHorizontal(lipgloss.Top, board, " ", hud)
}

// boardSize is the number of character columns and rows the viewport spans.
func boardSize(s *garden.State) (cols, rows int) {
	cols = int(s.Viewport.W / charW)
	rows = int(s.Viewport.H / charH)
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// cellAt picks the glyph for the world sample point p.
func cellAt(s *garden.State, m *tilemap.Map, p core.Vec) cell {
	probe := core.Rect{X: s.Player.X, Y: s.Player.Y, W: s.Player.W, H: s.Player.H}
	if contains(probe, p) {
		return cell{glyph: playerGlyph(s.Player), style: &playerStyle}
	}
	for i, t := range s.Trees {
		if !contains(t.Bounds(), p) {
			continue
		}
		style := &treeStyle
		if t.Mature() {
			style = &matureStyle
		} else if i == s.Nearby {
			style = &nearbyTreeStyle
		}
		return cell{glyph: stageGlyphs[clampStage(t.Stage)], style: style}
	}
	size := m.CellSize()
	col, row := int(p.X/size), int(p.Y/size)
	switch m.Code(col, row) {
	case tilemap.CodeObstacle:
		return cell{glyph: '#', style: &rockStyle}
	case tilemap.CodeTree:
		return cell{glyph: ':', style: &soilStyle}
	}
	return cell{glyph: '.', style: &groundStyle}
}

func renderBoard(s *garden.State, m *tilemap.Map) string {
	cols, rows := boardSize(s)
	lines := make([]string, rows)
	for y := 0; y < rows; y++ {
		var sb strings.Builder
		var run []rune
		var runStyle *lipgloss.Style
		flush := func() {
			if len(run) > 0 {
				sb.WriteString(runStyle.Render(string(run)))
				run = run[:0]
			}
		}
		for x := 0; x < cols; x++ {
			p := core.Vec{
				X: s.Camera.X + (float64(x)+0.5)*charW,
				Y: s.Camera.Y + (float64(y)+0.5)*charH,
			}
			c := cellAt(s, m, p)
			if c.style != runStyle {
				flush()
				runStyle = c.style
			}
			run = append(run, c.glyph)
		}
		flush()
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func renderHUD(s *garden.State, name, status string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🌳 " + name))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("tick %d", s.Tick)))
	b.WriteString("\n\n")

	for i, t := range s.Trees {
		line := fmt.Sprintf("#%-2d %s %s", i+1, ui.ProgressLabel(t.Stage), ui.ProgressBar(t, 10))
		if marks := ui.CareMarks(t); marks != "" {
			line += " " + marks
		}
		switch {
		case t.Mature():
			line = matureStyle.Render(line)
		case i == s.Nearby:
			line = nearbyTreeStyle.UnsetBackground().Render("> " + line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s.ShowInteraction {
		b.WriteString(menuStyle.Render("[q] Water  [e] Fertilize"))
	} else {
		b.WriteString(dimStyle.Render("walk up to a tree"))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("space pause · n step · r reset · esc quit"))
	return hudStyle.Render(b.String())
}

func playerGlyph(p garden.Player) rune {
	switch p.FrameY {
	case garden.RowUp:
		return '^'
	case garden.RowSideways:
		if p.Facing < 0 {
			return '<'
		}
		return '>'
	}
	return '@'
}

func clampStage(stage int) int {
	if stage < 0 {
		return 0
	}
	if stage > garden.MaxStage {
		return garden.MaxStage
	}
	return stage
}

// contains reports whether p lies inside r. A point is treated as a tiny
// rectangle so the strict overlap test applies.
func contains(r core.Rect, p core.Vec) bool {
	return collision.Overlaps(r, core.Rect{X: p.X, Y: p.Y, W: 1e-9, H: 1e-9})
}
