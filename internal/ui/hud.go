//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"grove/internal/core"
	"grove/internal/sims/garden"
)

var (
	panelBg    = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	barBg      = color.RGBA{R: 40, G: 44, B: 52, A: 255}
	barFill    = color.RGBA{R: 76, G: 175, B: 80, A: 255}
	barGold    = color.RGBA{R: 241, G: 196, B: 15, A: 255}
)

// HUD renders the parameter panel to the right of the viewport and the tree
// progress strip below it.
type HUD struct {
	world    *garden.World
	width    int
	strip    int
	snapshot core.ParameterSnapshot
	status   string

	controls     []hudControlState
	intSetter    core.IntParameterSetter
	floatSetter  core.FloatParameterSetter
	boolSetter   core.BoolParameterSetter
	panelOffsetX int
	title        string
}

// NewHUD constructs a HUD with a side panel of width and a progress strip of
// height strip.
func NewHUD(world *garden.World, width, strip int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{world: world, width: width, strip: strip}
	h.title = fmt.Sprintf("%s controls", world.Name())
	controls := world.ParameterControls()
	h.controls = make([]hudControlState, len(controls))
	for i, ctrl := range controls {
		h.controls[i] = hudControlState{control: ctrl, value: "--"}
	}
	h.layoutControls()
	h.intSetter = world
	h.floatSetter = world
	h.boolSetter = world
	return h
}

// SetStatus shows a one-line message under the controls, e.g. the last
// gesture.
func (h *HUD) SetStatus(s string) { h.status = s }

// Update refreshes the cached parameters and handles clicks on the panel.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.world.Parameters()
	h.refreshControlValues()
	h.handleInput()
}

// Draw paints the side panel at offsetX and the progress strip at stripY.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, stripY int) {
	if h == nil {
		return
	}
	if h.width > 0 {
		height := screen.Bounds().Dy()
		vector.DrawFilledRect(screen, float32(offsetX), 0, float32(h.width), float32(height), panelBg, false)
		h.drawControls(screen, offsetX)
	}
	if h.strip > 0 {
		h.drawProgress(screen, stripY, offsetX)
	}
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := h.snapshot.Find(state.control.Key)
		state.hasValue = false
		state.value = "--"
		if !ok {
			continue
		}
		switch state.control.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			state.intValue = parsed
			state.floatValue = float64(parsed)
			state.value = strconv.Itoa(parsed)
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			state.floatValue = parsed
			state.value = formatFloat(state.control, parsed)
		case core.ParamTypeBool:
			parsed, err := strconv.ParseBool(param.Value)
			if err != nil {
				continue
			}
			state.boolValue = parsed
			state.value = "off"
			if parsed {
				state.value = "on"
			}
		default:
			continue
		}
		state.hasValue = true
	}
}

func (h *HUD) handleInput() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.applyAdjustment(state, -1)
			return
		}
		if pointInRect(px, my, state.plusRect) {
			h.applyAdjustment(state, 1)
			return
		}
	}
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	if !h.canAdjust(state, direction) {
		return
	}
	ctrl := state.control
	switch ctrl.Type {
	case core.ParamTypeInt:
		target := int(ctrl.Clamp(float64(state.intValue + direction*intStep(ctrl))))
		h.intSetter.SetIntParameter(ctrl.Key, target)
	case core.ParamTypeFloat:
		target := ctrl.Clamp(state.floatValue + float64(direction)*floatStep(ctrl))
		h.floatSetter.SetFloatParameter(ctrl.Key, target)
	case core.ParamTypeBool:
		h.boolSetter.SetBoolParameter(ctrl.Key, direction > 0)
	}
}

func (h *HUD) canAdjust(state *hudControlState, direction int) bool {
	if state == nil || direction == 0 || !state.hasValue {
		return false
	}
	ctrl := state.control
	switch ctrl.Type {
	case core.ParamTypeInt:
		target := state.intValue + direction*intStep(ctrl)
		return int(ctrl.Clamp(float64(target))) != state.intValue
	case core.ParamTypeFloat:
		target := ctrl.Clamp(state.floatValue + float64(direction)*floatStep(ctrl))
		return math.Abs(target-state.floatValue) > 1e-9
	case core.ParamTypeBool:
		return state.boolValue != (direction > 0)
	}
	return false
}

func (h *HUD) drawControls(screen *ebiten.Image, offsetX int) {
	face := basicfont.Face7x13
	text.Draw(screen, h.title, face, offsetX+panelPadding, panelPadding+headerBaseline, titleColor)
	for i := range h.controls {
		state := &h.controls[i]
		labelY := state.top + labelBaseline
		text.Draw(screen, state.control.Label, face, offsetX+panelPadding, labelY, labelColor)
		valueColor := labelColor
		if !state.hasValue {
			valueColor = dimColor
		}
		valueWidth := text.BoundString(face, state.value).Dx()
		valueX := offsetX + state.minusRect.Min.X - buttonGap - valueWidth
		text.Draw(screen, state.value, face, valueX, labelY, valueColor)

		h.drawButton(screen, state.minusRect.Add(image.Pt(offsetX, 0)), "-", h.canAdjust(state, -1))
		h.drawButton(screen, state.plusRect.Add(image.Pt(offsetX, 0)), "+", h.canAdjust(state, 1))
	}
	if h.status != "" {
		y := controlsTop + len(h.controls)*lineHeight + labelBaseline
		text.Draw(screen, h.status, face, offsetX+panelPadding, y, dimColor)
	}
}

func (h *HUD) drawButton(screen *ebiten.Image, rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	vector.DrawFilledRect(screen, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), bg, false)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(screen, label, face, x, y, fg)
}

// drawProgress lays the trees out in columns, one bar per tree.
func (h *HUD) drawProgress(screen *ebiten.Image, top, width int) {
	vector.DrawFilledRect(screen, 0, float32(top), float32(width), float32(h.strip), panelBg, false)
	trees := h.world.State().Trees
	face := basicfont.Face7x13
	if len(trees) == 0 {
		text.Draw(screen, "No trees on this map", face, panelPadding, top+panelPadding+headerBaseline, dimColor)
		return
	}
	cols := width / progressCellW
	if cols < 1 {
		cols = 1
	}
	rows := (h.strip - panelPadding) / progressCellH
	capacity := cols * rows
	for i, t := range trees {
		if i >= capacity {
			break
		}
		x := panelPadding + (i%cols)*progressCellW
		y := top + panelPadding/2 + (i/cols)*progressCellH
		label := fmt.Sprintf("#%d %s %s", i+1, ProgressLabel(t.Stage), CareMarks(t))
		text.Draw(screen, label, face, x, y+labelBaseline/2+4, labelColor)

		barW := float32(progressCellW - panelPadding*2)
		barY := float32(y + progressCellH - 14)
		fill := barFill
		if t.Mature() {
			fill = barGold
		}
		vector.DrawFilledRect(screen, float32(x), barY, barW, 8, barBg, false)
		vector.DrawFilledRect(screen, float32(x), barY, barW*float32(ProgressFraction(t)), 8, fill, false)
	}
	if len(trees) > capacity {
		more := fmt.Sprintf("+%d more", len(trees)-capacity)
		text.Draw(screen, more, face, width-panelPadding-text.BoundString(face, more).Dx(), top+h.strip-4, dimColor)
	}
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

func intStep(ctrl core.ParameterControl) int {
	step := int(math.Round(ctrl.Step))
	if step <= 0 {
		step = 1
	}
	return step
}

func floatStep(ctrl core.ParameterControl) float64 {
	if ctrl.Step <= 0 {
		return 0.05
	}
	return ctrl.Step
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := floatStep(ctrl)
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	boolValue  bool
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 30
	buttonSize     = 22
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 20
	controlsTop    = panelPadding + headerBaseline + 10

	progressCellW = 200
	progressCellH = 34
)
