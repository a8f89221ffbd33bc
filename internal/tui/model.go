package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"grove/internal/core"
	"grove/internal/input"
	"grove/internal/sims/garden"
)

// frameMsg wakes the model to run the ticks that are due.
type frameMsg time.Time

// Model is the Bubbletea model driving a garden from the terminal.
type Model struct {
	world    *garden.World
	buf      *input.Buffer
	term     *input.Terminal
	producer input.Producer
	clock    *core.FixedStep
	seed     int64

	status   string
	paused   bool
	quitting bool
}

// NewModel wraps world. extra is merged with the terminal keys, e.g. a
// gesture producer; it may be nil.
func NewModel(world *garden.World, extra input.Producer, tps int, hold time.Duration, seed int64) *Model {
	return newModel(world, extra, tps, hold, seed, time.Now)
}

func newModel(world *garden.World, extra input.Producer, tps int, hold time.Duration, seed int64, now func() time.Time) *Model {
	term := input.NewTerminal(hold, now)
	var producer input.Producer = term
	if extra != nil {
		producer = input.NewMulti(term, extra)
	}
	return &Model{
		world:    world,
		buf:      input.NewBuffer(),
		term:     term,
		producer: producer,
		clock:    core.NewFixedStep(tps, now),
		seed:     seed,
		status:   "arrows/wasd move, q water, e fertilize",
	}
}

// SetStatus replaces the status line under the HUD.
func (m *Model) SetStatus(s string) { m.status = s }

// Init starts the frame loop.
func (m *Model) Init() tea.Cmd {
	return m.nextFrame()
}

// Update handles key presses and frame ticks.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		m.advance()
		return m, m.nextFrame()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case " ", "space":
		m.paused = !m.paused
		if m.paused {
			m.status = "paused"
		} else {
			m.status = "running"
		}
	case "n":
		if m.paused {
			m.tick()
		}
	case "r":
		m.world.Reset(m.seed)
		m.buf.Reset()
		m.status = fmt.Sprintf("reset (seed %d)", m.seed)
	default:
		m.term.HandleKey(msg.String())
	}
	return m, nil
}

// advance runs every tick the fixed-step clock reports as due.
func (m *Model) advance() {
	n := m.clock.Advance()
	if m.paused {
		return
	}
	for i := 0; i < n; i++ {
		m.tick()
	}
}

func (m *Model) tick() {
	m.producer.Update(m.buf)
	m.world.Step(m.buf.Sample())
}

func (m *Model) nextFrame() tea.Cmd {
	return tea.Tick(m.clock.Interval(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// View renders the viewport next to the HUD.
func (m *Model) View() string {
	if m.quitting {
		return "Bye.\n"
	}
	return renderScreen(m.world.State(), m.world, m.status) + "\n"
}
