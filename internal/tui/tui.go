// Package tui is a terminal front-end for the picker. Key presses become
// picker events; the view renders the picker state after every update.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jsvensson/chromapick/internal/color"
	"github.com/jsvensson/chromapick/internal/picker"
)

var (
	focusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// CopiedMsg reports the outcome of a clipboard copy.
type CopiedMsg struct {
	Text string
	Err  error
}

// Model is the bubbletea model wrapping a picker. It owns the picker: all
// picker calls happen inside Update.
type Model struct {
	picker *picker.Picker
	inputs []textinput.Model
	focus  int
	status string
	err    error
}

// New returns a model editing the channels of p's active space.
func New(p *picker.Picker) *Model {
	m := &Model{
		picker: p,
		inputs: make([]textinput.Model, picker.AlphaIndex+1),
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 16
		ti.Width = 12
		m.inputs[i] = ti
	}
	m.load()
	m.inputs[0].Focus()
	return m
}

// Picker returns the wrapped picker.
func (m *Model) Picker() *picker.Picker { return m.picker }

// Focus returns the index of the focused channel input.
func (m *Model) Focus() int { return m.focus }

// load copies the active group into the inputs.
func (m *Model) load() {
	g := m.picker.Group(m.picker.Space())
	channels := picker.Channels(m.picker.Space())
	for i := range m.inputs {
		if i == picker.AlphaIndex {
			m.inputs[i].SetValue(g.Alpha)
		} else {
			m.inputs[i].SetValue(g.Values[i])
		}
		m.inputs[i].CursorEnd()
		if i < len(channels) {
			m.inputs[i].Placeholder = channels[i].Name
		}
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down":
			m.setFocus(m.focus + 1)
			return m, nil
		case "shift+tab", "up":
			m.setFocus(m.focus - 1)
			return m, nil
		case "ctrl+n":
			m.cycleSpace(1)
			return m, nil
		case "ctrl+p":
			m.cycleSpace(-1)
			return m, nil
		case "ctrl+y":
			return m, m.copy()
		}
	case CopiedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.status = ""
		} else {
			m.err = nil
			m.status = "copied " + msg.Text
		}
		return m, nil
	}

	input := &m.inputs[m.focus]
	before := input.Value()
	newInput, cmd := input.Update(msg)
	*input = newInput
	if after := input.Value(); after != before {
		m.err = m.picker.Handle(picker.ChannelChanged{Index: m.focus, Text: after})
		m.status = ""
	}
	return m, cmd
}

func (m *Model) setFocus(i int) {
	n := len(m.inputs)
	m.inputs[m.focus].Blur()
	m.focus = ((i % n) + n) % n
	m.inputs[m.focus].Focus()
}

// cycleSpace selects the space step positions away from the active one.
func (m *Model) cycleSpace(step int) {
	spaces := picker.Spaces()
	current := 0
	for i, s := range spaces {
		if s == m.picker.Space() {
			current = i
			break
		}
	}
	next := spaces[((current+step)%len(spaces)+len(spaces))%len(spaces)]

	m.err = m.picker.Handle(picker.SpaceSelected{Space: next})
	m.status = ""
	m.load()
}

// copy starts a clipboard write and returns a command waiting for it.
func (m *Model) copy() tea.Cmd {
	text := m.picker.Color()
	result := m.picker.Copy()
	return func() tea.Msg {
		return CopiedMsg{Text: text, Err: <-result}
	}
}

func (m *Model) View() string {
	var s strings.Builder
	state := m.picker.State()

	s.WriteString(titleStyle.Render("chromapick") + "  ")
	s.WriteString(blurredStyle.Render(string(state.Space)) + "\n\n")

	s.WriteString(swatch(state) + "\n\n")
	s.WriteString(fmt.Sprintf("%s  gamut %s\n\n", state.Color, state.Gamut))

	channels := picker.Channels(state.Space)
	for i, input := range m.inputs {
		label := fmt.Sprintf("channel %d", i)
		if i < len(channels) {
			label = fmt.Sprintf("%-10s %s", channels[i].Name, channelRange(channels[i]))
		}
		if i == m.focus {
			s.WriteString(focusedStyle.Render("→ "+label) + "  " + input.View() + "\n")
		} else {
			s.WriteString(blurredStyle.Render("  "+label) + "  " + input.View() + "\n")
		}
	}
	s.WriteString("\n")

	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	} else if m.status != "" {
		s.WriteString(focusedStyle.Render(m.status) + "\n")
	}

	s.WriteString(helpStyle.Render("↑/↓ or Tab: Channel | Ctrl+N/Ctrl+P: Space | Ctrl+Y: Copy | Esc: Quit"))
	return s.String()
}

// swatch renders the canonical color as a block with overlay-colored text.
func swatch(state picker.State) string {
	bg, err := color.Hex(state.Color)
	if err != nil {
		bg = "#000000"
	}
	fg, err := color.Hex(state.TextOverlay)
	if err != nil {
		fg = "#ffffff"
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(fg)).
		Padding(1, 4).
		Render(bg)
}

func channelRange(c picker.Channel) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	unit := ""
	if c.Percent {
		unit = "%"
	}
	return "[" + f(c.Min) + unit + ", " + f(c.Max) + unit + "]"
}

// Run starts the terminal front-end and blocks until the user quits.
func Run(p *picker.Picker) error {
	if _, err := tea.NewProgram(New(p)).Run(); err != nil {
		return fmt.Errorf("running picker: %w", err)
	}
	return nil
}
