// Package tui provides a terminal user interface for ai-midi
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mortomr/ai-midi/pkg/drums"
)

// Kit-inspired color scheme (brushed steel and warm accent)
var (
	accentOrange = lipgloss.Color("#FF8C00")
	brightWhite  = lipgloss.Color("#FFFFFF")
	silverGray   = lipgloss.Color("#C0C0C0")
	darkGray     = lipgloss.Color("#333333")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentOrange).
			Background(darkGray).
			Padding(0, 2).
			MarginBottom(1)

	rowStyle = lipgloss.NewStyle().
			Foreground(silverGray).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(accentOrange).
			Bold(true).
			PaddingLeft(2)

	valueStyle = lipgloss.NewStyle().
			Foreground(brightWhite)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(accentOrange).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentOrange).
			Padding(1, 2)
)

// State represents the current TUI state
type State int

const (
	StateEdit State = iota
	StateGenerating
	StateResult
)

// field identifies one editable parameter row
type field int

const (
	fieldTempo field = iota
	fieldStyle
	fieldSection
	fieldBars
	fieldDensity
	fieldVariation
	fieldSyncopation
	fieldFillFrequency
	fieldKick
	fieldHihat
	fieldSeed
	fieldGenerate
	fieldCount
)

var fieldNames = [fieldCount]string{
	"Tempo",
	"Style",
	"Section",
	"Bars",
	"Density",
	"Variation",
	"Syncopation",
	"Fill frequency",
	"Kick pattern",
	"Hi-hat pattern",
	"Seed",
	"Generate",
}

// Model represents the TUI model
type Model struct {
	state      State
	fieldIndex field
	params     drums.Parameters
	seed       int64
	useSeed    bool
	spinner    spinner.Model
	outputFile string
	desc       string
	err        error
	width      int
	height     int
}

// generateDoneMsg signals generation completion
type generateDoneMsg struct {
	outputFile string
	desc       string
	err        error
}

// New creates a new TUI model
func New() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accentOrange)

	return Model{
		state:   StateEdit,
		params:  drums.DefaultParameters(),
		spinner: s,
	}
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateEdit:
			return m.updateEdit(msg)
		case StateResult:
			return m.updateResult(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case generateDoneMsg:
		m.state = StateResult
		m.outputFile = msg.outputFile
		m.desc = msg.desc
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.fieldIndex > 0 {
			m.fieldIndex--
		}
	case "down", "j":
		if m.fieldIndex < fieldCount-1 {
			m.fieldIndex++
		}
	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(1)
	case "enter":
		if m.fieldIndex == fieldGenerate {
			m.state = StateGenerating
			return m, tea.Batch(m.spinner.Tick, m.performGeneration())
		}
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.state = StateEdit
		m.err = nil
		m.outputFile = ""
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func cycle(options []string, current string, dir int) string {
	for i, opt := range options {
		if opt == current {
			return options[(i+dir+len(options))%len(options)]
		}
	}
	return options[0]
}

func (m *Model) adjust(dir int) {
	step := func(v float64) float64 {
		v += 0.05 * float64(dir)
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return v
	}

	switch m.fieldIndex {
	case fieldTempo:
		m.params.Tempo += 5 * float64(dir)
		if m.params.Tempo < 40 {
			m.params.Tempo = 40
		}
		if m.params.Tempo > 300 {
			m.params.Tempo = 300
		}
	case fieldStyle:
		m.params.Style = drums.Style(cycle(drums.Styles(), string(m.params.Style), dir))
	case fieldSection:
		sections := append([]string{"none"}, drums.Sections()...)
		current := string(m.params.Section)
		if current == "" {
			current = "none"
		}
		next := cycle(sections, current, dir)
		if next == "none" {
			m.params.Section = drums.SectionNone
		} else {
			m.params.Section = drums.Section(next)
		}
	case fieldBars:
		m.params.Bars += dir
		if m.params.Bars < 1 {
			m.params.Bars = 1
		}
		if m.params.Bars > 64 {
			m.params.Bars = 64
		}
	case fieldDensity:
		m.params.Density = step(m.params.Density)
	case fieldVariation:
		m.params.Variation = step(m.params.Variation)
	case fieldSyncopation:
		m.params.Syncopation = step(m.params.Syncopation)
	case fieldFillFrequency:
		m.params.FillFrequency = step(m.params.FillFrequency)
	case fieldKick:
		m.params.KickPattern = cycle(drums.KickPatterns(), m.params.KickPattern, dir)
	case fieldHihat:
		m.params.HihatPattern = cycle(drums.HihatPatterns(), m.params.HihatPattern, dir)
	case fieldSeed:
		if !m.useSeed {
			if dir > 0 {
				m.useSeed = true
				m.seed = 0
			}
			return
		}
		m.seed += int64(dir)
		if m.seed < 0 {
			m.useSeed = false
		}
	}
}

func (m Model) fieldValue(f field) string {
	switch f {
	case fieldTempo:
		return fmt.Sprintf("%.0f BPM", m.params.Tempo)
	case fieldStyle:
		return string(m.params.Style)
	case fieldSection:
		if m.params.Section == drums.SectionNone {
			return "none"
		}
		return string(m.params.Section)
	case fieldBars:
		return fmt.Sprintf("%d", m.params.Bars)
	case fieldDensity:
		return fmt.Sprintf("%.2f", m.params.Density)
	case fieldVariation:
		return fmt.Sprintf("%.2f", m.params.Variation)
	case fieldSyncopation:
		return fmt.Sprintf("%.2f", m.params.Syncopation)
	case fieldFillFrequency:
		return fmt.Sprintf("%.2f", m.params.FillFrequency)
	case fieldKick:
		return m.params.KickPattern
	case fieldHihat:
		return m.params.HihatPattern
	case fieldSeed:
		if !m.useSeed {
			return "random"
		}
		return fmt.Sprintf("%d", m.seed)
	}
	return ""
}

func (m Model) performGeneration() tea.Cmd {
	params := m.params
	if m.useSeed {
		seed := m.seed
		params.Seed = &seed
	}

	return func() tea.Msg {
		pattern, err := drums.Generate(params)
		if err != nil {
			return generateDoneMsg{err: err}
		}

		outputFile := fmt.Sprintf("%s_%.0fbpm_%dbars.mid", params.Style, params.Tempo, params.Bars)
		if err := drums.NewEncoder().WriteFile(pattern, outputFile); err != nil {
			return generateDoneMsg{err: err}
		}

		return generateDoneMsg{outputFile: outputFile, desc: pattern.Description}
	}
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(asciiLogo())
	s.WriteString("\n")

	switch m.state {
	case StateEdit:
		s.WriteString(m.viewEdit())
	case StateGenerating:
		s.WriteString(m.viewGenerating())
	case StateResult:
		s.WriteString(m.viewResult())
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: field • ←/→: adjust • enter: generate • q: quit"))

	return s.String()
}

func (m Model) viewEdit() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" DRUM PATTERN PARAMETERS "))
	s.WriteString("\n\n")

	for f := field(0); f < fieldCount; f++ {
		if f == fieldGenerate {
			s.WriteString("\n")
			if f == m.fieldIndex {
				s.WriteString(selectedStyle.Render("▸ [ Generate pattern ]"))
			} else {
				s.WriteString(rowStyle.Render("  [ Generate pattern ]"))
			}
			s.WriteString("\n")
			continue
		}

		row := fmt.Sprintf("%-16s %s", fieldNames[f], valueStyle.Render(m.fieldValue(f)))
		if f == m.fieldIndex {
			s.WriteString(selectedStyle.Render("▸ " + row))
		} else {
			s.WriteString(rowStyle.Render("  " + row))
		}
		s.WriteString("\n")
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewGenerating() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" GENERATING "))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("%s Generating %s pattern...\n", m.spinner.View(), m.params.Style))

	return boxStyle.Render(s.String())
}

func (m Model) viewResult() string {
	var s strings.Builder

	if m.err != nil {
		s.WriteString(titleStyle.Render(" ERROR "))
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ Generation failed: %s", m.err.Error())))
	} else {
		s.WriteString(titleStyle.Render(" SUCCESS "))
		s.WriteString("\n\n")
		s.WriteString(successStyle.Render("✓ Pattern written!"))
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("File: %s\n", m.outputFile))
		s.WriteString(fmt.Sprintf("      %s", m.desc))
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press enter to continue"))

	return boxStyle.Render(s.String())
}

func asciiLogo() string {
	logo := `
      _    ___        __  __ ___ ____ ___
     / \  |_ _|      |  \/  |_ _|  _ \_ _|
    / _ \  | | _____ | |\/| || || | | | |
   / ___ \ | ||_____|| |  | || || |_| | |
  /_/   \_\___|      |_|  |_|___|____/___|
`
	return lipgloss.NewStyle().Foreground(accentOrange).Render(logo)
}

// Run starts the TUI application
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
