package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/bincode/errors"
	"github.com/wippyai/bincode/transcoder"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	fingerprintStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// header and footer lines around the viewport
const chromeHeight = 4

type inspectModel struct {
	err      error
	doc      any
	schema   *transcoder.Type
	title    string
	format   outputFormat
	viewport viewport.Model
	ready    bool
}

func newInspectModel(t *transcoder.Type, doc any) *inspectModel {
	title := t.Name
	if title == "" {
		title = t.Kind.String()
	}
	return &inspectModel{
		doc:    doc,
		schema: t,
		title:  title,
		format: formatYAML,
	}
}

func runInteractive(t *transcoder.Type, doc any) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.Unsupported(errors.PhaseConfig, "interactive mode without a terminal")
	}
	m := newInspectModel(t, doc)
	if width, height, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		m.resize(width, height)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m *inspectModel) Init() tea.Cmd {
	return nil
}

func (m *inspectModel) resize(width, height int) {
	h := height - chromeHeight
	if h < 1 {
		h = 1
	}
	if !m.ready {
		m.viewport = viewport.New(width, h)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = h
	}
	m.refresh()
}

func (m *inspectModel) refresh() {
	out, err := render(m.doc, m.format)
	m.err = err
	m.viewport.SetContent(string(out))
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "tab":
			if m.format == formatYAML {
				m.format = formatJSON
			} else {
				m.format = formatYAML
			}
			m.refresh()
			m.viewport.GotoTop()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *inspectModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString(" ")
	b.WriteString(fingerprintStyle.Render(transcoder.FingerprintOf(m.schema).Short()))
	b.WriteString(" ")
	b.WriteString(typeStyle.Render(string(m.format)))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	} else {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("↑/↓ scroll • tab yaml/json • q quit • %3.f%%", m.viewport.ScrollPercent()*100)))
	return b.String()
}
