// Package tui implements `ralph watch`: a read-only terminal view that
// polls the state file and renders the latest iteration as it changes.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/campreserv/ralph/internal/config"
	"github.com/campreserv/ralph/internal/report"
	"github.com/campreserv/ralph/internal/state"
)

const pollInterval = time.Second

type tickMsg time.Time

type stateMsg struct {
	state *state.State
	err   error
}

// Model is the bubbletea model for the watch view.
type Model struct {
	rootDir string
	cfg     *config.Config
	st      *state.State
	err     error
	spinner spinner.Model
	width   int
}

// NewModel creates a watch model for a project root.
func NewModel(rootDir string, cfg *config.Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{rootDir: rootDir, cfg: cfg, spinner: s}
}

// Run starts the watch TUI and blocks until the user quits.
func Run(rootDir string, cfg *config.Config) error {
	_, err := tea.NewProgram(NewModel(rootDir, cfg)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadState, tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		return m, tea.Batch(m.loadState, tick())

	case stateMsg:
		m.st = msg.state
		m.err = msg.err

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ralph watch"))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(failedStyle.Render(fmt.Sprintf("state unavailable: %v", m.err)))
		b.WriteString("\n")
	case m.st == nil:
		b.WriteString(m.spinner.View() + " loading state...\n")
	default:
		b.WriteString(boxStyle.Render(m.renderState()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("q: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderState() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n",
		labelStyle.Render("Loop status:"),
		statusStyle(m.st.Status).Render(string(m.st.Status)))
	fmt.Fprintf(&b, "%s %d/%d\n",
		labelStyle.Render("Iterations: "),
		len(m.st.Iterations), m.cfg.MaxIterations)

	last := m.st.LastIteration()
	if last == nil {
		b.WriteString("\nNo iterations recorded.")
		return b.String()
	}

	fmt.Fprintf(&b, "\nIteration #%d (%s)\n", last.Index, report.FormatIterationTiming(last))
	for _, cr := range last.Checks {
		style := skippedStyle
		switch cr.Status {
		case state.CheckPassed:
			style = passedStyle
		case state.CheckFailed:
			style = failedStyle
		}
		fmt.Fprintf(&b, "  %s %s\n", style.Render(statusGlyph(cr.Status)), cr.Name)
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) loadState() tea.Msg {
	st, err := state.Load(m.rootDir, m.cfg)
	return stateMsg{state: st, err: err}
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func statusStyle(s state.Status) lipgloss.Style {
	switch s {
	case state.StatusComplete:
		return passedStyle
	case state.StatusFailed:
		return failedStyle
	default:
		return skippedStyle
	}
}

func statusGlyph(s state.CheckStatus) string {
	switch s {
	case state.CheckPassed:
		return "✓"
	case state.CheckFailed:
		return "✗"
	default:
		return "−"
	}
}
