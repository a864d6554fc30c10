package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campreserv/ralph/internal/config"
	"github.com/campreserv/ralph/internal/state"
)

func TestModel_QuitKeys(t *testing.T) {
	m := NewModel(t.TempDir(), config.Default())

	for _, key := range []string{"q", "ctrl+c", "esc"} {
		_, cmd := m.Update(keyMsg(key))
		require.NotNil(t, cmd, "key %q should quit", key)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestModel_ViewBeforeStateLoads(t *testing.T) {
	m := NewModel(t.TempDir(), config.Default())
	assert.Contains(t, m.View(), "loading state")
}

func TestModel_ViewWithState(t *testing.T) {
	m := NewModel(t.TempDir(), config.Default())

	st := state.NewInitial(time.Now())
	st.Status = state.StatusFailed
	zero := 0
	one := 1
	st.Iterations = []state.Iteration{{
		Index:      1,
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
		Status:     state.IterationFailed,
		Checks: []state.CheckResult{
			{Name: "lint", Command: "pnpm lint", Status: state.CheckPassed, ExitCode: &zero},
			{Name: "test", Command: "pnpm test", Status: state.CheckFailed, ExitCode: &one},
			{Name: "smoke", Command: "pnpm smoke", Status: state.CheckSkipped},
		},
	}}

	updated, _ := m.Update(stateMsg{state: st})
	view := updated.(Model).View()

	assert.Contains(t, view, "failed")
	assert.Contains(t, view, "lint")
	assert.Contains(t, view, "smoke")
	assert.Contains(t, view, "1/10")
}

func TestModel_ViewNoIterations(t *testing.T) {
	m := NewModel(t.TempDir(), config.Default())

	updated, _ := m.Update(stateMsg{state: state.NewInitial(time.Now())})
	view := updated.(Model).View()

	assert.Contains(t, view, "No iterations recorded.")
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}
