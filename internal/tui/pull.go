// internal/tui/pull.go
// Package tui renders interactive terminal views for long-running
// operations. The pull view shows streamed download progress while the
// blocking pull call runs on a worker goroutine.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nerrospl/promptforge/internal/ollama"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// pullProgressMsg carries one progress line from the pull worker.
type pullProgressMsg struct {
	percent int
	message string
}

// pullDoneMsg carries the terminal outcome of the pull.
type pullDoneMsg struct {
	outcome ollama.Outcome
}

// pullModel is the Bubble Tea model for a single model download.
type pullModel struct {
	modelName string
	progress  progress.Model
	spinner   spinner.Model
	percent   int
	message   string
	done      bool
	outcome   ollama.Outcome
}

func newPullModel(modelName string) pullModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return pullModel{
		modelName: modelName,
		progress:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		spinner:   s,
	}
}

// Init starts the spinner animation.
func (m pullModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles progress events, completion, and interrupt keys.
func (m pullModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case pullProgressMsg:
		// Percent 0 means unknown; keep the last known value on screen.
		if msg.percent > 0 {
			m.percent = msg.percent
		}
		m.message = msg.message
		return m, nil
	case pullDoneMsg:
		m.done = true
		m.outcome = msg.outcome
		return m, tea.Quit
	}
	return m, nil
}

// View renders the progress bar with the most recent status line.
func (m pullModel) View() string {
	if m.done {
		if m.outcome.Success {
			return successStyle.Render("✓ "+m.outcome.Message) + "\n"
		}
		return failureStyle.Render("✗ "+m.outcome.Message) + "\n"
	}

	view := titleStyle.Render(fmt.Sprintf("Pulling %s", m.modelName)) + "\n\n"
	view += fmt.Sprintf("%s %s\n", m.spinner.View(), m.progress.ViewAs(float64(m.percent)/100))
	if m.message != "" {
		view += statusStyle.Render(m.message) + "\n"
	}
	return view
}

// RunPull drives an interactive pull. The blocking PullModel call runs on a
// worker goroutine and feeds the program through Send, preserving line
// order; the outcome is returned once the subprocess exits.
func RunPull(manager *ollama.Manager, modelName string) (ollama.Outcome, error) {
	p := tea.NewProgram(newPullModel(modelName))

	go func() {
		outcome := manager.PullModel(modelName, func(percent int, message string) {
			p.Send(pullProgressMsg{percent: percent, message: message})
		})
		p.Send(pullDoneMsg{outcome: outcome})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return ollama.Outcome{}, err
	}

	final, ok := finalModel.(pullModel)
	if !ok || !final.done {
		return ollama.Outcome{Success: false, Message: "pull interrupted"}, nil
	}
	return final.outcome, nil
}
