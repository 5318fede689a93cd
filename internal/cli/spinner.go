package cli

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/guiyumin/tubenotes/internal/app"
)

var (
	stageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// processState holds the background run's outcome.
type processState struct {
	mu   sync.RWMutex
	done bool
	err  error
}

func (s *processState) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = true
	s.err = err
}

func (s *processState) get() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.done, s.err
}

type processTickMsg time.Time

type processModel struct {
	spinner    spinner.Model
	controller *app.Controller
	state      *processState
}

func newProcessModel(controller *app.Controller, state *processState) processModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return processModel{spinner: s, controller: controller, state: state}
}

func (m processModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, processTick())
}

func processTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return processTickMsg(t)
	})
}

func (m processModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case processTickMsg:
		if done, _ := m.state.get(); done {
			return m, tea.Quit
		}
		return m, processTick()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m processModel) View() string {
	done, err := m.state.get()
	if done {
		if err != nil {
			return errStyle.Render("✗ "+err.Error()) + "\n"
		}
		return ""
	}
	stage := m.controller.Stage()
	if stage == "" {
		stage = "Processing..."
	}
	return m.spinner.View() + " " + stageStyle.Render(stage) + "\n"
}

// runWithSpinner executes run in the background while a spinner shows the
// controller's current processing stage.
func runWithSpinner(controller *app.Controller, run func() error) error {
	state := &processState{}

	go func() {
		state.finish(run())
	}()

	p := tea.NewProgram(newProcessModel(controller, state))
	if _, err := p.Run(); err != nil {
		return err
	}

	_, err := state.get()
	return err
}
