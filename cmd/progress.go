package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/bnema/riot-accounts-cli/internal/application"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	interruptedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

var phaseSteps = map[application.Phase]string{
	application.PhaseDetecting:           "checking the Riot Client",
	application.PhaseBackingUp:           "saving the outgoing session",
	application.PhaseStopping:            "stopping the Riot Client",
	application.PhaseClearing:            "clearing the live session",
	application.PhaseRestoring:           "restoring the saved session",
	application.PhaseAwaitingManualLogin: "no saved session to restore",
	application.PhaseRestarting:          "starting the Riot Client",
}

// phaseStep is the progress text for phase, or "" for phases not worth showing.
func phaseStep(phase application.Phase) string {
	return phaseSteps[phase]
}

type stepMsg string

type interruptMsg struct{}

type taskDoneMsg struct {
	err error
}

type progressModel struct {
	spinner     spinner.Model
	title       string
	step        string
	task        tea.Cmd
	interrupted bool
	err         error
	done        bool
}

func newProgressModel(title string, task tea.Cmd) progressModel {
	return progressModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		title:   title,
		task:    task,
	}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.task)
}

// Update only quits once the task reports back. An interrupt is shown but
// never ends the program early.
func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case stepMsg:
		m.step = string(msg)
		return m, nil
	case interruptMsg:
		m.interrupted = true
		return m, nil
	case taskDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}

	line := m.title
	if m.step != "" {
		line = fmt.Sprintf("%s %s", line, m.step)
	}
	if m.interrupted {
		line += interruptedStyle.Render(" (interrupted, finishing the current step)")
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), line)
}

// runWithProgress shows title and the steps task reports on output until task
// returns. Ctrl-C cancels the task's context but the spinner stays up until the
// task itself gives up.
func runWithProgress(ctx context.Context, output io.Writer, title string, task func(ctx context.Context, step func(string)) error) error {
	ctx, interrupted, stop := guardInterrupts(ctx)
	defer stop()

	var p *tea.Program
	report := func(step string) {
		if step != "" {
			p.Send(stepMsg(step))
		}
	}
	taskCmd := func() tea.Msg {
		return taskDoneMsg{err: task(ctx, report)}
	}

	p = tea.NewProgram(
		newProgressModel(title, taskCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithoutSignalHandler(),
	)

	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-interrupted:
			p.Send(interruptMsg{})
		case <-finished:
		}
	}()

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(progressModel)
	if !ok {
		return fmt.Errorf("unexpected final progress model type %T", finalModel)
	}

	return result.err
}

// guardInterrupts keeps Ctrl-C from killing the process while a task runs. The
// first interrupt cancels the returned context and closes the returned channel;
// later ones are swallowed until stop is called.
func guardInterrupts(parent context.Context) (context.Context, <-chan struct{}, func()) {
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)

	interrupted := make(chan struct{})
	done := make(chan struct{})
	go func() {
		select {
		case <-signals:
			cancel()
			close(interrupted)
		case <-done:
		}
	}()

	return ctx, interrupted, func() {
		signal.Stop(signals)
		close(done)
		cancel()
	}
}
