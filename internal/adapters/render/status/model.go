package status

import (
	"context"
	"errors"
	"io"

	"github.com/bnema/riot-accounts-cli/internal/application"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type statusMsg struct {
	status application.Status
	err    error
}

type model struct {
	status application.Status
	err    error
	opts   RenderOptions
	styles styles
	output string
	live   bool
}

func newModel(status application.Status, opts RenderOptions) model {
	return model{
		status: status,
		opts:   opts,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	if m.live {
		return nil
	}
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.status, m.opts, m.styles)
		return m, tea.Quit
	case statusMsg:
		m.err = msg.err
		if msg.err == nil {
			m.status = msg.status
			if !msg.status.CheckedAt.IsZero() {
				m.opts.Now = msg.status.CheckedAt
			}
		}
		m.output = m.liveView()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

func (m model) liveView() string {
	parts := []string{renderView(m.status, m.opts, m.styles)}
	if m.err != nil {
		parts = append(parts, m.styles.errorMsg.Render("refresh failed: "+m.err.Error()))
	}

	footer := "press q to quit"
	if !m.status.CheckedAt.IsZero() {
		footer = "updated " + m.status.CheckedAt.Format("15:04:05") + " | " + footer
	}
	parts = append(parts, m.styles.footer.Render(footer))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Render returns the one-shot status view.
func Render(status application.Status, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(status, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}

type Watcher interface {
	Run(ctx context.Context, onUpdate func(application.Status, error)) error
}

// Watch runs an interactive view that redraws on every watcher update until the
// user quits or ctx is cancelled.
func Watch(ctx context.Context, watcher Watcher, opts RenderOptions, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newModel(application.Status{}, opts)
	m.live = true
	m.output = m.styles.empty.Render("loading status...")

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- watcher.Run(ctx, func(status application.Status, err error) {
			p.Send(statusMsg{status: status, err: err})
		})
	}()

	_, err := p.Run()
	cancel()
	if werr := <-watchErr; werr != nil && !errors.Is(werr, context.Canceled) {
		return werr
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
