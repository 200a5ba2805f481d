package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type portalCallDoneMsg struct {
	err error
}

type portalCallSpinnerModel struct {
	spinner spinner.Model
	label   string
	call    tea.Cmd
	err     error
	done    bool
}

func newPortalCallSpinnerModel(label string, call tea.Cmd) portalCallSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return portalCallSpinnerModel{
		spinner: s,
		label:   label,
		call:    call,
	}
}

func (m portalCallSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.call)
}

func (m portalCallSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case portalCallDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m portalCallSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

func runPortalCallSpinner(ctx context.Context, output io.Writer, label string, call func(context.Context) error) error {
	callCmd := func() tea.Msg {
		return portalCallDoneMsg{err: call(ctx)}
	}

	p := tea.NewProgram(
		newPortalCallSpinnerModel(label, callCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(portalCallSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}

// withProgress runs call behind a spinner on stderr. The spinner is shown on
// terminals only unless progress is set to "always" or "never".
func (a *app) withProgress(cmd *cobra.Command, label string, call func(context.Context) error) error {
	output := cmd.ErrOrStderr()
	if !showProgress(a.cfg.GetString(keyProgress), output) {
		return call(cmd.Context())
	}

	return runPortalCallSpinner(cmd.Context(), output, label, call)
}

func showProgress(mode string, output io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	file, ok := output.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
