package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tshell/internal/eval"
	"tshell/internal/printer"
)

var (
	tuiBorder = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1, 2).Margin(1, 0)
	tuiTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	tuiLabel  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	tuiResult = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	tuiError  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	tuiAction = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
)

// tuiModel is the bubbletea model for --tui, the same
// "input box plus last-result pane" shape cmd/kk's model uses, adapted to
// run a pipeline line against the core instead of shelling out to kubectl.
type tuiModel struct {
	env    *eval.Scope
	input  textinput.Model
	output string
	isErr  bool
}

func newTUIModel(env *eval.Scope) tuiModel {
	ti := textinput.New()
	ti.Placeholder = "echo hello | val"
	ti.Focus()
	return tuiModel{env: env, input: ti}
}

func (m tuiModel) Init() tea.Cmd { return textinput.Blink }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			result, err := evalForTUI(m.env, line)
			if err != nil {
				m.output = err.Error()
				m.isErr = true
			} else {
				m.output = result
				m.isErr = false
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tuiModel) View() string {
	title := tuiTitle.Render(appName + " tui")
	resultSection := ""
	if m.output != "" {
		style := tuiResult
		if m.isErr {
			style = tuiError
		}
		resultSection = tuiLabel.Render("result:") + "\n  " + style.Render(m.output) + "\n\n"
	}
	inputSection := tuiLabel.Render("pipeline:") + "\n  " + m.input.View() + "\n" +
		tuiAction.Render("[Enter] run  [q] quit")
	return tuiBorder.Render(title + "\n\n" + resultSection + inputSection)
}

// evalForTUI runs line to completion and renders its resulting value as a
// plain string, reusing runLine's job-running but capturing the printed
// value instead of writing straight to stdout.
func evalForTUI(env *eval.Scope, line string) (string, error) {
	job := parseLine(line)
	if len(job.Stages) == 0 {
		return "", nil
	}
	sender, receiver := eval.NewValueChannel()
	if err := eval.RunJob(env, job, eval.EmptyChannel(), sender); err != nil {
		return "", err
	}
	v, err := receiver.Recv()
	if err != nil && err != eval.ErrEndOfStream {
		return "", err
	}
	if err == eval.ErrEndOfStream {
		return "", nil
	}
	return v.String(), nil
}

func runTUI(env *eval.Scope, _ *printer.Printer) error {
	prog := tea.NewProgram(newTUIModel(env))
	_, err := prog.Run()
	return err
}
