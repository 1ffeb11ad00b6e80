// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui implements the interactive form for the Word to PDF
// pipeline: pick files, start a single or batch run, watch per-file
// progress. The form calls the same orchestrator operations as the CLI.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/docsmith/pkg/types"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Runner abstracts the conversion orchestrator so the form can be driven
// in tests without a word processor.
type Runner interface {
	ConvertOne(ctx context.Context, req types.Request) types.Result
	ConvertMany(ctx context.Context, inputs []string, outDir string, onFile func(i, n int, res types.Result)) (types.BatchResult, error)
}

// fileDoneMsg reports one finished file during a batch run.
type fileDoneMsg struct {
	index int
	total int
	res   types.Result
}

// runDoneMsg reports the end of a run. Exactly one is sent per run.
type runDoneMsg struct {
	single *types.Result
	batch  *types.BatchResult
	err    error
}

const (
	focusInput = iota
	focusOutput
	focusCount
)

// Form is the Bubble Tea model for the conversion form.
type Form struct {
	runner Runner

	input  textinput.Model
	output textinput.Model
	focus  int

	spinner  spinner.Model
	progress progress.Model

	running   bool
	done      bool
	status    string
	filesDone int
	filesAll  int

	result *types.Result
	batch  *types.BatchResult
	err    error

	events chan tea.Msg
}

// NewForm creates the form around a runner.
func NewForm(runner Runner) Form {
	in := textinput.New()
	in.Placeholder = "input file(s), space-separated or glob"
	in.Focus()

	out := textinput.New()
	out.Placeholder = "output file or directory (optional)"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Form{
		runner:   runner,
		input:    in,
		output:   out,
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient()),
		status:   "ready",
	}
}

func (m Form) Init() tea.Cmd {
	return textinput.Blink
}

func (m Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "q":
			if !m.input.Focused() && !m.output.Focused() {
				return m, tea.Quit
			}
		case "tab", "shift+tab":
			if !m.running {
				return m.cycleFocus(), nil
			}
		case "enter":
			if !m.running && !m.done {
				return m.startRun()
			}
			if m.done {
				return m, tea.Quit
			}
		}

	case fileDoneMsg:
		m.filesDone = msg.index
		m.filesAll = msg.total
		m.status = fmt.Sprintf("converted %d/%d: %s", msg.index, msg.total, filepath.Base(msg.res.Input))
		if !msg.res.OK() {
			m.status = fmt.Sprintf("failed %d/%d: %s", msg.index, msg.total, filepath.Base(msg.res.Input))
		}
		return m, m.waitEvent()

	case runDoneMsg:
		m.running = false
		m.done = true
		m.result = msg.single
		m.batch = msg.batch
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if !m.running {
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
		m.output, cmd = m.output.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

func (m Form) cycleFocus() Form {
	m.focus = (m.focus + 1) % focusCount
	if m.focus == focusInput {
		m.input.Focus()
		m.output.Blur()
	} else {
		m.input.Blur()
		m.output.Focus()
	}
	return m
}

// startRun launches the conversion on a worker goroutine. The goroutine
// communicates back only through the events channel: per-file progress
// messages and exactly one final runDoneMsg.
func (m Form) startRun() (tea.Model, tea.Cmd) {
	inputs := parseInputs(m.input.Value())
	if len(inputs) == 0 {
		m.status = "no input files given"
		return m, nil
	}

	m.running = true
	m.status = "converting..."
	m.filesDone = 0
	m.filesAll = len(inputs)
	m.events = make(chan tea.Msg, 8)

	out := strings.TrimSpace(m.output.Value())
	events := m.events
	runner := m.runner

	go func() {
		if len(inputs) == 1 {
			res := runner.ConvertOne(context.Background(), types.Request{Input: inputs[0], Output: out})
			events <- runDoneMsg{single: &res}
			return
		}
		batch, err := runner.ConvertMany(context.Background(), inputs, out, func(i, n int, res types.Result) {
			events <- fileDoneMsg{index: i, total: n, res: res}
		})
		events <- runDoneMsg{batch: &batch, err: err}
	}()

	return m, tea.Batch(m.spinner.Tick, m.waitEvent())
}

func (m Form) waitEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return <-events
	}
}

// parseInputs splits the input field into paths, expanding glob patterns.
func parseInputs(s string) []string {
	var inputs []string
	for _, field := range strings.Fields(s) {
		if strings.ContainsAny(field, "*?[") {
			if matches, err := filepath.Glob(field); err == nil {
				inputs = append(inputs, matches...)
			}
			continue
		}
		inputs = append(inputs, field)
	}
	return inputs
}

func (m Form) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("docsmith — Word to PDF") + "\n\n")

	if m.done {
		b.WriteString(m.resultView())
		b.WriteString(helpStyle.Render("enter/q: quit") + "\n")
		return b.String()
	}

	if m.running {
		b.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), m.status))
		if m.filesAll > 1 {
			b.WriteString(m.progress.ViewAs(float64(m.filesDone)/float64(m.filesAll)) + "\n")
		}
		return b.String()
	}

	b.WriteString(labelStyle.Render("Input") + "\n" + m.input.View() + "\n\n")
	b.WriteString(labelStyle.Render("Output") + "\n" + m.output.View() + "\n\n")
	b.WriteString(helpStyle.Render("tab: switch field • enter: convert • esc: quit") + "\n")
	if m.status != "ready" {
		b.WriteString("\n" + m.status + "\n")
	}
	return b.String()
}

func (m Form) resultView() string {
	if m.err != nil {
		return errorStyle.Render("✗ "+m.err.Error()) + "\n\n"
	}

	if m.result != nil {
		if m.result.OK() {
			return successStyle.Render(fmt.Sprintf("✓ %s", m.result.Output)) + "\n" +
				helpStyle.Render(fmt.Sprintf("completed in %v", m.result.Duration.Round(time.Millisecond))) + "\n\n"
		}
		return errorStyle.Render("✗ "+m.result.Err.Error()) + "\n\n"
	}

	var b strings.Builder
	msg := successStyle.Render(fmt.Sprintf("✓ converted %d file(s)", m.batch.Converted))
	if m.batch.HasFailures() {
		msg += ", " + errorStyle.Render(fmt.Sprintf("%d failed", m.batch.Failed))
	}
	b.WriteString(msg + "\n")
	for _, res := range m.batch.Results {
		if !res.OK() {
			b.WriteString(errorStyle.Render("  ✗ "+filepath.Base(res.Input)) + ": " + res.Err.Error() + "\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}
