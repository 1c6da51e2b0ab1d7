// Package tui provides a Bubble Tea terminal user interface for fileren.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fileren/internal/config"
	"fileren/internal/plan"
	"fileren/internal/rename"
	"fileren/internal/renamelog"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StatePreview
	StateDone
)

// Field indexes into the input form.
const (
	fieldFolders = iota
	fieldPattern
	fieldTemplate
	fieldDest
	fieldCount
)

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	inputs   []textinput.Model
	focused  int
	recurse  bool
	settings *config.Settings

	current *plan.Plan
	checked []plan.CheckedPair
	summary plan.Summary
	page    int

	results []rename.Result
	dryRun  bool
	err     error

	width  int
	height int
}

const pageSize = 15

// NewModel creates a new TUI model seeded from settings.
func NewModel(settings *config.Settings) Model {
	labels := []struct{ placeholder, value string }{
		{"/path/to/folder, /another/folder", ""},
		{"*.*", settings.Pattern},
		{"[oFileN]", settings.Template},
		{"(optional) move renamed files here", settings.DestFolder},
	}

	inputs := make([]textinput.Model, fieldCount)
	for i, l := range labels {
		ti := textinput.New()
		ti.Placeholder = l.placeholder
		ti.SetValue(l.value)
		ti.CharLimit = 500
		ti.Width = 60
		inputs[i] = ti
	}
	inputs[fieldFolders].Focus()

	return Model{
		state:    StateInput,
		inputs:   inputs,
		recurse:  settings.IncludeSubfolders,
		settings: settings,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Message types
type (
	// planDoneMsg is sent when a planning pass finishes.
	planDoneMsg struct {
		plan *plan.Plan
		err  error
	}

	// applyDoneMsg is sent when execution finishes.
	applyDoneMsg struct {
		results []rename.Result
		dryRun  bool
		err     error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			switch m.state {
			case StateInput:
				return m, tea.Quit
			case StatePreview:
				m.state = StateInput
				m.current = nil
				m.checked = nil
				return m, nil
			}

		case "tab", "down":
			if m.state == StateInput {
				m.setFocus((m.focused + 1) % fieldCount)
				return m, nil
			}

		case "shift+tab", "up":
			if m.state == StateInput {
				m.setFocus((m.focused + fieldCount - 1) % fieldCount)
				return m, nil
			}

		case "ctrl+r":
			if m.state == StateInput {
				m.recurse = !m.recurse
				return m, nil
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.inputs[fieldFolders].Value()) != "" {
				return m, m.computePlan()
			}

		case "pgdown", "right":
			if m.state == StatePreview && (m.page+1)*pageSize < len(m.checked) {
				m.page++
				return m, nil
			}

		case "pgup", "left":
			if m.state == StatePreview && m.page > 0 {
				m.page--
				return m, nil
			}

		case "y":
			if m.state == StatePreview {
				return m, m.apply(false)
			}

		case "d":
			if m.state == StatePreview {
				return m, m.apply(true)
			}

		case "q":
			if m.state == StateDone || m.state == StatePreview {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateDone {
				m.state = StateInput
				m.current = nil
				m.checked = nil
				m.results = nil
				m.err = nil
				m.page = 0
				m.setFocus(fieldFolders)
				return m, textinput.Blink
			}
		}

	case planDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = StateDone
			return m, nil
		}
		m.current = msg.plan
		m.checked, m.summary = plan.Check(msg.plan)
		m.page = 0
		m.state = StatePreview
		return m, nil

	case applyDoneMsg:
		m.results = msg.results
		m.dryRun = msg.dryRun
		m.err = msg.err
		m.state = StateDone
		return m, nil
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setFocus(i int) {
	m.inputs[m.focused].Blur()
	m.focused = i
	m.inputs[i].Focus()
}

func (m Model) computePlan() tea.Cmd {
	in := plan.PlanningInput{
		Roots:             splitFolders(m.inputs[fieldFolders].Value()),
		IncludeSubfolders: m.recurse,
		Pattern:           strings.TrimSpace(m.inputs[fieldPattern].Value()),
		Template:          strings.TrimSpace(m.inputs[fieldTemplate].Value()),
		DestFolder:        strings.TrimSpace(m.inputs[fieldDest].Value()),
	}
	return func() tea.Msg {
		p, err := plan.Compute(in)
		return planDoneMsg{plan: p, err: err}
	}
}

func (m Model) apply(dryRun bool) tea.Cmd {
	p := m.current
	logFile := m.settings.LogFile
	return func() tea.Msg {
		opts := rename.Options{DryRun: dryRun}
		if !dryRun {
			log, err := renamelog.Open(logFile)
			if err != nil {
				return applyDoneMsg{err: err, dryRun: dryRun}
			}
			defer log.Close()
			opts.Log = log
		}
		results, err := rename.Apply(p, opts)
		return applyDoneMsg{results: results, dryRun: dryRun, err: err}
	}
}

func splitFolders(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("fileren — batch file renamer"))
	b.WriteString("\n")

	switch m.state {
	case StateInput:
		labels := []string{"Folders (comma-separated)", "Pattern", "Template", "Move to folder"}
		for i, ti := range m.inputs {
			b.WriteString(labelStyle.Render(labels[i]) + "\n")
			b.WriteString(ti.View() + "\n")
		}
		sub := "off"
		if m.recurse {
			sub = "on"
		}
		b.WriteString("\n" + labelStyle.Render("Include sub-folders: ") + sub + "\n")
		b.WriteString(dimStyle.Render("\ntab: next field • ctrl+r: toggle sub-folders • enter: preview • esc: quit"))

	case StatePreview:
		fmt.Fprintf(&b, "%s\n\n", labelStyle.Render(fmt.Sprintf(
			"%d file(s), %d renamable, %d unchanged, %d conflict(s)",
			m.summary.Total, m.summary.Renamable, m.summary.Unchanged,
			len(m.summary.Invalid)+len(m.summary.Duplicate)+len(m.summary.TargetExists))))

		start := m.page * pageSize
		end := start + pageSize
		if end > len(m.checked) {
			end = len(m.checked)
		}
		for _, cp := range m.checked[start:end] {
			line := fmt.Sprintf("%s\n  -> %s", cp.Source, cp.Dest)
			if cp.Status != plan.StatusOK {
				b.WriteString(warnStyle.Render(line+"  ["+cp.Reason+"]") + "\n")
			} else {
				b.WriteString(line + "\n")
			}
		}
		pages := (len(m.checked) + pageSize - 1) / pageSize
		if pages > 1 {
			fmt.Fprintf(&b, "\n%s\n", dimStyle.Render(fmt.Sprintf("page %d/%d (pgup/pgdn)", m.page+1, pages)))
		}
		b.WriteString(dimStyle.Render("\ny: rename • d: dry run • esc: back • q: quit"))

	case StateDone:
		if m.err != nil {
			b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
		}
		if m.results != nil {
			b.WriteString(successStyle.Render(rename.SummaryLine(m.results, m.dryRun)) + "\n")
			for _, r := range m.results {
				if r.Err != nil {
					b.WriteString(errorStyle.Render("  "+r.Err.Error()) + "\n")
				}
			}
		}
		b.WriteString(dimStyle.Render("\nr: start over • q: quit"))
	}

	b.WriteString("\n")
	return b.String()
}
