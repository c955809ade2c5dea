package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xab-mack/aztlint/internal/model"
)

type modelT struct {
	diags  []model.Diagnostic
	cursor int
}

func initialModel(diags []model.Diagnostic) modelT { return modelT{diags: diags} }

func (m modelT) Init() tea.Cmd { return nil }

func (m modelT) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.diags)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m modelT) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Diagnostics (%d)\n\n", len(m.diags))
	for i, d := range m.diags {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%s [%s] %s:%d:%d %s\n",
			marker, d.RuleID, d.Severity, d.PrimarySpan.File, d.PrimarySpan.Line, d.PrimarySpan.Col, d.Message)
	}
	b.WriteString("\n(q to quit)\n")
	return b.String()
}

// Run launches a minimal TUI list view over the diagnostics.
func Run(diags []model.Diagnostic) error {
	p := tea.NewProgram(initialModel(diags))
	_, err := p.Run()
	return err
}
