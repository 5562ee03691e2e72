package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/walexbarnes/accountabillabuddy/internal/tracker"
)

// RunForm opens the interactive day-entry form for the given date.
func RunForm(svc *tracker.Service, date string, out io.Writer) error {
	m := newFormModel(svc, date)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
