package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/walexbarnes/accountabillabuddy/internal/schema"
	"github.com/walexbarnes/accountabillabuddy/internal/store"
	"github.com/walexbarnes/accountabillabuddy/internal/tracker"
	"github.com/walexbarnes/accountabillabuddy/internal/ui"
)

const recentRows = 5

type formModel struct {
	svc *tracker.Service

	width  int
	height int

	date   string
	exists bool
	values map[string]schema.Value
	recent []store.Record

	selected int
	lastLog  string
	loading  bool
	err      error
}

type loadedMsg struct {
	rec    store.Record
	exists bool
	recent []store.Record
	err    error
}

type savedMsg struct {
	outcome *tracker.Outcome
	err     error
}

func newFormModel(svc *tracker.Service, date string) formModel {
	return formModel{
		svc:     svc,
		date:    date,
		values:  map[string]schema.Value{},
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m formModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m formModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		rec, exists, err := m.svc.Record(m.date)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{rec: rec, exists: exists, recent: m.svc.Recent(recentRows)}
	}
}

func (m formModel) saveCmd() tea.Cmd {
	submitted := make(map[string]schema.Value, len(m.values))
	for k, v := range m.values {
		submitted[k] = v
	}
	return func() tea.Msg {
		out, err := m.svc.Submit(m.date, submitted)
		return savedMsg{outcome: out, err: err}
	}
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.exists = msg.exists
		m.recent = msg.recent
		// The form always echoes the stored value, with the field default
		// filling in for unset. A submission with no edits therefore equals
		// the baseline and reconciles to no change.
		m.values = map[string]schema.Value{}
		for _, f := range m.svc.Schema() {
			m.values[f.Name] = f.Resolve(msg.rec.Value(f.Name))
		}
		m.lastLog = fmt.Sprintf("Showing %s.", m.date)
		return m, nil
	case savedMsg:
		if msg.err != nil {
			m.lastLog = "Save failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = msg.outcome.Message()
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.svc.Schema())-1 {
				m.selected++
			}
			return m, nil
		case "left", "h", "-":
			return m.adjust(-1), nil
		case "right", "l", "+", "=":
			return m.adjust(1), nil
		case "[":
			return m.shiftDate(-1)
		case "]":
			return m.shiftDate(1)
		case "t":
			m.date = store.Today()
			m.loading = true
			return m, m.loadCmd()
		case "enter", "s":
			m.lastLog = "Saving…"
			return m, m.saveCmd()
		}
	}
	return m, nil
}

// adjust steps the selected field's value by direction, clamped to the
// field's domain.
func (m formModel) adjust(dir int) formModel {
	sch := m.svc.Schema()
	if m.selected < 0 || m.selected >= len(sch) {
		return m
	}
	f := sch[m.selected]
	cur := f.Resolve(m.values[f.Name])

	switch f.Kind {
	case schema.KindTristate:
		idx := 0
		for i, lvl := range schema.TristateLevels {
			if cur.Text() == lvl {
				idx = i
				break
			}
		}
		idx += dir
		if idx < 0 {
			idx = 0
		}
		if idx > len(schema.TristateLevels)-1 {
			idx = len(schema.TristateLevels) - 1
		}
		m.values[f.Name] = schema.Level(schema.TristateLevels[idx])
	case schema.KindScale:
		n := cur.Int() + dir
		if n < f.Min {
			n = f.Min
		}
		if n > f.Max {
			n = f.Max
		}
		m.values[f.Name] = schema.Number(n)
	default:
		n := cur.Int() + dir*5
		if n < 0 {
			n = 0
		}
		m.values[f.Name] = schema.Number(n)
	}
	return m
}

func (m formModel) shiftDate(days int) (formModel, tea.Cmd) {
	t, err := time.Parse(store.DateLayout, m.date)
	if err != nil {
		m.lastLog = "Bad date: " + m.date
		return m, nil
	}
	m.date = t.AddDate(0, 0, days).Format(store.DateLayout)
	m.loading = true
	return m, m.loadCmd()
}

func (m formModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	form := m.renderForm()
	recent := m.renderRecent()
	footer := m.renderFooter()

	return header + "\n\n" + form + "\n" + recent + footer
}

func (m formModel) renderHeader() string {
	title := ui.Heading(ui.IconChart, "Daily Activity Tracker")
	line := fmt.Sprintf("%s  %s", title, ui.LabelValue("Date", m.date))
	if m.exists {
		line += "  " + ui.BadgeExists
	}
	return line
}

func (m formModel) renderForm() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	for i, f := range m.svc.Schema() {
		v := f.Resolve(m.values[f.Name])
		label := f.Name
		if f.Unit != "" {
			label = fmt.Sprintf("%s (%s)", f.Name, f.Unit)
		}

		var val string
		switch f.Kind {
		case schema.KindTristate:
			val = ui.LevelText(v.Text())
		case schema.KindScale:
			val = fmt.Sprintf("%d  %s", v.Int(), meter(v.Int(), f.Min, f.Max))
		default:
			val = fmt.Sprintf("%d", v.Int())
		}

		line := fmt.Sprintf("  %-22s %s", label, val)
		if i == m.selected {
			line = ui.SelectedRow.Render("▸" + line[1:])
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n") + "\n"
}

func (m formModel) renderRecent() string {
	if len(m.recent) == 0 {
		return ui.Muted.Render("No recent activity data available.") + "\n"
	}
	var out []string
	out = append(out, ui.H2.Render(ui.IconScroll+" Recent Activity"))
	for _, rec := range m.recent {
		var cells []string
		for _, f := range m.svc.Schema() {
			cells = append(cells, f.Format(rec.Value(f.Name)))
		}
		out = append(out, fmt.Sprintf("  %s  %s", rec.Date, ui.Muted.Render(strings.Join(cells, " | "))))
	}
	return strings.Join(out, "\n") + "\n"
}

func (m formModel) renderFooter() string {
	keys := "↑/↓ field · ←/→ adjust · [/] day · t today · enter save · q quit"
	return "\n" + m.lastLog + "\n" + ui.Dim.Render(keys) + "\n"
}

// meter renders a small bar for scale fields. Stored values can sit outside
// the domain (hand-edited or legacy files load unvalidated), so the fill is
// clamped to the bar width rather than trusted.
func meter(v, min, max int) string {
	if max <= min {
		return ""
	}
	width := max - min + 1
	filled := v - min + 1
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return ui.Gold.Render(strings.Repeat("█", filled)) + ui.Dim.Render(strings.Repeat("░", width-filled))
}
