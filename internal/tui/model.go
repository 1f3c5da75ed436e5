package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/username/holiday-calendar/internal/holidays"
	"github.com/username/holiday-calendar/internal/monthview"
	"github.com/username/holiday-calendar/internal/render"
)

// Builder computes a snapshot for a selection
type Builder interface {
	Build(ctx context.Context, sel monthview.Selection) monthview.Snapshot
}

type Model struct {
	builder Builder
	ctx     context.Context

	sel     monthview.Selection
	snap    monthview.Snapshot
	loaded  bool
	loading bool

	minYear int
	maxYear int

	w int
	h int
}

// NewModel starts at sel; years are clamped to [minYear, maxYear] when both are set
func NewModel(ctx context.Context, builder Builder, sel monthview.Selection, minYear, maxYear int) *Model {
	m := &Model{
		builder: builder,
		ctx:     ctx,
		minYear: minYear,
		maxYear: maxYear,
	}
	m.sel = m.clamp(sel)
	return m
}

type snapshotMsg struct {
	snap monthview.Snapshot
}

func (m *Model) fetchCmd(sel monthview.Selection) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{snap: m.builder.Build(m.ctx, sel)}
	}
}

// Selection returns the currently displayed selection
func (m *Model) Selection() monthview.Selection {
	return m.sel
}

func (m *Model) Init() tea.Cmd {
	m.loading = true
	return m.fetchCmd(m.sel)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w = msg.Width
		m.h = msg.Height
		return m, nil
	case snapshotMsg:
		// A late result for a selection we already left.
		if msg.snap.Selection != m.sel {
			return m, nil
		}
		m.snap = msg.snap
		m.loaded = true
		m.loading = false
		return m, nil
	case tea.KeyMsg:
		next := m.sel
		switch msg.String() {
		case "ctrl+c", "q", "Q":
			return m, tea.Quit
		case "left", "h":
			next = m.sel.Prev()
		case "right", "l":
			next = m.sel.Next()
		case "up", "k":
			next = m.sel.WithYear(m.sel.Year + 1)
		case "down", "j":
			next = m.sel.WithYear(m.sel.Year - 1)
		case "c", "C":
			next = m.sel.WithCountry(holidays.NextCountry(m.sel.Country).Code)
		case "r", "R":
			m.loading = true
			return m, m.fetchCmd(m.sel)
		default:
			return m, nil
		}
		return m.navigate(next)
	default:
		return m, nil
	}
}

func (m *Model) navigate(next monthview.Selection) (tea.Model, tea.Cmd) {
	next = m.clamp(next)
	if next == m.sel {
		return m, nil
	}
	m.sel = next
	m.loading = true
	return m, m.fetchCmd(next)
}

func (m *Model) clamp(sel monthview.Selection) monthview.Selection {
	if m.minYear <= 0 || m.maxYear < m.minYear {
		return sel
	}
	if sel.Year < m.minYear {
		sel.Year = m.minYear
	}
	if sel.Year > m.maxYear {
		sel.Year = m.maxYear
	}
	return sel
}

var (
	styleHelp    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	styleLoading = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd33d"))
	stylePanel   = lipgloss.NewStyle().Padding(1, 2)
)

const helpLine = "←/h →/l month   ↑/k ↓/j year   c country   r refresh   q quit"

func (m *Model) View() string {
	var b strings.Builder

	if !m.loaded {
		b.WriteString(styleLoading.Render("Loading " + m.sel.String() + "..."))
		b.WriteString("\n\n")
		b.WriteString(styleHelp.Render(helpLine))
		return stylePanel.Render(b.String())
	}

	b.WriteString(render.Month(m.snap))
	if m.loading {
		b.WriteString(styleLoading.Render("Loading " + m.sel.String() + "..."))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(styleHelp.Render(helpLine))

	return stylePanel.Render(b.String())
}
