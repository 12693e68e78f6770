package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// mapSummary is what the browser shows for a loaded map.
type mapSummary struct {
	Paths     int
	Waypoints int
	Edges     int
	Bytes     int
}

// mapEntry is one row of the browser. Summaries load lazily.
type mapEntry struct {
	Name    string
	Summary *mapSummary
	Err     error
	loading bool
}

// summaryMsg delivers a loaded summary to the model.
type summaryMsg struct {
	index   int
	summary mapSummary
	err     error
}

// BrowseModel is the bubbletea model for browsing stored maps.
type BrowseModel struct {
	Entries  []mapEntry
	Cursor   int
	Offset   int
	Height   int
	Selected string
	Backend  string

	load func(name string) (mapSummary, error)
}

// NewBrowseModel creates a browser over names. load fetches a summary
// when the cursor first reaches a map.
func NewBrowseModel(backend string, names []string, load func(string) (mapSummary, error)) BrowseModel {
	entries := make([]mapEntry, len(names))
	for i, n := range names {
		entries[i] = mapEntry{Name: n}
	}
	return BrowseModel{Entries: entries, Height: 15, Backend: backend, load: load}
}

func (m BrowseModel) Init() tea.Cmd {
	_, cmd := m.loadCurrent()
	return cmd
}

// loadCurrent starts loading the entry under the cursor unless it is
// already loaded or in flight.
func (m BrowseModel) loadCurrent() (BrowseModel, tea.Cmd) {
	if len(m.Entries) == 0 || m.load == nil {
		return m, nil
	}
	i := m.Cursor
	e := m.Entries[i]
	if e.Summary != nil || e.Err != nil || e.loading {
		return m, nil
	}
	m.Entries = append([]mapEntry(nil), m.Entries...)
	m.Entries[i].loading = true
	load, name := m.load, e.Name
	return m, func() tea.Msg {
		s, err := load(name)
		return summaryMsg{index: i, summary: s, err: err}
	}
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
			return m.loadCurrent()
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
			return m.loadCurrent()
		case "enter":
			if len(m.Entries) == 0 {
				return m, nil
			}
			m.Selected = m.Entries[m.Cursor].Name
			return m, tea.Quit
		}
	case summaryMsg:
		if msg.index < len(m.Entries) {
			m.Entries = append([]mapEntry(nil), m.Entries...)
			e := &m.Entries[msg.index]
			e.loading = false
			if msg.err != nil {
				e.Err = msg.err
			} else {
				s := msg.summary
				e.Summary = &s
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Maps"))
	b.WriteString(" " + listDimStyle.Render(m.Backend))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Entries))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		paths, waypoints, edges, size := "", "", "", ""
		switch {
		case e.Summary != nil:
			paths = strconv.Itoa(e.Summary.Paths)
			waypoints = strconv.Itoa(e.Summary.Waypoints)
			edges = strconv.Itoa(e.Summary.Edges)
			size = strconv.Itoa(e.Summary.Bytes)
		case e.Err != nil:
			paths = "unreadable"
		case e.loading:
			paths = "…"
		}
		rows = append(rows, []string{cursor, e.Name, paths, waypoints, edges, size})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Map", "Paths", "Waypoints", "Edges", "Bytes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			e := m.Entries[idx]
			base := lipgloss.NewStyle()
			if col >= 2 {
				base = base.Foreground(colorGray)
			}
			switch {
			case e.Err != nil:
				base = base.Foreground(colorRed)
			case idx == m.Cursor:
				base = base.Foreground(colorGreen)
			}
			if idx == m.Cursor {
				base = base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}
