package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tropigo/beachbites/internal/dal"
)

const maxScoreRows = 100

// scoreTab selects which run view the table shows.
type scoreTab int

const (
	tabBestRuns scoreTab = iota
	tabRecentRuns
)

func (t scoreTab) String() string {
	if t == tabBestRuns {
		return "Best Runs"
	}
	return "Recent Runs"
}

// ScoreboardKeyMap defines the key bindings for the scores screen.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch view"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the run history screen.
type ScoreboardModel struct {
	d        *dal.DAL
	playerID int64
	tab      scoreTab
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	empty    bool
	quitting bool
}

// NewScoreboardModel creates the scores screen over the given DAL.
func NewScoreboardModel(d *dal.DAL, playerID int64, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		d:        d,
		playerID: playerID,
		keys:     DefaultScoreboardKeyMap(),
		help:     h,
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.loadRows()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Earned", Width: 8},
		{Title: "Missed", Width: 8},
		{Title: "Date", Width: 16},
	}

	height := m.height - 8
	if height < 4 {
		height = 4
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// loadRows fills the table from the active tab's query. Query failures show
// as an empty board rather than an error screen.
func (m *ScoreboardModel) loadRows() {
	var rows []table.Row

	switch m.tab {
	case tabBestRuns:
		entries, err := m.d.Leaderboard(maxScoreRows)
		if err == nil {
			for i, e := range entries {
				rows = append(rows, table.Row{
					fmt.Sprintf("#%d", i+1),
					fmt.Sprintf("%d", e.Score),
					fmt.Sprintf("$%d", e.MoneyEarned),
					fmt.Sprintf("%d", e.Missed),
					e.Date().Format("Jan 02 15:04"),
				})
			}
		}
	case tabRecentRuns:
		runs, err := m.d.RecentRuns(m.playerID, maxScoreRows)
		if err == nil {
			for i, r := range runs {
				rows = append(rows, table.Row{
					fmt.Sprintf("#%d", i+1),
					fmt.Sprintf("%d", r.Score),
					fmt.Sprintf("$%d", r.MoneyEarned),
					fmt.Sprintf("%d", r.Missed),
					r.Date().Format("Jan 02 15:04"),
				})
			}
		}
	}

	m.empty = len(rows) == 0
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % 2
			m.loadRows()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.loadRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(fmt.Sprintf("BEACH BITES - %s", m.tab)))
	b.WriteString("\n\n")

	if m.empty {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(emptyStyle.Render("No runs recorded yet.\nFinish a delivery run to get on the board!"))
	} else {
		tableStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunScoreboard runs the scores screen and blocks until the user leaves.
func RunScoreboard(d *dal.DAL, playerID int64, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(d, playerID, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
