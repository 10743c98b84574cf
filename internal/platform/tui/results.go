package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lane-battle/internal/storage"
)

// Results browser layout constants
const (
	maxRecords    = 200 // Max battle records to load
	tableMinWidth = 50  // Minimum table width
)

// ResultsKeyMap defines the key bindings for the results browser.
type ResultsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ResultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Quit},
	}
}

// DefaultResultsKeyMap returns default key bindings.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ResultsModel is the Bubble Tea model for browsing battle records.
type ResultsModel struct {
	store   *storage.Store
	stageID int // 0 means all stages
	records []storage.BattleRecord
	stats   storage.StageStats
	table   table.Model
	help    help.Model
	keys    ResultsKeyMap
	width   int
	height  int
}

// NewResultsModel creates a results browser, loading records up front.
func NewResultsModel(store *storage.Store, stageID, width, height int) ResultsModel {
	h := help.New()
	h.ShowAll = false

	m := ResultsModel{
		store:   store,
		stageID: stageID,
		keys:    DefaultResultsKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}

	m.loadRecords()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// loadRecords pulls battle records and, with a stage filter, its stats.
func (m *ResultsModel) loadRecords() {
	if m.store == nil {
		m.records = nil
		return
	}

	var err error
	if m.stageID > 0 {
		m.records, err = m.store.StageBattles(m.stageID, maxRecords)
		if stats, statsErr := m.store.GetStageStats(m.stageID); statsErr == nil && stats != nil {
			m.stats = *stats
		}
	} else {
		m.records, err = m.store.RecentBattles(maxRecords)
	}
	if err != nil {
		m.records = nil
	}
}

// createTable creates a new table with appropriate columns.
func (m *ResultsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Stage", Width: 18},
		{Title: "Outcome", Width: 8},
		{Title: "Frames", Width: 7},
		{Title: "Yours", Width: 7},
		{Title: "Theirs", Width: 7},
		{Title: "Date", Width: 16},
	}

	tableWidth := m.width - 4
	if tableWidth > tableMinWidth {
		columns[0].Width = tableWidth - 53
		if columns[0].Width > 24 {
			columns[0].Width = 24
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.height-8),
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

// updateTableRows updates the table with the loaded records.
func (m *ResultsModel) updateTableRows() {
	rows := make([]table.Row, len(m.records))
	for i, r := range m.records {
		rows[i] = table.Row{
			r.StageName,
			r.Outcome,
			fmt.Sprintf("%d", r.Frames),
			fmt.Sprintf("%d/%d", r.PlayerSpawned, r.PlayerLost),
			fmt.Sprintf("%d/%d", r.EnemySpawned, r.EnemyLost),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the results browser.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results browser.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results browser.
func (m ResultsModel) View() string {
	var b strings.Builder

	title := "BATTLE RESULTS"
	if m.stageID > 0 {
		title = fmt.Sprintf("BATTLE RESULTS - stage %d", m.stageID)
	}
	b.WriteString(watchTitleStyle.Render(title))
	b.WriteString("\n\n")

	if len(m.records) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(emptyStyle.Render("No battles recorded yet.\nPlay a battle to record the first one!"))
	} else {
		tableStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	if m.stageID > 0 && m.stats.Battles > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf(
			"  %d battles, %d wins, avg %.0f frames",
			m.stats.Battles, m.stats.PlayerWins, m.stats.AvgFrames)))
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// RunResults runs the interactive results browser.
func RunResults(store *storage.Store, stageID, width, height int) error {
	model := NewResultsModel(store, stageID, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
