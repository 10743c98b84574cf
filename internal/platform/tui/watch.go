package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lane-battle/internal/sim"
	"github.com/vovakirdan/lane-battle/internal/storage"
)

// Watch layout constants
const (
	defaultLaneLen  = 60 // Lane columns when the terminal size is unknown
	laneMargin      = 4  // Horizontal margin around the lane
	eventLinesShown = 6  // Event feed lines in the view
)

// WatchKeyMap defines the key bindings for the battle view.
type WatchKeyMap struct {
	Spawn key.Binding
	Pause key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k WatchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Spawn, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k WatchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Spawn, k.Pause},
		{k.Help, k.Quit},
	}
}

// DefaultWatchKeyMap returns default key bindings.
func DefaultWatchKeyMap() WatchKeyMap {
	return WatchKeyMap{
		Spawn: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "deploy unit"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pause"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// WatchParams carries everything needed to stage an interactive battle.
type WatchParams struct {
	Stage  sim.StageMaster
	Units  []sim.UnitMaster
	Roster []int
	Config *sim.Config

	// PlayerBaseID and EnemyBaseID name the keep units spawned at the
	// lane ends before the first tick. Zero means no base for that side.
	PlayerBaseID int
	EnemyBaseID  int

	LaneLen   int
	TickRate  int
	MaxFrames int

	// Store receives a best-effort battle record on game over. May be nil.
	Store *storage.Store
}

// WatchModel is the Bubble Tea model for a live battle.
type WatchModel struct {
	battle   *sim.Battle
	delegate *LaneDelegate
	params   WatchParams
	units    map[int]sim.UnitMaster

	keys WatchKeyMap
	help help.Model

	width    int
	height   int
	paused   bool
	over     bool
	outcome  string
	saved    bool
	quitting bool
	started  time.Time
}

// NewWatchModel creates a battle model and spawns both keeps.
func NewWatchModel(p WatchParams) WatchModel {
	if p.LaneLen <= 0 {
		p.LaneLen = defaultLaneLen
	}
	if p.TickRate <= 0 {
		p.TickRate = 60
	}

	delegate := NewLaneDelegate(p.LaneLen, p.Units)
	battle := sim.New(delegate)
	battle.Init(sim.InitParams{
		Stage:  p.Stage,
		Units:  p.Units,
		Roster: p.Roster,
		Config: p.Config,
	})
	delegate.Attach(battle)

	if p.PlayerBaseID != 0 {
		battle.SpawnBase(p.PlayerBaseID, true)
	}
	if p.EnemyBaseID != 0 {
		battle.SpawnBase(p.EnemyBaseID, false)
	}

	h := help.New()
	h.ShowAll = false

	byID := make(map[int]sim.UnitMaster, len(p.Units))
	for _, u := range p.Units {
		byID[u.ID] = u
	}

	return WatchModel{
		battle:   battle,
		delegate: delegate,
		params:   p,
		units:    byID,
		keys:     DefaultWatchKeyMap(),
		help:     h,
		started:  time.Now(),
	}
}

// Init starts the tick loop.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd(m.params.TickRate)
}

// Update handles messages for the battle view.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Pause):
			if !m.over {
				m.paused = !m.paused
			}
			return m, nil

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Spawn):
			m.requestSpawn(msg.String())
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// requestSpawn maps a digit key onto the roster and queues the spawn.
// Unaffordable requests are queued anyway; the simulation drops them
// silently, same as a mistimed tap would be ignored.
func (m *WatchModel) requestSpawn(digit string) {
	if m.over || m.paused {
		return
	}
	idx := int(digit[0]-'0') - 1
	roster := m.battle.Roster()
	if idx < 0 || idx >= len(roster) {
		return
	}
	m.battle.RequestPlayerSpawn(roster[idx])
}

// handleTick advances the simulation one frame.
func (m WatchModel) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused && !m.over {
		m.battle.Update()

		outcome, over := Verdict(m.battle, m.params.MaxFrames)
		if over {
			m.over = true
			m.outcome = outcome
			m.saveRecord()
		}
	}
	return m, tickCmd(m.params.TickRate)
}

// saveRecord persists the battle result, best effort.
func (m *WatchModel) saveRecord() {
	if m.saved || m.params.Store == nil {
		return
	}
	m.saved = true

	playerLost, enemyLost := Casualties(m.battle)
	//nolint:errcheck // Best-effort save
	m.params.Store.SaveBattle(storage.BattleRecord{
		StageID:       m.params.Stage.ID,
		StageName:     m.params.Stage.Name,
		Frames:        m.battle.Frame(),
		Outcome:       m.outcome,
		PlayerSpawned: m.delegate.PlayerSpawned(),
		EnemySpawned:  m.delegate.EnemySpawned(),
		PlayerLost:    playerLost,
		EnemyLost:     enemyLost,
		PeakCost:      m.delegate.PeakCost(),
		DurationMS:    time.Since(m.started).Milliseconds(),
	})
}

// Styles for the battle view.
var (
	watchTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	playerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	enemyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	staggerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	baseStyle       = lipgloss.NewStyle().Bold(true)
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	overStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
			Border(lipgloss.RoundedBorder()).Padding(0, 2)
)

// View renders the battle.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(watchTitleStyle.Render(fmt.Sprintf("%s  frame %d", m.params.Stage.Name, m.battle.Frame())))
	if m.paused {
		b.WriteString(dimStyle.Render("  [paused]"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderCostBar())
	b.WriteString("\n")
	b.WriteString(m.renderBases())
	b.WriteString("\n\n")
	b.WriteString(m.renderLane())
	b.WriteString("\n\n")
	b.WriteString(m.renderRoster())
	b.WriteString("\n")

	for _, line := range m.delegate.Events(eventLinesShown) {
		b.WriteString(dimStyle.Render("  " + line))
		b.WriteString("\n")
	}

	if m.over {
		b.WriteString("\n")
		b.WriteString(overStyle.Render(m.overText()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderCostBar draws the current cost pool as a filled gauge.
func (m WatchModel) renderCostBar() string {
	cost, maxCost := m.delegate.Cost(), m.delegate.MaxCost()
	barWidth := 30
	filled := 0
	if maxCost > 0 {
		filled = int(cost / maxCost * float64(barWidth))
		if filled > barWidth {
			filled = barWidth
		}
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return fmt.Sprintf("  cost %s %.0f/%.0f", playerStyle.Render(bar), cost, maxCost)
}

// renderBases draws both keeps' health.
func (m WatchModel) renderBases() string {
	var player, enemy string
	for _, e := range m.battle.Entities() {
		if !e.IsBase {
			continue
		}
		line := fmt.Sprintf("%.0f/%.0f", e.Health, e.MaxHealth)
		if e.IsPlayer {
			player = line
		} else {
			enemy = line
		}
	}
	if player == "" && enemy == "" {
		return ""
	}
	return fmt.Sprintf("  %s %s    %s %s",
		playerStyle.Render("your keep"), player,
		enemyStyle.Render("enemy keep"), enemy)
}

// renderLane draws the battlefield as a single row of cells.
func (m WatchModel) renderLane() string {
	laneLen := m.delegate.LaneLen()
	cells := make([]string, laneLen)
	for i := range cells {
		cells[i] = dimStyle.Render("·")
	}

	for _, e := range m.battle.Entities() {
		if e.State == sim.StateDead {
			continue
		}
		col := m.delegate.Column(e)
		cells[col] = m.renderEntity(e)
	}

	return "  " + strings.Join(cells, "")
}

// renderEntity picks the glyph and style for one lane cell.
func (m WatchModel) renderEntity(e *sim.Entity) string {
	glyph := "?"
	if e.IsBase {
		glyph = "▣"
	} else if um, ok := m.units[e.UnitID]; ok && um.Name != "" {
		glyph = strings.ToUpper(um.Name[:1])
	}

	style := playerStyle
	if !e.IsPlayer {
		style = enemyStyle
		glyph = strings.ToLower(glyph)
		if e.IsBase {
			glyph = "▣"
		}
	}
	if e.State == sim.StateKnockback {
		style = staggerStyle
	}
	if e.IsBase {
		style = style.Inherit(baseStyle)
	}
	return style.Render(glyph)
}

// renderRoster draws the deployable units with their hotkeys, dimming
// the ones the current cost pool cannot pay for.
func (m WatchModel) renderRoster() string {
	affordable := make(map[int]bool)
	for _, id := range m.delegate.Affordable() {
		affordable[id] = true
	}

	parts := make([]string, 0, len(m.battle.Roster()))
	for i, unitID := range m.battle.Roster() {
		um, ok := m.units[unitID]
		if !ok {
			continue
		}
		label := fmt.Sprintf("[%d] %s (%.0f)", i+1, um.Name, um.Cost)
		if affordable[unitID] {
			parts = append(parts, playerStyle.Render(label))
		} else {
			parts = append(parts, dimStyle.Render(label))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

// overText formats the game-over banner.
func (m WatchModel) overText() string {
	switch m.outcome {
	case "player":
		return "VICTORY - the enemy keep has fallen"
	case "enemy":
		return "DEFEAT - your keep has fallen"
	case "draw":
		return "DRAW - both keeps fell"
	default:
		return fmt.Sprintf("TIME UP after %d frames", m.battle.Frame())
	}
}

// Outcome returns the battle result, empty while undecided.
func (m WatchModel) Outcome() string {
	return m.outcome
}

// RunWatch runs an interactive battle in the local terminal.
func RunWatch(p WatchParams) error {
	model := NewWatchModel(p)

	prog := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := prog.Run()
	return err
}
