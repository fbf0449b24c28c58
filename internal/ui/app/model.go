package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	drilldto "focusflow/internal/modules/drill/dto"
	practicedto "focusflow/internal/modules/practice/dto"
	progressiondto "focusflow/internal/modules/progression/dto"
	sessiondto "focusflow/internal/modules/session/dto"
	"focusflow/internal/ui/components"
	"focusflow/internal/ui/theme"
	homeview "focusflow/internal/ui/views/home"
	practiceview "focusflow/internal/ui/views/practice"
	settingsview "focusflow/internal/ui/views/settings"
	statsview "focusflow/internal/ui/views/stats"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type drillPort interface {
	ListDrills(ctx context.Context) ([]drilldto.DrillOutput, error)
}

type practicePort interface {
	Start(ctx context.Context, drillID string, minutes int) (practicedto.Snapshot, error)
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	EndEarly(ctx context.Context) error
	Log(ctx context.Context, input practicedto.LogInput) (practicedto.LogOutput, error)
	Skip(ctx context.Context) error
	Snapshot() practicedto.Snapshot
}

type statsPort interface {
	Stats(ctx context.Context) (progressiondto.StatsOutput, error)
}

type sessionPort interface {
	Reindex(ctx context.Context) (sessiondto.ReindexOutput, error)
	Preferences(ctx context.Context) (sessiondto.PreferencesOutput, error)
	SetTheme(ctx context.Context, theme string) (sessiondto.PreferencesOutput, error)
	SetEnvironment(ctx context.Context, environment string) (sessiondto.PreferencesOutput, error)
	SetMusic(ctx context.Context, enabled *bool) (sessiondto.PreferencesOutput, error)
	SetBrainViz(ctx context.Context, enabled *bool) (sessiondto.PreferencesOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabHome tabID = iota
	tabPractice
	tabStats
	tabSettings
	tabCount
)

var tabLabels = [tabCount]string{
	"Home", "Practice", "Stats", "Settings",
}

// ─── async messages ───────────────────────────────────────────────────────────

type reindexedMsg struct {
	out sessiondto.ReindexOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Start   key.Binding
	Adjust  key.Binding
	Pause   key.Binding
	End     key.Binding
	Rate    key.Binding
	Log     key.Binding
	Skip    key.Binding
	Prefs   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Start:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start drill")),
		Adjust:  key.NewBinding(key.WithKeys("+", "-"), key.WithHelp("+/-", "minutes")),
		Pause:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume")),
		End:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "end early")),
		Rate:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "rate focus")),
		Log:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "log session")),
		Skip:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "skip logging")),
		Prefs:   key.NewBinding(key.WithKeys("t", "e", "m", "b"), key.WithHelp("t/e/m/b", "theme/env/music/brain")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Start, k.Adjust},
		{k.Pause, k.End, k.Rate, k.Log, k.Skip},
		{k.Prefs, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the global help
// overlay, and the command palette. All business logic is delegated to port
// interfaces; all rendering is delegated to sub-views.
type Model struct {
	// ports used at this orchestration level only
	sessions sessionPort
	reminder func() string

	// sub-views (one per tab)
	homeView     homeview.Model
	practiceView practiceview.Model
	statsView    statsview.Model
	settingsView settingsview.Model

	// global UI state
	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

// NewModel wires the tabs. reminder may be nil; otherwise it returns the
// next-reminder hint shown in Settings.
func NewModel(
	vaultPath string,
	defaultMinutes int,
	drills drillPort,
	practice practicePort,
	stats statsPort,
	sessions sessionPort,
	reminder func() string,
) Model {
	settings := settingsview.New(sessions, vaultPath)
	if reminder != nil {
		settings.SetReminder(reminder())
	}
	return Model{
		sessions:     sessions,
		reminder:     reminder,
		homeView:     homeview.New(drills, defaultMinutes),
		practiceView: practiceview.New(practice),
		statsView:    statsview.New(stats),
		settingsView: settings,
		activeTab:    tabHome,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.homeView.Init(),
		m.practiceView.Init(),
		m.statsView.Init(),
		m.settingsView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Engine events keep flowing while the palette is open.
	if ev, ok := msg.(practiceview.EventMsg); ok {
		return m.handleEvent(ev)
	}

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case spinner.TickMsg:
		var hCmd, sCmd tea.Cmd
		m.homeView, hCmd = m.homeView.Update(msg)
		m.statsView, sCmd = m.statsView.Update(msg)
		return m, tea.Batch(hCmd, sCmd)

	case homeview.DrillsLoadedMsg:
		if msg.Err != nil {
			m.status = "drills: " + msg.Err.Error()
		}
		var cmd tea.Cmd
		m.homeView, cmd = m.homeView.Update(msg)
		return m, cmd

	case homeview.StartRequestMsg:
		m.activeTab = tabPractice
		m.status = fmt.Sprintf("starting %s (%d min)", msg.DrillID, msg.Minutes)
		return m, m.practiceView.Start(msg.DrillID, msg.Minutes)

	case practiceview.ActionDoneMsg:
		if msg.Err != nil {
			m.status = msg.Action + " failed: " + msg.Err.Error()
		} else {
			m.status = actionStatus(msg)
		}
		var cmd tea.Cmd
		m.practiceView, cmd = m.practiceView.Update(msg)
		cmds = append(cmds, cmd)
		if msg.Logged != nil {
			cmds = append(cmds, m.statsView.Reload(), m.settingsView.Load())
		}
		return m, tea.Batch(cmds...)

	case statsview.LoadedMsg:
		var cmd tea.Cmd
		m.statsView, cmd = m.statsView.Update(msg)
		return m, cmd

	case settingsview.ChangedMsg:
		if msg.Err != nil {
			m.status = "preferences: " + msg.Err.Error()
		} else {
			m.applyPreferences(msg.Prefs)
		}
		var cmd tea.Cmd
		m.settingsView, cmd = m.settingsView.Update(msg)
		return m, cmd

	case reindexedMsg:
		if msg.err != nil {
			m.status = "reindex failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("reindexed %d sessions", msg.out.Sessions)
		return m, m.statsView.Reload()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when it is capturing free text.
		if m.subViewCapturing() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabHome:
		m.homeView, tabCmd = m.homeView.Update(msg)
	case tabPractice:
		m.practiceView, tabCmd = m.practiceView.Update(msg)
	case tabStats:
		m.statsView, tabCmd = m.statsView.Update(msg)
	case tabSettings:
		m.settingsView, tabCmd = m.settingsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) handleEvent(ev practiceview.EventMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.practiceView, cmd = m.practiceView.Update(ev)
	if ev.Event.Kind == practicedto.EventComplete && ev.Event.Summary != nil {
		m.activeTab = tabPractice
		m.status = fmt.Sprintf("practice complete: +%d XP, log or skip", ev.Event.Summary.XPEarned)
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabHome:
		return m.homeView.View()
	case tabPractice:
		return m.practiceView.View()
	case tabStats:
		return m.statsView.View()
	case tabSettings:
		return m.settingsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "focusflow  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if snap := m.practiceView.Snapshot(); m.practiceView.Active() {
		name := snap.DrillName
		if name == "" {
			name = "timer"
		}
		dot := "● "
		if snap.State == "paused" {
			dot = "‖ "
		}
		left = theme.Hot.Render(dot+name+" "+snap.Clock) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "practice:start":
		drillID, ok := m.homeView.SelectedDrillID()
		if len(parts) >= 2 {
			drillID, ok = parts[1], true
		}
		if !ok {
			m.status = "usage: practice:start <drill> [minutes]"
			return m, nil
		}
		minutes := m.homeView.Minutes()
		if len(parts) >= 3 {
			n, err := strconv.Atoi(parts[2])
			if err != nil {
				m.status = "invalid minutes: " + parts[2]
				return m, nil
			}
			minutes = n
		}
		m.activeTab = tabPractice
		return m, m.practiceView.Start(drillID, minutes)

	case "practice:pause":
		return m, m.practiceView.PauseCmd()

	case "practice:resume":
		return m, m.practiceView.ResumeCmd()

	case "practice:end":
		return m, m.practiceView.EndEarlyCmd()

	case "practice:skip":
		return m, m.practiceView.SkipCmd()

	case "practice:log":
		in, err := parseLogArgs(parts[1:])
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.practiceView.LogCmd(in)

	case "prefs:theme":
		return m, m.settingsView.ToggleTheme(arg(parts, 1))

	case "prefs:env":
		return m, m.settingsView.CycleEnvironment(arg(parts, 1))

	case "prefs:music":
		return m, m.settingsView.ToggleMusic()

	case "prefs:brain-viz":
		return m, m.settingsView.ToggleBrainViz()

	case "session:reindex":
		m.status = "reindexing…"
		return m, m.reindexCmd()

	case "stats:refresh":
		m.activeTab = tabStats
		return m, m.statsView.Reload()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// parseLogArgs reads "[rating] [sentiment] [note…]". "-" leaves a field unset.
func parseLogArgs(args []string) (practicedto.LogInput, error) {
	var in practicedto.LogInput
	if len(args) >= 1 && args[0] != "-" {
		r, err := strconv.Atoi(args[0])
		if err != nil {
			return in, fmt.Errorf("invalid rating: %s", args[0])
		}
		in.FocusRating = &r
	}
	if len(args) >= 2 && args[1] != "-" {
		in.Sentiment = args[1]
	}
	if len(args) >= 3 {
		in.Note = strings.Join(args[2:], " ")
	}
	return in, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewCapturing reports whether the active tab owns the keyboard, in which
// case global key bindings must yield to allow free typing.
func (m Model) subViewCapturing() bool {
	switch m.activeTab {
	case tabHome:
		return m.homeView.Filtering()
	case tabPractice:
		return m.practiceView.Capturing()
	}
	return false
}

func (m *Model) applyPreferences(p sessiondto.PreferencesOutput) {
	if p.Theme != "" && p.Theme != theme.Current.Name {
		theme.Use(p.Theme)
		m.homeView.Restyle()
		m.practiceView.Restyle()
		m.statsView.Restyle()
	}
	m.practiceView.SetEnvironment(p.Environment)
	if m.reminder != nil {
		m.settingsView.SetReminder(m.reminder())
	}
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.homeView, _ = m.homeView.Update(sz)
	m.practiceView, _ = m.practiceView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
	m.settingsView, _ = m.settingsView.Update(sz)
}

func actionStatus(msg practiceview.ActionDoneMsg) string {
	switch {
	case msg.Logged != nil:
		return fmt.Sprintf("logged %s: +%d XP (total %d)", msg.Logged.SessionID, msg.Logged.XPEarned, msg.Logged.TotalXP)
	case msg.Action == "start":
		return "practice started"
	case msg.Action == "pause":
		return "paused"
	case msg.Action == "resume":
		return "resumed"
	case msg.Action == "end":
		return "ended early, nothing logged"
	case msg.Action == "skip":
		return "session discarded"
	}
	return msg.Action
}

func arg(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) reindexCmd() tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		out, err := sessions.Reindex(context.Background())
		return reindexedMsg{out: out, err: err}
	}
}
