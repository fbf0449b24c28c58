package home

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	drilldto "focusflow/internal/modules/drill/dto"
	"focusflow/internal/ui/theme"
)

const (
	DefaultMinutes = 10
	maxMinutes     = 120
)

// ─── port ────────────────────────────────────────────────────────────────────

type DrillPort interface {
	ListDrills(ctx context.Context) ([]drilldto.DrillOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type DrillsLoadedMsg struct {
	Drills []drilldto.DrillOutput
	Err    error
}

// StartRequestMsg asks the app to start a practice with the selected drill.
type StartRequestMsg struct {
	DrillID string
	Minutes int
}

// ─── list item ───────────────────────────────────────────────────────────────

type drillItem struct {
	drill drilldto.DrillOutput
}

func (i drillItem) Title() string { return i.drill.Name }
func (i drillItem) Description() string {
	kind := "custom"
	if i.drill.Builtin {
		kind = "builtin"
	}
	return fmt.Sprintf("%s  %d cues", kind, len(i.drill.Cues))
}
func (i drillItem) FilterValue() string { return i.drill.Name }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     DrillPort
	list     list.Model
	preview  viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	minutes  int
	loading  bool
	err      error
	width    int
	height   int
}

func New(port DrillPort, minutes int) Model {
	if minutes <= 0 {
		minutes = DefaultMinutes
	}
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Drills"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	r, _ := glamour.NewTermRenderer(glamour.WithStandardStyle(theme.GlamourStyle()), glamour.WithWordWrap(60))

	return Model{
		port:     port,
		list:     l,
		preview:  vp,
		spinner:  sp,
		renderer: r,
		minutes:  minutes,
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadDrillsCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.preview.SetContent(m.renderDetail())

	case DrillsLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		items := make([]list.Item, len(msg.Drills))
		for i, d := range msg.Drills {
			items[i] = drillItem{drill: d}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.preview.SetContent(m.renderDetail())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if !m.Filtering() {
			switch msg.String() {
			case "+", "=":
				m.minutes = min(m.minutes+1, maxMinutes)
				m.preview.SetContent(m.renderDetail())
				return m, nil
			case "-", "_":
				m.minutes = max(m.minutes-1, 1)
				m.preview.SetContent(m.renderDetail())
				return m, nil
			case "enter":
				if id, ok := m.SelectedDrillID(); ok {
					minutes := m.minutes
					return m, func() tea.Msg { return StartRequestMsg{DrillID: id, Minutes: minutes} }
				}
				return m, nil
			}
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.preview.SetContent(m.renderDetail())
			m.preview.GotoTop()
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading drills…")
	}
	if m.err != nil {
		return theme.Hot.Render("Error: " + m.err.Error())
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(max(detailW-2, 1)).
		Height(max(m.height-2, 1)).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedDrillID returns the current selection's drill ID, if any.
func (m Model) SelectedDrillID() (string, bool) {
	if item, ok := m.list.SelectedItem().(drillItem); ok {
		return item.drill.ID, true
	}
	return "", false
}

// Minutes is the duration the next practice will use.
func (m Model) Minutes() int { return m.minutes }

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Restyle rebuilds the markdown renderer after a theme change.
func (m *Model) Restyle() {
	m.rebuildRenderer()
	m.preview.SetContent(m.renderDetail())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = max(detailW-4, 1)
	m.preview.Height = max(m.height-4, 1)
	m.rebuildRenderer()
}

func (m *Model) rebuildRenderer() {
	wrap := m.preview.Width
	if wrap < 20 {
		wrap = 60
	}
	if r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme.GlamourStyle()),
		glamour.WithWordWrap(wrap),
	); err == nil {
		m.renderer = r
	}
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(drillItem)
	if !ok {
		return theme.Muted.Render("Select a drill to see details")
	}
	md := DrillMarkdown(item.drill)
	body := md
	if m.renderer != nil {
		if out, err := m.renderer.Render(md); err == nil {
			body = out
		}
	}
	footer := theme.Muted.Render(fmt.Sprintf("duration: %d min   +/-: adjust  enter: start", m.minutes))
	return body + "\n" + footer
}

// DrillMarkdown renders a drill as the markdown shown in the detail pane.
func DrillMarkdown(d drilldto.DrillOutput) string {
	var sb strings.Builder
	sb.WriteString("# " + d.Name + "\n\n")
	if d.Description != "" {
		sb.WriteString(d.Description + "\n\n")
	}
	if len(d.Cues) > 0 {
		sb.WriteString("## Cues\n\n")
		for _, c := range d.Cues {
			fmt.Fprintf(&sb, "- `%s` %s\n", clockText(c.Offset), c.Text)
		}
	}
	return sb.String()
}

func (m Model) loadDrillsCmd() tea.Cmd {
	return func() tea.Msg {
		drills, err := m.port.ListDrills(context.Background())
		return DrillsLoadedMsg{Drills: drills, Err: err}
	}
}

func clockText(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
