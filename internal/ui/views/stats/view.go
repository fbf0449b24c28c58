package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressiondto "focusflow/internal/modules/progression/dto"
	"focusflow/internal/ui/theme"
)

type StatsPort interface {
	Stats(ctx context.Context) (progressiondto.StatsOutput, error)
}

type LoadedMsg struct {
	Stats progressiondto.StatsOutput
	Err   error
}

type Model struct {
	port    StatsPort
	stats   progressiondto.StatsOutput
	bar     progress.Model
	spinner spinner.Model
	loading bool
	err     error
	width   int
	height  int
}

func New(port StatsPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, bar: newBar(), spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(min(m.width-8, 50), 10)

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.stats = msg.Stats
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.Reload()
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading stats…")
	}
	if m.err != nil {
		return theme.Hot.Render("Error: " + m.err.Error())
	}

	s := m.stats
	lvl := s.Level
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Progress") + "\n\n")
	sb.WriteString(fmt.Sprintf("%s %s  %s\n", lvl.Current.Icon, theme.Hot.Render(lvl.Current.Name),
		theme.Muted.Render(fmt.Sprintf("%d XP", lvl.TotalXP))))
	sb.WriteString(m.bar.ViewAs(lvl.ProgressPercent/100) + "\n")
	if lvl.Next.ID != lvl.Current.ID {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%.0f%% to %s %s (%d XP)",
			lvl.ProgressPercent, lvl.Next.Icon, lvl.Next.Name, lvl.Next.MinXP)) + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("top tier reached") + "\n")
	}

	sb.WriteString("\n")
	row := func(label, value string) {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%-16s", label)) + value + "\n")
	}
	row("streak", fmt.Sprintf("%d day%s", s.Streak, plural(s.Streak)))
	row("longest streak", fmt.Sprintf("%d day%s", s.LongestStreak, plural(s.LongestStreak)))
	row("this week", fmt.Sprintf("%d min", s.WeeklyMinutes))
	row("sessions", fmt.Sprintf("%d (%d min)", s.TotalSessions, s.TotalMinutes))

	sb.WriteString("\n" + theme.Title.Render("Achievements") + "\n")
	for _, a := range s.Achievements {
		mark := theme.Muted.Render("  ○ ")
		name := theme.Muted.Render(a.Tier.Name)
		if a.Unlocked {
			mark = theme.Good.Render("  ● ")
			name = a.Tier.Icon + " " + a.Tier.Name
		}
		sb.WriteString(mark + name + theme.Muted.Render(fmt.Sprintf("  %d XP", a.Tier.MinXP)) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("r: refresh"))

	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

// Reload returns the command that re-reads the progression summary.
func (m Model) Reload() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		stats, err := port.Stats(context.Background())
		return LoadedMsg{Stats: stats, Err: err}
	}
}

func (m *Model) Restyle() {
	w := m.bar.Width
	m.bar = newBar()
	m.bar.Width = w
}

func newBar() progress.Model {
	return progress.New(
		progress.WithSolidFill(string(theme.Green)),
		progress.WithWidth(40),
	)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
