package settings

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "focusflow/internal/modules/session/dto"
	"focusflow/internal/ui/theme"
)

type PreferencesPort interface {
	Preferences(ctx context.Context) (sessiondto.PreferencesOutput, error)
	SetTheme(ctx context.Context, theme string) (sessiondto.PreferencesOutput, error)
	SetEnvironment(ctx context.Context, environment string) (sessiondto.PreferencesOutput, error)
	SetMusic(ctx context.Context, enabled *bool) (sessiondto.PreferencesOutput, error)
	SetBrainViz(ctx context.Context, enabled *bool) (sessiondto.PreferencesOutput, error)
}

// ChangedMsg carries preferences after a load or a mutation.
type ChangedMsg struct {
	Prefs sessiondto.PreferencesOutput
	Err   error
}

type Model struct {
	port     PreferencesPort
	prefs    sessiondto.PreferencesOutput
	reminder string
	vault    string
	err      error
	width    int
	height   int
}

func New(port PreferencesPort, vaultPath string) Model {
	return Model{port: port, vault: vaultPath}
}

func (m Model) Init() tea.Cmd { return m.Load() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ChangedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.prefs = msg.Prefs
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "t":
			return m, m.ToggleTheme("")
		case "e":
			return m, m.CycleEnvironment("")
		case "m":
			return m, m.ToggleMusic()
		case "b":
			return m, m.ToggleBrainViz()
		}
	}
	return m, nil
}

func (m Model) View() string {
	p := m.prefs
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Settings") + "\n\n")
	row := func(k, label, value string) {
		sb.WriteString(theme.Hot.Render(k) + "  " + theme.Muted.Render(fmt.Sprintf("%-18s", label)) + value + "\n")
	}
	row("t", "theme", p.Theme)
	row("e", "environment", p.Environment)
	row("m", "ambient music", onOff(p.MusicEnabled))
	row("b", "brain activity", onOff(p.BrainVizEnabled))

	sb.WriteString("\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%-21s", "total XP")) + fmt.Sprint(p.TotalXP) + "\n")
	if m.vault != "" {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%-21s", "vault")) + m.vault + "\n")
	}
	if m.reminder != "" {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%-21s", "next reminder")) + m.reminder + "\n")
	}
	if m.err != nil {
		sb.WriteString("\n" + theme.Hot.Render("Error: "+m.err.Error()))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

// Prefs is the last preferences snapshot the view received.
func (m Model) Prefs() sessiondto.PreferencesOutput { return m.prefs }

// SetReminder sets the next-reminder hint. Empty hides the row.
func (m *Model) SetReminder(text string) { m.reminder = text }

func (m Model) Load() tea.Cmd {
	return m.do(func(ctx context.Context) (sessiondto.PreferencesOutput, error) {
		return m.port.Preferences(ctx)
	})
}

// ToggleTheme sets name, or flips the theme when name is empty.
func (m Model) ToggleTheme(name string) tea.Cmd {
	return m.do(func(ctx context.Context) (sessiondto.PreferencesOutput, error) {
		return m.port.SetTheme(ctx, name)
	})
}

// CycleEnvironment sets name, or advances to the next scene when name is empty.
func (m Model) CycleEnvironment(name string) tea.Cmd {
	return m.do(func(ctx context.Context) (sessiondto.PreferencesOutput, error) {
		return m.port.SetEnvironment(ctx, name)
	})
}

func (m Model) ToggleMusic() tea.Cmd {
	return m.do(func(ctx context.Context) (sessiondto.PreferencesOutput, error) {
		return m.port.SetMusic(ctx, nil)
	})
}

func (m Model) ToggleBrainViz() tea.Cmd {
	return m.do(func(ctx context.Context) (sessiondto.PreferencesOutput, error) {
		return m.port.SetBrainViz(ctx, nil)
	})
}

func (m Model) do(fn func(context.Context) (sessiondto.PreferencesOutput, error)) tea.Cmd {
	return func() tea.Msg {
		prefs, err := fn(context.Background())
		return ChangedMsg{Prefs: prefs, Err: err}
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
