package practice

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	practicedto "focusflow/internal/modules/practice/dto"
	"focusflow/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type PracticePort interface {
	Start(ctx context.Context, drillID string, minutes int) (practicedto.Snapshot, error)
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	EndEarly(ctx context.Context) error
	Log(ctx context.Context, input practicedto.LogInput) (practicedto.LogOutput, error)
	Skip(ctx context.Context) error
	Snapshot() practicedto.Snapshot
}

// ─── messages ────────────────────────────────────────────────────────────────

// EventMsg carries one engine event into the bubbletea loop.
type EventMsg struct{ Event practicedto.Event }

// ActionDoneMsg reports the outcome of a practice command. Logged is set
// when a session was written.
type ActionDoneMsg struct {
	Action   string
	Snapshot practicedto.Snapshot
	Logged   *practicedto.LogOutput
	Err      error
}

var sentiments = []string{"", "calm", "focused", "neutral", "restless", "distracted"}

var sceneIcons = map[string]string{
	"forest":  "🌲",
	"ocean":   "🌊",
	"space":   "🌌",
	"zen":     "🪷",
	"minimal": "·",
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port        PracticePort
	snap        practicedto.Snapshot
	bar         progress.Model
	note        textinput.Model
	rating      int
	sentiment   int
	environment string
	lastLog     *practicedto.LogOutput
	err         error
	width       int
	height      int
}

func New(port PracticePort) Model {
	ti := textinput.New()
	ti.Placeholder = "how did it go?"
	ti.CharLimit = 280

	return Model{
		port: port,
		snap: port.Snapshot(),
		bar:  newBar(),
		note: ti,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(min(m.width-8, 60), 10)
		m.note.Width = max(min(m.width-16, 50), 10)

	case EventMsg:
		m.applyEvent(msg.Event)

	case ActionDoneMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.snap = msg.Snapshot
			if msg.Logged != nil {
				m.lastLog = msg.Logged
			}
			if msg.Action == "start" {
				m.lastLog = nil
			}
			if m.snap.Pending == nil {
				m.resetForm()
			}
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder

	header := theme.Title.Render("Practice")
	if icon, ok := sceneIcons[m.environment]; ok {
		header += theme.Muted.Render("  " + icon + " " + m.environment)
	}
	sb.WriteString(header + "\n\n")

	s := m.snap
	if s.State == "" || s.State == "idle" {
		sb.WriteString(theme.Muted.Render("Pick a drill on the Home tab and press enter."))
		if m.lastLog != nil {
			sb.WriteString("\n\n" + theme.Good.Render(fmt.Sprintf("Logged %s: +%d XP (total %d)",
				m.lastLog.SessionID, m.lastLog.XPEarned, m.lastLog.TotalXP)))
		}
		return m.frame(sb.String())
	}

	name := s.DrillName
	if name == "" {
		name = "Timer"
	}
	sb.WriteString(theme.Hot.Render(name) + theme.Muted.Render(fmt.Sprintf("  %d min  [%s]", s.Minutes, s.State)) + "\n\n")
	sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(s.Clock) + "\n")
	sb.WriteString(m.bar.ViewAs(Fraction(s.Minutes, s.Remaining)) + "\n\n")

	if s.Cue != "" {
		sb.WriteString("» " + s.Cue + "\n")
	}
	if s.Brain != "" {
		sb.WriteString(theme.Muted.Render("  "+s.Brain) + "\n")
	}

	if s.Pending != nil {
		sb.WriteString("\n" + m.renderForm(*s.Pending))
	} else if m.lastLog != nil && s.State == "completed" {
		sb.WriteString("\n" + theme.Good.Render(fmt.Sprintf("Logged %s: +%d XP (total %d)",
			m.lastLog.SessionID, m.lastLog.XPEarned, m.lastLog.TotalXP)))
	} else if s.State == "running" || s.State == "paused" {
		sb.WriteString("\n" + theme.Muted.Render("space: pause/resume  x: end early"))
	}

	if m.err != nil {
		sb.WriteString("\n\n" + theme.Hot.Render("Error: "+m.err.Error()))
	}
	return m.frame(sb.String())
}

// Start returns the command that begins a new practice.
func (m Model) Start(drillID string, minutes int) tea.Cmd {
	return m.actionCmd("start", func(ctx context.Context) (*practicedto.LogOutput, error) {
		_, err := m.port.Start(ctx, drillID, minutes)
		return nil, err
	})
}

func (m Model) PauseCmd() tea.Cmd { return m.simpleCmd("pause", m.port.Pause) }

func (m Model) ResumeCmd() tea.Cmd { return m.simpleCmd("resume", m.port.Resume) }

func (m Model) EndEarlyCmd() tea.Cmd { return m.simpleCmd("end", m.port.EndEarly) }

func (m Model) SkipCmd() tea.Cmd { return m.simpleCmd("skip", m.port.Skip) }

// LogCmd logs the pending session with the given reflection.
func (m Model) LogCmd(input practicedto.LogInput) tea.Cmd {
	return m.actionCmd("log", func(ctx context.Context) (*practicedto.LogOutput, error) {
		out, err := m.port.Log(ctx, input)
		if err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// SetEnvironment sets the ambient scene shown in the header.
func (m *Model) SetEnvironment(env string) { m.environment = env }

// Restyle picks up theme colors after a theme change.
func (m *Model) Restyle() {
	w := m.bar.Width
	m.bar = newBar()
	m.bar.Width = w
}

// Capturing reports whether the note input owns the keyboard.
func (m Model) Capturing() bool { return m.note.Focused() }

// Active reports whether a timer is running or paused.
func (m Model) Active() bool { return m.snap.State == "running" || m.snap.State == "paused" }

// Fraction is the share of the practice already elapsed, in [0, 1].
func Fraction(minutes, remaining int) float64 {
	total := minutes * 60
	if total <= 0 {
		return 0
	}
	f := float64(total-remaining) / float64(total)
	return min(max(f, 0), 1)
}

// ─── private ─────────────────────────────────────────────────────────────────

func newBar() progress.Model {
	return progress.New(
		progress.WithSolidFill(string(theme.Lavender)),
		progress.WithoutPercentage(),
		progress.WithWidth(40),
	)
}

func (m *Model) applyEvent(ev practicedto.Event) {
	switch ev.Kind {
	case practicedto.EventTick:
		m.snap.Remaining = ev.Remaining
		m.snap.Clock = ev.Clock
	case practicedto.EventCue:
		m.snap.Cue = ev.Text
	case practicedto.EventBrain:
		m.snap.Brain = ev.Text
	case practicedto.EventComplete:
		m.snap.State = "completed"
		m.snap.Remaining = 0
		m.snap.Clock = "00:00"
		m.snap.Pending = ev.Summary
		m.resetForm()
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.note.Focused() {
		switch msg.String() {
		case "esc", "enter":
			m.note.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.note, cmd = m.note.Update(msg)
		return m, cmd
	}

	if m.snap.Pending != nil {
		switch key := msg.String(); key {
		case "1", "2", "3", "4", "5":
			m.rating, _ = strconv.Atoi(key)
		case "0":
			m.rating = 0
		case "s":
			m.sentiment = (m.sentiment + 1) % len(sentiments)
		case "S":
			m.sentiment = (m.sentiment + len(sentiments) - 1) % len(sentiments)
		case "n":
			return m, m.note.Focus()
		case "enter":
			return m, m.LogCmd(m.formInput())
		case "esc":
			return m, m.SkipCmd()
		}
		return m, nil
	}

	switch msg.String() {
	case " ":
		switch m.snap.State {
		case "running":
			return m, m.PauseCmd()
		case "paused":
			return m, m.ResumeCmd()
		}
	case "x":
		if m.Active() {
			return m, m.EndEarlyCmd()
		}
	}
	return m, nil
}

func (m Model) formInput() practicedto.LogInput {
	in := practicedto.LogInput{
		Sentiment: sentiments[m.sentiment],
		Note:      strings.TrimSpace(m.note.Value()),
	}
	if m.rating > 0 {
		r := m.rating
		in.FocusRating = &r
	}
	return in
}

func (m *Model) resetForm() {
	m.rating = 0
	m.sentiment = 0
	m.note.SetValue("")
	m.note.Blur()
}

func (m Model) renderForm(p practicedto.SummaryOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Good.Render(fmt.Sprintf("Complete! %d min, +%d XP", p.Minutes, p.XPEarned)) + "\n\n")

	stars := strings.Repeat("★", m.rating) + strings.Repeat("☆", 5-m.rating)
	sb.WriteString(theme.Muted.Render("focus:     ") + stars + "\n")
	feeling := sentiments[m.sentiment]
	if feeling == "" {
		feeling = "(none)"
	}
	sb.WriteString(theme.Muted.Render("feeling:   ") + feeling + "\n")
	sb.WriteString(theme.Muted.Render("note:      ") + m.note.View() + "\n\n")
	sb.WriteString(theme.Muted.Render("1-5: rate  s: feeling  n: note  enter: log  esc: skip"))
	return sb.String()
}

func (m Model) frame(body string) string {
	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

func (m Model) simpleCmd(action string, fn func(context.Context) error) tea.Cmd {
	return m.actionCmd(action, func(ctx context.Context) (*practicedto.LogOutput, error) {
		return nil, fn(ctx)
	})
}

func (m Model) actionCmd(action string, fn func(context.Context) (*practicedto.LogOutput, error)) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		logged, err := fn(context.Background())
		return ActionDoneMsg{Action: action, Snapshot: port.Snapshot(), Logged: logged, Err: err}
	}
}

// Snapshot is the practice state the view is currently showing.
func (m Model) Snapshot() practicedto.Snapshot { return m.snap }
