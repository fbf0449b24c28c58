package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"focusflow/internal/bootstrap"
	practiceinadapter "focusflow/internal/modules/practice/adapter/in"
	sessiondto "focusflow/internal/modules/session/dto"
	"focusflow/internal/platform/config"
	"focusflow/internal/platform/logging"
	"focusflow/internal/platform/reminder"
	homeview "focusflow/internal/ui/views/home"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	vaultPath  string
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "focusflow",
		Short:         "Guided focus and meditation timer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.vaultPath, "vault", ".", "vault directory holding journal notes and state")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default <vault>/.focusflow/config.yaml)")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newDrillCmd(opts))
	root.AddCommand(newPracticeCmd(opts))
	root.AddCommand(newSessionCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newPrefsCmd(opts))
	root.AddCommand(newReindexCmd(opts))
	root.AddCommand(newRemindCmd(opts))
	return root
}

func loadApp(opts *rootOptions) (*bootstrap.App, error) {
	cfg, err := config.Load(opts.vaultPath, opts.configPath)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogPath)
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return app, nil
}

// withApp loads the app, runs fn, and closes the app even when fn fails.
func withApp(opts *rootOptions, fn func(app *bootstrap.App) error) (err error) {
	app, err := loadApp(opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(app)
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the focusflow terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(opts, bootstrap.RunTUI)
		},
	}
}

func newDrillCmd(opts *rootOptions) *cobra.Command {
	drill := &cobra.Command{Use: "drill", Short: "Browse the drill catalog"}

	drill.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List builtin and custom drills",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				drills, err := app.DrillCLI.ListDrills(context.Background())
				if err != nil {
					return err
				}
				for _, d := range drills {
					kind := "custom"
					if d.Builtin {
						kind = "builtin"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d cues\n", d.ID, kind, d.Name, len(d.Cues))
				}
				return nil
			})
		},
	})

	drill.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a drill and its cue timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				d, err := app.DrillCLI.GetDrill(context.Background(), args[0])
				if err != nil {
					return err
				}
				md := homeview.DrillMarkdown(d)
				out, err := glamour.Render(md, "auto")
				if err != nil {
					out = md
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})
	return drill
}

func newPracticeCmd(opts *rootOptions) *cobra.Command {
	practice := &cobra.Command{Use: "practice", Short: "Run practices without the TUI"}

	var (
		drillID   string
		minutes   int
		logIt     bool
		rating    int
		sentiment string
		note      string
	)
	run := &cobra.Command{
		Use:   "run",
		Short: "Count down a practice in the terminal (ctrl-c ends early)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				if drillID == "" {
					drillID = app.Config.DefaultDrill
				}
				if minutes == 0 {
					minutes = app.Config.DefaultMinutes
				}
				input := practiceinadapter.RunInput{
					DrillID:   drillID,
					Minutes:   minutes,
					Log:       logIt,
					Sentiment: sentiment,
					Note:      note,
				}
				if cmd.Flags().Changed("rating") {
					input.FocusRating = &rating
				}

				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				_, err := app.PracticeCLI.Run(ctx, input, cmd.OutOrStdout())
				return err
			})
		},
	}
	run.Flags().StringVar(&drillID, "drill", "", "drill id (default from config)")
	run.Flags().IntVar(&minutes, "minutes", 0, "duration in minutes (default from config)")
	run.Flags().BoolVar(&logIt, "log", false, "log the session when the timer completes")
	run.Flags().IntVar(&rating, "rating", 0, "focus rating 1-5")
	run.Flags().StringVar(&sentiment, "sentiment", "", "calm|focused|neutral|restless|distracted")
	run.Flags().StringVar(&note, "note", "", "free-form reflection")

	practice.AddCommand(run)
	return practice
}

func newSessionCmd(opts *rootOptions) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Logged session history"}

	var asJSON bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List logged sessions, oldest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				sessions, err := app.SessionCLI.List(context.Background())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), sessions)
				}
				if len(sessions) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				for _, s := range sessions {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), formatSession(s))
				}
				return nil
			})
		},
	}
	list.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	session.AddCommand(list)
	return session
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show level, streak, and weekly minutes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				s, err := app.ProgressionCLI.Stats(context.Background())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), s)
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "level: %s %s (%d XP, %.0f%% to %s)\n",
					s.Level.Current.Icon, s.Level.Current.Name, s.Level.TotalXP, s.Level.ProgressPercent, s.Level.Next.Name)
				_, _ = fmt.Fprintf(w, "streak: %d days (longest %d)\n", s.Streak, s.LongestStreak)
				_, _ = fmt.Fprintf(w, "this week: %d min\n", s.WeeklyMinutes)
				_, _ = fmt.Fprintf(w, "sessions: %d (%d min)\n", s.TotalSessions, s.TotalMinutes)
				return nil
			})
		},
	}
	stats.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return stats
}

func newPrefsCmd(opts *rootOptions) *cobra.Command {
	prefs := &cobra.Command{Use: "prefs", Short: "Read and change preferences"}

	type mutate func(ctx context.Context, app *bootstrap.App, args []string) (sessiondto.PreferencesOutput, error)
	sub := func(use, short string, fn mutate) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(opts, func(app *bootstrap.App) error {
					out, err := fn(context.Background(), app, args)
					if err != nil {
						return err
					}
					printPrefs(cmd.OutOrStdout(), out)
					return nil
				})
			},
		}
	}

	prefs.AddCommand(
		sub("show", "Show current preferences", func(ctx context.Context, app *bootstrap.App, _ []string) (sessiondto.PreferencesOutput, error) {
			return app.SessionCLI.Preferences(ctx)
		}),
		sub("theme [light|dark]", "Set the theme, or toggle it", func(ctx context.Context, app *bootstrap.App, args []string) (sessiondto.PreferencesOutput, error) {
			return app.SessionCLI.SetTheme(ctx, firstArg(args))
		}),
		sub("env [forest|ocean|space|zen|minimal]", "Set the environment, or cycle it", func(ctx context.Context, app *bootstrap.App, args []string) (sessiondto.PreferencesOutput, error) {
			return app.SessionCLI.SetEnvironment(ctx, firstArg(args))
		}),
		sub("music [on|off]", "Enable or disable ambient music, or toggle it", func(ctx context.Context, app *bootstrap.App, args []string) (sessiondto.PreferencesOutput, error) {
			enabled, err := parseSwitch(firstArg(args))
			if err != nil {
				return sessiondto.PreferencesOutput{}, err
			}
			return app.SessionCLI.SetMusic(ctx, enabled)
		}),
		sub("brain-viz [on|off]", "Enable or disable brain activity messages, or toggle them", func(ctx context.Context, app *bootstrap.App, args []string) (sessiondto.PreferencesOutput, error) {
			enabled, err := parseSwitch(firstArg(args))
			if err != nil {
				return sessiondto.PreferencesOutput{}, err
			}
			return app.SessionCLI.SetBrainViz(ctx, enabled)
		}),
	)
	return prefs
}

func newReindexCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the session table from journal notes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Reindex(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindexed %d sessions\n", out.Sessions)
				return nil
			})
		},
	}
}

func newRemindCmd(opts *rootOptions) *cobra.Command {
	var spec string
	remind := &cobra.Command{
		Use:   "remind",
		Short: "Print a practice reminder on a cron schedule until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				schedule := app.Reminder
				if spec != "" {
					s, err := reminder.Parse(spec)
					if err != nil {
						return err
					}
					schedule = s
				}
				if !schedule.Enabled() {
					return fmt.Errorf("no reminder schedule: set reminder_cron or pass --cron")
				}
				w := cmd.OutOrStdout()
				if next, ok := schedule.Next(time.Now()); ok {
					_, _ = fmt.Fprintf(w, "next reminder %s\n", next.Format(time.RFC1123))
				}

				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return reminder.Run(ctx, schedule, time.Local, func(at time.Time) {
					streak := 0
					if s, err := app.ProgressionCLI.Stats(ctx); err == nil {
						streak = s.Streak
					}
					app.Logger.Info("reminder fired", zap.Time("at", at), zap.Int("streak", streak))
					_, _ = fmt.Fprintf(w, "%s  time to practice (streak %d)\n", at.Format("15:04"), streak)
				})
			})
		},
	}
	remind.Flags().StringVar(&spec, "cron", "", "cron spec overriding reminder_cron")
	return remind
}

// ─── output helpers ──────────────────────────────────────────────────────────

func formatSession(s sessiondto.SessionOutput) string {
	rating := "-"
	if s.FocusRating != nil {
		rating = fmt.Sprintf("%d/5", *s.FocusRating)
	}
	sentiment := s.Sentiment
	if sentiment == "" {
		sentiment = "-"
	}
	line := fmt.Sprintf("%s\t%s\t%dmin\t%s\t%s\t%s", s.ID, s.Timestamp.Format("2006-01-02 15:04"), s.DurationMin, s.Type, rating, sentiment)
	if s.Note != "" {
		line += "\t" + s.Note
	}
	return line
}

func printPrefs(w io.Writer, p sessiondto.PreferencesOutput) {
	_, _ = fmt.Fprintf(w, "theme: %s\nenvironment: %s\nmusic: %s\nbrain-viz: %s\ntotal xp: %d\n",
		p.Theme, p.Environment, onOff(p.MusicEnabled), onOff(p.BrainVizEnabled), p.TotalXP)
}

// parseSwitch maps "" to nil (toggle).
func parseSwitch(raw string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return nil, nil
	case "on", "true", "yes", "1":
		v := true
		return &v, nil
	case "off", "false", "no", "0":
		v := false
		return &v, nil
	}
	return nil, fmt.Errorf("expected on or off, got %q", raw)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
