package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	drillinadapter "focusflow/internal/modules/drill/adapter/in"
	drilloutadapter "focusflow/internal/modules/drill/adapter/out"
	drillservice "focusflow/internal/modules/drill/service"
	drillusecase "focusflow/internal/modules/drill/usecase"
	practiceinadapter "focusflow/internal/modules/practice/adapter/in"
	practiceoutadapter "focusflow/internal/modules/practice/adapter/out"
	practicedto "focusflow/internal/modules/practice/dto"
	practicein "focusflow/internal/modules/practice/port/in"
	practiceservice "focusflow/internal/modules/practice/service"
	practiceusecase "focusflow/internal/modules/practice/usecase"
	progressioninadapter "focusflow/internal/modules/progression/adapter/in"
	progressionusecase "focusflow/internal/modules/progression/usecase"
	sessioninadapter "focusflow/internal/modules/session/adapter/in"
	sessionoutadapter "focusflow/internal/modules/session/adapter/out"
	sessionout "focusflow/internal/modules/session/port/out"
	sessionservice "focusflow/internal/modules/session/service"
	sessionusecase "focusflow/internal/modules/session/usecase"
	"focusflow/internal/platform/clock"
	"focusflow/internal/platform/config"
	"focusflow/internal/platform/id"
	"focusflow/internal/platform/metrics"
	"focusflow/internal/platform/reminder"
	"focusflow/internal/platform/tx"
	uiapp "focusflow/internal/ui/app"
	practiceview "focusflow/internal/ui/views/practice"
)

type App struct {
	Config   config.Config
	Logger   *zap.Logger
	Metrics  *metrics.Manager
	Reminder reminder.Schedule
	Clock    clock.SystemClock

	DrillCLI       drillinadapter.CLIHandler
	SessionCLI     sessioninadapter.CLIHandler
	ProgressionCLI progressioninadapter.CLIHandler
	PracticeCLI    practiceinadapter.CLIHandler

	practice practicein.Usecase
	store    *sessionoutadapter.SQLiteSessionStore
}

// New wires every module against cfg. The caller owns the returned App and
// must Close it.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	schedule, err := reminder.Parse(cfg.ReminderCron)
	if err != nil {
		return nil, err
	}
	cueClock, err := practiceservice.ParseCueClock(cfg.CueClock)
	if err != nil {
		return nil, fmt.Errorf("cue clock: %w", err)
	}

	clk := clock.SystemClock{}
	ids := id.UUID{}
	mgr := metrics.NewManager()

	store, err := sessionoutadapter.NewSQLiteSessionStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new session store: %w", err)
	}
	var journal sessionout.Journal
	if cfg.Journal {
		journal = sessionoutadapter.NewVaultJournal(cfg.VaultPath, logger)
	}

	drillCatalog := drillservice.NewCatalogService(
		context.Background(),
		drilloutadapter.NewVaultDrillSource(cfg.VaultPath, logger),
		logger,
	)
	drillUC := drillusecase.NewInteractor(drillCatalog)

	prefsSvc := sessionservice.NewPreferencesService(sessionoutadapter.NewFilePreferencesStore(cfg.PrefsPath), logger)
	prefsUC := sessionusecase.NewPreferencesInteractor(prefsSvc)
	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, ids, store, journal, logger),
		prefsSvc,
		tx.NoopManager{},
		logger,
	)

	progressionUC := progressionusecase.NewInteractor(sessionUC, prefsUC, clk, mgr)

	practiceUC := practiceusecase.NewController(practiceusecase.Deps{
		Scheduler:   clk,
		CueClock:    cueClock,
		Drills:      drillUC,
		Sessions:    sessionUC,
		Preferences: prefsUC,
		Audio:       practiceoutadapter.NewLoggingAudioPlayer(logger),
		Metrics:     mgr,
		IDs:         ids,
		Logger:      logger,
	})

	return &App{
		Config:         cfg,
		Logger:         logger,
		Metrics:        mgr,
		Reminder:       schedule,
		Clock:          clk,
		DrillCLI:       drillinadapter.NewCLIHandler(drillUC),
		SessionCLI:     sessioninadapter.NewCLIHandler(sessionUC, prefsUC),
		ProgressionCLI: progressioninadapter.NewCLIHandler(progressionUC),
		PracticeCLI:    practiceinadapter.NewCLIHandler(practiceUC),
		practice:       practiceUC,
		store:          store,
	}, nil
}

// NextReminder formats the next reminder activation, or "" when reminders
// are off.
func (a *App) NextReminder() string {
	next, ok := a.Reminder.Next(a.Clock.Now())
	if !ok {
		return ""
	}
	return next.Format("Mon Jan 2 15:04")
}

// Close stops any running practice, flushes the metrics textfile, and closes
// the session store.
func (a *App) Close() error {
	a.practice.Shutdown()
	var errs []error
	if a.Config.MetricsPath != "" {
		if err := a.Metrics.WriteTextfile(a.Config.MetricsPath); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close session store: %w", err))
	}
	_ = a.Logger.Sync()
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(
		app.Config.VaultPath,
		app.Config.DefaultMinutes,
		app.DrillCLI,
		app.PracticeCLI,
		app.ProgressionCLI,
		app.SessionCLI,
		app.NextReminder,
	)
	program := tea.NewProgram(model, tea.WithAltScreen())
	app.PracticeCLI.SetListener(func(ev practicedto.Event) {
		program.Send(practiceview.EventMsg{Event: ev})
	})
	defer app.PracticeCLI.SetListener(nil)

	started := time.Now()
	_, err := program.Run()
	app.Logger.Info("tui exited", zap.Duration("uptime", time.Since(started)))
	return err
}
