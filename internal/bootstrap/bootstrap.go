package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	curriculumoutadapter "hdt/internal/modules/curriculum/adapter/out"
	curriculumservice "hdt/internal/modules/curriculum/service"
	progressinadapter "hdt/internal/modules/progress/adapter/in"
	progressoutadapter "hdt/internal/modules/progress/adapter/out"
	progressout "hdt/internal/modules/progress/port/out"
	progressservice "hdt/internal/modules/progress/service"
	progressusecase "hdt/internal/modules/progress/usecase"
	sessioninadapter "hdt/internal/modules/session/adapter/in"
	sessionoutadapter "hdt/internal/modules/session/adapter/out"
	sessiondomain "hdt/internal/modules/session/domain"
	sessionservice "hdt/internal/modules/session/service"
	sessionusecase "hdt/internal/modules/session/usecase"
	"hdt/internal/platform/clock"
	"hdt/internal/platform/config"
	"hdt/internal/platform/id"
	"hdt/internal/platform/logger"
	uiapp "hdt/internal/ui/app"
	"hdt/internal/ui/theme"
)

type App struct {
	Config      config.Config
	Logger      *zap.Logger
	ProgressCLI progressinadapter.CLIHandler
	SessionCLI  sessioninadapter.CLIHandler
	SessionTUI  sessioninadapter.TUIHandler

	store progressout.KVStore
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	log, err := logger.New(cfg.Log, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	clk := clock.SystemClock{}
	ids := id.UUID{}

	c, err := curriculumservice.NewCurriculumService(curriculumoutadapter.NewYAMLSource(cfg.Curriculum.Path)).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load curriculum: %w", err)
	}

	store, err := newKVStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Debug("storage ready", zap.String("driver", cfg.Storage.Driver), zap.String("key", cfg.Storage.Key))

	progressSvc := progressservice.NewProgressService(clk, ids, log.Named("progress"), store, progressoutadapter.NewFileExporter(), c, progressservice.Options{
		Key:            cfg.Storage.Key,
		FollowCalendar: cfg.Progress.FollowCalendar,
	})
	progressUC := progressusecase.NewInteractor(progressSvc)

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, ids, log.Named("session"), sessionservice.Defaults{
			Mode:          sessiondomain.Mode(cfg.Timer.Mode),
			FocusDuration: cfg.Timer.FocusDuration,
			SessionXP:     cfg.Timer.SessionXP,
			SessionHours:  cfg.Timer.SessionHours,
		}),
		progressUC,
		sessionoutadapter.NewFileActiveSessionStore(cfg.ActiveSessionPath()),
		sessionoutadapter.SystemTicker,
	)

	return &App{
		Config:      cfg,
		Logger:      log,
		ProgressCLI: progressinadapter.NewCLIHandler(progressUC),
		SessionCLI:  sessioninadapter.NewCLIHandler(sessionUC),
		SessionTUI:  sessioninadapter.NewTUIHandler(sessionUC),
		store:       store,
	}, nil
}

func newKVStore(ctx context.Context, cfg config.Config) (progressout.KVStore, error) {
	switch cfg.Storage.Driver {
	case config.DriverFile:
		return progressoutadapter.NewFileKVStore(filepath.Join(cfg.DataDir, "store")), nil
	case config.DriverRedis:
		store, err := progressoutadapter.NewRedisKVStore(ctx, cfg.Storage.Redis)
		if err != nil {
			return nil, fmt.Errorf("new redis store: %w", err)
		}
		return store, nil
	default:
		store, err := progressoutadapter.NewSQLiteKVStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("new sqlite store: %w", err)
		}
		return store, nil
	}
}

func (a *App) Close() error {
	err := a.store.Close()
	// Sync fails on stderr for some terminals; only file sinks matter here.
	if a.Config.Log.File != "" {
		err = errors.Join(err, a.Logger.Sync())
	}
	return err
}

// TUIConfig routes logs to a file so they cannot corrupt the alt screen.
func TUIConfig(cfg config.Config) config.Config {
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.DataDir, "hdt.log")
	}
	return cfg
}

func RunTUI(app *App) error {
	theme.DetectBackground()
	model := uiapp.NewModel(app.ProgressCLI, app.SessionTUI, app.Config.Export.Dir)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
