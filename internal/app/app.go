package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/chethan059/compliment-generator/internal/api"
	"github.com/chethan059/compliment-generator/internal/catalog"
	"github.com/chethan059/compliment-generator/internal/config"
	"github.com/chethan059/compliment-generator/internal/engine"
	"github.com/chethan059/compliment-generator/internal/notify"
	"github.com/chethan059/compliment-generator/internal/scheduler"
	"github.com/chethan059/compliment-generator/internal/store"
)

type App struct {
	cfg config.Config
	log *zap.Logger
}

func New(cfg config.Config, log *zap.Logger) *App {
	return &App{cfg: cfg, log: log}
}

// Run wires everything together and blocks until a shutdown signal.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting compliment generator",
		zap.String("http", a.cfg.HTTPAddr),
		zap.Duration("tick", a.cfg.TickInterval),
	)

	// Open SQLite, run migrations, seed the built-in catalog.
	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	defer func() { _ = repo.Close() }()

	builtin, err := catalog.Default()
	if err != nil {
		a.log.Error("load catalog failed", zap.Error(err))
		return err
	}
	if err := repo.SeedCompliments(ctx, builtin); err != nil {
		a.log.Error("seed catalog failed", zap.Error(err))
		return err
	}
	a.log.Info("store ready", zap.Int("catalog_size", len(builtin)))

	notifier, err := a.buildNotifier()
	if err != nil {
		return err
	}

	scheduleEng := engine.NewScheduler(a.log, a.cfg.DedupWindow)
	randomEng := engine.NewRandomTrigger(engine.RandomConfig{
		BaseChance: a.cfg.RandomBaseChance,
		MaxChance:  a.cfg.RandomMaxChance,
		Saturation: a.cfg.RandomSaturation,
		FromHour:   a.cfg.RandomFromHour,
		ToHour:     a.cfg.RandomToHour,
	}, a.log, nil)

	runner := scheduler.New(repo, a.log, notifier, scheduleEng, randomEng, a.cfg.TickInterval)

	handler := api.NewHandler(repo, a.log)
	srv := &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      api.NewRouter(handler, a.log),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go runner.Run(ctx)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	a.log.Info("shutdown signal received")

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		a.log.Warn("http server shutdown error", zap.Error(err))
	}
	return nil
}

// buildNotifier assembles the delivery fan-out: the log banner always, plus
// whichever external channels are configured.
func (a *App) buildNotifier() (notify.Notifier, error) {
	notifiers := []notify.Notifier{notify.NewBanner(a.log)}

	if a.cfg.WebhookURL != "" {
		notifiers = append(notifiers, notify.NewWebhook(a.cfg.WebhookURL, a.cfg.WebhookTimeout, a.log))
		a.log.Info("webhook delivery enabled")
	}
	if a.cfg.TelegramToken != "" && a.cfg.TelegramChatID != 0 {
		tg, err := notify.NewTelegram(a.cfg.TelegramToken, a.cfg.TelegramChatID, a.log)
		if err != nil {
			a.log.Error("telegram init failed", zap.Error(err))
			return nil, err
		}
		notifiers = append(notifiers, tg)
		a.log.Info("telegram delivery enabled")
	}

	return notify.NewMulti(a.log, notifiers...), nil
}
