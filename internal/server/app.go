// Package server initializes and runs the account server: it validates
// configuration, connects storage, wires the services, and serves the HTTP
// API with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/skillforge/resumekeeper/internal/logging"
	"github.com/skillforge/resumekeeper/internal/server/auth"
	"github.com/skillforge/resumekeeper/internal/server/config"
	"github.com/skillforge/resumekeeper/internal/server/httpapi"
	"github.com/skillforge/resumekeeper/internal/server/ratelimit"
	"github.com/skillforge/resumekeeper/internal/server/services"
	"github.com/skillforge/resumekeeper/internal/server/shared/db"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	manager    db.RepositoryManager
	limiter    *ratelimit.MemoryLimiter
	httpServer *httpapi.Server
}

// NewApp builds the application. Configuration errors (missing secret or
// DSN) and storage failures are returned so the process can abort instead
// of degrading silently.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewJSONLogger(os.Stdout)

	manager, err := db.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	tokens := auth.NewTokenManager([]byte(cfg.SecretKey), cfg.SessionTokenValidity, nil)
	limiter := ratelimit.NewMemoryLimiter(cfg.RateLimitMax, cfg.RateLimitWindow, nil)

	accountService := services.NewAccountService(
		manager.Accounts(),
		auth.NewHasher(cfg.BcryptCost),
		tokens,
		limiter,
		logger,
		services.AccountServiceOptions{
			LockoutThreshold: cfg.LockoutThreshold,
			LockoutDuration:  cfg.LockoutDuration,
		},
	)

	httpServer := httpapi.NewServer(cfg.Addr, accountService, tokens, logger, nil, cfg.Production())

	return &App{
		config:     cfg,
		logger:     logger,
		manager:    manager,
		limiter:    limiter,
		httpServer: httpServer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting server", "addr", app.config.Addr, "env", app.config.Environment)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.limiter.SweepLoop(ctx.Done(), time.Minute)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, "http server error", "error", err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "closing db", "error", err.Error())
	}

	app.logger.Info(ctx, "server stopped")
}
