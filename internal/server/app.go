// Package server wires configuration, storage, services and the HTTP API
// together and runs them until the process is asked to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/l1t48/Test-backend/internal/logging"
	"github.com/l1t48/Test-backend/internal/server/auth"
	"github.com/l1t48/Test-backend/internal/server/config"
	"github.com/l1t48/Test-backend/internal/server/repositories/repomanager"
	"github.com/l1t48/Test-backend/internal/server/rest"
	"github.com/l1t48/Test-backend/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *rest.Server
}

// NewApp opens the database, applies migrations and assembles the API.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	app, err := newApp(ctx, cfg, logger, db, rm)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, cfg *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) (*App, error) {
	if cfg.UsesDefaultIssuer() {
		logger.Warn(ctx, "JWT issuer is not configured, using placeholder", "issuer", config.DefaultIssuer)
	}

	issuer, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("token issuer init error: %w", err)
	}

	cookie := auth.NewSessionCookie(cfg.CookieName, cfg.CookieDomain, cfg.CookieSecure, cfg.SameSite())

	us := services.NewUserService(db, rm, auth.NewBcryptHasher(cfg.BcryptCost), issuer)
	bs := services.NewBookService(db, rm)
	qs := services.NewQuoteService(db, rm)

	gin.SetMode(cfg.GinMode)

	opts := rest.Options{
		Address:         cfg.HTTPAddr,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}
	srv := rest.NewServer(opts, logger, us, issuer, bs, qs, cookie)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
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

// Run serves the API until ctx is cancelled or a termination signal
// arrives, then closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	runErr := app.server.Run(ctx)
	if runErr != nil {
		app.logger.Error(ctx, "HTTP server failed", "error", runErr)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
	return runErr
}
