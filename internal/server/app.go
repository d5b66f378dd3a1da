// Package server wires the TalentDesk process together: storage, services,
// the session layer and the HTTP API, and runs them until a signal arrives.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/talentdesk/internal/logging"
	"github.com/dmitrijs2005/talentdesk/internal/seed"
	"github.com/dmitrijs2005/talentdesk/internal/server/config"
	"github.com/dmitrijs2005/talentdesk/internal/server/httpapi"
	"github.com/dmitrijs2005/talentdesk/internal/server/metrics"
	"github.com/dmitrijs2005/talentdesk/internal/server/oauth"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/memory"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/talentdesk/internal/server/services"
	"github.com/dmitrijs2005/talentdesk/internal/server/session"
	"golang.org/x/sync/errgroup"
)

var errNoSecret = errors.New("token and session secrets must be set")

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	repos   repomanager.RepositoryManager
	metrics *metrics.Metrics
	server  *httpapi.Server
	// metricsServer is nil unless MetricsAddr is set.
	metricsServer *httpapi.Server
}

// OpenStore returns the repository manager for dsn. The "memory" DSN yields
// the in-process store and a nil *sql.DB; anything else is a Postgres DSN.
func OpenStore(ctx context.Context, dsn string) (*sql.DB, repomanager.RepositoryManager, error) {
	if dsn == memory.DSN {
		return nil, memory.NewRepositoryManager(), nil
	}
	db, err := repomanager.OpenDB(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}
	return db, repomanager.NewPostgresRepositoryManager(), nil
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, logOut)
	if err != nil {
		return nil, err
	}

	db, repos, err := OpenStore(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	app := &App{config: c, logger: logger, db: db, repos: repos}

	if err := repos.RunMigrations(ctx, db); err != nil {
		app.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	if db == nil {
		if _, err := seed.Run(ctx, nil, repos, time.Now()); err != nil {
			app.Close()
			return nil, err
		}
		logger.Info(ctx, "in-memory store seeded with demo data")
	}

	if c.MetricsEnabled {
		if app.metrics, err = metrics.New(); err != nil {
			app.Close()
			return nil, fmt.Errorf("metrics: %w", err)
		}
	}

	h, err := app.handler()
	if err != nil {
		app.Close()
		return nil, err
	}
	app.server = httpapi.NewServer(c.HTTPAddr, h, c.ReadTimeout, c.WriteTimeout, logger)
	if app.metrics != nil && c.MetricsAddr != "" {
		app.metricsServer = httpapi.NewServer(c.MetricsAddr, httpapi.NewMetricsRouter(app.metrics),
			c.ReadTimeout, c.WriteTimeout, logger.With("listener", "metrics"))
	}
	return app, nil
}

func (app *App) handler() (http.Handler, error) {
	c := app.config
	if c.TokenSecret == "" || c.SessionSecret == "" {
		return nil, errNoSecret
	}

	cookies, err := session.NewCookieStore([]byte(c.SessionSecret), []byte(c.SessionEncryptionKey), c.SessionMaxAge, c.CookieSecure)
	if err != nil {
		return nil, err
	}

	var providers []oauth.Provider
	if c.GoogleEnabled() {
		providers = append(providers, oauth.NewGoogle(c.GoogleClientID, c.GoogleClientSecret, c.GoogleRedirectURL))
	}

	users := services.NewUserService(app.db, app.repos)
	tokenSecret := []byte(c.TokenSecret)

	return httpapi.NewRouter(httpapi.Deps{
		Users:           users,
		Talents:         services.NewTalentService(app.db, app.repos),
		Referentes:      services.NewReferenteService(app.db, app.repos),
		Interactions:    services.NewInteractionService(app.db, app.repos),
		Sessions:        session.NewManager(users, tokenSecret, c.BearerValidity, app.metrics, app.logger),
		Cookies:         cookies,
		Providers:       oauth.NewRegistry(providers...),
		Metrics:         app.metrics,
		ExternalMetrics: c.MetricsAddr != "",
		Logger:          app.logger,
		TokenSecret:     tokenSecret,
		StrictBearer:    c.StrictBearer,
	}), nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			cancelFunc()
		case <-done:
		}
	}()
	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	stop := app.initSignalHandler(cancelFunc)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.HTTPAddr)

	// Either listener failing stops the other.
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.server.Run(ctx)
	})
	if app.metricsServer != nil {
		g.Go(func() error {
			return app.metricsServer.Run(ctx)
		})
	}

	err := g.Wait()
	app.Close()
	app.logger.Info(context.Background(), "app stopped")
	return err
}

// Close releases the database handle and flushes the logger.
func (app *App) Close() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "close db", "error", err)
		}
		app.db = nil
	}
	if s, ok := app.logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}
