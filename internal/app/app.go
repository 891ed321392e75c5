// Package app wires the repository, services, clients and background jobs
// into one container that the commands drive.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/promphitak-p/praweena/internal/api"
	"github.com/promphitak-p/praweena/internal/config"
	"github.com/promphitak-p/praweena/internal/database"
	"github.com/promphitak-p/praweena/internal/events"
	"github.com/promphitak-p/praweena/internal/notify"
	"github.com/promphitak-p/praweena/internal/services/issue"
	"github.com/promphitak-p/praweena/internal/services/purchase"
	"github.com/promphitak-p/praweena/internal/services/todo"
	"github.com/promphitak-p/praweena/internal/storage"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	cfg *config.Config
	db  *sqlx.DB
	// Repo gives commands direct row access (migrate, seed, export)
	Repo *database.Repository
	Hub  *events.Hub

	TodoService     todo.Service
	PurchaseService purchase.Service
	IssueService    issue.Service

	// Pusher is nil when LINE is not configured
	Pusher notify.Pusher
	// Files is nil when the signed-URL API is not configured
	Files  *storage.Client
	Digest *notify.Digest
	// Notifier delivers scheduled pushes in the background
	Notifier *notify.Notifier

	logger *slog.Logger
}

// New creates a new App with all services initialized. Unless WithDB is
// given, the database named in cfg is opened and migrated.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	db := o.db
	if db == nil {
		var err error
		db, err = database.InitDB(ctx, cfg.Database.Driver, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
	}
	repo := database.NewRepository(db)
	hub := events.NewHub(0, 0)

	a := &App{
		cfg:             cfg,
		db:              db,
		Repo:            repo,
		Hub:             hub,
		TodoService:     todo.NewService(todo.StoresFrom(repo), hub),
		PurchaseService: purchase.NewService(repo.Purchases, repo.Todos, hub),
		IssueService:    issue.NewService(repo.Issues, hub),
		logger:          o.logger,
	}

	switch {
	case o.pusher != nil:
		a.Pusher = o.pusher
	case cfg.Line.AccessToken != "":
		a.Pusher = notify.NewLineClient(notify.Config{
			PushURL:     cfg.Line.PushURL,
			AccessToken: cfg.Line.AccessToken,
			DefaultTo:   cfg.Line.DefaultTo,
		})
	}
	if a.Pusher != nil {
		a.Digest = notify.NewDigest(repo.Leads, a.Pusher, "")
		a.Notifier = notify.NewNotifier(a.Pusher)
	}

	if cfg.Storage.BaseURL != "" {
		a.Files = storage.NewClient(storage.Config{
			BaseURL:     cfg.Storage.BaseURL,
			MaxFileSize: cfg.Storage.MaxFileSize,
			Concurrency: cfg.Storage.Concurrency,
		})
	}
	return a, nil
}

// Router builds the HTTP handler over the app's services
func (a *App) Router() *gin.Engine {
	deps := api.Deps{
		Todos:          a.TodoService,
		Purchases:      a.PurchaseService,
		Issues:         a.IssueService,
		Events:         a.Hub,
		Pusher:         a.Pusher,
		JWTSecret:      a.cfg.Auth.JWTSecret,
		AllowedOrigins: a.cfg.Server.AllowedOrigins,
		Public:         a.cfg.Public,
	}
	// a typed nil would make the interface non-nil
	if a.Files != nil {
		deps.Files = a.Files
	}
	return api.NewRouter(deps)
}

// Scheduler returns a cron runner in Bangkok time with the daily digest
// registered when enabled and LINE is configured. The caller starts and
// stops it.
func (a *App) Scheduler() (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(notify.Bangkok), cron.WithLogger(cronLogger{a.logger}))
	if !a.cfg.Digest.Enabled {
		return c, nil
	}
	if a.Digest == nil {
		a.logger.Warn("daily digest enabled but LINE is not configured; skipping")
		return c, nil
	}
	_, err := c.AddFunc(a.cfg.Digest.Schedule, a.runDigest)
	if err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", a.cfg.Digest.Schedule, err)
	}
	return c, nil
}

// runDigest is the cron job: the summary is built here and pushed in the
// background so a slow LINE API never holds up the scheduler
func (a *App) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := a.Digest.Queue(ctx, a.Notifier); err != nil {
		a.logger.Error("daily digest failed", "error", err)
	}
}

// Serve runs the event hub, the scheduler and the HTTP server until ctx is
// cancelled or one of them fails
func (a *App) Serve(ctx context.Context) error {
	sched, err := a.Scheduler()
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Hub.Run(ctx)
		return nil
	})
	g.Go(func() error {
		sched.Start()
		<-ctx.Done()
		<-sched.Stop().Done()
		return nil
	})
	g.Go(func() error {
		return api.Serve(ctx, a.cfg.Server.Addr, a.Router(), a.cfg.Server.ShutdownTimeout)
	})
	return g.Wait()
}

// Close releases the database connection
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// cronLogger adapts slog to cron's logger
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
