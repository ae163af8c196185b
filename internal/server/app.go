// Package server wires configuration, storage, services and the REST API
// into a runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/shopnet/internal/logging"
	"github.com/dmitrijs2005/shopnet/internal/server/config"
	"github.com/dmitrijs2005/shopnet/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/shopnet/internal/server/rest"
	"github.com/dmitrijs2005/shopnet/internal/server/services"
)

type App struct {
	config              *config.Config
	logger              logging.Logger
	db                  *sql.DB
	repomanager         repomanager.RepositoryManager
	identityService     *services.IdentityService
	productService      *services.ProductService
	notificationService *services.NotificationService
	imageService        *services.ImageService
}

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, "json", c.LogLevel)

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	return &App{
		config:              c,
		logger:              logger,
		db:                  db,
		repomanager:         rm,
		identityService:     services.NewIdentityService(db, rm, c),
		productService:      services.NewProductService(db, rm),
		notificationService: services.NewNotificationService(db, rm),
		imageService:        services.NewImageService(c),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewServer(rest.Options{
		Address:                app.config.EndpointAddrHTTP,
		CORSAllowedOrigins:     app.config.CORSAllowedOrigins,
		AuthRateLimitPerMinute: app.config.AuthRateLimitPerMinute,
	}, app.logger, app.identityService, app.productService, app.notificationService, app.imageService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run applies migrations and serves until a signal arrives or the server
// fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
	app.logger.Info(ctx, "App stopped")
	return nil
}
