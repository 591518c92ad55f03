// Package server initializes and runs the reminder host application.
// It selects the storage backend, wires the contract, handles graceful
// shutdown, and starts the HTTP server.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/remindkeeper/internal/contract"
	"github.com/dmitrijs2005/remindkeeper/internal/kvstore"
	"github.com/dmitrijs2005/remindkeeper/internal/logging"
	"github.com/dmitrijs2005/remindkeeper/internal/server/api"
	"github.com/dmitrijs2005/remindkeeper/internal/server/config"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	contract *contract.Contract
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	store, err := newStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	return &App{config: c, logger: logger, contract: contract.New(store)}, nil
}

// newStore selects the persistence backend from the configuration.
func newStore(ctx context.Context, c *config.Config) (kvstore.Store, error) {
	switch c.StoreBackend {
	case "memory":
		return kvstore.NewMemoryStore(), nil
	case "postgres":
		return kvstore.OpenPostgresStore(ctx, c.DatabaseDSN)
	case "s3":
		client, err := kvstore.NewS3Client(ctx, kvstore.S3ClientConfig{
			Region:       c.S3Region,
			RootUser:     c.S3RootUser,
			RootPassword: c.S3RootPassword,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			return nil, err
		}
		return kvstore.NewS3Store(c.S3Bucket, client), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", c.StoreBackend)
	}
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := api.NewServer(app.config.EndpointAddr, app.logger, app.contract,
		app.config.SecretKey, app.config.TokenValidityDuration)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

}
