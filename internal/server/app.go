// Package server initializes and runs the main application server. It wires
// the remote API client, the document store gateway, the metadata
// repository, and the HTTP endpoint, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/docuchat/internal/filex"
	"github.com/dmitrijs2005/docuchat/internal/logging"
	"github.com/dmitrijs2005/docuchat/internal/server/config"
	"github.com/dmitrijs2005/docuchat/internal/server/gemini"
	"github.com/dmitrijs2005/docuchat/internal/server/index"
	"github.com/dmitrijs2005/docuchat/internal/server/repositories/uploads"
	"github.com/dmitrijs2005/docuchat/internal/server/services"

	hs "github.com/dmitrijs2005/docuchat/internal/server/http"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	httpServer *hs.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	client, err := gemini.NewClient(gemini.Config{
		BaseURL: cfg.GeminiBaseURL,
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client init error: %w", err)
	}

	uploadDir, err := filex.EnsureDir(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("upload dir init error: %w", err)
	}

	gateway := index.NewGateway(client, cfg.StoreIDFile, cfg.StoreDisplayName, cfg.PollInterval, logger)
	repo := uploads.NewFileRepository(filepath.Clean(cfg.MetaFile))

	chatService := services.NewChatService(gateway, client, logger)
	uploadService := services.NewUploadService(gateway, repo, uploadDir, logger)

	httpServer, err := hs.NewServer(cfg, logger, chatService, uploadService)
	if err != nil {
		return nil, fmt.Errorf("http server init error: %w", err)
	}

	return &App{config: cfg, logger: logger, httpServer: httpServer}, nil
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
	if err := app.httpServer.Run(ctx); err != nil {
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
