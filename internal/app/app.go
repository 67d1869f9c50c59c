package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/wb-go/wbf/zlog"

	"github.com/studentnewspaper/imagemage/internal/config"
	image_h "github.com/studentnewspaper/imagemage/internal/http-server/handler/image"
	"github.com/studentnewspaper/imagemage/internal/http-server/router"
	"github.com/studentnewspaper/imagemage/internal/repository/image/fs"
	image_uc "github.com/studentnewspaper/imagemage/internal/usecase/image"
	"github.com/studentnewspaper/imagemage/internal/usecase/processor"
)

type App struct {
	cfg    *config.Config
	server *http.Server
	logger *zlog.Zerolog
}

func NewApp(cfg *config.Config, logger *zlog.Zerolog) (*App, error) {
	info, err := os.Stat(cfg.RootDir)
	if err != nil {
		return nil, fmt.Errorf("root directory is not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root directory %q is not a directory", cfg.RootDir)
	}

	fileRepo := fs.NewFileRepository(cfg.RootDir)
	pipeline := processor.NewImageProcessor(logger)
	imageUsecase := image_uc.NewImageUsecase(fileRepo, pipeline, logger)
	imageHandler := image_h.NewImageHandler(imageUsecase, logger)

	h := &router.Handler{
		ImageHandler: imageHandler,
	}

	mux := router.SetupRouter(h, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		cfg:    cfg,
		server: server,
		logger: logger,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().
		Str("addr", a.cfg.Server.Addr).
		Str("root_dir", a.cfg.RootDir).
		Bool("signed_requests", a.cfg.IsProduction()).
		Msg("Starting server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.handleSignals(cancel)

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		a.logger.Error().Err(err).Msg("Server error")
		return err
	case <-ctx.Done():
		a.logger.Info().Msg("Shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error().Err(err).Msg("Server shutdown failed")
		}

		a.logger.Info().Msg("Server stopped gracefully")
		return nil
	}
}

func (a *App) handleSignals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	a.logger.Info().Str("signal", sig.String()).Msg("Received signal")
	cancel()
}
