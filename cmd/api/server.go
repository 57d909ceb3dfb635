package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
	"library-catalog/pkg/container"
)

const (
	startupTimeout  = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

func Serve(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ========================================
	// 1. BUILD DI CONTAINER
	// ========================================
	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	appContainer, err := container.NewContainer(startCtx, cfg)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer appContainer.Cleanup()

	// ========================================
	// 2. CONFIGURE HTTP SERVER
	// ========================================
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           SetupRouter(appContainer),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// ========================================
	// 3. START SERVER (NON-BLOCKING)
	// ========================================
	serveErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("graphql", fmt.Sprintf("http://localhost:%s/graphql", cfg.App.Port)).
			Msg("Server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// ========================================
	// 4. GRACEFUL SHUTDOWN
	// ========================================
	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}
