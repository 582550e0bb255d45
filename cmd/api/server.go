package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"postboard-backend/pkg/container"
)

func Serve() {
	// ========================================
	// 1. BUILD DI CONTAINER
	// ========================================
	appContainer, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize container")
	}
	defer appContainer.Cleanup()

	// ========================================
	// 2. SETUP ROUTER + HTTP SERVER
	// ========================================
	router := SetupRouter(appContainer)

	port := appContainer.Config.App.Port
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", port),
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// ========================================
	// 3. START SERVER (NON-BLOCKING)
	// ========================================
	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", port).
			Str("environment", appContainer.Config.App.Environment).
			Msg("Server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// ========================================
	// 4. GRACEFUL SHUTDOWN
	// ========================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down server...")
	case err := <-serverErr:
		log.Error().Err(err).Msg("Server failed")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
