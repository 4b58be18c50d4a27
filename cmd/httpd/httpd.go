// Package httpd implements the HTTP server for the locator service.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/golocator/cmd/common"
	"github.com/jonesrussell/golocator/internal/api"
	"github.com/jonesrussell/golocator/internal/logger"
)

const (
	signalChannelBufferSize = 1
	errorChannelBufferSize  = 1
	defaultShutdownTimeout  = 30 * time.Second
)

// Cmd represents the httpd command.
var Cmd = &cobra.Command{
	Use:   "httpd",
	Short: "Start the locator HTTP server",
	Long: `Httpd serves locator generation and resolution over HTTP.

Endpoints:
  POST /api/v1/locators/generate
  POST /api/v1/locators/resolve
  GET  /health
`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return Start()
	},
}

// Command returns the httpd command for use in the root command
func Command() *cobra.Command {
	return Cmd
}

// Start starts the HTTP server and runs until interrupted.
// It handles graceful shutdown on SIGINT or SIGTERM signals.
func Start() error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	handler := api.NewLocatorsHandler(
		deps.Logger.WithComponent("api"),
		deps.Generator,
		deps.Evaluator,
		deps.Config.GetLocatorConfig(),
	)
	router := api.NewRouter(deps.Logger, handler)
	server := api.NewHTTPServer(deps.Config.GetServerConfig(), router)

	deps.Logger.Info("Starting HTTP server", "addr", server.Addr)
	errChan := make(chan error, errorChannelBufferSize)
	go func() {
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	return runUntilInterrupt(deps.Logger, server, errChan)
}

// runUntilInterrupt runs the server until interrupted by signal or error.
func runUntilInterrupt(log logger.Interface, server *http.Server, errChan chan error) error {
	sigChan := make(chan os.Signal, signalChannelBufferSize)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case serverErr := <-errChan:
		log.Error("Server error", "error", serverErr)
		return fmt.Errorf("server error: %w", serverErr)
	case sig := <-sigChan:
		return shutdownServer(log, server, sig)
	}
}

// shutdownServer performs graceful shutdown of the server.
func shutdownServer(log logger.Interface, server *http.Server, sig os.Signal) error {
	log.Info("Shutdown signal received", "signal", sig.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	log.Info("Stopping HTTP server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to stop server", "error", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	log.Info("Server stopped successfully")
	return nil
}
