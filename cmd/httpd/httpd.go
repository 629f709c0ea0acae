// Package httpd implements the HTTP server command, serving the harvested
// catalog over a JSON API.
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

	"github.com/jonesrussell/goharvest/cmd/common"
	"github.com/jonesrussell/goharvest/internal/api"
)

const (
	signalChannelBufferSize = 1
	errorChannelBufferSize  = 1
	defaultShutdownTimeout  = 30 * time.Second
)

// Command returns the httpd command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Serve the harvested catalog over HTTP",
		Long: `Loads the harvested catalog from the output file and serves it over a
JSON API until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			return run(deps)
		},
	}
}

// run starts the server and blocks until interrupted.
func run(deps *common.CommandDeps) error {
	store := api.NewCatalogStore(deps.Logger)

	// A missing catalog file is not fatal: the server starts empty and the
	// file can be produced by a later harvest.
	if err := store.LoadFile(deps.Config.Output.File); err != nil {
		deps.Logger.Warn("Failed to load catalog, serving empty set",
			"path", deps.Config.Output.File,
			"error", err,
		)
	}

	server := &http.Server{
		Addr:         deps.Config.Server.Address,
		Handler:      api.SetupRouter(deps.Logger, store),
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	deps.Logger.Info("Starting HTTP server", "addr", server.Addr)

	errChan := make(chan error, errorChannelBufferSize)
	go func() {
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	return runUntilInterrupt(deps, server, errChan)
}

// runUntilInterrupt waits for a shutdown signal or a server error.
func runUntilInterrupt(deps *common.CommandDeps, server *http.Server, errChan chan error) error {
	sigChan := make(chan os.Signal, signalChannelBufferSize)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case serverErr := <-errChan:
		deps.Logger.Error("Server error", "error", serverErr)
		return fmt.Errorf("server error: %w", serverErr)
	case sig := <-sigChan:
		deps.Logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}

		deps.Logger.Info("Server stopped successfully")
		return nil
	}
}
