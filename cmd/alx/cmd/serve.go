package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/Vicky-hu-coder/alx-console/auth"
	"github.com/Vicky-hu-coder/alx-console/backend"
	"github.com/Vicky-hu-coder/alx-console/config"
	"github.com/Vicky-hu-coder/alx-console/console"
	"github.com/Vicky-hu-coder/alx-console/session"
	bboltkeeper "github.com/Vicky-hu-coder/alx-console/storage/bbolt"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the console server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		logger := cfg.Logger()

		keeper, err := bboltkeeper.Open(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("opening session storage: %w", err)
		}
		defer keeper.Close()

		store := session.NewStore(keeper)
		if err := store.Initialize(); err != nil {
			return fmt.Errorf("restoring session: %w", err)
		}

		authClient := auth.NewClient(cfg.BackendURL)
		flow := auth.NewFlow(authClient, store, auth.WithLogger(logger))
		backendClient := backend.NewClient(cfg.BackendURL, store, backend.WithLogger(logger))

		c, err := console.New(store, flow, backendClient, console.WithLogger(logger))
		if err != nil {
			return err
		}

		r := chi.NewRouter()
		r.Use(chimiddleware.Logger)
		r.Use(chimiddleware.Recoverer)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})
		r.Mount("/", c.Router())

		server := &http.Server{
			Addr:              cfg.Listen,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- fmt.Errorf("server failed: %w", err)
				return
			}
			done <- nil
		}()

		logger.Info("console started", "listen", cfg.Listen, "backend", cfg.BackendURL, "data", cfg.DataDir)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			return nil
		case err := <-done:
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "alx.yaml", "Path to the configuration file")
}
