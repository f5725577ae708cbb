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

	"github.com/fondsvergleich/vergleichsrechner/internal/api"
	"github.com/fondsvergleich/vergleichsrechner/internal/calculation"
	"github.com/fondsvergleich/vergleichsrechner/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; its VRECHNER_* entries act as environment overrides
			_ = godotenv.Load()
			return a.setup(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	a.bind("server_addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	db, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	engine := calculation.NewCalculationEngine()
	engine.SetLogger(calculation.NewZapLogger(a.logger))
	handler := api.NewHandler(db, store.NewBundleStore(db), engine, a.logger)
	router := api.NewRouter(handler, a.settings.CORSOrigins, a.logger)

	server := &http.Server{
		Addr:         a.settings.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Info("starting server", zap.String("addr", a.settings.ServerAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-quit:
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	a.logger.Info("server exited")
	return nil
}
