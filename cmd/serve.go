package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/anprojects-core/controllers"
	"github.com/anprojects-core/routes"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := newApplication(ctx, cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		gin.SetMode(cfg.GinMode)
		router := gin.New()
		router.Use(gin.Logger(), gin.Recovery())
		routes.SetupRoutes(router, app.deps, controllers.NewHealthController(app.store, app.provider))

		server := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			zap.L().Info("server starting",
				zap.String("port", cfg.Port),
				zap.String("store", cfg.Store.Driver),
				zap.Bool("database", app.provider.Configured()),
				zap.Bool("auth", cfg.AuthEnabled()))
			errCh <- server.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}
