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

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/genaichat/internal/bots"
	"github.com/ziadkadry99/genaichat/internal/logger"
	"github.com/ziadkadry99/genaichat/internal/server"
)

var (
	servePort     int
	serveAllowAll bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Google Chat app webhook server",
	Long: `Starts the HTTP server Google Chat posts app events to (POST /), with a
health check on GET /health.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cfg, os.Stdout)

		table, err := loadCommandTable(cfg)
		if err != nil {
			return fmt.Errorf("loading commands: %w", err)
		}

		// Credentials refresh for the life of the process.
		generator, err := createGeneratorFromConfig(context.Background(), cfg)
		if err != nil {
			return err
		}

		port := cfg.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		srv := server.New(server.Config{
			Port:     port,
			AllowAll: serveAllowAll,
		})

		gateway := bots.NewGateway(bots.NewProcessor(table, generator))
		bots.RegisterRoutes(srv.Router(), bots.NewChatHandler(gateway))

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logger.L.Info("Shutting down server.")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.L.Error("Server shutdown failed.", "error", err.Error())
			}
		}()

		logger.L.Info("genaichat starting.",
			"version", Version,
			"port", port,
			"provider", cfg.Provider,
			"model", cfg.Model,
			"vertexai", cfg.VertexAI(),
			"commands", table.Len(),
		)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveAllowAll, "cors-allow-all", false, "Allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serveCmd)
}
