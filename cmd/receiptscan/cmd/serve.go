package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wenyin0054/fundora-app-sub001/internal/pipeline"
	"github.com/wenyin0054/fundora-app-sub001/internal/server"
)

// serveCmd starts the HTTP scan API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for the receipt scan API",
	Long: `Start an HTTP server exposing the receipt scan pipeline.

Endpoints:
  POST /scan        - Scan an uploaded receipt image or PDF
  GET  /scan/stream - WebSocket with per-stage scan progress
  GET  /healthz     - Health check
  GET  /metrics     - Prometheus metrics

Examples:
  receiptscan serve
  receiptscan serve --host 0.0.0.0 --port 3000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		host := cfg.Server.Host
		if cmd.Flags().Changed("host") {
			host, _ = cmd.Flags().GetString("host")
		}
		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		p, err := pipeline.NewBuilder().WithConfig(cfg.Pipeline).Build()
		if err != nil {
			return err
		}

		srv := server.New(p, server.Config{
			Host:        host,
			Port:        port,
			CORSOrigin:  cfg.Server.CORSOrigin,
			MaxUploadMB: cfg.Server.MaxUploadMB,
			TimeoutSec:  cfg.Server.TimeoutSec,
		})

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.Start(ctx, host, port)
	},
}

func init() {
	serveCmd.Flags().String("host", "", "host interface to bind")
	serveCmd.Flags().Int("port", 0, "port to listen on")

	rootCmd.AddCommand(serveCmd)
}
