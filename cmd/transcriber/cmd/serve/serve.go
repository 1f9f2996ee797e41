package serve

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"neon-transcriber/internal/app"
	"neon-transcriber/internal/config"
)

var addr string

func init() {
	Cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address as host:port, overrides server.host and server.port")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the transcriber web server",
	Long: `Run the transcriber web server.

- GET  /                 the upload page
- POST /api/transcribe   multipart upload, field "file"
- GET  /health, /metrics, /swagger/index.html`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.ResolvePath(cmd.Flag("config").Value.String()))
		if err != nil {
			return err
		}
		if addr != "" {
			host, port, err := net.SplitHostPort(addr)
			if err != nil {
				return fmt.Errorf("invalid --addr %q: %w", addr, err)
			}
			cfg.Server.Host, cfg.Server.Port = host, port
		}

		return run(cmd.Context(), cfg)
	},
}

func run(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, cleanup, err := app.InitializeServer(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := srv.Start(); err != nil {
		return err
	}

	select {
	case err := <-srv.Done():
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
