package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"geohash-codec/api"
	"geohash-codec/cache"
	"geohash-codec/config"
)

func newServeCmd() *cobra.Command {
	var configPath, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the codec over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.InitConfig(configPath); err != nil {
				return err
			}
			if addr != "" {
				config.Cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, config.Cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file, ./config.yaml by default")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")

	return cmd
}

// serve runs the HTTP API until ctx is done.
func serve(ctx context.Context, cfg *config.Config) error {
	var c *cache.Cache
	if cfg.Redis.Enabled {
		var err error
		if c, err = cache.InitializeRedis(ctx, cfg.Redis); err != nil {
			return err
		}
		defer c.Close()
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.RegisterRoutes(api.NewHandler(c)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("Server started on %s", cfg.Server.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Println("Server stopped.")
	return nil
}
