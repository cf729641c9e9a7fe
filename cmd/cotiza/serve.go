package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/darideveloper/cotiza"
	"github.com/darideveloper/cotiza/internal/adapters/mailrelay"
	redisStore "github.com/darideveloper/cotiza/internal/adapters/redis"
	"github.com/darideveloper/cotiza/internal/brand"
	"github.com/darideveloper/cotiza/internal/config"
	"github.com/darideveloper/cotiza/internal/i18n"
	"github.com/darideveloper/cotiza/internal/logging"
	"github.com/darideveloper/cotiza/internal/server"
	"github.com/darideveloper/cotiza/pkg/catalog"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the quote wizard HTTP server",
	Long:  `Starts the quote wizard as a JSON API over HTTP, with sessions kept in memory or Redis.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTPAddr = addr
		}
		if path, _ := cmd.Flags().GetString("catalog"); path != "" {
			cfg.CatalogFile = path
		}

		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		reg := catalog.Default()
		if cfg.CatalogFile != "" {
			var err error
			reg, err = catalog.Load(cfg.CatalogFile)
			if err != nil {
				return err
			}
			logger.Info("catalog override loaded", "path", cfg.CatalogFile)
		}

		brands := brand.Defaults()
		if cfg.BrandFile != "" {
			var err error
			brands, err = brand.LoadFile(cfg.BrandFile, cfg.DefaultBrand)
			if err != nil {
				return err
			}
		}

		bundle, err := i18n.Load("en")
		if err != nil {
			return err
		}

		opts := []cotiza.Option{
			cotiza.WithCatalog(reg),
			cotiza.WithLogger(logger),
			cotiza.WithNotifier(mailrelay.New(
				cfg.RelayURL, cfg.RelayAPIKey, cfg.RelayUser,
				mailrelay.WithTimeout(cfg.RelayTimeout),
			)),
		}
		if cfg.RedisAddr != "" {
			store := redisStore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
				redisStore.WithTTL(cfg.SessionTTL))
			defer store.Close()
			opts = append(opts, cotiza.WithStore(store))
			logger.Info("session store: redis", "addr", cfg.RedisAddr, "ttl", cfg.SessionTTL)
		} else {
			logger.Info("session store: memory")
		}

		svc := cotiza.New(opts...)
		srv := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: server.New(svc, brands, bundle, server.WithLogger(logger)).Handler(),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("cotiza server starting", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("could not stop server: %w", err)
				}
			}
			logger.Info("cotiza server stopped")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address (overrides COTIZA_ADDR)")
}
