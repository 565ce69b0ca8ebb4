package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	_ "lightshop/docs"
	"lightshop/pkg/api"
	"lightshop/pkg/cart"
	"lightshop/pkg/cart/memory"
	cartredis "lightshop/pkg/cart/redis"
	"lightshop/pkg/config"
	"lightshop/pkg/logger"
	"lightshop/pkg/otel"
)

var configPath string

// @title Lightshop API
// @version 1.0
// @description Storefront catalog and session cart
// @host localhost:8443
// @BasePath /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "lightshop",
		Short:        "Festive lights storefront API",
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the YAML config file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
	root.AddCommand(serve, newCatalogCmd())
	return root
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	lvl, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logger.New(os.Stdout, lvl, "lightshop", otel.GetTraceID), nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, shutdown, err := otel.InitTracing(log, otel.Config{
		ServiceName: "lightshop",
		Host:        cfg.Tracing.Host,
		Probability: cfg.Tracing.Probability,
	})
	if err != nil {
		log.Error(ctx, "init tracing", "error", err)
		return err
	}
	defer shutdown(context.Background())

	cat, closeCatalog, err := loadCatalog(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "load catalog", "source", cfg.Catalog.Source, "error", err)
		return err
	}
	closeCatalog()
	log.Info(ctx, "catalog loaded", "source", cfg.Catalog.Source, "products", cat.Len())

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "open cart store", "store", cfg.Cart.Store, "error", err)
		return err
	}
	defer closeStore()

	srv := api.New(cart.NewService(cat, store, log), store, log, tp.Tracer("lightshop"), cfg.Session.TTL)
	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", cfg.HTTP.Addr, "tls", cfg.HTTP.TLSCert != "")
		if cfg.HTTP.TLSCert != "" {
			errCh <- httpSrv.ListenAndServeTLS(cfg.HTTP.TLSCert, cfg.HTTP.TLSKey)
			return
		}
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "server closed", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "shutdown", "error", err)
		return err
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (cart.Store, func(), error) {
	switch cfg.Cart.Store {
	case config.StoreRedis:
		client := cartredis.NewClient(cfg.Cart.RedisAddr)
		s := cartredis.New(client, cfg.Session.TTL, log)
		if err := s.WaitReady(ctx, 10, 5*time.Second); err != nil {
			client.Close()
			return nil, nil, err
		}
		return s, func() { client.Close() }, nil
	default:
		return memory.New(), func() {}, nil
	}
}
