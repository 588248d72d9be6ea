package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/babburibeiro/WebAppCashUp/internal/cache"
	"github.com/babburibeiro/WebAppCashUp/internal/cli"
	apphttp "github.com/babburibeiro/WebAppCashUp/internal/http"
	"github.com/babburibeiro/WebAppCashUp/internal/log"
	"github.com/babburibeiro/WebAppCashUp/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)
	store := cli.OpenStore(cfg, logger)

	svc := services.NewFinanceService(store, logger)
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("close service failed", log.FieldError, err)
		}
	}()

	srv := apphttp.NewServer(cfg, svc, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := cache.NewSweeper(logger)
	srv.RegisterCaches(sweeper)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		sweeper.Run(gctx, 10*time.Minute)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down", log.FieldOperation, log.OpShutdown)
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
