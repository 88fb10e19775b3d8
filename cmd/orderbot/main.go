package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/balwinder10003-code/ATTRAAH/cmd/orderbot/app"
	"github.com/balwinder10003-code/ATTRAAH/configs"
)

const (
	backoffMin     = 1 * time.Second
	backoffMax     = 60 * time.Second
	healthyUptime  = 10 * time.Minute
	shutdownWindow = 10 * time.Second
)

func main() {
	env := os.Getenv("APP_ENV") // dev | staging | prod
	if env == "" {
		env = "dev"
	}

	cfg, err := configs.Load("configs", env)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Supervised run loop: a crashed run is restarted with exponential
	// backoff, reset once a run stays up long enough to count as healthy.
	backoff := backoffMin
	for {
		started := time.Now()
		err := runOnce(ctx, cfg)
		if ctx.Err() != nil {
			log.Printf("orderbot: shutting down")
			return
		}
		if time.Since(started) >= healthyUptime {
			backoff = backoffMin
		}
		log.Printf("orderbot: run ended: %v; restarting in %s", err, backoff)

		select {
		case <-ctx.Done():
			log.Printf("orderbot: shutting down")
			return
		case <-time.After(backoff):
		}
		backoff = nextBackoff(backoff)
	}
}

func nextBackoff(cur time.Duration) time.Duration {
	next := cur * 2
	if next > backoffMax {
		return backoffMax
	}
	return next
}

func runOnce(ctx context.Context, cfg configs.Config) error {
	a, cleanup, err := app.InitWithConfig(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         cfg.App.HTTPAddr,
		Handler:      a.Router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("orderbot listening on %s", cfg.App.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), shutdownWindow)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
