package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/VictorChidex1/eventflow/internal/checkout"
	"github.com/VictorChidex1/eventflow/internal/config"
	"github.com/VictorChidex1/eventflow/internal/server"
	"github.com/VictorChidex1/eventflow/internal/service"
	"github.com/VictorChidex1/eventflow/internal/storage"
	"github.com/VictorChidex1/eventflow/internal/tracker"
	"github.com/VictorChidex1/eventflow/internal/worker"
)

func main() {
	cfg := config.Load()

	store, cleanup, err := openStore(cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer cleanup()

	ledger := tracker.New(store)
	payments := service.NewPaymentService(cfg)
	sessions := checkout.NewSessions()
	flow := checkout.NewFlow(payments, ledger, sessions)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := worker.NewSessionSweeper(sessions, cfg.SessionTTL, time.Minute)
	go sweeper.Run(ctx)

	srv := server.New(cfg, flow, ledger).HTTPServer()
	go func() {
		log.Printf("eventflow listening on %s (gateway: %s, store: %s)", cfg.ListenAddr, cfg.Mode, cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func openStore(cfg config.Config) (storage.Store, func(), error) {
	switch cfg.Store {
	case "postgres":
		pg, err := storage.NewPostgres(cfg)
		if err != nil {
			return nil, nil, err
		}
		return pg, func() { _ = pg.Close() }, nil
	case "memory":
		return storage.NewMemory(), func() {}, nil
	default:
		return storage.NewFile(cfg.StorePath), func() {}, nil
	}
}
