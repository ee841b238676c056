package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pos-terminal/internal/client/backend"
	"pos-terminal/internal/client/printer"
	"pos-terminal/internal/client/scale"
	"pos-terminal/internal/config"
	"pos-terminal/internal/db"
	"pos-terminal/internal/httpserver"
	catalogrepo "pos-terminal/internal/repository/catalog"
	closingrepo "pos-terminal/internal/repository/closing"
	pendingrepo "pos-terminal/internal/repository/pending"
	"pos-terminal/internal/service/cart"
	"pos-terminal/internal/service/catalog"
	"pos-terminal/internal/service/closing"
	"pos-terminal/internal/service/payment"
	"pos-terminal/internal/service/sync"
	"pos-terminal/internal/session"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	backendClient := backend.New(cfg.BackendURL, cfg.AppID)
	printerBridge := printer.New(cfg.PHPBin, cfg.PrinterScriptDir, cfg.PrinterName, logger)
	scaleReader := scale.New(cfg.ScaleFile, cfg.ScaleMaxAge, logger)

	catalogRepo := catalogrepo.NewPostgres(dbpool)
	pendingRepo := pendingrepo.NewPostgres(dbpool)
	closingRepo := closingrepo.NewPostgres(dbpool)

	sessions := session.NewManager(backendClient, cfg.BusinessID, cfg.BranchID, logger)
	cartService := cart.New()
	catalogService := catalog.New(backendClient, catalogRepo, logger)
	paymentService := payment.New(cartService, backendClient, printerBridge, sessions, pendingRepo, logger)
	closingService := closing.New(backendClient, closingRepo, printerBridge, sessions, logger)
	flusher := sync.NewFlusher(pendingRepo, backendClient, cfg.SyncInterval, logger)

	if err := catalogService.Refresh(ctx); err != nil {
		logger.Printf("initial catalog refresh failed: %v", err)
	}

	go flusher.Run(ctx)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Cart:     cartService,
		Payment:  paymentService,
		Closing:  closingService,
		Catalog:  catalogService,
		Sessions: sessions,
		Scale:    scaleReader,
	}, cfg.UIOrigin)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
