package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/odconnect/receive-tracking-order/checklist"
	"github.com/odconnect/receive-tracking-order/engine"
	"github.com/odconnect/receive-tracking-order/feeds"
	"github.com/odconnect/receive-tracking-order/infrastructure/backend"
	httpserver "github.com/odconnect/receive-tracking-order/infrastructure/http"
	"github.com/odconnect/receive-tracking-order/infrastructure/kv"
	"github.com/odconnect/receive-tracking-order/infrastructure/sqlite"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	addr := getenv("APP_ADDR", ":8080")
	dbPath := getenv("SQLITE_PATH", "receivetracking.db")
	scriptURL := getenv("SCRIPT_URL", "")
	adminTokenHash := getenv("ADMIN_TOKEN_HASH", "")

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	db, err := sqlite.Open(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyMigrations(context.Background(), db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	urls := feeds.URLs{
		Brand:     getenv("SHEET_URL_BRAND", ""),
		System:    getenv("SHEET_URL_SYSTEM", ""),
		Special:   getenv("SHEET_URL_SPECIAL", ""),
		Equipment: getenv("SHEET_URL_EQUIPMENT", ""),
		Tracking:  getenv("SHEET_URL_TRACKING", ""),
	}

	checks := checklist.New(kv.NewSQLiteStore(db))
	loader := feeds.NewLoader(urls, nil)
	backendClient := backend.New(scriptURL, nil)

	eng := engine.New(loader, checks, backendClient, db, logger)

	// First load happens off the startup path so a slow or broken sheet
	// never blocks the listener. The API answers 503 until it lands.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := eng.Reload(ctx); err != nil {
			logger.Error("initial load failed", slog.Any("err", err))
		}
	}()

	server := httpserver.NewServer(addr, eng, db, adminTokenHash)
	if err := server.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}
	log.Printf("receivetracking listening on %s", addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
