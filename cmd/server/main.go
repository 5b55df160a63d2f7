// Package main is the entry point for the campushub server.
//
// Configuration comes from environment variables, with a .env file
// loaded first if present:
//
//	PORT              listen port (default 8080)
//	DB_PATH           SQLite database file (default data/campushub.db)
//	SESSION_LIFETIME  session duration, e.g. "24h" (default 24h)
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/sakif/campushub/internal/server"
)

func main() {
	// Missing .env is fine; real env vars always win.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	dbPath := "data/campushub.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	sessionLifetime := 24 * time.Hour
	if envTTL := os.Getenv("SESSION_LIFETIME"); envTTL != "" {
		d, err := time.ParseDuration(envTTL)
		if err != nil {
			logger.Error("invalid SESSION_LIFETIME value", slog.String("value", envTTL))
			os.Exit(1)
		}
		sessionLifetime = d
	}

	templateDir, _ := filepath.Abs("web/templates")
	staticDir, _ := filepath.Abs("web/static")

	cfg := server.Config{
		Port:            port,
		TemplateDir:     templateDir,
		StaticDir:       staticDir,
		DBPath:          dbPath,
		SessionLifetime: sessionLifetime,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
