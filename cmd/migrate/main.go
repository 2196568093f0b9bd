package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/contactform/backend/internal/logging"
	"github.com/contactform/backend/internal/repository"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  up (default)  未適用のマイグレーションを適用
  down          直近のマイグレーションを 1 つ戻す
  status        適用状況を表示
  reset         全マイグレーションを戻す`)
	os.Exit(1)
}

func main() {
	_ = godotenv.Load()
	logging.Setup(os.Getenv("LOG_LEVEL"))

	dbURI := os.Getenv("DATABASE_URI")
	if dbURI == "" {
		logging.Fatal("DATABASE_URI is required")
	}

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case "up", "down", "status", "reset":
	default:
		usage()
	}

	ctx := context.Background()
	pool, err := repository.NewPool(ctx, dbURI)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	db := repository.OpenSQL(pool)
	defer db.Close()

	if err := repository.SetupGoose(); err != nil {
		logging.Fatal("goose setup failed", "error", err)
	}
	if err := goose.RunContext(ctx, cmd, db, "."); err != nil {
		logging.Fatal("migration failed", "command", cmd, "error", err)
	}
	slog.Info("migration completed", "command", cmd)
}
