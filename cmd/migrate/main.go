package main

import (
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"example.com/expense-tracker/backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("не удалось загрузить конфигурацию", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("pgx", cfg.Database.DSN())
	if err != nil {
		slog.Error("не удалось открыть БД", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	wd, err := os.Getwd()
	if err != nil {
		slog.Error("не удалось получить рабочую директорию", "error", err)
		os.Exit(1)
	}

	migrationsDir := filepath.Join(wd, "migrations")

	slog.Info("применяем миграции", "dir", migrationsDir)

	if err := goose.Up(db, migrationsDir); err != nil {
		slog.Error("миграции завершились с ошибкой", "error", err)
		os.Exit(1)
	}

	slog.Info("миграции применены")
}
