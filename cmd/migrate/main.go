package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"

	"github.com/yourusername/trivia-catalog/internal/config"
	"github.com/yourusername/trivia-catalog/pkg/database"
)

// Утилита управления схемой каталога:
//
//	migrate -cmd up              применить все миграции
//	migrate -cmd down -steps 1   откатить последнюю миграцию
//	migrate -cmd force -version 1  снять dirty-состояние, выставив версию
//	migrate -cmd version         показать текущую версию
func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", "config/config.yaml"), "path to config file")
	command := flag.String("cmd", "up", "up | down | force | version")
	steps := flag.Int("steps", 1, "number of migrations to roll back for down")
	version := flag.Int("version", -1, "version to force")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	m, err := database.NewMigrator(db, cfg.Database.MigrationsPath)
	if err != nil {
		log.Fatal(err)
	}

	if err := execute(m, *command, *steps, *version); err != nil {
		log.Fatalf("migrate %s failed: %v", *command, err)
	}
}

func execute(m *migrate.Migrate, command string, steps, version int) error {
	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "down":
		if steps < 1 {
			return fmt.Errorf("steps must be positive, got %d", steps)
		}
		if err := m.Steps(-steps); err != nil {
			return err
		}
	case "force":
		if version < 0 {
			return errors.New("-version is required for force")
		}
		fmt.Printf("Forcing migration version to %d to clean dirty state...\n", version)
		if err := m.Force(version); err != nil {
			return err
		}
	case "version":
	default:
		return fmt.Errorf("unknown command %q", command)
	}

	v, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		fmt.Println("Database has no migrations applied")
	case err != nil:
		return err
	default:
		fmt.Printf("Database version: %d (dirty: %t)\n", v, dirty)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
