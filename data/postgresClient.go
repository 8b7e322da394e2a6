package data

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KotFed0t/loi_bazaar_bot/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/jmoiron/sqlx"
)

const (
	defaultConnAttempts = 10
	connTimeout         = time.Second
)

func postgresDSN(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s password=%s",
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.User,
		cfg.Postgres.DbName,
		cfg.Postgres.SSLMode,
		cfg.Postgres.Password,
	)
}

// NewPostgresClient connects to the leads database, retrying while postgres
// is starting up, and applies pending migrations.
func NewPostgresClient(cfg *config.Config) *sqlx.DB {
	var (
		db  *sqlx.DB
		err error
	)

	for attempt := defaultConnAttempts; attempt > 0; attempt-- {
		db, err = sqlx.Connect("pgx", postgresDSN(cfg))
		if err == nil {
			break
		}

		slog.Info(
			"Postgres is trying to connect",
			slog.String("host", cfg.Postgres.Host),
			slog.Int("attempts left", attempt-1),
			slog.String("err", err.Error()),
		)

		time.Sleep(connTimeout)
	}

	if err != nil {
		slog.Error("Postgres connection attempts exhausted", slog.String("host", cfg.Postgres.Host))
		panic(err)
	}

	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	db.SetConnMaxIdleTime(time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second)
	if err = db.Ping(); err != nil {
		slog.Error("Postgres ping failed", slog.String("err", err.Error()))
		panic(err)
	}
	slog.Info("Postgres connected")

	if err = migratePostgres(db, cfg.Postgres.MigrationDir); err != nil {
		slog.Error("postgres migration failed", slog.String("err", err.Error()))
		panic(err)
	}
	slog.Info("postgres migrated successfully", slog.String("migrationDir", cfg.Postgres.MigrationDir))

	return db
}

func migratePostgres(db *sqlx.DB, migrationDir string) error {
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("postgres.WithInstance: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationDir),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("migrate.NewWithDatabaseInstance: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("m.Up: %w", err)
	}

	return nil
}
