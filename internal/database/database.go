package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/granitoskate/backoffice/internal/config"
	"github.com/granitoskate/backoffice/internal/models"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// DB is the app database owned by this service.
	DB *gorm.DB
	// Theme is the storefront theme database holding eventos and resenas.
	Theme *sqlx.DB
)

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.AppDatabaseURL), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Warn),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to app database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("app database connected")
	return nil
}

func ConnectTheme(cfg *config.Config) error {
	var err error
	Theme, err = sqlx.Connect("pgx", cfg.ThemeDatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to theme database: %w", err)
	}

	Theme.SetMaxOpenConns(10)
	Theme.SetMaxIdleConns(5)
	Theme.SetConnMaxLifetime(30 * time.Minute)

	slog.Info("theme database connected")
	return nil
}

// MigrateShared runs AutoMigrate for the app models every resource relies on.
func MigrateShared() error {
	return DB.AutoMigrate(
		&models.Usuario{},
		&models.Admin{},
		&models.AccionAdmin{},
		&models.SystemLog{},
	)
}

// MigrateModels runs AutoMigrate for resource-owned models.
func MigrateModels(modelList []interface{}) error {
	if len(modelList) == 0 {
		return nil
	}
	return DB.AutoMigrate(modelList...)
}

// The theme owns these tables; this only bootstraps empty databases.
const themeSchema = `
CREATE TABLE IF NOT EXISTS eventos (
	id SERIAL PRIMARY KEY,
	titulo VARCHAR(255) NOT NULL,
	descripcion TEXT NOT NULL,
	fecha_inicio DATE NOT NULL,
	fecha_fin DATE NOT NULL
);
CREATE TABLE IF NOT EXISTS resenas (
	id SERIAL PRIMARY KEY,
	nombre_cliente VARCHAR(255) NOT NULL,
	id_producto VARCHAR(64) NOT NULL,
	valoracion INTEGER NOT NULL CHECK (valoracion BETWEEN 1 AND 5),
	comentario TEXT,
	fecha_creacion TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_resenas_producto ON resenas (id_producto);
`

func EnsureThemeSchema(ctx context.Context) error {
	if _, err := Theme.ExecContext(ctx, themeSchema); err != nil {
		return fmt.Errorf("failed to ensure theme schema: %w", err)
	}
	return nil
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func PingTheme() error {
	return Theme.Ping()
}

func Close() {
	if DB != nil {
		if sqlDB, err := DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("app database close error", "error", err)
			}
		}
	}
	if Theme != nil {
		if err := Theme.Close(); err != nil {
			slog.Error("theme database close error", "error", err)
		}
	}
}
