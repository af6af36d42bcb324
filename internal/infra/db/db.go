package db

import (
	"fmt"
	"time"

	"github.com/timeasy-io/timeasy/internal/config"
	"github.com/timeasy-io/timeasy/internal/modules/model"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// New opens the postgres pool described by cfg.Database and, when enabled,
// migrates the lifecycle tables.
func New(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database.dsn is empty")
	}

	logLevel := gormlogger.Warn
	if cfg.App.Env == "debug" {
		logLevel = gormlogger.Info
	}

	d, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := d.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpen)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdle)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if cfg.Database.AutoMigrate {
		if err := Migrate(d); err != nil {
			return nil, err
		}
		log.Sugar().Infow("database migrated", "tables", []string{"projects", "time_entries"})
	}
	return d, nil
}

func Migrate(d *gorm.DB) error {
	if err := d.AutoMigrate(&model.Project{}, &model.TimeEntry{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// RegisterOpenTelemetryPlugin traces every statement through the global tracer provider.
func RegisterOpenTelemetryPlugin(d *gorm.DB) error {
	return d.Use(tracing.NewPlugin(tracing.WithoutMetrics()))
}
