package bootstrap

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"referral-system/internal/app"
	"referral-system/internal/config"
	"referral-system/internal/model"
	"referral-system/internal/pkg/logger"
	sqliteClient "referral-system/internal/platform/sqlite"
)

type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Verifier app.CredentialVerifier

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	logger.Init(cfg.App.Name, cfg.App.Env == "dev")

	db, err := sqliteClient.New(ctx, cfg.SQLite.Path)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	verifier, err := app.VerifierForScheme(cfg.Auth.PasswordScheme)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("db_path", cfg.SQLite.Path).
		Str("password_scheme", cfg.Auth.PasswordScheme).
		Msg("store ready")

	return &App{
		Config:    cfg,
		DB:        db,
		Verifier:  verifier,
		StartedAt: time.Now(),
	}, nil
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
