package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

type Config struct {
	App      AppConfig      `toml:"app"`
	Auth     AuthConfig     `toml:"auth"`
	SQLite   SQLiteConfig   `toml:"sqlite"`
	Referral ReferralConfig `toml:"referral"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Env     string `toml:"env"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	GinMode string `toml:"gin_mode"`
}

type AuthConfig struct {
	JWTSecret             string `toml:"jwt_secret"`
	AccessTokenExpireHour int    `toml:"access_token_expire_hour"`
	PasswordScheme        string `toml:"password_scheme"`
}

type SQLiteConfig struct {
	Path string `toml:"path"`
}

type ReferralConfig struct {
	CodeValidDays int `toml:"code_valid_days"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "referral-system",
			Env:     "dev",
			Host:    "0.0.0.0",
			Port:    8080,
			GinMode: "debug",
		},
		Auth: AuthConfig{
			JWTSecret:             "change-me-in-production",
			AccessTokenExpireHour: 24,
			PasswordScheme:        "plaintext",
		},
		SQLite: SQLiteConfig{
			Path: "referral_system.db",
		},
		Referral: ReferralConfig{
			CodeValidDays: 30,
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.AccessTokenExpireHour = getEnvAsInt("ACCESS_TOKEN_EXPIRE_HOUR", cfg.Auth.AccessTokenExpireHour)
	cfg.Auth.PasswordScheme = getEnv("PASSWORD_SCHEME", cfg.Auth.PasswordScheme)

	cfg.SQLite.Path = getEnv("SQLITE_PATH", cfg.SQLite.Path)

	cfg.Referral.CodeValidDays = getEnvAsInt("REFERRAL_CODE_VALID_DAYS", cfg.Referral.CodeValidDays)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
