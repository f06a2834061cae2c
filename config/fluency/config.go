package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port           int     `env:"PORT" env-default:"50051"`
	LogLevel       string  `env:"LOG_LEVEL" env-default:"info"`
	LogJSON        bool    `env:"LOG_JSON" env-default:"false"`
	PauseThreshold float64 `env:"PAUSE_THRESHOLD" env-default:"0.5"`
	Database       DatabaseConfig
}

// DatabaseConfig points at postgres. An empty Host keeps reports in memory.
type DatabaseConfig struct {
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Host     string `env:"DB_HOST"`
	Name     string `env:"DB_NAME" env-default:"eduvox"`
	Port     int    `env:"DB_PORT" env-default:"5432"`
	SSLMode  string `env:"DB_SSLMODE" env-default:"disable"`
}

func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s dbname=%s password=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Name,
		d.Password,
		d.SSLMode,
	)
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment variables: %w", err)
	}
	if cfg.PauseThreshold <= 0 {
		return nil, fmt.Errorf("PAUSE_THRESHOLD must be positive, got %v", cfg.PauseThreshold)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err.Error())
	}

	return cfg
}
