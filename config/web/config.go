package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port            int    `env:"PORT" env-default:"8080"`
	LogLevel        string `env:"LOG_LEVEL" env-default:"info"`
	LogJSON         bool   `env:"LOG_JSON" env-default:"false"`
	JWTSecret       string `env:"JWT_SECRET"`
	FluencyService  ServiceConfig
	Gemini          GeminiConfig
	DebateRebuttals int `env:"DEBATE_REBUTTAL_QUESTIONS" env-default:"2"`
}

type ServiceConfig struct {
	Port int    `env:"FLUENCY_PORT" env-default:"50051"`
	Url  string `env:"FLUENCY_URL" env-default:"localhost"`
}

// GeminiConfig enables the language-model opponent. Without an API key the
// gateway falls back to the scripted opponent.
type GeminiConfig struct {
	APIKey    string  `env:"GEMINI_API_KEY"`
	Model     string  `env:"GEMINI_MODEL" env-default:"gemini-2.0-flash"`
	BaseURL   string  `env:"GEMINI_BASE_URL" env-default:"https://generativelanguage.googleapis.com/v1beta"`
	RateLimit float64 `env:"GEMINI_RATE_LIMIT" env-default:"30"`
	MaxTokens int     `env:"GEMINI_MAX_TOKENS" env-default:"500"`
}

func (c ServiceConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Url, c.Port)
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment variables: %w", err)
	}
	if cfg.Gemini.RateLimit <= 0 {
		return nil, fmt.Errorf("GEMINI_RATE_LIMIT must be positive, got %v", cfg.Gemini.RateLimit)
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
