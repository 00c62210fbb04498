package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v9"

	"github.com/hanqiu-dev/dietagent/internal/llm"
)

type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
	DBPath     string `env:"DB_PATH" envDefault:"/data/dietagent.db"`
	PhotoPath  string `env:"PHOTO_PATH" envDefault:"/data/photos"`

	AIBaseURL     string        `env:"AI_BASE_URL" envDefault:"https://dashscope.aliyuncs.com/compatible-mode/v1"`
	AIAPIKey      string        `env:"AI_API_KEY"`
	AIModel       string        `env:"AI_MODEL" envDefault:"qwen-max"`
	AIMaxTokens   int           `env:"AI_MAX_TOKENS" envDefault:"2000"`
	AITemperature float64       `env:"AI_TEMPERATURE" envDefault:"0.7"`
	AITimeout     time.Duration `env:"AI_TIMEOUT" envDefault:"60s"`

	// AdviceBackend selects the nutrition-advice generator: "llm" or "static".
	AdviceBackend string `env:"ADVICE_BACKEND" envDefault:"static"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
}

// Load reads configuration from the environment once at startup. The text
// model identifier is pinned: anything other than the supported model is
// overridden with a warning rather than sent upstream.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.AIModel != llm.TextModel.String() {
		slog.Warn("unsupported text model configured, overriding",
			"configured", cfg.AIModel, "using", llm.TextModel.String())
		cfg.AIModel = llm.TextModel.String()
	}
	if cfg.AIAPIKey == "" {
		slog.Warn("AI_API_KEY is not set, model calls will be rejected upstream")
	}
	return cfg, nil
}
