package config

import (
	"fmt"
	"time"

	"go-simpler.org/env"
)

const (
	BackendHugot     = "hugot"
	BackendInference = "inference"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"dev"`
	Port      string `env:"PORT" default:"8080"`
	PublicURL string `env:"PUBLIC_URL" default:"http://localhost:8080"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	Locale    string `env:"LABEL_LOCALE" default:"pt"`

	Backend       string `env:"CLASSIFIER_BACKEND" default:"hugot"`
	ModelName     string `env:"MODEL_NAME" default:"SamLowe/roberta-base-go_emotions-onnx"`
	ModelDir      string `env:"MODEL_DIR" default:"./models"`
	ModelOnnxFile string `env:"MODEL_ONNX_FILE" default:"onnx/model.onnx"`
	PreloadModel  bool   `env:"PRELOAD_MODEL" default:"true"`

	InferenceURL     string        `env:"INFERENCE_URL" default:"https://router.huggingface.co/hf-inference/models/SamLowe/roberta-base-go_emotions"`
	HFToken          string        `env:"HF_TOKEN"`
	InferenceTimeout time.Duration `env:"INFERENCE_TIMEOUT" default:"60s"`

	HealthcheckInterval time.Duration `env:"HEALTHCHECK_INTERVAL" default:"15s"`
}

// ClientConfig is the configuration of the demo client.
type ClientConfig struct {
	AppEnv       string `env:"APP_ENV" default:"dev"`
	LogLevel     string `env:"LOG_LEVEL" default:"info"`
	ServerURL    string `env:"SERVER_URL" default:"http://localhost:8080/sse"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL" default:"gpt-4o-mini"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func LoadClient() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("SERVER_URL is required")
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch cfg.Backend {
	case BackendHugot:
		if cfg.ModelName == "" {
			return fmt.Errorf("MODEL_NAME is required for the %s backend", BackendHugot)
		}
	case BackendInference:
		if cfg.InferenceURL == "" {
			return fmt.Errorf("INFERENCE_URL is required for the %s backend", BackendInference)
		}
	default:
		return fmt.Errorf("CLASSIFIER_BACKEND must be %q or %q, got %q", BackendHugot, BackendInference, cfg.Backend)
	}

	switch cfg.Locale {
	case "pt", "en":
	default:
		return fmt.Errorf("LABEL_LOCALE must be \"pt\" or \"en\", got %q", cfg.Locale)
	}

	if cfg.InferenceTimeout <= 0 {
		return fmt.Errorf("INFERENCE_TIMEOUT must be positive")
	}

	return nil
}
