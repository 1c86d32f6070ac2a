package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendHugot, cfg.Backend)
	assert.Equal(t, "pt", cfg.Locale)
	assert.Equal(t, "SamLowe/roberta-base-go_emotions-onnx", cfg.ModelName)
	assert.True(t, cfg.PreloadModel)
	assert.Equal(t, 60*time.Second, cfg.InferenceTimeout)
	assert.Equal(t, 15*time.Second, cfg.HealthcheckInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("PORT", "9090")
	t.Setenv("CLASSIFIER_BACKEND", BackendInference)
	t.Setenv("LABEL_LOCALE", "en")
	t.Setenv("HF_TOKEN", "hf_test")
	t.Setenv("INFERENCE_TIMEOUT", "5s")
	t.Setenv("PRELOAD_MODEL", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.AppEnv)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, BackendInference, cfg.Backend)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, "hf_test", cfg.HFToken)
	assert.Equal(t, 5*time.Second, cfg.InferenceTimeout)
	assert.False(t, cfg.PreloadModel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"unknown backend", "CLASSIFIER_BACKEND", "torch", `CLASSIFIER_BACKEND must be "hugot" or "inference", got "torch"`},
		{"unknown locale", "LABEL_LOCALE", "fr", `LABEL_LOCALE must be "pt" or "en", got "fr"`},
		{"non-positive timeout", "INFERENCE_TIMEOUT", "0s", "INFERENCE_TIMEOUT must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestLoadClient_Defaults(t *testing.T) {
	cfg, err := LoadClient()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/sse", cfg.ServerURL)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Empty(t, cfg.OpenAIAPIKey)
}
