package main

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/emotionmcp/config"
	"github.com/spacesedan/emotionmcp/internal/analysis"
	"github.com/spacesedan/emotionmcp/internal/emotions"
	"github.com/spacesedan/emotionmcp/internal/tools"
)

type uniformClassifier struct {
	err error
}

func (u uniformClassifier) Classify(_ context.Context, texts []string) ([][]emotions.Score, error) {
	if u.err != nil {
		return nil, u.err
	}
	out := make([][]emotions.Score, len(texts))
	for i := range texts {
		for _, l := range emotions.Labels {
			out[i] = append(out[i], emotions.Score{Label: l, Probability: 0.2})
		}
	}
	return out, nil
}

func newTestServerURL(t *testing.T, c analysis.Classifier) string {
	t.Helper()
	tr, err := emotions.NewTranslator("pt")
	require.NoError(t, err)

	srv := server.NewTestServer(tools.NewServer(analysis.NewAnalyzer(c, tr)))
	t.Cleanup(srv.Close)
	return srv.URL + "/sse"
}

func TestRun(t *testing.T) {
	cfg := &config.ClientConfig{
		AppEnv:      "test",
		ServerURL:   newTestServerURL(t, uniformClassifier{}),
		OpenAIModel: "gpt-4o-mini",
	}

	assert.NoError(t, run(cfg))
}

func TestRun_ReturnsExampleError(t *testing.T) {
	cfg := &config.ClientConfig{
		AppEnv:    "test",
		ServerURL: newTestServerURL(t, uniformClassifier{err: errors.New("model unavailable")}),
	}

	err := run(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EXAMPLE 1")
}
