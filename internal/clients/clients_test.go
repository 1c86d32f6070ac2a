package clients

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/emotionmcp/internal/analysis"
	"github.com/spacesedan/emotionmcp/internal/emotions"
	"github.com/spacesedan/emotionmcp/internal/tools"
)

func TestNewSynthesizer_MissingKey(t *testing.T) {
	_, err := NewSynthesizer("", "gpt-4o-mini")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestSynthesizer_Synthesize(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 0,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "  You seem excited.  "}}]
		}`))
	}))
	t.Cleanup(srv.Close)

	s, err := NewSynthesizer("sk-test", "gpt-4o-mini", option.WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	out, err := s.Synthesize(context.Background(), "I got the job!", `{"dominant_emotion":"joy"}`)
	require.NoError(t, err)

	assert.Equal(t, "You seem excited.", out)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotBody["model"])

	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	system := messages[0].(map[string]any)
	assert.Equal(t, "system", system["role"])

	parts, ok := system["content"].([]any)
	require.True(t, ok, "system content is sent as text parts")
	require.NotEmpty(t, parts)
	prompt, _ := parts[0].(map[string]any)["text"].(string)
	assert.Contains(t, prompt, `"I got the job!"`)
	assert.Contains(t, prompt, `{"dominant_emotion":"joy"}`)
}

func TestSynthesizer_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":0,"model":"m","choices":[]}`))
	}))
	t.Cleanup(srv.Close)

	s, err := NewSynthesizer("sk-test", "m", option.WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	_, err = s.Synthesize(context.Background(), "t", "{}")
	assert.Error(t, err)
}

type constantClassifier struct{}

func (constantClassifier) Classify(_ context.Context, texts []string) ([][]emotions.Score, error) {
	out := make([][]emotions.Score, len(texts))
	for i := range texts {
		for j, l := range emotions.Labels {
			out[i] = append(out[i], emotions.Score{Label: l, Probability: float64(j) / 28})
		}
	}
	return out, nil
}

func TestMCPClient_OverSSE(t *testing.T) {
	tr, err := emotions.NewTranslator("en")
	require.NoError(t, err)
	s := tools.NewServer(analysis.NewAnalyzer(constantClassifier{}, tr))

	srv := server.NewTestServer(s)
	t.Cleanup(srv.Close)

	ctx := context.Background()
	c, err := NewMCPClient(ctx, srv.URL+"/sse")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	out, err := c.CallTool(ctx, tools.ToolCompareSentiments, map[string]any{
		"texts": []string{"one", "two", "three"},
	})
	require.NoError(t, err)

	var resp struct {
		TotalTexts int `json:"total_texts"`
		Analyses   []struct {
			TextNumber      int    `json:"text_number"`
			DominantEmotion string `json:"dominant_emotion"`
		} `json:"analyses"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 3, resp.TotalTexts)
	require.Len(t, resp.Analyses, 3)
	assert.Equal(t, 3, resp.Analyses[2].TextNumber)
	assert.Equal(t, "neutral", resp.Analyses[0].DominantEmotion)

	_, err = c.CallTool(ctx, tools.ToolAnalyzeSentiment, map[string]any{})
	assert.Error(t, err, "missing text is reported as a tool error")
}
