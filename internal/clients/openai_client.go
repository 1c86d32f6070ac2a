package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	openAIRequestTimeout = 60 * time.Second // Timeout for individual OpenAI API requests
)

const synthesisPrompt = `You are an assistant specialized in emotional analysis.
A user wrote the following text: %q

The GoEmotions sentiment analysis detected these emotions:
%s

Based on this analysis, provide:
1. An interpretation of the person's emotional state
2. Insights into what they may be going through
3. Suggestions for how they can process these emotions

Be empathetic and constructive. Answer in the language of the user's text.`

const synthesisRequest = "Please analyze my emotional state and give me some guidance."

var ErrMissingAPIKey = errors.New("missing OpenAI API key")

type completeFunc func(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)

// Synthesizer turns an emotion analysis into free-text commentary.
type Synthesizer struct {
	complete completeFunc
	model    string
}

func NewSynthesizer(apiKey, model string, opts ...option.RequestOption) (*Synthesizer, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: openAIRequestTimeout}),
	}, opts...)
	client := openai.NewClient(opts...)

	slog.Info("[OpenAIClient] OpenAI client initialized with custom HTTP timeout",
		slog.Duration("timeout", openAIRequestTimeout),
		slog.String("model", model))

	return &Synthesizer{complete: client.Chat.Completions.New, model: model}, nil
}

// Synthesize asks the model to interpret analysisJSON for the author of text.
func (s *Synthesizer) Synthesize(ctx context.Context, text, analysisJSON string) (string, error) {
	start := time.Now()
	completion, err := s.complete(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(fmt.Sprintf(synthesisPrompt, strings.TrimSpace(text), analysisJSON)),
			openai.UserMessage(synthesisRequest),
		}),
		Model: openai.F(openai.ChatModel(s.model)),
	})
	if err != nil {
		return "", fmt.Errorf("synthesis request failed: %w", err)
	}

	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		return "", errors.New("synthesis returned an empty response")
	}

	slog.Info("[OpenAIClient] Synthesis successful",
		slog.Duration("elapsed", time.Since(start)))

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
