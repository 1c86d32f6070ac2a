package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/spacesedan/emotionmcp/internal/clients"
	"github.com/spacesedan/emotionmcp/internal/emotions"
)

type InferenceOptions struct {
	Endpoint string
	// Token is sent as a bearer token when set.
	Token   string
	Timeout time.Duration
	// MaxRetries bounds attempts on transport errors and 5xx responses,
	// which the hosted endpoint returns while the model is warming up.
	MaxRetries     int
	InitialBackoff time.Duration
}

// InferenceBackend classifies through a hosted text-classification endpoint.
type InferenceBackend struct {
	endpoint       string
	client         *http.Client
	maxRetries     int
	initialBackoff time.Duration
}

type inferenceRequest struct {
	Inputs     []string            `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	TopK int `json:"top_k"`
}

func NewInferenceLoader(opts InferenceOptions) Loader {
	return func(ctx context.Context) (Backend, error) {
		return NewInferenceBackend(ctx, opts), nil
	}
}

func NewInferenceBackend(ctx context.Context, opts InferenceOptions) *InferenceBackend {
	client := &http.Client{}
	if opts.Token != "" {
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: opts.Token,
			TokenType:   "Bearer",
		}))
	}
	client.Timeout = opts.Timeout

	if opts.MaxRetries <= 0 {
		opts.MaxRetries = clients.MAX_RETRIES
	}
	if opts.InitialBackoff <= 0 {
		opts.InitialBackoff = clients.INITIAL_BACKOFF
	}

	slog.Info("[InferenceBackend] Initializing client",
		slog.String("endpoint", opts.Endpoint),
		slog.Duration("timeout", opts.Timeout),
		slog.Bool("authenticated", opts.Token != ""))

	return &InferenceBackend{
		endpoint:       opts.Endpoint,
		client:         client,
		maxRetries:     opts.MaxRetries,
		initialBackoff: opts.InitialBackoff,
	}
}

func (b *InferenceBackend) Classify(ctx context.Context, texts []string) ([][]emotions.Score, error) {
	body, err := json.Marshal(inferenceRequest{
		Inputs:     texts,
		Parameters: inferenceParameters{TopK: emotions.LabelCount},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}

	start := time.Now()
	resp, err := b.doWithRetry(ctx, body)
	if err != nil {
		slog.Error("[InferenceBackend] Failed request after retries",
			slog.String("endpoint", b.endpoint),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("request failed after retries: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Error("[InferenceBackend] Unexpected status",
			slog.Int("status", resp.StatusCode),
			getPreview(respBody))
		return nil, fmt.Errorf("inference endpoint returned status %d", resp.StatusCode)
	}

	var results [][]emotions.Score
	if err := json.Unmarshal(respBody, &results); err != nil {
		slog.Error("[InferenceBackend] Failed to unmarshal response",
			slog.String("error", err.Error()),
			getPreview(respBody),
			slog.Int("raw_response_length", len(respBody)))
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	slog.Debug("[InferenceBackend] Classification successful",
		slog.Int("texts", len(texts)),
		slog.Duration("elapsed", time.Since(start)))

	return results, nil
}

func (b *InferenceBackend) Close() error {
	b.client.CloseIdleConnections()
	return nil
}

func (b *InferenceBackend) doWithRetry(ctx context.Context, body []byte) (*http.Response, error) {
	var err error
	backoff := b.initialBackoff

	for attempt := 0; attempt < b.maxRetries; attempt++ {
		var req *http.Request
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", clients.USER_AGENT)

		resp, doErr := b.client.Do(req)
		err = doErr
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		slog.Warn("[InferenceBackend] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", errMsg(doErr, resp)))

		if resp != nil {
			resp.Body.Close()
		}
		if err == nil {
			err = fmt.Errorf("inference endpoint returned status %d", resp.StatusCode)
		}
		if attempt == b.maxRetries-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, clients.MAX_BACKOFF)
	}

	return nil, err
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}
