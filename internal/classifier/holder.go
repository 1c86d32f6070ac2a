// Package classifier owns the emotion model. A Holder loads one backend on
// first use and shares it between all tool calls for the life of the process.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spacesedan/emotionmcp/internal/emotions"
)

var ErrClosed = errors.New("classifier is closed")

// Backend runs the model. Implementations return one score slice per text,
// in input order.
type Backend interface {
	Classify(ctx context.Context, texts []string) ([][]emotions.Score, error)
	Close() error
}

// Loader constructs a Backend. It may block while the model is fetched.
type Loader func(ctx context.Context) (Backend, error)

// Holder owns the shared backend. Classify calls hold a read lock for their
// whole run, so Close waits for in-flight inference before releasing the model.
type Holder struct {
	name string
	load Loader

	once    sync.Once
	backend Backend
	err     error
	ready   atomic.Bool

	mu     sync.RWMutex
	closed bool
}

func NewHolder(name string, load Loader) *Holder {
	return &Holder{name: name, load: load}
}

// Get returns the backend, loading it on the first call. A failed load is
// not retried; every later call returns the same error.
func (h *Holder) Get(ctx context.Context) (Backend, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.getLocked(ctx)
}

// getLocked requires h.mu held for reading.
func (h *Holder) getLocked(ctx context.Context) (Backend, error) {
	if h.closed {
		return nil, ErrClosed
	}

	h.once.Do(func() {
		slog.Info("[Classifier] Loading model (this may take a while)",
			slog.String("backend", h.name))
		start := time.Now()

		h.backend, h.err = h.load(ctx)
		if h.err != nil {
			h.err = fmt.Errorf("failed to load %s classifier: %w", h.name, h.err)
			slog.Error("[Classifier] Model load failed",
				slog.String("backend", h.name),
				slog.String("error", h.err.Error()))
			return
		}

		h.ready.Store(true)
		slog.Info("[Classifier] Model loaded",
			slog.String("backend", h.name),
			slog.Duration("elapsed", time.Since(start)))
	})

	return h.backend, h.err
}

// Loaded reports whether a backend has been loaded successfully.
func (h *Holder) Loaded() bool {
	return h.ready.Load()
}

// Classify runs the shared backend and checks every result covers the full
// label set.
func (h *Holder) Classify(ctx context.Context, texts []string) ([][]emotions.Score, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	backend, err := h.getLocked(ctx)
	if err != nil {
		return nil, err
	}

	results, err := backend.Classify(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(results) != len(texts) {
		return nil, fmt.Errorf("%s classifier returned %d results for %d texts", h.name, len(results), len(texts))
	}
	for i, scores := range results {
		if err := emotions.Validate(scores); err != nil {
			return nil, fmt.Errorf("text %d: %w", i+1, err)
		}
	}

	return results, nil
}

// Close releases the backend. It waits for a load or any Classify call in
// progress; a Holder closed before its first load never loads.
func (h *Holder) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true

	h.once.Do(func() { h.err = ErrClosed })

	if !h.ready.Load() {
		return nil
	}
	h.ready.Store(false)
	slog.Info("[Classifier] Releasing model", slog.String("backend", h.name))
	return h.backend.Close()
}
