package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const probeTimeout = 10 * time.Second

// Probe reports whether a dependency currently answers.
type Probe func(ctx context.Context) error

// MonitorClassifierHealth runs probe every interval and stores the outcome
// in healthy until ctx is done.
func MonitorClassifierHealth(ctx context.Context, interval time.Duration, probe Probe, healthy *atomic.Bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check(ctx, probe, healthy)
		}
	}
}

func check(ctx context.Context, probe Probe, healthy *atomic.Bool) {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	err := probe(probeCtx)
	wasHealthy := healthy.Swap(err == nil)
	if err != nil {
		slog.Warn("[HealthCheck] Classifier is unhealthy", slog.String("error", err.Error()))
		return
	}
	if !wasHealthy {
		slog.Info("[HealthCheck] Classifier recovered")
	}
}
