package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/spacesedan/notetaker/internal/sentiment"
)

const HEALTHCHECK_TIMER = 15

// MonitorClassifierHealth probes the fallback classifier until ctx is done
// and records the result in healthy.
func MonitorClassifierHealth(ctx context.Context, classifier sentiment.Classifier, healthy *atomic.Bool) {
	monitor(ctx, time.Second*HEALTHCHECK_TIMER, classifier, healthy)
}

func monitor(ctx context.Context, interval time.Duration, classifier sentiment.Classifier, healthy *atomic.Bool) {
	healthy.Store(probe(ctx, classifier))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			healthy.Store(probe(ctx, classifier))
		}
	}
}

func probe(ctx context.Context, classifier sentiment.Classifier) bool {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	isHealthy := sentiment.HealthCheck(checkCtx, classifier)
	if !isHealthy {
		slog.Warn("[HealthCheck] Classifier is unhealthy",
			slog.String("classifier", classifier.Name()))
	}
	return isHealthy
}
