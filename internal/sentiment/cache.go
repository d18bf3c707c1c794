package sentiment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/spacesedan/notetaker/internal/models"
)

// LabelCache stores classifier labels keyed by text digest.
type LabelCache interface {
	GetLabel(ctx context.Context, key string) (models.ClassifierLabel, bool)
	SetLabel(ctx context.Context, key string, label models.ClassifierLabel, ttl time.Duration) error
}

// CachedClassifier memoizes the labels of the wrapped classifier. Cache
// failures never fail a classification.
type CachedClassifier struct {
	next  Classifier
	cache LabelCache
	ttl   time.Duration
}

func NewCachedClassifier(next Classifier, cache LabelCache, ttl time.Duration) *CachedClassifier {
	return &CachedClassifier{next: next, cache: cache, ttl: ttl}
}

func (c *CachedClassifier) Name() string { return c.next.Name() }

func (c *CachedClassifier) Classify(ctx context.Context, text string) (models.ClassifierLabel, error) {
	key := cacheKey(c.next.Name(), text)

	if label, ok := c.cache.GetLabel(ctx, key); ok {
		slog.Debug("[CachedClassifier] Cache hit", slog.String("key", key))
		return label, nil
	}

	label, err := c.next.Classify(ctx, text)
	if err != nil {
		return label, err
	}

	if err := c.cache.SetLabel(ctx, key, label, c.ttl); err != nil {
		slog.Warn("[CachedClassifier] Failed to cache label",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
	return label, nil
}

func (c *CachedClassifier) HealthCheck(ctx context.Context) bool {
	return HealthCheck(ctx, c.next)
}

// Close releases the cache and the wrapped classifier when they hold resources.
func (c *CachedClassifier) Close() error {
	var errs []error
	if closer, ok := c.cache.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	errs = append(errs, Close(c.next))
	return errors.Join(errs...)
}

func cacheKey(backend, text string) string {
	hash := sha256.Sum256([]byte(text))
	return "notetaker:sentiment:" + backend + ":" + hex.EncodeToString(hash[:])
}
