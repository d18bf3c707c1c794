package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/notetaker/config"
	"github.com/spacesedan/notetaker/internal/clients"
	"github.com/spacesedan/notetaker/internal/models"
)

// backendLabels lists the labels each backend can emit. The SST-2 backends
// are binary, so their fallback answer is always Anxious or Reassured.
var backendLabels = map[string][]string{
	config.BackendHugot:       {models.LabelPositive, models.LabelNegative},
	config.BackendHuggingFace: {models.LabelPositive, models.LabelNegative},
	config.BackendVader:       {models.LabelPositive, models.LabelNegative, models.LabelNeutral},
	config.BackendOpenAI:      {models.LabelPositive, models.LabelNegative, models.LabelNeutral},
}

// OutputLabels returns the labels the named backend can produce. An empty
// name means config.DefaultBackend.
func OutputLabels(backend string) []string {
	if backend == "" {
		backend = config.DefaultBackend
	}
	return backendLabels[backend]
}

// RequestBudget is the longest one fallback classification can take under
// cfg, retries included. Local backends report zero.
func RequestBudget(cfg config.Config) time.Duration {
	switch cfg.SentimentBackend {
	case config.BackendHuggingFace:
		return clients.HuggingFaceWorstCase(cfg.HFTimeout)
	case config.BackendOpenAI:
		return clients.OpenAIRequestTimeout * openAIRetryAttempts
	default:
		return 0
	}
}

// NewClassifier builds the fallback classifier selected by cfg. When a
// Valkey address is configured its labels are cached there; an unreachable
// Valkey only disables caching.
func NewClassifier(ctx context.Context, cfg config.Config) (Classifier, error) {
	var c Classifier

	backend := cfg.SentimentBackend
	if backend == "" {
		backend = config.DefaultBackend
	}

	switch backend {
	case config.BackendVader:
		c = NewVaderClassifier()
	case config.BackendHugot:
		hc, err := GetHugotClassifier(cfg.HugotModelDir, cfg.HugotModelName)
		if err != nil {
			return nil, err
		}
		c = hc
	case config.BackendHuggingFace:
		if cfg.HFEndpoint == "" {
			return nil, fmt.Errorf("%s backend requires HF_INFERENCE_ENDPOINT", config.BackendHuggingFace)
		}
		c = NewHuggingFaceClassifier(clients.GetHuggingFaceClient(cfg.HFEndpoint, cfg.HFToken, cfg.HFTimeout))
	case config.BackendOpenAI:
		oc, err := clients.GetOpenAIClient(cfg.OpenAIKey)
		if err != nil {
			return nil, err
		}
		c = NewOpenAIClassifier(oc, cfg.OpenAIModel)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}

	slog.Info("[Sentiment] Fallback classifier selected",
		slog.String("backend", c.Name()),
		slog.Any("labels", OutputLabels(backend)))

	if cfg.ValkeyAddr == "" {
		return c, nil
	}

	vc, err := clients.InitValkey(ctx, clients.ValkeyOptions{
		Addr:     cfg.ValkeyAddr,
		Password: cfg.ValkeyPassword,
		TLS:      cfg.ValkeyTLS,
	})
	if err != nil {
		slog.Warn("[Sentiment] Valkey unavailable, classifying without cache",
			slog.String("error", err.Error()))
		return c, nil
	}
	return NewCachedClassifier(c, vc, cfg.CacheTTL), nil
}
