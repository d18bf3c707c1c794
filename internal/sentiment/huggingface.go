package sentiment

import (
	"context"

	"github.com/spacesedan/notetaker/internal/clients"
	"github.com/spacesedan/notetaker/internal/models"
)

// HuggingFaceClassifier delegates to a hosted text-classification endpoint.
type HuggingFaceClassifier struct {
	client *clients.HuggingFaceClient
}

func NewHuggingFaceClassifier(client *clients.HuggingFaceClient) *HuggingFaceClassifier {
	return &HuggingFaceClassifier{client: client}
}

func (h *HuggingFaceClassifier) Name() string { return "huggingface" }

func (h *HuggingFaceClassifier) Classify(ctx context.Context, text string) (models.ClassifierLabel, error) {
	resp, err := h.client.Classify(ctx, text)
	if err != nil {
		return models.ClassifierLabel{}, err
	}
	if len(resp) == 0 {
		return models.ClassifierLabel{}, ErrEmptyClassification
	}

	labels := make([]models.ClassifierLabel, 0, len(resp[0]))
	for _, l := range resp[0] {
		labels = append(labels, models.ClassifierLabel{
			Label:  sst2Label(l.Label),
			Score:  l.Score,
			Source: h.Name(),
		})
	}
	return topLabel(labels)
}

func (h *HuggingFaceClassifier) HealthCheck(ctx context.Context) bool {
	return h.client.HealthCheck(ctx)
}
