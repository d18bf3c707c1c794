package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/spacesedan/notetaker/internal/models"
)

var (
	hugotInstance *HugotClassifier
	hugotErr      error
	hugotOnce     sync.Once
)

// HugotClassifier runs an SST-2 style ONNX model in process through ONNX
// Runtime. The pipeline is not safe for concurrent use.
type HugotClassifier struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
	mu       sync.Mutex
}

// GetHugotClassifier loads the model once per process, downloading it into
// modelDir when it is missing.
func GetHugotClassifier(modelDir, modelName string) (*HugotClassifier, error) {
	hugotOnce.Do(func() {
		hugotInstance, hugotErr = newHugotClassifier(modelDir, modelName)
	})
	return hugotInstance, hugotErr
}

func newHugotClassifier(modelDir, modelName string) (*HugotClassifier, error) {
	modelPath, err := EnsureModel(modelDir, modelName)
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize hugot session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "patientSentimentPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("failed to initialize sentiment pipeline: %w", err)
	}

	slog.Info("[HugotClassifier] Pipeline ready", slog.String("model", modelPath))
	return &HugotClassifier{session: session, pipeline: pipeline}, nil
}

// EnsureModel returns the local path of modelName under modelDir,
// downloading it from the Hugging Face hub first if needed.
func EnsureModel(modelDir, modelName string) (string, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create model directory: %w", err)
	}

	modelPath := filepath.Join(modelDir, strings.ReplaceAll(modelName, "/", "_"))
	if _, err := os.Stat(modelPath); err == nil {
		slog.Info("[HugotClassifier] Using existing model", slog.String("path", modelPath))
		return modelPath, nil
	}

	slog.Info("[HugotClassifier] Model not found, downloading...", slog.String("model", modelName))
	downloaded, err := hugot.DownloadModel(modelName, modelDir, hugot.NewDownloadOptions())
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", modelName, err)
	}
	slog.Info("[HugotClassifier] Model downloaded successfully", slog.String("path", downloaded))
	return downloaded, nil
}

func (h *HugotClassifier) Name() string { return "hugot" }

func (h *HugotClassifier) Classify(_ context.Context, text string) (models.ClassifierLabel, error) {
	h.mu.Lock()
	output, err := h.pipeline.RunPipeline([]string{text})
	h.mu.Unlock()
	if err != nil {
		return models.ClassifierLabel{}, fmt.Errorf("hugot pipeline: %w", err)
	}

	if len(output.ClassificationOutputs) == 0 {
		return models.ClassifierLabel{}, ErrEmptyClassification
	}

	labels := make([]models.ClassifierLabel, 0, len(output.ClassificationOutputs[0]))
	for _, out := range output.ClassificationOutputs[0] {
		labels = append(labels, models.ClassifierLabel{
			Label:  sst2Label(out.Label),
			Score:  float64(out.Score),
			Source: h.Name(),
		})
	}
	return topLabel(labels)
}

// sst2Label normalizes SST-2 head outputs. Some exports name the classes
// LABEL_0 and LABEL_1 instead of NEGATIVE and POSITIVE.
func sst2Label(label string) string {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "LABEL_0", models.LabelNegative:
		return models.LabelNegative
	case "LABEL_1", models.LabelPositive:
		return models.LabelPositive
	default:
		return strings.ToUpper(label)
	}
}

func (h *HugotClassifier) Close() error {
	return h.session.Destroy()
}
