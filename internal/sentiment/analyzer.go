// Package sentiment labels a patient's dialogue as Anxious, Reassured or
// Neutral. Explicit cue words decide first; otherwise a pluggable fallback
// Classifier scores the text and its label is mapped onto the same scale.
package sentiment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"github.com/spacesedan/notetaker/internal/models"
)

var (
	ErrEmptyClassification = errors.New("classifier returned no labels")
	ErrUnknownBackend      = errors.New("unknown sentiment backend")
)

var (
	anxiousCues   = []string{"worried", "concerned", "anxious", "nervous"}
	reassuredCues = []string{"relief", "thankful", "grateful", "appreciate"}
)

// Classifier is a binary (optionally three-way) sentiment model consulted
// when no cue word is present.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.ClassifierLabel, error)
	Name() string
}

// HealthChecker is implemented by classifiers that depend on a remote service.
type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}

type Analyzer struct {
	fallback Classifier
}

func NewAnalyzer(fallback Classifier) *Analyzer {
	return &Analyzer{fallback: fallback}
}

func (a *Analyzer) ClassifierName() string {
	return a.fallback.Name()
}

// DecidedByCues marks a Decision made by the cue-word rules.
const DecidedByCues = "keyword rules"

// Decision is a SentimentResult together with what produced it: the cue
// words or the named fallback classifier.
type Decision struct {
	Result    models.SentimentResult
	DecidedBy string
}

// Analyze returns the sentiment and intent of a patient's dialogue.
func (a *Analyzer) Analyze(ctx context.Context, text string) (models.SentimentResult, error) {
	d, err := a.Decide(ctx, text)
	return d.Result, err
}

func (a *Analyzer) Decide(ctx context.Context, text string) (Decision, error) {
	lower := strings.ToLower(text)

	if containsAny(lower, anxiousCues) {
		return Decision{Result: models.AnxiousResult, DecidedBy: DecidedByCues}, nil
	}
	if containsAny(lower, reassuredCues) {
		return Decision{Result: models.ReassuredResult, DecidedBy: DecidedByCues}, nil
	}

	label, err := a.fallback.Classify(ctx, text)
	if err != nil {
		return Decision{}, fmt.Errorf("fallback classifier %s: %w", a.fallback.Name(), err)
	}

	slog.Debug("[SentimentAnalyzer] Fallback classifier decided",
		slog.String("classifier", a.fallback.Name()),
		slog.String("label", label.Label),
		slog.Float64("score", label.Score))

	return Decision{Result: FromLabel(label.Label), DecidedBy: a.fallback.Name()}, nil
}

// FromLabel maps a classifier label onto the patient sentiment scale.
// Anything that is neither POSITIVE nor NEGATIVE is Neutral.
func FromLabel(label string) models.SentimentResult {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case models.LabelNegative:
		return models.AnxiousResult
	case models.LabelPositive:
		return models.ReassuredResult
	default:
		return models.NeutralResult
	}
}

func containsAny(text string, cues []string) bool {
	return lo.SomeBy(cues, func(cue string) bool {
		return strings.Contains(text, cue)
	})
}

// HealthCheck reports whether c can currently serve requests. Classifiers
// without a remote dependency are always healthy.
func HealthCheck(ctx context.Context, c Classifier) bool {
	if hc, ok := c.(HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return true
}

// Close releases c if it holds resources such as an ONNX session.
func Close(c Classifier) error {
	if closer, ok := c.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// topLabel picks the highest scoring label.
func topLabel(labels []models.ClassifierLabel) (models.ClassifierLabel, error) {
	if len(labels) == 0 {
		return models.ClassifierLabel{}, ErrEmptyClassification
	}
	return lo.MaxBy(labels, func(a, b models.ClassifierLabel) bool {
		return a.Score > b.Score
	}), nil
}
