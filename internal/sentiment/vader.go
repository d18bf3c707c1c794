package sentiment

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
	"github.com/spacesedan/notetaker/internal/models"
)

const vaderThreshold = 0.20

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]+>`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders markdown and strips the resulting tags so
// pasted notes score on their words only.
func ConvertMarkdownToText(input string) string {
	input = RemoveLinks(input)
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := tagPattern.ReplaceAllString(string(output), " ")
	return strings.Join(strings.Fields(plain), " ")
}

// VaderClassifier is the default fallback: a lexicon scorer that needs no
// model files and can say NEUTRAL.
type VaderClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderClassifier() *VaderClassifier {
	return &VaderClassifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderClassifier) Name() string { return "vader" }

func (v *VaderClassifier) Classify(_ context.Context, text string) (models.ClassifierLabel, error) {
	score, label := v.AnalyzeWithVADER(text)
	return models.ClassifierLabel{Label: label, Score: score, Source: v.Name()}, nil
}

func (v *VaderClassifier) AnalyzeWithVADER(text string) (float64, string) {
	plainText := ConvertMarkdownToText(text)

	sentiment := v.analyzer.PolarityScores(plainText)
	score := sentiment.Compound

	var label string
	if score >= vaderThreshold {
		label = models.LabelPositive
	} else if score <= -vaderThreshold {
		label = models.LabelNegative
	} else {
		label = models.LabelNeutral
	}

	return score, label
}
