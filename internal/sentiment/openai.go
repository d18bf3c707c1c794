package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/spacesedan/notetaker/internal/clients"
	"github.com/spacesedan/notetaker/internal/models"
)

const (
	openAIRetryAttempts = 2
	openAISystemPrompt  = "You classify the sentiment of a patient's statement to their doctor. " +
		"Answer with exactly one word: POSITIVE, NEGATIVE or NEUTRAL."
)

// OpenAIClassifier asks a chat model for a one-word sentiment label.
type OpenAIClassifier struct {
	client *clients.OpenAIClient
	model  string
}

func NewOpenAIClassifier(client *clients.OpenAIClient, model string) *OpenAIClassifier {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAIClassifier{client: client, model: model}
}

func (o *OpenAIClassifier) Name() string { return "openai" }

func (o *OpenAIClassifier) Classify(ctx context.Context, text string) (models.ClassifierLabel, error) {
	var resp openai.ChatCompletionResponse
	var err error

	for i := 0; i < openAIRetryAttempts; i++ {
		start := time.Now()
		resp, err = o.client.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       o.model,
			Temperature: 0,
			MaxTokens:   4,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: openAISystemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: text},
			},
		})
		if err == nil {
			break
		}
		slog.Warn("[OpenAIClassifier] Failed to get a response from OpenAI, retrying...",
			slog.String("error", err.Error()),
			slog.Int("attempt", i+1),
			slog.Duration("elapsed", time.Since(start)))
	}
	if err != nil {
		return models.ClassifierLabel{}, fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return models.ClassifierLabel{}, ErrEmptyClassification
	}

	label := cleanOpenAIResponse(resp.Choices[0].Message.Content)
	if label == "" {
		return models.ClassifierLabel{}, ErrEmptyClassification
	}
	return models.ClassifierLabel{Label: label, Score: 1, Source: o.Name()}, nil
}

// cleanOpenAIResponse strips code fences and punctuation and returns the
// first word of the reply in upper case.
func cleanOpenAIResponse(response string) string {
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(strings.Trim(fields[0], ".,:;!\"'`"))
}
