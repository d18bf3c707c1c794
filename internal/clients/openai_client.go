package clients

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	OpenAIRequestTimeout = 30 * time.Second // Timeout for individual OpenAI API requests
)

var ErrMissingOpenAIKey = errors.New("missing OPENAI_API_KEY")

var (
	openAIClientInstance *OpenAIClient
	openAIOnce           sync.Once
)

type OpenAIClient struct {
	Client *openai.Client
}

// NewOpenAIClient builds a client; baseURL overrides the public API host
// when set.
func NewOpenAIClient(apiKey, baseURL string) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	config.HTTPClient = &http.Client{
		Timeout: OpenAIRequestTimeout,
	}

	return &OpenAIClient{
		Client: openai.NewClientWithConfig(config),
	}
}

func GetOpenAIClient(apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		slog.Error("[OpenAIClient] Missing OPENAI_API_KEY in environment variables")
		return nil, ErrMissingOpenAIKey
	}
	openAIOnce.Do(func() {
		openAIClientInstance = NewOpenAIClient(apiKey, "")
		slog.Info("[OpenAIClient] OpenAI client initialized with custom HTTP timeout", slog.Duration("timeout", OpenAIRequestTimeout))
	})
	return openAIClientInstance, nil
}
