package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendVader       = "vader"
	BackendHugot       = "hugot"
	BackendHuggingFace = "huggingface"
	BackendOpenAI      = "openai"

	// DefaultBackend is a binary SST-2 model; VADER and OpenAI are opt-in.
	DefaultBackend = BackendHugot
)

type Config struct {
	Addr             string
	LogLevel         string
	SentimentBackend string

	HugotModelDir  string
	HugotModelName string

	HFEndpoint string
	HFToken    string
	HFTimeout  time.Duration

	OpenAIKey   string
	OpenAIModel string

	ValkeyAddr     string
	ValkeyPassword string
	ValkeyTLS      bool
	CacheTTL       time.Duration
}

func Load() Config {
	return Config{
		Addr:             getEnv("NOTETAKER_ADDR", ":8501"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		SentimentBackend: strings.ToLower(getEnv("NOTETAKER_SENTIMENT_BACKEND", DefaultBackend)),

		HugotModelDir:  getEnv("HUGOT_MODEL_DIR", "./models"),
		HugotModelName: getEnv("HUGOT_MODEL_NAME", "KnightsAnalytics/distilbert-base-uncased-finetuned-sst-2-english"),

		HFEndpoint: getEnv("HF_INFERENCE_ENDPOINT",
			"https://api-inference.huggingface.co/models/distilbert-base-uncased-finetuned-sst-2-english"),
		HFToken:   getEnv("HF_API_TOKEN", ""),
		HFTimeout: getEnvDuration("HF_TIMEOUT", 30*time.Second),

		OpenAIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel: getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),

		ValkeyAddr:     getEnv("VALKEY_INIT_ADDRESS", ""),
		ValkeyPassword: getEnv("VALKEY_PASSWORD", ""),
		ValkeyTLS:      getEnv("VALKEY_TLS", "") == "true",
		CacheTTL:       getEnvDuration("SENTIMENT_CACHE_TTL", 24*time.Hour),
	}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvDuration accepts Go duration strings ("90s") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs := getEnvInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
