package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/spacesedan/notetaker/internal/models"
	"golang.org/x/oauth2"
)

var (
	huggingFaceInstance *HuggingFaceClient
	huggingFaceOnce     sync.Once
)

// HuggingFaceClient talks to a hosted text-classification endpoint
// (Inference API or a dedicated Inference Endpoint).
type HuggingFaceClient struct {
	Client   *http.Client
	Endpoint string
	backoff  time.Duration
}

func NewHuggingFaceClient(endpoint, token string, timeout time.Duration) *HuggingFaceClient {
	httpClient := &http.Client{Timeout: timeout}
	if token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: timeout})
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
		httpClient.Timeout = timeout
	}

	return &HuggingFaceClient{
		Client:   httpClient,
		Endpoint: endpoint,
		backoff:  INITIAL_BACKOFF,
	}
}

func GetHuggingFaceClient(endpoint, token string, timeout time.Duration) *HuggingFaceClient {
	huggingFaceOnce.Do(func() {
		slog.Info("[HuggingFaceClient] Initializing Client",
			slog.String("endpoint", endpoint),
			slog.Duration("timeout", timeout),
			slog.Bool("authenticated", token != ""))
		huggingFaceInstance = NewHuggingFaceClient(endpoint, token, timeout)
	})
	return huggingFaceInstance
}

// HuggingFaceWorstCase is the longest a call through DoWithRetry can take
// when every attempt runs into the client timeout.
func HuggingFaceWorstCase(timeout time.Duration) time.Duration {
	total := timeout * MAX_RETRIES
	backoff := INITIAL_BACKOFF
	for i := 0; i < MAX_RETRIES-1; i++ {
		total += backoff
		backoff = min(backoff*2, MAX_BACKOFF)
	}
	return total
}

// DoWithRetry rebuilds and resends the request on transport errors and 5xx
// responses, doubling the wait between attempts.
func (h *HuggingFaceClient) DoWithRetry(ctx context.Context, build func() (*http.Request, error)) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := h.backoff

	for attempt := 0; attempt < MAX_RETRIES; attempt++ {
		var req *http.Request
		req, err = build()
		if err != nil {
			return nil, err
		}

		resp, err = h.Client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		slog.Warn("[HuggingFaceClient] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", errMsg(err, resp)))

		if resp != nil {
			resp.Body.Close()
			err = fmt.Errorf("status code %d", resp.StatusCode)
		}
		if attempt == MAX_RETRIES-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, MAX_BACKOFF)
	}

	return nil, err
}

// Classify sends a single text to the endpoint and returns its scored labels.
func (h *HuggingFaceClient) Classify(ctx context.Context, text string) (models.InferenceResponse, error) {
	var result models.InferenceResponse
	start := time.Now()

	err := h.postJSON(ctx, h.Endpoint, models.InferenceRequest{Inputs: text}, &result)
	if err != nil {
		slog.Error("[HuggingFaceClient] Classification request failed",
			slog.Duration("elapsed", time.Since(start)))
		return result, err
	}

	slog.Debug("[HuggingFaceClient] Classification request successful",
		slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

// HealthCheck reports whether the endpoint answers without a server error.
func (h *HuggingFaceClient) HealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.Endpoint, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := h.Client.Do(req)
	if err != nil {
		slog.Warn("[HuggingFaceClient] Health check failed",
			slog.String("error", err.Error()))
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 500
}

func (h *HuggingFaceClient) postJSON(ctx context.Context, endpoint string, input interface{}, output interface{}) error {
	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	resp, err := h.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", USER_AGENT)
		return req, nil
	})
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed request after retries",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("request failed after retries: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		slog.Error("[HuggingFaceClient] Endpoint rejected request",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			getPreview(respBody))
		return fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		slog.Error("[HuggingFaceClient] Failed to unmarshal response",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
			getPreview(respBody),
			slog.Int("raw_response_length", len(respBody)))
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}
