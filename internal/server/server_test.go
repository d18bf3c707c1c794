package server

import (
	"context"
	"encoding/json"
	"errors"
	"html"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spacesedan/notetaker/config"
	"github.com/spacesedan/notetaker/internal/models"
	"github.com/spacesedan/notetaker/internal/samples"
	"github.com/spacesedan/notetaker/internal/sentiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClassifier struct {
	label string
	err   error
}

func (f fixedClassifier) Name() string { return "fixed" }

func (f fixedClassifier) Classify(context.Context, string) (models.ClassifierLabel, error) {
	return models.ClassifierLabel{Label: f.label}, f.err
}

func newTestServer(t *testing.T, c sentiment.Classifier) *httptest.Server {
	t.Helper()
	var healthy atomic.Bool
	healthy.Store(true)

	s, err := NewServer(sentiment.NewAnalyzer(c), &healthy, ":0", 0)
	require.NoError(t, err)

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postForm(t *testing.T, srv *httptest.Server, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := http.PostForm(srv.URL+path, form)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, html.UnescapeString(string(body))
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t, fixedClassifier{label: models.LabelNeutral})

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	page := html.UnescapeString(string(body))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, page, "Analyze Transcript")
	assert.Contains(t, page, "Analyze Sentiment & Intent")
	assert.Contains(t, page, "How would you handle ambiguous or missing medical data?")
	assert.Equal(t, len(methodology), strings.Count(page, "<details>"))
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))
}

func TestUnknownPathIsNotFound(t *testing.T) {
	srv := newTestServer(t, fixedClassifier{})

	resp, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAnalyzeTranscript(t *testing.T) {
	srv := newTestServer(t, fixedClassifier{})

	resp, body := postForm(t, srv, "/analyze/transcript", url.Values{"transcript": {samples.Transcript}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"Diagnosis": "Whiplash injury"`)
	assert.Contains(t, body, `"10 physiotherapy sessions"`)
	assert.Contains(t, body, `"Chief_Complaint": "Neck and back pain"`)
	assert.Contains(t, body, "Extracted Medical Keywords")
}

func TestAnalyzeEmptyTranscript(t *testing.T) {
	srv := newTestServer(t, fixedClassifier{})

	resp, body := postForm(t, srv, "/analyze/transcript", url.Values{})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"Patient_Name": "Not specified"`)
	assert.Contains(t, body, `"Symptoms": []`)
}

func TestAnalyzeSentiment(t *testing.T) {
	srv := newTestServer(t, fixedClassifier{label: models.LabelPositive})

	resp, body := postForm(t, srv, "/analyze/sentiment", url.Values{"dialogue": {"The exercises helped a lot."}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"Sentiment": "Reassured"`)
	assert.Contains(t, body, `"Intent": "Expressing gratitude"`)
	assert.Contains(t, body, "Decided by: fixed")
}

func TestAnalyzeSentimentClassifierError(t *testing.T) {
	srv := newTestServer(t, fixedClassifier{err: errors.New("model offline")})

	resp, body := postForm(t, srv, "/analyze/sentiment", url.Values{"dialogue": {"It still hurts."}})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, "unavailable")
	assert.NotContains(t, body, "model offline")
}

func TestAnalyzeSentimentCueSkipsBrokenClassifier(t *testing.T) {
	srv := newTestServer(t, fixedClassifier{err: errors.New("model offline")})

	resp, body := postForm(t, srv, "/analyze/sentiment", url.Values{"dialogue": {samples.Dialogue}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"Sentiment": "Anxious"`)
	assert.Contains(t, body, "Decided by: keyword rules")
	assert.NotContains(t, body, "fixed")
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, fixedClassifier{})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, true, got["ok"])
	assert.Equal(t, "fixed", got["classifier"])
	assert.Equal(t, true, got["classifier_healthy"])
}

func TestRequestIDIsPropagated(t *testing.T) {
	srv := newTestServer(t, fixedClassifier{})

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	id := "5f0c7a5e-3b1d-4a43-9c55-2a8f0f3e9d11"
	req.Header.Set(requestIDHeader, id)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, id, resp.Header.Get(requestIDHeader))
}

func TestWriteTimeoutCoversClassifierBudget(t *testing.T) {
	var healthy atomic.Bool
	analyzer := sentiment.NewAnalyzer(fixedClassifier{})

	s, err := NewServer(analyzer, &healthy, ":0", 0)
	require.NoError(t, err)
	assert.Equal(t, defaultWriteTimeout, s.writeTimeout)

	budget := sentiment.RequestBudget(config.Config{
		SentimentBackend: config.BackendHuggingFace,
		HFTimeout:        30 * time.Second,
	})
	s, err = NewServer(analyzer, &healthy, ":0", budget)
	require.NoError(t, err)
	assert.Greater(t, s.writeTimeout, 90*time.Second)
	assert.Equal(t, budget+writeTimeoutMargin, s.writeTimeout)
}
