package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spacesedan/notetaker/config"
	"github.com/spacesedan/notetaker/internal/models"
	"github.com/spacesedan/notetaker/internal/samples"
	"github.com/spacesedan/notetaker/internal/sentiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunTranscriptAndDialogue(t *testing.T) {
	transcript := writeTemp(t, "transcript.txt", samples.Transcript)
	dialogue := writeTemp(t, "dialogue.txt", samples.Dialogue)

	var stdout bytes.Buffer
	cfg := config.Config{SentimentBackend: config.BackendVader}
	err := run(context.Background(), cfg, []string{"-transcript", transcript, "-dialogue", dialogue}, nil, &stdout)
	require.NoError(t, err)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Contains(t, got, "summary")
	assert.Contains(t, got, "keywords")
	assert.Contains(t, got, "soap")
	assert.JSONEq(t, `{"Sentiment":"Anxious","Intent":"Seeking reassurance"}`, string(got["sentiment"]))
}

func TestRunDialogueFromStdin(t *testing.T) {
	var stdout bytes.Buffer
	err := run(context.Background(), config.Config{}, []string{"-dialogue", "-", "-backend", "vader"},
		strings.NewReader("The appointment is on Tuesday."), &stdout)
	require.NoError(t, err)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.NotContains(t, got, "summary")
	assert.JSONEq(t, `{"Sentiment":"Neutral","Intent":"Reporting symptoms"}`, string(got["sentiment"]))
}

func TestRunRequiresInput(t *testing.T) {
	err := run(context.Background(), config.Config{}, nil, nil, &bytes.Buffer{})
	require.ErrorIs(t, err, errNoInput)
}

func TestRunUnknownBackend(t *testing.T) {
	dialogue := writeTemp(t, "dialogue.txt", "It hurts.")
	err := run(context.Background(), config.Config{}, []string{"-dialogue", dialogue, "-backend", "tarot"}, nil, &bytes.Buffer{})
	require.Error(t, err)
}

func TestRunMissingFile(t *testing.T) {
	err := run(context.Background(), config.Config{}, []string{"-transcript", filepath.Join(t.TempDir(), "missing.txt")}, nil, &bytes.Buffer{})
	require.Error(t, err)
}

type closingClassifier struct {
	closed bool
}

func (c *closingClassifier) Name() string { return "closing" }

func (c *closingClassifier) Classify(context.Context, string) (models.ClassifierLabel, error) {
	return models.ClassifierLabel{Label: models.LabelNegative}, nil
}

func (c *closingClassifier) Close() error {
	c.closed = true
	return nil
}

func TestRunReleasesClassifier(t *testing.T) {
	stub := &closingClassifier{}
	orig := newClassifier
	newClassifier = func(context.Context, config.Config) (sentiment.Classifier, error) { return stub, nil }
	t.Cleanup(func() { newClassifier = orig })

	var stdout bytes.Buffer
	err := run(context.Background(), config.Config{}, []string{"-dialogue", "-"},
		strings.NewReader("My neck is stiff in the mornings."), &stdout)
	require.NoError(t, err)

	assert.True(t, stub.closed)
	assert.Contains(t, stdout.String(), `"Anxious"`)
}
