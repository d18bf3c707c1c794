// Command analyze runs the transcript and dialogue analyzers from the
// command line and prints the results as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spacesedan/notetaker/config"
	"github.com/spacesedan/notetaker/internal/extraction"
	"github.com/spacesedan/notetaker/internal/logging"
	"github.com/spacesedan/notetaker/internal/models"
	"github.com/spacesedan/notetaker/internal/sentiment"
	"github.com/spacesedan/notetaker/internal/soap"
)

type report struct {
	Summary   *models.Summary         `json:"summary,omitempty"`
	Keywords  *[]string               `json:"keywords,omitempty"`
	SOAP      *models.SOAPNote        `json:"soap,omitempty"`
	Sentiment *models.SentimentResult `json:"sentiment,omitempty"`
}

var errNoInput = errors.New("nothing to analyze: pass -transcript and/or -dialogue")

var newClassifier = sentiment.NewClassifier

func main() {
	config.LoadEnv(config.AppEnv())
	cfg := config.Load()
	logging.InitLogger(cfg.LogLevel)

	if err := run(context.Background(), cfg, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		slog.Error("[Analyze] Failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	transcriptPath := fs.String("transcript", "", "transcript file to summarize (- for stdin)")
	dialoguePath := fs.String("dialogue", "", "patient dialogue file to classify (- for stdin)")
	backend := fs.String("backend", cfg.SentimentBackend, "fallback sentiment backend: vader, hugot, huggingface, openai")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *transcriptPath == "" && *dialoguePath == "" {
		return errNoInput
	}
	if *transcriptPath == "-" && *dialoguePath == "-" {
		return errors.New("only one input can be read from stdin")
	}

	var out report

	if *transcriptPath != "" {
		transcript, err := readInput(*transcriptPath, stdin)
		if err != nil {
			return err
		}
		summary := extraction.SummarizeToJSON(transcript)
		note := soap.GenerateSOAPNote(transcript)
		keywords := extraction.ExtractKeywords(transcript)
		out.Summary = &summary
		out.Keywords = &keywords
		out.SOAP = &note
	}

	if *dialoguePath != "" {
		dialogue, err := readInput(*dialoguePath, stdin)
		if err != nil {
			return err
		}

		cfg.SentimentBackend = *backend
		classifier, err := newClassifier(ctx, cfg)
		if err != nil {
			return fmt.Errorf("sentiment classifier: %w", err)
		}
		defer func() {
			if err := sentiment.Close(classifier); err != nil {
				slog.Warn("[Analyze] Failed to release classifier", slog.String("error", err.Error()))
			}
		}()

		result, err := sentiment.NewAnalyzer(classifier).Analyze(ctx, dialogue)
		if err != nil {
			return err
		}
		out.Sentiment = &result
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func readInput(path string, stdin io.Reader) (string, error) {
	var b []byte
	var err error
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}
