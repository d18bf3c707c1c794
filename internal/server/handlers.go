package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/spacesedan/notetaker/internal/extraction"
	"github.com/spacesedan/notetaker/internal/samples"
	"github.com/spacesedan/notetaker/internal/soap"
)

type indexPage struct {
	SampleTranscript string
	SampleDialogue   string
	Methodology      []methodologyEntry
}

type transcriptFragment struct {
	Summary  string
	Keywords string
	SOAP     string
}

type sentimentFragment struct {
	Sentiment string
	DecidedBy string
}

type errorFragment struct {
	Message   string
	RequestID string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "index.html", indexPage{
		SampleTranscript: samples.Transcript,
		SampleDialogue:   samples.Dialogue,
		Methodology:      methodology,
	})
}

func (s *Server) handleAnalyzeTranscript(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Could not read the transcript form.")
		return
	}
	transcript := r.PostFormValue("transcript")

	fragment := transcriptFragment{
		Summary:  prettyJSON(extraction.SummarizeToJSON(transcript)),
		Keywords: prettyJSON(extraction.ExtractKeywords(transcript)),
		SOAP:     prettyJSON(soap.GenerateSOAPNote(transcript)),
	}
	s.render(w, r, http.StatusOK, "transcript_result.html", fragment)
}

func (s *Server) handleAnalyzeSentiment(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Could not read the dialogue form.")
		return
	}

	decision, err := s.analyzer.Decide(r.Context(), r.PostFormValue("dialogue"))
	if err != nil {
		slog.Error("[Server] Sentiment analysis failed",
			slog.String("request_id", RequestIDFromContext(r.Context())),
			slog.String("error", err.Error()))
		s.renderError(w, r, http.StatusBadGateway, "The sentiment classifier is unavailable. Try again shortly.")
		return
	}

	s.render(w, r, http.StatusOK, "sentiment_result.html", sentimentFragment{
		Sentiment: prettyJSON(decision.Result),
		DecidedBy: decision.DecidedBy,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":                 true,
		"classifier":         s.analyzer.ClassifierName(),
		"classifier_healthy": s.healthy.Load(),
	})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("[Server] Failed to render template",
			slog.String("template", name),
			slog.String("request_id", RequestIDFromContext(r.Context())),
			slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.render(w, r, status, "error.html", errorFragment{
		Message:   msg,
		RequestID: RequestIDFromContext(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func prettyJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(b)
}
