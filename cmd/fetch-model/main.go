// Command fetch-model downloads the ONNX sentiment model used by the hugot
// backend so the server can start offline.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/spacesedan/notetaker/config"
	"github.com/spacesedan/notetaker/internal/logging"
	"github.com/spacesedan/notetaker/internal/sentiment"
)

func main() {
	config.LoadEnv(config.AppEnv())
	cfg := config.Load()
	logging.InitLogger(cfg.LogLevel)

	dir := flag.String("dir", cfg.HugotModelDir, "directory to store the model in")
	model := flag.String("model", cfg.HugotModelName, "Hugging Face model to download")
	flag.Parse()

	path, err := sentiment.EnsureModel(*dir, *model)
	if err != nil {
		slog.Error("[FetchModel] Failed to fetch model",
			slog.String("model", *model),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("[FetchModel] Model ready", slog.String("path", path))
}
