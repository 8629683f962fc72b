package main

import (
	"flag"
	"log/slog"
	"os"

	"gilded/internal/logger"
	"gilded/internal/validation"
)

func main() {
	var baseURL string
	flag.StringVar(&baseURL, "url", "http://localhost:8081", "Base URL for API validation")
	flag.Parse()

	logger.Init("info", "text")
	slog.Info("Starting API validation", "url", baseURL)

	if err := validation.RunValidation(baseURL); err != nil {
		slog.Error("Validation failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Validation passed")
}
