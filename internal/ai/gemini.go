package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiClient calls Gemini with a JSON response schema
type GeminiClient struct {
	models contentGenerator
	config Config
}

func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return newGeminiClient(client.Models, cfg), nil
}

func newGeminiClient(models contentGenerator, cfg Config) *GeminiClient {
	if cfg.ShapeRetries < 0 {
		cfg.ShapeRetries = 0
	}
	return &GeminiClient{models: models, config: cfg}
}

// Generate sends the prompt and validates the answer. Transport errors are
// returned as is; malformed answers are retried ShapeRetries times.
func (g *GeminiClient) Generate(ctx context.Context, prompt string, fields ...string) (map[string]string, error) {
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   objectSchema(fields),
	}

	var lastErr error
	for attempt := 0; attempt <= g.config.ShapeRetries; attempt++ {
		resp, err := g.models.GenerateContent(ctx, g.config.Model, genai.Text(prompt), genConfig)
		if err != nil {
			return nil, fmt.Errorf("generate content: %w", err)
		}

		out, err := DecodeFields(resp.Text(), fields)
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, ErrMalformedOutput) {
			return nil, err
		}

		lastErr = err
		slog.Warn("Generator returned malformed output",
			"model", g.config.Model, "attempt", attempt+1, "error", err)
	}
	return nil, lastErr
}

func objectSchema(fields []string) *genai.Schema {
	props := make(map[string]*genai.Schema, len(fields))
	for _, f := range fields {
		props[f] = &genai.Schema{Type: genai.TypeString}
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: props,
		Required:   fields,
	}
}
