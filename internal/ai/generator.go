// Package ai is the boundary to the external generative-text capability.
// Everything leaving this package has been shape-checked by DecodeFields.
package ai

import (
	"context"
	"time"
)

// Generator asks the model for a JSON object with the given string fields
type Generator interface {
	Generate(ctx context.Context, prompt string, fields ...string) (map[string]string, error)
}

type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	// ShapeRetries is how many extra attempts a malformed answer gets
	ShapeRetries int
}

// Disabled is used when no API key is configured
type Disabled struct{}

func (Disabled) Generate(context.Context, string, ...string) (map[string]string, error) {
	return nil, ErrNotConfigured
}

// GeneratorFunc adapts a function to Generator
type GeneratorFunc func(ctx context.Context, prompt string, fields ...string) (map[string]string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string, fields ...string) (map[string]string, error) {
	return f(ctx, prompt, fields...)
}
