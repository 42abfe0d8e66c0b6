// Package llm wraps the Gemini API behind a one-method text interface. The
// agents use it for channel selection, reply triage, and email drafting; every
// caller must keep working with a heuristic fallback when no key is set.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// Generator produces one completion for one prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const defaultModel = "gemini-2.0-flash"

// Gemini implements Generator on the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

var _ Generator = (*Gemini)(nil)

// NewGeminiFromEnv reads GOOGLE_API_KEY (or GEMINI_API_KEY) and an optional
// GEMINI_MODEL override.
func NewGeminiFromEnv(ctx context.Context) (*Gemini, error) {
	key := os.Getenv("GOOGLE_API_KEY")
	if key == "" {
		key = os.Getenv("GEMINI_API_KEY")
	}
	if key == "" {
		return nil, errors.New("llm: GOOGLE_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: key})
	if err != nil {
		return nil, fmt.Errorf("llm: connect: %w", err)
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("llm: generate: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("llm: empty completion")
	}
	return text, nil
}
