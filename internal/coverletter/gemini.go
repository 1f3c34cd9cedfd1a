// Package coverletter generates short submission cover letters with Gemini.
// Generation is best-effort everywhere: a disabled or failing generator
// degrades to an empty letter and never blocks a submission notification.
package coverletter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"castmatch_backend/platform/config"
)

// Generator produces text for a prompt. Satisfied by the Gemini client and
// by test stubs.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator wraps the Google GenAI client for single-prompt completions.
type GeminiGenerator struct {
	client    *genai.Client
	modelName string
}

// NewGeminiGenerator creates a generator configured for the Gemini API backend.
func NewGeminiGenerator(ctx context.Context, cfg config.CoverLetterConfig) (*GeminiGenerator, error) {
	apiKey := strings.TrimSpace(cfg.GetGeminiAPIKey())
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiGenerator{client: client, modelName: cfg.GetGeminiModel()}, nil
}

// GenerateContent sends the prompt to Gemini and returns the first textual response.
func (g *GeminiGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}
