// ABOUTME: Client wrapper around the hosted multimodal model API
// ABOUTME: Provides chat, image editing, and speech synthesis calls
// Package studio wraps the generative model API behind small,
// testable operations. It shapes requests from user-facing toggles,
// forwards them, and extracts the useful parts of responses. It does
// not retry: every call is deterministic from the caller's view and
// failures propagate unchanged.
package studio

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/Cadenza-Studio/cadenza-go/internal/config"
)

// generator is the slice of the SDK the client needs. Tests substitute
// a fake; production wires *genai.Models.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client issues requests against the hosted model API.
type Client struct {
	gen    generator
	models config.ModelsConfig
}

// New creates a client authenticated with apiKey.
func New(ctx context.Context, apiKey string, models config.ModelsConfig) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("studio: no API key configured (set %s)", config.APIKeyEnv)
	}

	cc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("studio: create client: %w", err)
	}

	return &Client{gen: cc.Models, models: models}, nil
}

// firstText walks response candidates for the first non-empty text part.
func firstText(resp *genai.GenerateContentResponse) string {
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				return part.Text
			}
		}
	}
	return ""
}

// firstBlob walks response candidates for the first inline data part.
func firstBlob(resp *genai.GenerateContentResponse) *genai.Blob {
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData
			}
		}
	}
	return nil
}
