// ABOUTME: Request shaping from UI toggles
// ABOUTME: Maps thinking/search flags to a model ID and tool config
package studio

import (
	"google.golang.org/genai"

	"github.com/Cadenza-Studio/cadenza-go/internal/config"
)

// RequestOptions carries the per-request toggles the UI exposes.
type RequestOptions struct {
	// Thinking routes the request to the slower reasoning model.
	Thinking bool

	// UseSearch attaches the web-search grounding tool.
	UseSearch bool
}

// shapeRequest selects the model ID and generation config for the
// given toggles. Pure: same inputs, same outputs.
func shapeRequest(models config.ModelsConfig, opts RequestOptions) (string, *genai.GenerateContentConfig) {
	model := models.Chat
	if opts.Thinking {
		model = models.Thinking
	}

	var cfg *genai.GenerateContentConfig
	if opts.UseSearch {
		cfg = &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
		}
	}

	return model, cfg
}
