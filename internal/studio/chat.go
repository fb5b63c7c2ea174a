// ABOUTME: Multi-turn chat session over the model API
// ABOUTME: Maintains conversation history across Send calls
package studio

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// Turn is one side of a chat exchange, kept for transcript rendering.
type Turn struct {
	ID   string
	Role string // "user" or "model"
	Text string
}

// ChatSession holds conversation history. Not safe for concurrent
// Send calls; the UI drives it from a single event loop.
type ChatSession struct {
	client  *Client
	history []*genai.Content
	turns   []Turn
}

// NewChat starts an empty conversation.
func (c *Client) NewChat() *ChatSession {
	return &ChatSession{client: c}
}

// Send submits text with the current history and returns the model's
// reply. Both turns are appended to the history on success; a failed
// call leaves the history untouched.
func (s *ChatSession) Send(ctx context.Context, text string, opts RequestOptions) (string, error) {
	model, cfg := shapeRequest(s.client.models, opts)

	contents := append(append([]*genai.Content{}, s.history...), &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: text}},
	})

	log.Debug().Str("model", model).Bool("search", opts.UseSearch).Msg("chat request")

	resp, err := s.client.gen.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("studio: chat generation: %w", err)
	}

	reply := firstText(resp)
	if reply == "" {
		return "", fmt.Errorf("studio: empty chat response")
	}

	s.history = append(contents, &genai.Content{
		Role:  "model",
		Parts: []*genai.Part{{Text: reply}},
	})
	s.turns = append(s.turns,
		Turn{ID: uuid.New().String(), Role: "user", Text: text},
		Turn{ID: uuid.New().String(), Role: "model", Text: reply},
	)

	return reply, nil
}

// Turns returns the transcript so far.
func (s *ChatSession) Turns() []Turn {
	return s.turns
}

// Complete runs a single-turn exchange with no retained history.
func (c *Client) Complete(ctx context.Context, text string, opts RequestOptions) (string, error) {
	return c.NewChat().Send(ctx, text, opts)
}
