// ABOUTME: Image editing call against the image model
// ABOUTME: Sends instruction plus source image, returns edited bytes
package studio

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// ImageResult is an edited image plus any commentary the model added.
type ImageResult struct {
	Data       []byte
	MIMEType   string
	Commentary string
}

// EditImage applies a natural-language instruction to an image.
func (c *Client) EditImage(ctx context.Context, instruction string, image []byte, mimeType string) (*ImageResult, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("studio: empty source image")
	}
	if mimeType == "" {
		mimeType = "image/png"
	}

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: instruction},
				{InlineData: &genai.Blob{Data: image, MIMEType: mimeType}},
			},
		},
	}

	log.Debug().Str("model", c.models.Image).Str("mime", mimeType).Int("bytes", len(image)).
		Msg("image edit request")

	resp, err := c.gen.GenerateContent(ctx, c.models.Image, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("studio: image generation: %w", err)
	}

	blob := firstBlob(resp)
	if blob == nil {
		return nil, fmt.Errorf("studio: response carried no image")
	}

	return &ImageResult{
		Data:       blob.Data,
		MIMEType:   blob.MIMEType,
		Commentary: firstText(resp),
	}, nil
}
