// ABOUTME: Speech synthesis call returning the raw wire payload
// ABOUTME: Requests audio output and re-encodes it as base64 PCM
package studio

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// Synthesize asks the speech model to read text aloud with the given
// prebuilt voice. It returns the payload in the wire format the
// decoder consumes: base64-encoded raw s16le PCM, mono, 24 kHz. The
// SDK hands inline audio over pre-decoded, so the bytes are re-encoded
// to keep one payload representation across the HTTP facade, the live
// client, and this path.
func (c *Client) Synthesize(ctx context.Context, text, voice string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: voice,
				},
			},
		},
	}

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: text}}},
	}

	log.Debug().Str("model", c.models.Speech).Str("voice", voice).Int("chars", len(text)).
		Msg("speech request")

	resp, err := c.gen.GenerateContent(ctx, c.models.Speech, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("studio: speech generation: %w", err)
	}

	blob := firstBlob(resp)
	if blob == nil {
		return "", fmt.Errorf("studio: response carried no audio")
	}

	return base64.StdEncoding.EncodeToString(blob.Data), nil
}
