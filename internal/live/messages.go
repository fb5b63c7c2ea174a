// ABOUTME: JSON message envelopes for the live speech session
// ABOUTME: Mirrors the bidirectional generate-content wire protocol
package live

// setupMessage opens a session and pins the response modality.
type setupMessage struct {
	Setup setupPayload `json:"setup"`
}

type setupPayload struct {
	Model            string            `json:"model"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	SpeechConfig       *speechConfig `json:"speechConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig *voiceConfig `json:"voiceConfig,omitempty"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig *prebuiltVoiceConfig `json:"prebuiltVoiceConfig,omitempty"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

// clientContentMessage sends one complete user turn.
type clientContentMessage struct {
	ClientContent clientContent `json:"clientContent"`
}

type clientContent struct {
	Turns        []turn `json:"turns"`
	TurnComplete bool   `json:"turnComplete"`
}

type turn struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	// Data is base64-encoded raw PCM, exactly the payload format the
	// decoder consumes.
	Data string `json:"data"`
}

// serverMessage is the union of frames the server sends. Exactly one
// field is set per frame.
type serverMessage struct {
	SetupComplete *struct{}      `json:"setupComplete,omitempty"`
	ServerContent *serverContent `json:"serverContent,omitempty"`
}

type serverContent struct {
	ModelTurn    *turn `json:"modelTurn,omitempty"`
	TurnComplete bool  `json:"turnComplete,omitempty"`
	Interrupted  bool  `json:"interrupted,omitempty"`
}

// audioPayloads extracts the base64 PCM payloads from a server frame,
// in order. Frames without audio yield nil.
func (m *serverMessage) audioPayloads() []string {
	if m.ServerContent == nil || m.ServerContent.ModelTurn == nil {
		return nil
	}
	var payloads []string
	for _, p := range m.ServerContent.ModelTurn.Parts {
		if p.InlineData != nil && p.InlineData.Data != "" {
			payloads = append(payloads, p.InlineData.Data)
		}
	}
	return payloads
}
