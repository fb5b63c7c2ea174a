// ABOUTME: Tests for live session message handling
// ABOUTME: Covers frame parsing and client construction
package live

import (
	"encoding/json"
	"testing"
)

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{APIKey: "k", Model: "m", Voice: "Kore"})
	if client == nil {
		t.Fatal("expected client to be created")
	}
	if client.config.Host != defaultHost {
		t.Errorf("expected default host, got %s", client.config.Host)
	}
}

func TestServerMessageAudioPayloads(t *testing.T) {
	raw := `{
		"serverContent": {
			"modelTurn": {
				"role": "model",
				"parts": [
					{"inlineData": {"mimeType": "audio/pcm;rate=24000", "data": "AAAAQA=="}},
					{"inlineData": {"mimeType": "audio/pcm;rate=24000", "data": "/38AgA=="}}
				]
			}
		}
	}`

	var msg serverMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	payloads := msg.audioPayloads()
	if len(payloads) != 2 {
		t.Fatalf("expected 2 payloads, got %d", len(payloads))
	}
	if payloads[0] != "AAAAQA==" {
		t.Errorf("unexpected first payload: %q", payloads[0])
	}
}

func TestServerMessageTurnComplete(t *testing.T) {
	raw := `{"serverContent": {"turnComplete": true}}`

	var msg serverMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if !msg.ServerContent.TurnComplete {
		t.Error("expected turnComplete")
	}
	if got := msg.audioPayloads(); got != nil {
		t.Errorf("expected no payloads, got %v", got)
	}
}

func TestServerMessageSetupComplete(t *testing.T) {
	var msg serverMessage
	if err := json.Unmarshal([]byte(`{"setupComplete": {}}`), &msg); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if msg.SetupComplete == nil {
		t.Error("expected setupComplete to be present")
	}
}

func TestSetupMessageShape(t *testing.T) {
	msg := setupMessage{
		Setup: setupPayload{
			Model: "models/test-model",
			GenerationConfig: &generationConfig{
				ResponseModalities: []string{"AUDIO"},
				SpeechConfig: &speechConfig{
					VoiceConfig: &voiceConfig{
						PrebuiltVoiceConfig: &prebuiltVoiceConfig{VoiceName: "Kore"},
					},
				},
			},
		},
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}
	if _, ok := decoded["setup"]; !ok {
		t.Error("expected top-level setup key")
	}
}

func TestSendBeforeConnectFails(t *testing.T) {
	client := NewClient(Config{APIKey: "k", Model: "m", Voice: "Kore"})
	if err := client.Send("hello"); err == nil {
		t.Fatal("expected error before connect")
	}
}
