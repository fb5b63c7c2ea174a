// ABOUTME: WebSocket client for streaming speech sessions
// ABOUTME: Handles connection, setup handshake, and frame routing
// Package live implements a minimal client for the bidirectional
// streaming speech endpoint. Synthesized audio arrives as base64 PCM
// chunks in the same wire format the one-shot speech path uses; the
// caller decodes and plays each chunk as it lands.
package live

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const defaultHost = "generativelanguage.googleapis.com"

// bidiPath is the streaming generate endpoint.
const bidiPath = "/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"

// Config holds live session configuration.
type Config struct {
	APIKey string
	Model  string
	Voice  string

	// Host overrides the API host, for tests.
	Host string
}

// Chunk is one audio payload received mid-turn.
type Chunk struct {
	// Payload is base64-encoded s16le PCM, mono, 24 kHz.
	Payload string
}

// Client is a live streaming session.
type Client struct {
	config Config
	conn   *websocket.Conn
	mu     sync.Mutex

	// Chunks carries audio payloads as they arrive.
	Chunks chan Chunk

	// TurnDone signals the end of each model turn.
	TurnDone chan struct{}

	// Errs carries the terminal read error, if any.
	Errs chan error

	closed bool
}

// NewClient creates an unconnected live client.
func NewClient(config Config) *Client {
	if config.Host == "" {
		config.Host = defaultHost
	}
	return &Client{
		config:   config,
		Chunks:   make(chan Chunk, 100),
		TurnDone: make(chan struct{}, 1),
		Errs:     make(chan error, 1),
	}
}

// Connect dials the endpoint and performs the setup handshake.
func (c *Client) Connect() error {
	u := url.URL{
		Scheme:   "wss",
		Host:     c.config.Host,
		Path:     bidiPath,
		RawQuery: "key=" + url.QueryEscape(c.config.APIKey),
	}

	log.Debug().Str("host", c.config.Host).Msg("connecting live session")

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("live: dial failed: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	if err := c.setup(); err != nil {
		c.Close()
		return fmt.Errorf("live: setup failed: %w", err)
	}

	go c.readMessages()

	return nil
}

// setup sends the session config and waits for acknowledgement.
func (c *Client) setup() error {
	msg := setupMessage{
		Setup: setupPayload{
			Model: "models/" + c.config.Model,
			GenerationConfig: &generationConfig{
				ResponseModalities: []string{"AUDIO"},
				SpeechConfig: &speechConfig{
					VoiceConfig: &voiceConfig{
						PrebuiltVoiceConfig: &prebuiltVoiceConfig{VoiceName: c.config.Voice},
					},
				},
			},
		},
	}

	if err := c.sendJSON(msg); err != nil {
		return fmt.Errorf("send setup: %w", err)
	}

	c.conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("read setup ack: %w", err)
	}
	c.conn.SetReadDeadline(time.Time{})

	var ack serverMessage
	if err := json.Unmarshal(data, &ack); err != nil {
		return fmt.Errorf("parse setup ack: %w", err)
	}
	if ack.SetupComplete == nil {
		return fmt.Errorf("expected setupComplete, got %s", data)
	}

	log.Debug().Msg("live session established")
	return nil
}

// Send submits one complete user turn; audio for the reply streams
// through Chunks.
func (c *Client) Send(text string) error {
	msg := clientContentMessage{
		ClientContent: clientContent{
			Turns: []turn{
				{Role: "user", Parts: []part{{Text: text}}},
			},
			TurnComplete: true,
		},
	}
	if err := c.sendJSON(msg); err != nil {
		return fmt.Errorf("live: send turn: %w", err)
	}
	return nil
}

// readMessages routes server frames until the connection drops.
func (c *Client) readMessages() {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			closed := c.closed
			c.mu.Unlock()
			if !closed {
				select {
				case c.Errs <- fmt.Errorf("live: read: %w", err):
				default:
				}
			}
			return
		}

		var msg serverMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Warn().Err(err).Msg("unparseable live frame")
			continue
		}

		for _, payload := range msg.audioPayloads() {
			select {
			case c.Chunks <- Chunk{Payload: payload}:
			default:
				log.Warn().Msg("live chunk dropped, consumer too slow")
			}
		}

		if msg.ServerContent != nil && msg.ServerContent.TurnComplete {
			select {
			case c.TurnDone <- struct{}{}:
			default:
			}
		}
	}
}

// sendJSON marshals and writes one frame under the write lock.
func (c *Client) sendJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("not connected")
	}
	return c.conn.WriteJSON(v)
}

// Close tears the session down.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
