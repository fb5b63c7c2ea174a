// ABOUTME: HTTP handlers for chat, speech, and image editing
// ABOUTME: Validates requests and translates studio results to JSON
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cadenza-Studio/cadenza-go/internal/studio"
	"github.com/Cadenza-Studio/cadenza-go/pkg/audio"
	"github.com/Cadenza-Studio/cadenza-go/pkg/audio/decode"
	"github.com/Cadenza-Studio/cadenza-go/pkg/audio/encode"
)

// maxImageBytes caps uploaded source images.
const maxImageBytes = 20 << 20

// API is the slice of the studio client the handlers use.
type API interface {
	Complete(ctx context.Context, text string, opts studio.RequestOptions) (string, error)
	Synthesize(ctx context.Context, text, voice string) (string, error)
	EditImage(ctx context.Context, instruction string, image []byte, mimeType string) (*studio.ImageResult, error)
}

type chatRequest struct {
	Message  string `json:"message" binding:"required"`
	Thinking bool   `json:"thinking"`
	Search   bool   `json:"search"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := s.api.Complete(c.Request.Context(), req.Message, studio.RequestOptions{
		Thinking:  req.Thinking,
		UseSearch: req.Search,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

type speechRequest struct {
	Text  string `json:"text" binding:"required"`
	Voice string `json:"voice"`
}

func (s *Server) handleSpeech(c *gin.Context) {
	var req speechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	voice := req.Voice
	if voice == "" {
		voice = s.speech.Voice
	}

	payload, err := s.api.Synthesize(c.Request.Context(), req.Text, voice)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if c.Query("format") == "wav" {
		buf, err := decode.Base64PCM(payload, audio.SpeechFormat())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": fmt.Sprintf("synthesized payload undecodable: %v", err)})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="speech.wav"`)
		c.Header("Content-Type", "audio/wav")
		c.Status(http.StatusOK)
		if err := encode.WAV(c.Writer, buf); err != nil {
			// Headers are gone; nothing left to do but note it.
			_ = c.Error(err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payload":     payload,
		"sample_rate": audio.SpeechSampleRate,
		"channels":    audio.SpeechChannels,
		"voice":       voice,
	})
}

func (s *Server) handleImageEdit(c *gin.Context) {
	instruction := c.PostForm("instruction")
	if instruction == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "instruction is required"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	imageBytes, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.api.EditImage(c.Request.Context(), instruction, imageBytes,
		fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"image":      result.Data, // JSON marshals []byte as base64
		"mime_type":  result.MIMEType,
		"commentary": result.Commentary,
	})
}
