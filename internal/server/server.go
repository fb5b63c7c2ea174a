// ABOUTME: HTTP API facade exposing chat, image edit, and speech
// ABOUTME: Serves browser clients with gin and CORS
// Package server exposes the studio operations over HTTP so browser
// front-ends can consume them. It owns no generation logic: requests
// are validated, forwarded, and rendered. Synthesis responses carry
// the base64 PCM payload unchanged, or a WAV download on request.
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Cadenza-Studio/cadenza-go/internal/config"
	"github.com/Cadenza-Studio/cadenza-go/internal/version"
)

// Server hosts the HTTP API.
type Server struct {
	api    API
	cfg    config.ServerConfig
	speech config.SpeechConfig
	router *gin.Engine
}

// New builds the router. api is the studio client in production and a
// fake in tests.
func New(api API, cfg config.ServerConfig, speech config.SpeechConfig) *Server {
	s := &Server{api: api, cfg: cfg, speech: speech}

	router := gin.New()
	router.Use(gin.Recovery())

	if len(cfg.AllowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.AllowedOrigins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
		router.Use(cors.New(corsCfg))
	}

	router.GET("/healthz", s.handleHealth)
	api1 := router.Group("/api")
	{
		api1.POST("/chat", s.handleChat)
		api1.POST("/speech", s.handleSpeech)
		api1.POST("/images/edit", s.handleImageEdit)
	}

	s.router = router
	return s
}

// Router returns the handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until the listener fails.
func (s *Server) Run() error {
	log.Info().Str("addr", s.cfg.ListenAddr).Msg("api server listening")
	return s.router.Run(s.cfg.ListenAddr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"product": version.Product,
		"version": version.Version,
	})
}
