// ABOUTME: Entry point for the Cadenza HTTP API server
// ABOUTME: Serves chat, speech, and image editing to browser clients
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/Cadenza-Studio/cadenza-go/internal/config"
	"github.com/Cadenza-Studio/cadenza-go/internal/logging"
	"github.com/Cadenza-Studio/cadenza-go/internal/server"
	"github.com/Cadenza-Studio/cadenza-go/internal/studio"
	"github.com/Cadenza-Studio/cadenza-go/internal/version"
)

var (
	configPath = flag.String("config", "cadenza.yaml", "Path to YAML config file")
	listenAddr = flag.String("listen", "", "Listen address override (e.g. :8420)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if *listenAddr != "" {
		cfg.Server.ListenAddr = *listenAddr
	}

	closer, err := logging.Setup(logging.Options{
		Level:   string(cfg.Log.Level),
		Console: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging error: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}

	client, err := studio.New(context.Background(), cfg.ResolveAPIKey(), cfg.Models)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create studio client")
	}

	log.Info().Str("version", version.Version).Msg("starting api server")

	srv := server.New(client, cfg.Server, cfg.Speech)
	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
