// ABOUTME: Entry point for the Cadenza terminal studio
// ABOUTME: Parses CLI flags and starts the TUI or a one-shot command
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/Cadenza-Studio/cadenza-go/internal/app"
	"github.com/Cadenza-Studio/cadenza-go/internal/config"
	"github.com/Cadenza-Studio/cadenza-go/internal/logging"
	"github.com/Cadenza-Studio/cadenza-go/internal/version"
)

var (
	configPath = flag.String("config", "cadenza.yaml", "Path to YAML config file")
	logFile    = flag.String("log-file", "", "Log file path (default: from config)")
	sayText    = flag.String("say", "", "Synthesize and play the given text, then exit")
	savePath   = flag.String("save", "", "With -say: write a WAV file instead of playing")
	liveMode   = flag.Bool("live", false, "With -say: stream over the live dialog endpoint")
	voice      = flag.String("voice", "", "Voice name override for speech synthesis")
	showVer    = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("%s %s\n", version.Product, version.Version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if *voice != "" {
		cfg.Speech.Voice = *voice
	}

	// One-shot commands log to the console; the TUI owns the terminal,
	// so interactive mode logs only to file.
	oneShot := *sayText != ""
	logPath := cfg.Log.File
	if *logFile != "" {
		logPath = *logFile
	}

	closer, err := logging.Setup(logging.Options{
		Level:    string(cfg.Log.Level),
		FilePath: logPath,
		Console:  oneShot,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging error: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := app.New(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if oneShot {
		switch {
		case *savePath != "":
			err = a.SaveWAV(*sayText, *savePath)
		case *liveMode:
			err = a.LiveSay(*sayText)
		default:
			err = a.Say(*sayText)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "speech error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	log.Info().Str("version", version.Version).Msg("starting studio session")
	if err := a.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "session error: %v\n", err)
		os.Exit(1)
	}
}
