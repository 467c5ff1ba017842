package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/cardroomhq/cardroom/internal/server"
)

var CLI struct {
	Config   string `short:"c" default:"cardroom.hcl" help:"Path to HCL configuration file"`
	Addr     string `short:"a" placeholder:"HOST:PORT" help:"Listen address (overrides config)"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
}

func main() {
	kctx := kong.Parse(&CLI)

	cfg, err := server.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		kctx.Exit(1)
	}

	// Apply command line overrides
	if CLI.Addr != "" {
		if err := cfg.SetListenAddress(CLI.Addr); err != nil {
			fmt.Printf("Invalid configuration: %v\n", err)
			kctx.Exit(1)
		}
	}
	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		kctx.Exit(1)
	}

	logger := log.New(os.Stderr)
	switch cfg.Server.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	logger.Info("starting cardroom server",
		"addr", cfg.ListenAddress(),
		"stakes", fmt.Sprintf("%d/%d", cfg.Room.SmallBlind, cfg.Room.BigBlind),
		"max_players", cfg.Room.MaxPlayers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(cfg.ListenAddress(), cfg.RoomConfig(), logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server failed", "error", err)
		kctx.Exit(1)
	}
	logger.Info("server stopped")
}
