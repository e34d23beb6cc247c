package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/angmini/angmini-client/internal/client/cli"
	"github.com/angmini/angmini-client/internal/client/storage/boltdb"
	"github.com/angmini/angmini-client/internal/client/sync"
	"github.com/angmini/angmini-client/internal/client/transport"
	"github.com/angmini/angmini-client/internal/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "Path to .env configuration file")
	dbPath := flag.String("db", "", "Override the local cache file path")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	command := args[0]
	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DatabasePath = *dbPath
	}

	logger := newLogger(cfg.LogLevel)

	cache, err := boltdb.New(ctx, cfg.DatabasePath, cfg.MessageRetention)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open cache: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := cache.Close(); err != nil {
			logger.Error("failed to close cache", "error", err)
		}
	}()

	channel := transport.NewClient("", cfg.BotToken, cfg.ChannelID)
	poller := transport.NewPoller(channel, cfg.PollInterval, cfg.AssistantUserID, logger)

	syncService, err := sync.NewService(channel, poller, cache, cfg.SyncSchedule, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create sync service: %v\n", err)
		os.Exit(1)
	}

	c := cli.New(syncService)

	switch command {
	case "run":
		err = c.RunPoll(ctx)
	case "status":
		syncService.Restore(ctx)
		err = c.RunStatus(ctx)
	case "list":
		syncService.Restore(ctx)
		err = c.RunList(ctx, args[1:])
	case "send":
		syncService.Restore(ctx)
		err = c.RunSend(ctx, args[1:])
	case "reset":
		err = c.RunReset(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		cli.PrintUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger at the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func printVersion() {
	fmt.Printf("Angmini Desktop Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
