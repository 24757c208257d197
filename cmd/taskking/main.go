package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/TWRT/task-king/internal/client/backend"
	"github.com/TWRT/task-king/internal/config"
	"github.com/TWRT/task-king/internal/logging"
	"github.com/TWRT/task-king/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to client.toml (default $XDG_CONFIG_HOME/taskking/client.toml)")
	apiURL := flag.String("api", "", "task API base URL (overrides config and API_URL)")
	flag.Parse()

	cfg, err := config.LoadClient(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "taskking:", err)
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "taskking: requires a terminal")
		os.Exit(2)
	}

	logger := logging.Discard()
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "taskking: open log file:", err)
			os.Exit(1)
		}
		defer f.Close()
		opts := logging.DefaultOptions()
		opts.Level = log.DebugLevel
		logger = logging.New(f, opts)
	}
	logger.Info("starting client", "api", cfg.APIURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tui.Run(ctx, backend.NewBackendClient(cfg.APIURL), logger); err != nil {
		logger.Error("client exited", "err", err)
		fmt.Fprintln(os.Stderr, "taskking:", err)
		os.Exit(1)
	}
}
