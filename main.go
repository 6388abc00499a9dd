// polichat - a terminal client for the policy assistant backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/polichat/internal/api"
	"github.com/jeranaias/polichat/internal/config"
	"github.com/jeranaias/polichat/internal/proxy"
	"github.com/jeranaias/polichat/internal/ui/chat"
	"github.com/jeranaias/polichat/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "", "chat":
		runTUI(cfg)
	case "serve":
		runServe(cfg)
	case "version", "--version", "-v":
		fmt.Printf("polichat %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`Usage: polichat [command]

Commands:
  chat       Start the interactive chat (default)
  serve      Run the passthrough proxy for the backend
  version    Print version information
  help       Show this help
`)
}

// runTUI starts the interactive terminal client.
func runTUI(cfg config.Config) {
	client := api.NewClient(cfg.Backend.URL).WithTimeout(cfg.Timeout())
	theme := styles.NewTheme()

	program := tea.NewProgram(
		chat.New(cfg, client, theme),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runServe runs the passthrough proxy until interrupted.
func runServe(cfg config.Config) {
	server := proxy.NewServer(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}
