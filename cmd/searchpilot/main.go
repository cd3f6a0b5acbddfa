package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"searchpilot/internal/cli"
	"searchpilot/internal/config"
	"searchpilot/internal/lang"
	"searchpilot/internal/llm"
	"searchpilot/internal/logger"
	"searchpilot/internal/search"
	"searchpilot/internal/websearch"
)

var (
	version = "0.1.0"
)

func initLogger() {
	_ = logger.Init(logger.Config{
		LogDir:  config.LogDir(),
		Level:   logger.INFO,
		MaxDays: 7,
	})
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "searchpilot",
		Short: "searchpilot - Intent-aware research companion",
		Long: `searchpilot is a terminal research companion that classifies what you are
asking for, fans the question out across a web search backend, ranks the hits
by relevance, source quality and intent fit, and synthesizes a sourced answer.

It can:
  • Chat in natural language
  • Research questions on the live web with /search
  • Show the ranked sources behind every answer
  • Switch between generation models on the fly`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			initLogger()
			defer logger.Close()

			return cli.Run(cfg)
		},
	}

	// One-shot research from the shell, no REPL
	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run one web research query and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if !cfg.IsAPIKeyConfigured() {
				return fmt.Errorf("API key not configured; run searchpilot once to set it up")
			}

			initLogger()
			defer logger.Close()

			client := llm.New(
				cfg.Model.APIKey,
				cfg.Model.BaseURL,
				cfg.Model.Model,
				cfg.Model.Temperature,
				cfg.Model.MaxTokens,
			)
			engine := search.New(websearch.FromConfig(cfg.WebSearch), client, search.Config{
				MaxQueries:    cfg.Search.MaxQueries,
				ResultLimit:   cfg.WebSearch.DefaultLimit,
				EvidenceSize:  cfg.Search.EvidenceSize,
				DisplaySize:   cfg.Search.DisplaySize,
				CacheTTL:      time.Duration(cfg.Search.CacheTTLMinutes) * time.Minute,
				SearchTimeout: time.Duration(cfg.WebSearch.TimeoutSeconds) * time.Second,
			}, search.WithLanguageDetector(lang.NewDetector(client)))

			query := strings.Join(args, " ")
			_, err = engine.Run(context.Background(), query, query, "", func(content string) {
				fmt.Print(content)
			})
			fmt.Println()
			return err
		},
	}

	// config subcommand
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			fmt.Println(cfg.String())

			path, _ := config.ConfigPath()
			fmt.Printf("\nConfig file path: %s\n", path)
			return nil
		},
	}

	// version subcommand
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("searchpilot v%s\n", version)
		},
	}

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
