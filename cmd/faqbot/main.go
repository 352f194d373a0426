// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/faqmatch"
	"github.com/poiesic/faqmatch/ai"
	"github.com/poiesic/faqmatch/kb"
	"github.com/poiesic/faqmatch/match"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "faqbot",
		Usage: "University FAQ assistant over a question/answer knowledge base",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "chat",
				Usage:  "Interactive question/answer session",
				Action: chatCommand,
				Flags:  assistantFlags(),
			},
			{
				Name:      "ask",
				Usage:     "Answer a single question and exit",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags:     assistantFlags(),
			},
			{
				Name:   "warm",
				Usage:  "Precompute and cache question embeddings",
				Action: warmCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "kb",
						Aliases:  []string{"k"},
						Usage:    "Path to the knowledge base JSON document",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "cache",
						Usage:    "Path to the embedding cache directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func assistantFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "kb",
			Aliases:  []string{"k"},
			Usage:    "Path to the knowledge base JSON document",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "strategy",
			Usage: "Scoring strategy (semantic, lexical, hybrid)",
			Value: match.StrategySemantic,
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "cache",
			Usage: "Path to the embedding cache directory (optional)",
		},
		&cli.Float64Flag{
			Name:  "threshold",
			Usage: "Override the match threshold for the selected strategy",
			Value: -1,
		},
		&cli.Float64Flag{
			Name:  "alpha",
			Usage: "Hybrid strategy semantic weight in [0, 1]",
			Value: -1,
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Worker pool size for parallel scoring (0 disables)",
		},
	}
}

// buildAssistant constructs the assistant from command flags. A missing or
// malformed knowledge base degrades to fallback-only operation instead of
// aborting, matching how the assistant behaves in a long-lived deployment.
func buildAssistant(ctx context.Context, c *cli.Context) (*faqmatch.Assistant, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)

	opts := []faqmatch.AssistantOption{
		faqmatch.WithAIConfig(aiConfig),
		faqmatch.WithStrategy(c.String("strategy")),
	}
	if cachePath := c.String("cache"); cachePath != "" {
		opts = append(opts, faqmatch.WithCachePath(cachePath))
	}
	if threshold := c.Float64("threshold"); threshold >= 0 {
		opts = append(opts, faqmatch.WithThreshold(c.String("strategy"), float32(threshold)))
	}
	if alpha := c.Float64("alpha"); alpha >= 0 {
		opts = append(opts, faqmatch.WithAlpha(float32(alpha)))
	}
	if workers := c.Int("workers"); workers > 0 {
		opts = append(opts, faqmatch.WithPoolSize(workers))
	}

	assistant, err := faqmatch.New(ctx, c.String("kb"), opts...)
	if err != nil {
		if errors.Is(err, kb.ErrSchema) {
			slog.Error("knowledge base unusable, degrading to fallback responses", "err", err)
			return faqmatch.NewFallbackOnly(opts...)
		}
		return nil, err
	}
	return assistant, nil
}

func chatCommand(c *cli.Context) error {
	ctx := context.Background()

	assistant, err := buildAssistant(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to build assistant: %w", err)
	}
	defer assistant.Close()

	fmt.Println(assistant.Greeting())
	fmt.Println("(type /reload to re-read the knowledge base, /quit to exit)")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		query := strings.TrimSpace(scanner.Text())
		switch query {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/reload":
			if err := assistant.Reload(ctx); err != nil {
				fmt.Printf("reload failed: %v\n", err)
			} else {
				fmt.Printf("knowledge base reloaded, %d entries\n", assistant.Store().Len())
			}
			continue
		}

		bundle, err := assistant.Ask(ctx, query)
		if err != nil {
			slog.Error("query failed", "err", err)
		}
		fmt.Println(bundle.Primary)
		fmt.Println(bundle.FollowUp)
	}

	return scanner.Err()
}

func askCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a question is required")
	}

	assistant, err := buildAssistant(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to build assistant: %w", err)
	}
	defer assistant.Close()

	bundle, err := assistant.Ask(ctx, query)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	fmt.Println(bundle.Primary)
	return nil
}

// warmCommand builds the semantic strategy once with the cache configured;
// construction embeds every question and fills the cache as a side effect.
func warmCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)

	assistant, err := faqmatch.New(ctx, c.String("kb"),
		faqmatch.WithAIConfig(aiConfig),
		faqmatch.WithStrategy(match.StrategySemantic),
		faqmatch.WithCachePath(c.String("cache")),
	)
	if err != nil {
		return fmt.Errorf("failed to warm cache: %w", err)
	}
	defer assistant.Close()

	fmt.Fprintf(os.Stderr, "Cached embeddings for %d questions at %s\n",
		assistant.Store().Len(), c.String("cache"))
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
