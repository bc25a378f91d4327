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
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/sift"
	"github.com/poiesic/sift/ai"
	"github.com/poiesic/sift/ai/openai"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/indexing"
	"github.com/poiesic/sift/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "sift",
		Usage:  "Ranked-relevance search over indexed people profiles",
		Before: setup,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "Index profiles from a JSON lines file",
				Action: indexCommand,
				Flags: append(databaseFlags(),
					&cli.StringFlag{
						Name:     "src",
						Aliases:  []string{"s"},
						Usage:    "Path to a JSON lines file, one profile per line",
						Required: true,
					},
				),
			},
			{
				Name:      "rank",
				Usage:     "Rank every indexed profile against free-text criteria",
				ArgsUsage: "CRITERIA...",
				Action:    rankCommand,
				Flags: append(databaseFlags(),
					&cli.StringFlag{
						Name:    "view",
						Aliases: []string{"v"},
						Usage:   "View to query (professional, personal)",
						Value:   string(core.ViewProfessional),
					},
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"k"},
						Usage:   "Number of top candidates to classify with the judge (0 disables classification)",
						Value:   5,
					},
				),
			},
			{
				Name:   "count",
				Usage:  "Show the number of indexed identities per view",
				Action: countCommand,
				Flags:  databaseFlags(),
			},
			{
				Name:   "clear",
				Usage:  "Remove all vectors for a view",
				Action: clearCommand,
				Flags: append(databaseFlags(),
					&cli.StringFlag{
						Name:     "view",
						Aliases:  []string{"v"},
						Usage:    "View to clear (professional, personal)",
						Required: true,
					},
				),
			},
			{
				Name:   "rebuild",
				Usage:  "Re-embed all stored profiles into a view's vector collection",
				Action: rebuildCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "view",
						Usage: "View to rebuild (default: all views)",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N profiles",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed embeddings",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// databaseFlags are the flags shared by commands that open the full database.
func databaseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "host",
			Usage:   "OpenAI-compatible service host URL",
			EnvVars: []string{"SIFT_HOST"},
			Value:   "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			EnvVars: []string{"SIFT_EMBEDDING_MODEL"},
			Value:   "embeddinggemma",
		},
		&cli.StringFlag{
			Name:    "judge-model",
			Usage:   "Judge model name",
			EnvVars: []string{"SIFT_JUDGE_MODEL"},
			Value:   "qwen2.5:3b",
		},
		&cli.DurationFlag{
			Name:  "judge-timeout",
			Usage: "Per-call timeout for judge invocations",
			Value: 30 * time.Second,
		},
	}
}

func openDatabase(c *cli.Context) (*sift.Database, error) {
	config := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithJudgeModel(c.String("judge-model")),
		ai.WithJudgeTimeout(c.Duration("judge-timeout")),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	return sift.NewDatabase(c.String("db"), sift.WithAIConfig(config))
}

func indexCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	profiles, err := readProfiles(c.String("src"))
	if err != nil {
		return err
	}

	indexed, failures := db.IndexAll(context.Background(), profiles)
	fmt.Printf("Indexed %d of %d profiles\n", indexed, len(profiles))
	for _, failure := range failures {
		fmt.Fprintf(os.Stderr, "failed: %v\n", failure)
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d profiles failed to index", len(failures))
	}
	return nil
}

func rankCommand(c *cli.Context) error {
	criteria := strings.Join(c.Args().Slice(), " ")
	if criteria == "" {
		return fmt.Errorf("criteria is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	view := core.View(c.String("view"))
	results, err := db.Rank(context.Background(), view, criteria, c.Int("top"))
	if err != nil {
		return err
	}

	fmt.Printf("Ranked %d profiles\n", len(results))
	for i, result := range results {
		marker := " "
		if result.Matches {
			marker = "*"
		}
		fmt.Printf("%3d %s %-30s [%0.3f]", i+1, marker, result.Identity, result.Score)
		if result.Rationale != "" {
			fmt.Printf("  %s", result.Rationale)
		}
		fmt.Println()
	}
	return nil
}

func countCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	for _, view := range core.Views() {
		count, err := db.Count(ctx, view)
		if err != nil {
			return err
		}
		fmt.Printf("%-14s %d\n", view, count)
	}
	return nil
}

func clearCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	view := core.View(c.String("view"))
	if err := db.ClearView(context.Background(), view); err != nil {
		return err
	}
	fmt.Printf("Cleared view %q\n", view)
	return nil
}

func rebuildCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	profileRepo := badger.NewProfileStore(backend)
	vectorIndex := badger.NewVectorIndex(backend)

	// Judge settings are not needed for rebuilding; fill with placeholders.
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithJudgeHost(c.String("embedding-host")),
		ai.WithJudgeModel("unused"),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	config := &indexing.RebuildConfig{
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	rebuilder := indexing.NewRebuilder(profileRepo, vectorIndex, embedder, config, os.Stderr)

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if viewName := c.String("view"); viewName != "" {
		return rebuilder.Rebuild(ctx, core.View(viewName))
	}
	return rebuilder.RebuildAll(ctx)
}

// profileRecord is the JSON shape accepted by the index command.
type profileRecord struct {
	Name         string   `json:"name"`
	Expertise    string   `json:"expertise"`
	Business     string   `json:"business"`
	Hobbies      []string `json:"hobbies"`
	FamilyStatus string   `json:"family_status"`
	Contacts     []string `json:"contacts"`
	Source       string   `json:"source"`
}

// readProfiles parses a JSON lines file, one profile object per line.
// Blank lines and lines starting with # are skipped.
func readProfiles(filename string) ([]*core.Profile, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var profiles []*core.Profile
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var record profileRecord
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		profiles = append(profiles, &core.Profile{
			Name:         record.Name,
			Expertise:    record.Expertise,
			Business:     record.Business,
			Hobbies:      record.Hobbies,
			FamilyStatus: record.FamilyStatus,
			Contacts:     record.Contacts,
			Source:       record.Source,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

func setup(c *cli.Context) error {
	// Optional .env file for host and model settings
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}

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
