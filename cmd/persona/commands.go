package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agenthands/persona/internal/collector"
	"github.com/agenthands/persona/internal/config"
	"github.com/agenthands/persona/internal/core"
	"github.com/agenthands/persona/internal/core/inference"
	"github.com/agenthands/persona/internal/llm"
	"github.com/agenthands/persona/internal/logging"
	"github.com/agenthands/persona/internal/render"
)

const defaultOutput = "persona_output.txt"

var generateCmd = &cobra.Command{
	Use:   "generate <username>",
	Short: "Write a text persona report for a Reddit user",
	Long: `Collect a Reddit user's recent posts and comments, infer a persona and
write it as a text report.

Examples:
  persona generate spez
  persona generate spez --output spez.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		_ = godotenv.Load()
		cfg, err := config.Load(config.PathFromEnv())
		if err != nil {
			return err
		}

		gen, err := newGenerator(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		return writeReport(cmd.Context(), gen, args[0], output, time.Now())
	},
}

func init() {
	generateCmd.Flags().String("output", defaultOutput, "output file path")
}

func newGenerator(ctx context.Context, cfg *config.Config) (*core.Generator, error) {
	// Progress goes to stderr through printStep; keep the logger to warnings.
	level := cfg.Log.Level
	if os.Getenv("LOG_LEVEL") == "" {
		level = "warn"
	}
	logger := logging.New(level, cfg.Log.Format)

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	engine := inference.NewEngine(llmClient, cfg.Prompts, config.Duration(cfg.LLM.Timeout, 120*time.Second), logger)
	return core.NewGenerator(collector.New(cfg.Reddit, logger), engine, nil, logger), nil
}

// writeReport generates the persona and writes the report. No file is
// written when the user has no activity.
func writeReport(ctx context.Context, gen *core.Generator, username, output string, now time.Time) error {
	printStep("Generating persona for user: %s", username)

	p, err := gen.Generate(ctx, username)
	if errors.Is(err, core.ErrNoData) {
		return errors.New("no data found for this user")
	}
	if err != nil {
		return err
	}

	report, err := render.Report(p, collector.ProfileURL(p.Username), now)
	if err != nil {
		return err
	}

	printStep("Saving persona to %s", output)
	if err := os.WriteFile(output, []byte(report), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	printSuccess("Persona generation complete")
	return nil
}
