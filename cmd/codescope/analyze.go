package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/codescope/internal/engine"
	"github.com/standardbeagle/codescope/internal/supplier"
	"github.com/standardbeagle/codescope/internal/types"
)

func createAnalyzeCommand() *cli.Command {
	return &cli.Command{
		Name:    "analyze",
		Usage:   "Analyze a project and report structure, relationships and quality metrics",
		Aliases: []string{"a"},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Emit the full analysis result as JSON",
			},
		},
		Action: runAnalyze,
	}
}

func runAnalyze(c *cli.Context) error {
	cfg, root, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	inputs, err := supplier.New(root, cfg).Collect()
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := engine.New(cfg).Analyze(ctx, inputs)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printSummary(result, time.Since(start))
	return nil
}

// printSummary renders the human-readable report.
func printSummary(result *types.AnalysisResult, elapsed time.Duration) {
	fmt.Printf("Analyzed %d files in %s\n\n", len(result.Files), elapsed.Round(time.Millisecond))

	fmt.Printf("Complexity: avg %.1f, max %d (low %d / medium %d / high %d)\n",
		result.Metrics.Complexity.Average,
		result.Metrics.Complexity.Max,
		result.Metrics.Complexity.Distribution["low"],
		result.Metrics.Complexity.Distribution["medium"],
		result.Metrics.Complexity.Distribution["high"])
	fmt.Printf("Function usage coverage: %.1f%%\n", result.Metrics.Coverage.Functions)
	fmt.Printf("Maintainability: %.1f/100\n", result.Metrics.Maintainability)
	fmt.Printf("Technical debt: %.1fh across %d issues\n",
		result.Metrics.TechnicalDebt.Hours, result.Metrics.TechnicalDebt.Issues)
	fmt.Printf("Relationships: %d\n", len(result.Relationships))

	if len(result.Issues) > 0 {
		fmt.Printf("\nIssues:\n")
		for _, iss := range result.Issues {
			location := fmt.Sprintf("%s:%d", iss.File, iss.Line)
			fmt.Printf("  [%s] %s %s — %s\n", iss.Severity, iss.Kind, location, iss.Message)
		}
	}

	if len(result.Suggestions) > 0 {
		fmt.Printf("\nSuggestions:\n")
		for _, s := range result.Suggestions {
			fmt.Printf("  (%s/%s) %s: %s\n", s.Priority, s.Effort, s.File, s.Message)
		}
	}
}

func init() {
	// Timestamps add noise to CLI output.
	log.SetFlags(0)
}
