package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/codescope/internal/engine"
	"github.com/standardbeagle/codescope/internal/supplier"
)

func createWatchCommand() *cli.Command {
	return &cli.Command{
		Name:    "watch",
		Usage:   "Re-analyze the project whenever source files change",
		Aliases: []string{"w"},
		Action:  runWatch,
	}
}

func runWatch(c *cli.Context) error {
	cfg, root, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	eng := engine.New(cfg)

	analyze := func() {
		inputs, err := supplier.New(root, cfg).Collect()
		if err != nil {
			log.Printf("collect failed: %v", err)
			return
		}
		start := time.Now()
		result, err := eng.Analyze(ctx, inputs)
		if err != nil {
			log.Printf("analysis failed: %v", err)
			return
		}
		fmt.Printf("[%s] %d files, %d issues, maintainability %.1f (%s)\n",
			time.Now().Format("15:04:05"),
			len(result.Files), len(result.Issues),
			result.Metrics.Maintainability,
			time.Since(start).Round(time.Millisecond))
	}

	analyze()
	log.Printf("watching %s for changes", root)

	err = supplier.NewWatcher(root, cfg, analyze).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
