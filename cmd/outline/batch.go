package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/outline/batch"
	"github.com/tsawler/outline/cache"
)

var (
	batchInput   string
	batchOutput  string
	batchWorkers int
	batchCache   string
	batchPattern string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract the outlines of every PDF in a directory",
	Long: `Batch processes every matching file of the input directory in parallel and
writes <name>.json for each into the output directory, plus summary.json.
A document that fails is recorded in the summary; the rest still run.

Examples:
  outline batch --input ./input --output ./output
  outline batch --input ./docs --output ./out --workers 8 --cache outline-cache.db`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchInput, "input", "./input", "input directory")
	batchCmd.Flags().StringVar(&batchOutput, "output", "./output", "output directory")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "documents processed at once (default from config)")
	batchCmd.Flags().StringVar(&batchCache, "cache", "", "SQLite result cache file (enables the cache)")
	batchCmd.Flags().StringVar(&batchPattern, "pattern", "", "input file name pattern (default from config)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	bc := batch.Config{
		Workers:    cfg.Batch.Workers,
		Pattern:    cfg.Batch.Pattern,
		Indent:     cfg.Batch.Indent,
		Heuristics: cfg.Heuristics,
	}
	if batchWorkers > 0 {
		bc.Workers = batchWorkers
	}
	if batchPattern != "" {
		bc.Pattern = batchPattern
	}

	runner := batch.NewRunner(bc, logger)

	cachePath := cfg.Cache.Path
	useCache := cfg.Cache.Enabled
	if batchCache != "" {
		cachePath, useCache = batchCache, true
	}
	if useCache {
		store, err := cache.Open(cachePath)
		if err != nil {
			return err
		}
		defer store.Close()
		runner.WithCache(store)
		logger.Debug("result cache enabled", "path", cachePath)
	}

	summary, err := runner.Run(cmd.Context(), batchInput, batchOutput)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d processed (%d cached), %d failed; summary in %s\n",
		summary.Processed, summary.Cached, summary.Failed, batchOutput)
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d documents failed", summary.Failed, len(summary.Results))
	}
	return nil
}
