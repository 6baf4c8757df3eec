package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/outline"
)

var (
	extractOutput      string
	extractPages       []int
	extractNoBookmarks bool
	extractCompact     bool
	extractMarkdown    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "Extract the outline of one PDF",
	Long: `Extract prints the title and heading outline of a PDF as JSON, or as a
markdown list with --markdown.

Examples:
  outline extract report.pdf
  outline extract report.pdf -o report.json
  outline extract report.pdf --pages 0,1,2 --no-bookmarks
  outline extract report.pdf --markdown`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "write JSON to this file instead of stdout")
	extractCmd.Flags().IntSliceVar(&extractPages, "pages", nil, "restrict to these 0-based pages")
	extractCmd.Flags().BoolVar(&extractNoBookmarks, "no-bookmarks", false, "ignore document bookmarks and infer headings")
	extractCmd.Flags().BoolVar(&extractCompact, "compact", false, "write JSON on a single line")
	extractCmd.Flags().BoolVar(&extractMarkdown, "markdown", false, "write an indented markdown list instead of JSON")
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]
	log := logger.With("file", path)

	ext := outline.Open(path).WithConfig(cfg.Heuristics)
	if len(extractPages) > 0 {
		ext = ext.Pages(extractPages...)
	}
	if extractNoBookmarks {
		ext = ext.IgnoreBookmarks()
	}

	doc, report, warnings, err := ext.OutlineWithReport()
	if err != nil {
		return fmt.Errorf("failed to extract outline: %w", err)
	}
	if len(warnings) > 0 {
		log.Warn("document read with warnings", "warnings", outline.FormatWarnings(warnings))
	}
	log.Debug("outline extracted",
		"strategy", report.Strategy.String(),
		"spans_in", report.SpansIn,
		"spans_kept", report.SpansKept,
		"candidates", report.Candidates,
		"entries", report.Entries,
		"title_source", report.TitleSource.String(),
		"base_font_size", report.BaseFontSize,
	)

	var data []byte
	switch {
	case extractMarkdown:
		data = []byte(doc.Markdown())
	case extractCompact:
		data, err = json.Marshal(doc)
	default:
		data, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode outline: %w", err)
	}
	if !extractMarkdown {
		data = append(data, '\n')
	}

	if extractOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(extractOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", extractOutput, err)
	}
	log.Info("outline written", "output", extractOutput, "entries", len(doc.Outline))
	return nil
}
