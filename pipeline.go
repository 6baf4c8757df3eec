package outline

import (
	"github.com/tsawler/outline/layout"
	"github.com/tsawler/outline/model"
	"github.com/tsawler/outline/text"
)

// Strategy names how an outline was produced
type Strategy int

const (
	// StrategyHeuristic infers headings from span formatting
	StrategyHeuristic Strategy = iota
	// StrategyBookmarks takes the document's own navigation outline
	StrategyBookmarks
)

func (s Strategy) String() string {
	if s == StrategyBookmarks {
		return "bookmarks"
	}
	return "heuristic"
}

// MarshalText encodes the strategy by name
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Input is everything the pipeline needs to know about one document
type Input struct {
	Pages         []model.Page
	MetadataTitle string
	Bookmarks     []model.Bookmark
}

// Report describes what the pipeline did with a document
type Report struct {
	Strategy       Strategy                   `json:"strategy"`
	SpansIn        int                        `json:"spans_in"`
	SpansKept      int                        `json:"spans_kept"`
	Dropped        map[layout.NoiseReason]int `json:"dropped,omitempty"`
	Candidates     int                        `json:"candidates"`
	Entries        int                        `json:"entries"`
	TitleSource    layout.TitleSource         `json:"title_source"`
	BaseFontSize   float64                    `json:"base_font_size"`
	LargeThreshold float64                    `json:"large_threshold"`
}

// Pipeline runs the outline stages in order: normalize, filter noise,
// measure, then either take the bookmarks or score, level and merge
// candidate headings, and finally resolve the title. A Pipeline holds
// only configuration and may be shared between goroutines.
type Pipeline struct {
	config     layout.Config
	normalizer *text.Normalizer
	noise      *layout.NoiseFilter
	scorer     *layout.Scorer
	titles     *layout.TitleResolver
}

// NewPipeline creates a pipeline with the given configuration
func NewPipeline(config layout.Config) *Pipeline {
	return &Pipeline{
		config:     config,
		normalizer: text.NewNormalizerWithConfig(config.Normalizer),
		noise:      layout.NewNoiseFilterWithConfig(config.Noise),
		scorer:     layout.NewScorerWithConfig(&config.Heading),
		titles:     layout.NewTitleResolverWithConfig(config.Title),
	}
}

// Config returns the pipeline configuration
func (p *Pipeline) Config() layout.Config {
	return p.config
}

// Run extracts the outline of one document
func (p *Pipeline) Run(in Input) (model.OutlineDocument, Report) {
	report := Report{SpansIn: model.SpanCount(in.Pages)}

	pages := p.normalizer.NormalizePages(in.Pages)

	filtered := p.noise.Filter(pages)
	report.SpansKept = filtered.Kept
	if len(filtered.Dropped) > 0 {
		report.Dropped = filtered.Dropped
	}

	stats := layout.ComputeStatistics(filtered.Pages)
	report.BaseFontSize = stats.BaseFontSize
	report.LargeThreshold = stats.LargeThreshold()

	var entries []model.OutlineEntry
	if p.config.UseBookmarks && len(in.Bookmarks) > p.config.MinBookmarks {
		entries = layout.OutlineFromBookmarks(in.Bookmarks, p.normalizer, p.config.Merge.MaxPerLevel)
		report.Strategy = StrategyBookmarks
	}
	if len(entries) == 0 {
		report.Strategy = StrategyHeuristic
		candidates := p.scorer.Candidates(filtered.Pages, stats)
		report.Candidates = len(candidates)
		leveled := layout.AssignLevels(candidates, p.config.Levels)
		entries = layout.Merge(leveled, p.config.Merge)
	}
	if entries == nil {
		entries = []model.OutlineEntry{}
	}
	report.Entries = len(entries)

	title, source := p.titles.Resolve(in.MetadataTitle, filtered.Pages, entries)
	report.TitleSource = source

	return model.OutlineDocument{Title: title, Outline: entries}, report
}
