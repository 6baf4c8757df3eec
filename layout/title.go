package layout

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tsawler/outline/model"
	"github.com/tsawler/outline/text"
)

// TitleSource records which rule produced a document title
type TitleSource int

const (
	TitleFromMetadata TitleSource = iota
	TitleFromProminentSpan
	TitleFromFirstLine
	TitleFromFirstH1
	TitleFromFirstEntry
	TitleFallback
)

var titleSourceNames = map[TitleSource]string{
	TitleFromMetadata:      "metadata",
	TitleFromProminentSpan: "prominent_span",
	TitleFromFirstLine:     "first_line",
	TitleFromFirstH1:       "first_h1",
	TitleFromFirstEntry:    "first_entry",
	TitleFallback:          "fallback",
}

func (s TitleSource) String() string {
	if name, ok := titleSourceNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the source by name
func (s TitleSource) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// TitleConfig holds configuration for title resolution
type TitleConfig struct {
	// MinMetadataLength is the length a metadata title must exceed
	// Default: 5
	MinMetadataLength int `mapstructure:"min_metadata_length" yaml:"min_metadata_length"`

	// MinProminentLength is the length the most prominent first-page span
	// must exceed
	// Default: 4
	MinProminentLength int `mapstructure:"min_prominent_length" yaml:"min_prominent_length"`

	// MinLineLength is the length the first-line fallback must exceed
	// Default: 5
	MinLineLength int `mapstructure:"min_line_length" yaml:"min_line_length"`

	// MaxTitleWords is the word count a span title must stay below
	// Default: 20
	MaxTitleWords int `mapstructure:"max_title_words" yaml:"max_title_words"`

	// Fallback is used when nothing else qualifies
	// Default: "Document"
	Fallback string `mapstructure:"fallback" yaml:"fallback"`
}

// DefaultTitleConfig returns sensible default configuration
func DefaultTitleConfig() TitleConfig {
	return TitleConfig{
		MinMetadataLength:  5,
		MinProminentLength: 4,
		MinLineLength:      5,
		MaxTitleWords:      20,
		Fallback:           model.FallbackTitle,
	}
}

// TitleResolver picks a document title from metadata, first-page spans or
// the outline, in that order of preference.
type TitleResolver struct {
	config     TitleConfig
	normalizer *text.Normalizer
}

// NewTitleResolver creates a resolver with default configuration
func NewTitleResolver() *TitleResolver {
	return NewTitleResolverWithConfig(DefaultTitleConfig())
}

// NewTitleResolverWithConfig creates a resolver with custom configuration
func NewTitleResolverWithConfig(config TitleConfig) *TitleResolver {
	if config.Fallback == "" {
		config.Fallback = model.FallbackTitle
	}
	return &TitleResolver{config: config, normalizer: text.NewNormalizer()}
}

var filenamePattern = regexp.MustCompile(`(?i)(\.(pdf|docx?|odt|rtf|txt|pptx?|xlsx?|indd|qxd|tex|dvi|e?ps)$|^microsoft (word|powerpoint|excel) - |^untitled\b|[/\\])`)

// IsFilenameLike reports metadata titles that are really file names or
// authoring tool placeholders
func IsFilenameLike(title string) bool {
	return filenamePattern.MatchString(strings.TrimSpace(title))
}

// Resolve returns the title and the rule that produced it. pages are the
// noise-filtered pages; outline is the final outline.
func (r *TitleResolver) Resolve(metadataTitle string, pages []model.Page, outline []model.OutlineEntry) (string, TitleSource) {
	if title, _ := r.normalizer.Normalize(metadataTitle); len([]rune(title)) > r.config.MinMetadataLength && !IsFilenameLike(title) {
		return title, TitleFromMetadata
	}

	first := firstPageSpans(pages)

	if len(first) > 0 {
		prominent := make([]model.TextSpan, len(first))
		copy(prominent, first)
		sort.SliceStable(prominent, func(i, j int) bool {
			a, b := prominent[i], prominent[j]
			if a.FontSize != b.FontSize {
				return a.FontSize > b.FontSize
			}
			return a.BBox.Y0 < b.BBox.Y0
		})
		if s := prominent[0]; s.RuneCount() > r.config.MinProminentLength && s.WordCount() < r.config.MaxTitleWords {
			return s.Text, TitleFromProminentSpan
		}

		reading := make([]model.TextSpan, len(first))
		copy(reading, first)
		sort.SliceStable(reading, func(i, j int) bool {
			return reading[i].BBox.Y0 < reading[j].BBox.Y0
		})
		for _, s := range reading {
			if s.RuneCount() > r.config.MinLineLength && s.WordCount() < r.config.MaxTitleWords {
				return s.Text, TitleFromFirstLine
			}
		}
	}

	for _, e := range outline {
		if e.Level == model.H1 {
			return e.Text, TitleFromFirstH1
		}
	}
	if len(outline) > 0 {
		return outline[0].Text, TitleFromFirstEntry
	}
	return r.config.Fallback, TitleFallback
}

// firstPageSpans returns the spans of the lowest-indexed page that has any,
// in discovery order
func firstPageSpans(pages []model.Page) []model.TextSpan {
	best := -1
	for i, p := range pages {
		if len(p.Spans) == 0 {
			continue
		}
		if best < 0 || p.Index < pages[best].Index {
			best = i
		}
	}
	if best < 0 {
		return nil
	}

	spans := make([]model.TextSpan, 0, len(pages[best].Spans))
	for _, s := range pages[best].Spans {
		if strings.TrimSpace(s.Text) != "" {
			spans = append(spans, s)
		}
	}
	return spans
}
