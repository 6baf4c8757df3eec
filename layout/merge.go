package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/outline/model"
)

// MergeConfig holds configuration for merging and deduplicating headings
type MergeConfig struct {
	// Enabled joins headings split across consecutive spans
	// Default: true
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// GapRatio is the largest vertical gap between two pieces of one
	// heading, as a multiple of the font size
	// Default: 1.5
	GapRatio float64 `mapstructure:"gap_ratio" yaml:"gap_ratio"`

	// MaxMergedLength stops merging once the joined text would exceed
	// this many characters
	// Default: 200
	MaxMergedLength int `mapstructure:"max_merged_length" yaml:"max_merged_length"`

	// MaxPerLevel is the number of entries kept per level, earliest in
	// reading order first; 0 keeps all
	// Default: 15
	MaxPerLevel int `mapstructure:"max_per_level" yaml:"max_per_level"`
}

// DefaultMergeConfig returns sensible default configuration
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		Enabled:         true,
		GapRatio:        1.5,
		MaxMergedLength: 200,
		MaxPerLevel:     15,
	}
}

// placedEntry is an outline entry with the position it is ordered by
type placedEntry struct {
	entry model.OutlineEntry
	y     float64
}

// Merge turns leveled candidates (in reading order) into outline entries:
// split headings are joined, duplicates removed, entries ordered by page
// and vertical position, and each level capped.
func Merge(candidates []HeadingCandidate, config MergeConfig) []model.OutlineEntry {
	var merged []HeadingCandidate
	for _, c := range candidates {
		if config.Enabled && len(merged) > 0 {
			prev := &merged[len(merged)-1]
			if canMerge(*prev, c, config) {
				prev.Span.Text = prev.Span.Text + " " + c.Span.Text
				prev.Span.BBox = prev.Span.BBox.Union(c.Span.BBox)
				prev.Seq = c.Seq
				continue
			}
		}
		merged = append(merged, c)
	}

	placed := make([]placedEntry, 0, len(merged))
	for _, c := range merged {
		placed = append(placed, placedEntry{
			entry: model.OutlineEntry{Level: c.Level, Text: c.Span.Text, Page: c.Span.Page},
			y:     c.Span.BBox.Y0,
		})
	}

	return finishEntries(placed, config.MaxPerLevel)
}

// canMerge reports whether next continues the heading in prev
func canMerge(prev, next HeadingCandidate, config MergeConfig) bool {
	if prev.Span.Page != next.Span.Page || prev.Level != next.Level || prev.Style != next.Style {
		return false
	}
	if next.Seq != prev.Seq+1 || next.Numbered {
		return false
	}
	if foldCase(prev.Span.Text) == foldCase(next.Span.Text) {
		return false
	}
	if config.MaxMergedLength > 0 && prev.Span.RuneCount()+1+next.Span.RuneCount() > config.MaxMergedLength {
		return false
	}
	if !prev.Span.BBox.IsZero() && !next.Span.BBox.IsZero() {
		size := prev.Span.FontSize
		if size <= 0 {
			size = DefaultFontSize
		}
		gap := prev.Span.BBox.VerticalGap(next.Span.BBox)
		if gap > config.GapRatio*size {
			return false
		}
	}
	return true
}

// finishEntries dedupes on case-folded (text, page), sorts by (page, y)
// keeping discovery order for ties, drops empty text and caps each level.
func finishEntries(placed []placedEntry, maxPerLevel int) []model.OutlineEntry {
	type dedupKey struct {
		text string
		page int
	}
	seen := make(map[dedupKey]bool)
	unique := placed[:0:0]
	for _, p := range placed {
		if strings.TrimSpace(p.entry.Text) == "" {
			continue
		}
		key := dedupKey{foldCase(p.entry.Text), p.entry.Page}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, p)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		if unique[i].entry.Page != unique[j].entry.Page {
			return unique[i].entry.Page < unique[j].entry.Page
		}
		return unique[i].y < unique[j].y
	})

	perLevel := make(map[model.Level]int)
	entries := make([]model.OutlineEntry, 0, len(unique))
	for _, p := range unique {
		if maxPerLevel > 0 && perLevel[p.entry.Level] >= maxPerLevel {
			continue
		}
		perLevel[p.entry.Level]++
		entries = append(entries, p.entry)
	}
	return entries
}
