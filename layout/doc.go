// Package layout infers the heading structure of a document from the
// formatted text spans of its pages.
//
// The package holds every stage of outline extraction after text
// normalization. Each stage is a small type or function with its own
// configuration, so stages can be used and tested on their own.
//
// # Noise Filtering
//
// The [NoiseFilter] drops spans that can never be headings: page numbers,
// copyright lines, form field labels, addresses, separators and table of
// contents leader lines. Running headers and footers are found by
// repetition across pages with the [HeaderFooterDetector]:
//
//	filter := layout.NewNoiseFilter()
//	result := filter.Filter(pages)
//	fmt.Println(result.Dropped[layout.NoisePageNumber])
//
// # Scoring
//
// [ComputeStatistics] measures the body font size of the document, and the
// [Scorer] sums weighted signals (size, weight, numbering, keywords, case
// shape, punctuation) for every span:
//
//	stats := layout.ComputeStatistics(result.Pages)
//	candidates := layout.NewScorer().Candidates(result.Pages, stats)
//
// Patterns for numbering, chapter keywords and structural words exist for
// Latin, Greek, Cyrillic, CJK, Arabic, Hebrew, Devanagari and Thai text.
//
// # Levels and Merging
//
// [AssignLevels] ranks the visual styles of the candidates and maps them to
// H1..H6; a numbering prefix such as "2.3" overrides the style level.
// [Merge] joins headings split over consecutive spans, removes duplicates
// and orders the result:
//
//	leveled := layout.AssignLevels(candidates, layout.DefaultLevelConfig())
//	entries := layout.Merge(leveled, layout.DefaultMergeConfig())
//
// Documents with their own bookmarks skip the heuristics through
// [OutlineFromBookmarks].
//
// # Titles
//
// The [TitleResolver] prefers the metadata title, then the most prominent
// text on the first page, then the outline itself.
//
// # Configuration
//
// [Config] gathers the configuration of every stage. All fields carry
// mapstructure and yaml tags so a configuration file can override any of
// them:
//
//	cfg := layout.DefaultConfig()
//	cfg.Levels.StyleLevels = 4
//	cfg.Heading.Weights.Bold = 1.5
package layout
