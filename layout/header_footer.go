package layout

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/tsawler/outline/model"
)

// RegionType indicates whether a running region is a header or footer
type RegionType int

const (
	Header RegionType = iota
	Footer
)

func (r RegionType) String() string {
	if r == Header {
		return "header"
	}
	return "footer"
}

// HeaderFooterRegion is a piece of text that repeats in the same margin
// position across pages.
type HeaderFooterRegion struct {
	// Type indicates if this is a header or footer
	Type RegionType

	// Text is the comparison key: lower-cased with digit runs replaced by "#"
	Text string

	// IsPageNumber indicates if the region is a page number
	IsPageNumber bool

	// PageIndices lists which pages carry the region
	PageIndices []int
}

// HeaderFooterConfig holds configuration for running header/footer detection
type HeaderFooterConfig struct {
	// Enabled turns repetition detection on
	// Default: true
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// MarginBand is the fraction of page height at the top and at the bottom
	// treated as header and footer zones
	// Default: 0.10
	MarginBand float64 `mapstructure:"margin_band" yaml:"margin_band"`

	// MinOccurrenceRatio is the minimum fraction of pages a text must appear
	// on to be considered running text (0.0 to 1.0)
	// Default: 0.5
	MinOccurrenceRatio float64 `mapstructure:"min_occurrence_ratio" yaml:"min_occurrence_ratio"`

	// PositionTolerance is the maximum difference, in points, between the
	// distances from the page edge for text to count as the same position
	// Default: 5
	PositionTolerance float64 `mapstructure:"position_tolerance" yaml:"position_tolerance"`

	// MinPages is the minimum number of pages required for detection
	// Default: 2
	MinPages int `mapstructure:"min_pages" yaml:"min_pages"`
}

// DefaultHeaderFooterConfig returns sensible default configuration
func DefaultHeaderFooterConfig() HeaderFooterConfig {
	return HeaderFooterConfig{
		Enabled:            true,
		MarginBand:         0.10,
		MinOccurrenceRatio: 0.5,
		PositionTolerance:  5.0,
		MinPages:           2,
	}
}

// HeaderFooterDetector finds running headers and footers across pages
type HeaderFooterDetector struct {
	config HeaderFooterConfig
}

// NewHeaderFooterDetector creates a new detector with default configuration
func NewHeaderFooterDetector() *HeaderFooterDetector {
	return &HeaderFooterDetector{
		config: DefaultHeaderFooterConfig(),
	}
}

// NewHeaderFooterDetectorWithConfig creates a detector with custom configuration
func NewHeaderFooterDetectorWithConfig(config HeaderFooterConfig) *HeaderFooterDetector {
	return &HeaderFooterDetector{
		config: config,
	}
}

// HeaderFooterResult contains the detection results
type HeaderFooterResult struct {
	Headers []HeaderFooterRegion
	Footers []HeaderFooterRegion

	band    float64
	running map[regionKey]map[int]bool
}

type regionKey struct {
	region RegionType
	text   string
}

// candidate is a margin span considered for repetition
type candidate struct {
	text      string
	dist      float64 // Distance from the page edge nearest to the region
	pageIndex int
}

// Detect analyzes the spans of all pages. Pages with unknown height are
// skipped since their margins cannot be located.
func (d *HeaderFooterDetector) Detect(pages []model.Page) *HeaderFooterResult {
	result := &HeaderFooterResult{
		band:    d.config.MarginBand,
		running: make(map[regionKey]map[int]bool),
	}
	if !d.config.Enabled {
		return result
	}

	measured := 0
	for _, p := range pages {
		if p.Height > 0 && len(p.Spans) > 0 {
			measured++
		}
	}
	if measured < d.config.MinPages {
		return result
	}

	minOccurrences := int(math.Ceil(float64(measured) * d.config.MinOccurrenceRatio))
	if minOccurrences < d.config.MinPages {
		minOccurrences = d.config.MinPages
	}

	result.Headers = d.findRepeatingPatterns(d.extractCandidates(pages, Header), Header, minOccurrences)
	result.Footers = d.findRepeatingPatterns(d.extractCandidates(pages, Footer), Footer, minOccurrences)

	for _, regions := range [][]HeaderFooterRegion{result.Headers, result.Footers} {
		for _, r := range regions {
			pageSet := make(map[int]bool, len(r.PageIndices))
			for _, idx := range r.PageIndices {
				pageSet[idx] = true
			}
			result.running[regionKey{r.Type, r.Text}] = pageSet
		}
	}
	return result
}

// extractCandidates collects the spans lying in the header or footer zone
func (d *HeaderFooterDetector) extractCandidates(pages []model.Page, regionType RegionType) []candidate {
	var candidates []candidate

	for _, page := range pages {
		if page.Height <= 0 {
			continue
		}
		zone := page.Height * d.config.MarginBand

		for _, span := range page.Spans {
			if span.BBox.IsZero() || strings.TrimSpace(span.Text) == "" {
				continue
			}
			var dist float64
			if regionType == Header {
				dist = span.BBox.Y0
			} else {
				dist = page.Height - span.BBox.Y1
			}
			if dist < zone {
				candidates = append(candidates, candidate{
					text:      span.Text,
					dist:      dist,
					pageIndex: page.Index,
				})
			}
		}
	}

	return candidates
}

// findRepeatingPatterns finds text that repeats across pages
func (d *HeaderFooterDetector) findRepeatingPatterns(candidates []candidate, regionType RegionType, minOccurrences int) []HeaderFooterRegion {
	if len(candidates) == 0 {
		return nil
	}

	// Group candidates by normalized text (ignoring page numbers)
	groups := make(map[string][]candidate)
	var order []string
	for _, c := range candidates {
		key := normalizeForComparison(c.text)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], c)
	}

	var regions []HeaderFooterRegion
	for _, key := range order {
		group := groups[key]

		// Single characters are likely fragments of larger text
		if len([]rune(key)) <= 2 && !isPageNumberPattern(key) {
			continue
		}

		pageSet := make(map[int]bool)
		for _, c := range group {
			pageSet[c.pageIndex] = true
		}
		if len(pageSet) < minOccurrences {
			continue
		}
		if !d.hasConsistentPosition(group) {
			continue
		}

		pageIndices := make([]int, 0, len(pageSet))
		for idx := range pageSet {
			pageIndices = append(pageIndices, idx)
		}
		sort.Ints(pageIndices)

		regions = append(regions, HeaderFooterRegion{
			Type:         regionType,
			Text:         key,
			IsPageNumber: isPageNumberPattern(key),
			PageIndices:  pageIndices,
		})
	}

	return regions
}

// hasConsistentPosition checks if candidates sit at the same distance from
// the page edge
func (d *HeaderFooterDetector) hasConsistentPosition(group []candidate) bool {
	if len(group) < 2 {
		return false
	}

	ref := group[0].dist
	for _, c := range group[1:] {
		if math.Abs(c.dist-ref) > d.config.PositionTolerance {
			return false
		}
	}
	return true
}

// IsRunning reports whether span is an occurrence of a detected running
// header or footer on the given page.
func (r *HeaderFooterResult) IsRunning(span model.TextSpan, page model.Page) bool {
	if len(r.running) == 0 || page.Height <= 0 || span.BBox.IsZero() {
		return false
	}

	zone := page.Height * r.band
	key := normalizeForComparison(span.Text)

	if span.BBox.Y0 < zone && r.running[regionKey{Header, key}][page.Index] {
		return true
	}
	return page.Height-span.BBox.Y1 < zone && r.running[regionKey{Footer, key}][page.Index]
}

// HasHeadersOrFooters returns true if any running region was found
func (r *HeaderFooterResult) HasHeadersOrFooters() bool {
	return len(r.Headers) > 0 || len(r.Footers) > 0
}

var digitRun = regexp.MustCompile(`\d+`)

// normalizeForComparison lower-cases text and replaces digit runs with a
// placeholder so "Page 3" and "Page 4" compare equal.
func normalizeForComparison(text string) string {
	return digitRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), "#")
}

// isPageNumberPattern checks a normalized key against common page number forms
func isPageNumberPattern(normalizedText string) bool {
	switch normalizedText {
	case "#", "page #", "- # -", "# of #", "page # of #", "#/#", "p. #", "p.#", "pg #", "pg. #":
		return true
	}
	return false
}
