package layout

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/tsawler/outline/model"
)

// NoiseReason records why a span was dropped before heading analysis
type NoiseReason int

const (
	NotNoise NoiseReason = iota
	NoisePageNumber
	NoiseBoilerplate
	NoiseFormField
	NoiseContact
	NoiseSeparator
	NoiseLeader
	NoiseLetterRatio
	NoiseLength
	NoiseFontSize
	NoiseRunning
)

var noiseReasonNames = map[NoiseReason]string{
	NotNoise:         "none",
	NoisePageNumber:  "page_number",
	NoiseBoilerplate: "boilerplate",
	NoiseFormField:   "form_field",
	NoiseContact:     "contact",
	NoiseSeparator:   "separator",
	NoiseLeader:      "toc_leader",
	NoiseLetterRatio: "letter_ratio",
	NoiseLength:      "length",
	NoiseFontSize:    "font_size",
	NoiseRunning:     "running_header_footer",
}

func (r NoiseReason) String() string {
	if name, ok := noiseReasonNames[r]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the reason by name so reports read well as JSON
func (r NoiseReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// NoiseConfig holds configuration for the noise filter
type NoiseConfig struct {
	// MinLength and MaxLength bound the span length in characters
	// Default: 3 and 200
	MinLength int `mapstructure:"min_length" yaml:"min_length"`
	MaxLength int `mapstructure:"max_length" yaml:"max_length"`

	// MinFontSize drops spans set smaller than this size; 0 disables it
	// Default: 0
	MinFontSize float64 `mapstructure:"min_font_size" yaml:"min_font_size"`

	// MinLetterRatio is the minimum share of letters among non-space
	// characters
	// Default: 0.3
	MinLetterRatio float64 `mapstructure:"min_letter_ratio" yaml:"min_letter_ratio"`

	// HeaderFooter configures running header and footer removal
	HeaderFooter HeaderFooterConfig `mapstructure:"header_footer" yaml:"header_footer"`
}

// DefaultNoiseConfig returns sensible default configuration
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		MinLength:      3,
		MaxLength:      200,
		MinFontSize:    0,
		MinLetterRatio: 0.3,
		HeaderFooter:   DefaultHeaderFooterConfig(),
	}
}

// noiseRule pairs a set of patterns with the reason reported on a match
type noiseRule struct {
	reason   NoiseReason
	patterns []*regexp.Regexp
}

// noiseRules are evaluated in order; the first match wins. Patterns run
// against the normalized span text.
var noiseRules = []noiseRule{
	{NoisePageNumber, []*regexp.Regexp{
		regexp.MustCompile(`^\d{1,4}$`),
		regexp.MustCompile(`(?i)^page\s+\d+(\s+of\s+\d+)?$`),
		regexp.MustCompile(`(?i)^\d+\s+of\s+\d+$`),
		regexp.MustCompile(`^[-–—]\s*\d+\s*[-–—]$`),
		regexp.MustCompile(`(?i)^(p|pg)\.?\s*\d+$`),
		regexp.MustCompile(`^\d+\s*/\s*\d+$`),
		regexp.MustCompile(`^\d+\s*[-–]\s*\d+$`),
	}},
	{NoiseBoilerplate, []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(copyright|©|\(c\)\s)`),
		regexp.MustCompile(`(?i)^\d{4}\b.*all rights reserved`),
		regexp.MustCompile(`(?i)all rights reserved\.?$`),
		regexp.MustCompile(`(?i)^(confidential|proprietary)\b`),
		regexp.MustCompile(`(?i)^draft\b`),
		regexp.MustCompile(`(?i)^version\s+\d+(\.\d+)*$`),
		regexp.MustCompile(`(?i)^(https?://|www\.)\S+$`),
		regexp.MustCompile(`^[\w.+-]+@[\w-]+(\.[\w-]+)+$`),
	}},
	{NoiseFormField, []*regexp.Regexp{
		regexp.MustCompile(`^[A-Z]{1,4}$`),
		regexp.MustCompile(`(?i)^(name|date|age|signature|relationship|designation|service|single|rs\.?)\s*:?$`),
		regexp.MustCompile(`(?i)^(s|sl|sr)\.\s?no\.?$`),
		regexp.MustCompile(`^\d+\.\s*$`),
		regexp.MustCompile(`^\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}$`),
	}},
	{NoiseContact, []*regexp.Regexp{
		regexp.MustCompile(`^\+?\(?\d{2,4}\)?[\s.-]?\d{3}[\s.-]?\d{4}$`),
		regexp.MustCompile(`^\d{5}(-\d{4})?$`),
		regexp.MustCompile(`^\d+\s+[A-Z][A-Z\s]*$`),
		regexp.MustCompile(`^[A-Z][A-Za-z\s]+,\s*[A-Z]{2}\s+\d{5}(-\d{4})?$`),
		regexp.MustCompile(`^\([A-Z\s]+\)$`),
	}},
	{NoiseLeader, []*regexp.Regexp{
		regexp.MustCompile(`\.{3}\s*\d+$`),
		regexp.MustCompile(`(\s*[._·]){4,}\s*\d+$`),
	}},
}

// NoiseFilter drops spans that cannot be headings: page furniture,
// boilerplate, form labels and layout debris.
type NoiseFilter struct {
	config NoiseConfig
}

// NewNoiseFilter creates a noise filter with default configuration
func NewNoiseFilter() *NoiseFilter {
	return &NoiseFilter{config: DefaultNoiseConfig()}
}

// NewNoiseFilterWithConfig creates a noise filter with custom configuration
func NewNoiseFilterWithConfig(config NoiseConfig) *NoiseFilter {
	return &NoiseFilter{config: config}
}

// Classify returns the reason span is noise, or NotNoise. It looks at the
// span alone; running headers need the whole document and are handled by
// Filter.
func (f *NoiseFilter) Classify(span model.TextSpan) NoiseReason {
	text := strings.TrimSpace(span.Text)

	n := len([]rune(text))
	if n < f.config.MinLength || (f.config.MaxLength > 0 && n > f.config.MaxLength) {
		return NoiseLength
	}
	if f.config.MinFontSize > 0 && span.FontSize < f.config.MinFontSize {
		return NoiseFontSize
	}
	if isSeparatorRun(text) {
		return NoiseSeparator
	}

	for _, rule := range noiseRules {
		for _, p := range rule.patterns {
			if p.MatchString(text) {
				return rule.reason
			}
		}
	}

	if letterRatio(text) < f.config.MinLetterRatio {
		return NoiseLetterRatio
	}
	return NotNoise
}

// IsNoise reports whether span should be dropped
func (f *NoiseFilter) IsNoise(span model.TextSpan) bool {
	return f.Classify(span) != NotNoise
}

// NoiseResult holds the surviving pages and per-reason drop counts
type NoiseResult struct {
	Pages   []model.Page
	Dropped map[NoiseReason]int
	Kept    int
}

// Filter removes noise spans from every page, including running headers
// and footers found by repetition. The input is not modified.
func (f *NoiseFilter) Filter(pages []model.Page) NoiseResult {
	result := NoiseResult{
		Pages:   make([]model.Page, len(pages)),
		Dropped: make(map[NoiseReason]int),
	}

	running := NewHeaderFooterDetectorWithConfig(f.config.HeaderFooter).Detect(pages)

	for i, page := range pages {
		kept := page
		kept.Spans = make([]model.TextSpan, 0, len(page.Spans))
		for _, span := range page.Spans {
			reason := f.Classify(span)
			if reason == NotNoise && running.IsRunning(span, page) {
				reason = NoiseRunning
			}
			if reason != NotNoise {
				result.Dropped[reason]++
				continue
			}
			kept.Spans = append(kept.Spans, span)
		}
		result.Kept += len(kept.Spans)
		result.Pages[i] = kept
	}

	return result
}

// isSeparatorRun reports text made only of punctuation, symbols and spaces
func isSeparatorRun(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

// letterRatio returns the share of letters among non-space characters.
// Combining marks count as letters so Indic and Thai text is not penalized.
func letterRatio(text string) float64 {
	letters, total := 0, 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) || unicode.IsMark(r) {
			letters++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(letters) / float64(total)
}
