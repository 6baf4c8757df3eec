package text

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/tsawler/outline/model"
)

// NormalizerConfig holds configuration for span text normalization
type NormalizerConfig struct {
	// CollapseLeaders rewrites runs of three or more dots to "..."
	// Default: true
	CollapseLeaders bool `mapstructure:"collapse_leaders" yaml:"collapse_leaders"`

	// StripBidiControls removes directional formatting characters from
	// right-to-left text
	// Default: true
	StripBidiControls bool `mapstructure:"strip_bidi_controls" yaml:"strip_bidi_controls"`
}

// DefaultNormalizerConfig returns sensible default configuration
func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		CollapseLeaders:   true,
		StripBidiControls: true,
	}
}

// Normalizer rewrites span text into a canonical form. It never drops a
// span: the worst case is an empty string, which the noise filter removes.
type Normalizer struct {
	config NormalizerConfig
}

// NewNormalizer creates a normalizer with default configuration
func NewNormalizer() *Normalizer {
	return &Normalizer{config: DefaultNormalizerConfig()}
}

// NewNormalizerWithConfig creates a normalizer with custom configuration
func NewNormalizerWithConfig(config NormalizerConfig) *Normalizer {
	return &Normalizer{config: config}
}

var leaderPattern = regexp.MustCompile(`\.{3,}`)

// Normalize returns the canonical text and its dominant script.
func (n *Normalizer) Normalize(s string) (string, model.ScriptClass) {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "\uFFFD")
	}
	s = norm.NFKC.String(s)
	script := Classify(s)

	switch {
	case script.IsRTL():
		if n.config.StripBidiControls {
			s = strings.Map(dropBidiControl, s)
		}
		s = CollapseSpace(s)
	case script.UsesCombiningMarks():
		s = CollapseSpace(norm.NFC.String(s))
	case !script.UsesWordSpaces():
		s = strings.TrimFunc(s, unicode.IsSpace)
	case script == model.ScriptCJK:
		s = strings.ReplaceAll(s, "\u3000", " ")
		s = CollapseSpace(width.Fold.String(s))
	default:
		s = CollapseSpace(s)
	}

	if n.config.CollapseLeaders {
		s = leaderPattern.ReplaceAllString(s, "...")
	}
	return s, script
}

// NormalizeSpan returns a copy of span with normalized text and its script
// class recorded.
func (n *Normalizer) NormalizeSpan(span model.TextSpan) model.TextSpan {
	span.Text, span.Script = n.Normalize(span.Text)
	return span
}

// NormalizePages normalizes every span of every page, returning new pages.
func (n *Normalizer) NormalizePages(pages []model.Page) []model.Page {
	out := make([]model.Page, len(pages))
	for i, p := range pages {
		out[i] = p
		out[i].Spans = make([]model.TextSpan, len(p.Spans))
		for j, span := range p.Spans {
			out[i].Spans[j] = n.NormalizeSpan(span)
		}
	}
	return out
}

// CollapseSpace replaces every run of whitespace with a single space and
// trims both ends.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// dropBidiControl removes explicit directional marks, embeddings,
// overrides and isolates.
func dropBidiControl(r rune) rune {
	switch {
	case r == '\u200E' || r == '\u200F':
		return -1
	case r >= '\u202A' && r <= '\u202E':
		return -1
	case r >= '\u2066' && r <= '\u2069':
		return -1
	}
	return r
}
