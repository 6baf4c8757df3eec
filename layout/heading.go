package layout

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/tsawler/outline/model"
)

// Weights are the contributions of each heading signal to a span's score.
// Negative weights are penalties. With the defaults a span scores between
// about -5 and 10; a large bold numbered structural heading reaches 9.5.
// Numbering only counts for spans that are bold or above the base size.
type Weights struct {
	LargeSize        float64 `mapstructure:"large_size" yaml:"large_size"`
	AboveBase        float64 `mapstructure:"above_base" yaml:"above_base"`
	Bold             float64 `mapstructure:"bold" yaml:"bold"`
	ItalicAboveBase  float64 `mapstructure:"italic_above_base" yaml:"italic_above_base"`
	Numbered         float64 `mapstructure:"numbered" yaml:"numbered"`
	Keyword          float64 `mapstructure:"keyword" yaml:"keyword"`
	Structural       float64 `mapstructure:"structural" yaml:"structural"`
	CaseShape        float64 `mapstructure:"case_shape" yaml:"case_shape"`
	NoPunctuation    float64 `mapstructure:"no_punctuation" yaml:"no_punctuation"`
	HeavyPunctuation float64 `mapstructure:"heavy_punctuation" yaml:"heavy_punctuation"`
	PureNumeric      float64 `mapstructure:"pure_numeric" yaml:"pure_numeric"`
	Separators       float64 `mapstructure:"separators" yaml:"separators"`
}

// DefaultWeights returns the standard signal weights
func DefaultWeights() Weights {
	return Weights{
		LargeSize:        2,
		AboveBase:        1,
		Bold:             2,
		ItalicAboveBase:  1,
		Numbered:         3,
		Keyword:          3,
		Structural:       2,
		CaseShape:        1,
		NoPunctuation:    0.5,
		HeavyPunctuation: -1,
		PureNumeric:      -2,
		Separators:       -1,
	}
}

// HeadingConfig holds configuration for heading scoring
type HeadingConfig struct {
	// Weights are the per-signal score contributions
	Weights Weights `mapstructure:"weights" yaml:"weights"`

	// MinScore is the score a span needs to become a heading candidate
	// Default: 2
	MinScore float64 `mapstructure:"min_score" yaml:"min_score"`

	// MarginBand is the fraction of page height at the top and bottom in
	// which spans are never headings. Only applied when the page height is
	// known.
	// Default: 0.10
	MarginBand float64 `mapstructure:"margin_band" yaml:"margin_band"`

	// MaxCasePhraseWords bounds the phrases that earn the case-shape signal
	// Default: 12
	MaxCasePhraseWords int `mapstructure:"max_case_phrase_words" yaml:"max_case_phrase_words"`

	// MaxHeadingWords is the longest text, in words, a numbering prefix is
	// trusted on. Longer text starting with a number is a sentence.
	// Default: 20
	MaxHeadingWords int `mapstructure:"max_heading_words" yaml:"max_heading_words"`

	// MaxDepth caps the level a numbering prefix can imply
	// Default: 6
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`
}

// DefaultHeadingConfig returns sensible default configuration
func DefaultHeadingConfig() HeadingConfig {
	return HeadingConfig{
		Weights:            DefaultWeights(),
		MinScore:           2,
		MarginBand:         0.10,
		MaxCasePhraseWords: 12,
		MaxHeadingWords:    20,
		MaxDepth:           6,
	}
}

// HeadingCandidate is a span accepted by the scorer as a likely heading
type HeadingCandidate struct {
	// Span is the source span
	Span model.TextSpan

	// Score is the summed signal weight
	Score float64

	// Style is the visual style used for level ranking
	Style StyleKey

	// SuggestedLevel is the level implied by numbering or a keyword, or H6
	// when nothing in the text fixes it
	SuggestedLevel model.Level

	// Numbered is true when SuggestedLevel came from the text itself
	Numbered bool

	// Seq is the span's position among all spans that survived noise
	// filtering, in reading order
	Seq int

	// Level is the final level, set by AssignLevels
	Level model.Level
}

// Assessment is the scorer's verdict on one span
type Assessment struct {
	Score      float64
	Accepted   bool
	InMargin   bool
	Level      model.Level
	LevelFixed bool
	Signals    []string
}

// Scorer rates spans on how much they look like headings
type Scorer struct {
	config HeadingConfig
}

// NewScorer creates a scorer with default configuration
func NewScorer() *Scorer {
	return &Scorer{config: DefaultHeadingConfig()}
}

// NewScorerWithConfig creates a scorer with custom configuration. A nil
// config selects the defaults.
func NewScorerWithConfig(config *HeadingConfig) *Scorer {
	if config == nil {
		return NewScorer()
	}
	return &Scorer{config: *config}
}

// Score evaluates a single span. pageHeight may be 0 when unknown.
func (s *Scorer) Score(span model.TextSpan, stats DocumentStatistics, pageHeight float64) Assessment {
	a := Assessment{Level: model.H6}
	w := s.config.Weights

	if s.inMargin(span, pageHeight) {
		a.InMargin = true
		return a
	}

	add := func(signal string, weight float64) {
		a.Score += weight
		a.Signals = append(a.Signals, signal)
	}

	size := span.FontSize
	styled := span.Bold || size > stats.BaseFontSize
	if size > stats.LargeThreshold() {
		add("large_size", w.LargeSize)
	} else if size > stats.BaseFontSize {
		add("above_base", w.AboveBase)
	}
	if span.Bold {
		add("bold", w.Bold)
	}
	if span.Italic && size > stats.BaseFontSize {
		add("italic_above_base", w.ItalicAboveBase)
	}

	text := strings.TrimSpace(span.Text)
	patterns := patternsFor(span.Script)
	words := len(strings.Fields(text))

	if level, ok := patterns.keywordLevel(text); ok {
		add("keyword", w.Keyword)
		a.Level, a.LevelFixed = level, true
	} else if depth, ok := patterns.numberingDepth(text); ok && styled && words <= s.config.MaxHeadingWords {
		// Numbered items in body style are list entries
		add("numbered", w.Numbered)
		if depth > s.config.MaxDepth {
			depth = s.config.MaxDepth
		}
		a.Level, a.LevelFixed = model.ClampLevel(model.Level(depth)), true
	}

	body := patterns.stripNumbering(text)
	if patterns.isStructural(body) {
		add("structural", w.Structural)
	}
	if span.Script.HasCase() && hasCaseShape(body, s.config.MaxCasePhraseWords) {
		add("case_shape", w.CaseShape)
	}

	punct := countPunctuation(body)
	if punct == 0 {
		add("no_punctuation", w.NoPunctuation)
	} else if float64(punct) > float64(len(strings.Fields(body)))/2 {
		add("heavy_punctuation", w.HeavyPunctuation)
	}

	if isPureNumeric(text) {
		add("pure_numeric", w.PureNumeric)
	}
	if strings.Count(text, ".") > 3 || separatorRun.MatchString(text) {
		add("separators", w.Separators)
	}

	a.Accepted = a.Score >= s.config.MinScore
	return a
}

// Candidates scores every span of the filtered pages and returns the
// accepted ones in reading order.
func (s *Scorer) Candidates(pages []model.Page, stats DocumentStatistics) []HeadingCandidate {
	var candidates []HeadingCandidate
	seq := 0
	for _, page := range pages {
		for _, span := range page.Spans {
			a := s.Score(span, stats, page.Height)
			if a.Accepted {
				candidates = append(candidates, HeadingCandidate{
					Span:           span,
					Score:          a.Score,
					Style:          StyleOf(span),
					SuggestedLevel: a.Level,
					Numbered:       a.LevelFixed,
					Seq:            seq,
				})
			}
			seq++
		}
	}
	return candidates
}

// inMargin reports whether the span sits in the top or bottom margin band
func (s *Scorer) inMargin(span model.TextSpan, pageHeight float64) bool {
	if pageHeight <= 0 || span.BBox.IsZero() || s.config.MarginBand <= 0 {
		return false
	}
	band := pageHeight * s.config.MarginBand
	return span.BBox.Y0 < band || span.BBox.Y1 > pageHeight-band
}

var separatorRun = regexp.MustCompile(`-{3,}|_{3,}|={3,}|\*{3,}|~{3,}|·{3,}|•{3,}`)

// hasCaseShape reports title-case phrases of two or more words, or
// all-caps text with at least five letters.
func hasCaseShape(text string, maxWords int) bool {
	words := strings.Fields(text)
	if len(words) == 0 || len(words) > maxWords {
		return false
	}

	upper, lower := 0, 0
	for _, r := range text {
		if unicode.IsUpper(r) {
			upper++
		} else if unicode.IsLower(r) {
			lower++
		}
	}
	if lower == 0 && upper >= 5 {
		return true
	}

	letterWords := 0
	for _, word := range words {
		first, ok := firstLetter(word)
		if !ok {
			continue
		}
		letterWords++
		// Short function words may stay lower case after the first word
		if !unicode.IsUpper(first) && (letterWords == 1 || len([]rune(word)) > 3) {
			return false
		}
	}
	return letterWords >= 2
}

func firstLetter(word string) (rune, bool) {
	for _, r := range word {
		if unicode.IsLetter(r) {
			return r, true
		}
	}
	return 0, false
}

// countPunctuation counts punctuation other than in-word hyphens and
// apostrophes
func countPunctuation(text string) int {
	n := 0
	for _, r := range text {
		switch r {
		case '-', '\'', '’', '&':
			continue
		}
		if unicode.IsPunct(r) {
			n++
		}
	}
	return n
}

// isPureNumeric reports text with digits but no letters
func isPureNumeric(text string) bool {
	digits := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			return false
		}
		if unicode.IsDigit(r) {
			digits = true
		}
	}
	return digits
}
