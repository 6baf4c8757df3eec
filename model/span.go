package model

import "strings"

// TextSpan is a contiguous run of text sharing one formatting style, as
// produced by a span provider. Spans are values; pipeline stages rewrite a
// copy rather than mutating the provider's slice.
type TextSpan struct {
	// Text is the span content
	Text string

	// FontSize is the rendered font size in points
	FontSize float64

	// FontName is the PostScript or family name of the font
	FontName string

	// Bold and Italic flag the font weight and style
	Bold   bool
	Italic bool

	// Page is the page index the span was found on
	Page int

	// BBox is the span's bounding box in top-down page coordinates
	BBox BBox

	// Script is the dominant script, filled in once by the normalizer
	Script ScriptClass
}

// WordCount returns the number of whitespace-separated words
func (s TextSpan) WordCount() int {
	return len(strings.Fields(s.Text))
}

// RuneCount returns the length of the text in characters
func (s TextSpan) RuneCount() int {
	return len([]rune(s.Text))
}

// FontFlags derives bold/italic flags from a font name. Embedded PDF fonts
// usually encode weight and style in the name ("Arial-BoldItalicMT").
func FontFlags(fontName string) (bold, italic bool) {
	lower := strings.ToLower(fontName)
	for _, marker := range []string{"bold", "black", "heavy", "semibold", "demibold", "demi"} {
		if strings.Contains(lower, marker) {
			bold = true
			break
		}
	}
	italic = strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
	return bold, italic
}

// Page holds the spans of one page together with its dimensions.
type Page struct {
	Index  int     // Page index as reported in the outline
	Width  float64 // Page width in points, 0 if unknown
	Height float64 // Page height in points, 0 if unknown
	Spans  []TextSpan
}

// SpanCount returns the number of spans across all pages
func SpanCount(pages []Page) int {
	n := 0
	for _, p := range pages {
		n += len(p.Spans)
	}
	return n
}
