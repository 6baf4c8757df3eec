package pdfsource

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/outline/model"
)

// glyph is one positioned piece of text from a content stream, in PDF
// user space (Y grows upward, Y is the baseline)
type glyph struct {
	text     string
	font     string
	fontSize float64
	x, y, w  float64
}

func glyphsFromContent(texts []pdf.Text) []glyph {
	glyphs := make([]glyph, 0, len(texts))
	for _, t := range texts {
		if t.S == "" || t.S == "\n" {
			continue
		}
		glyphs = append(glyphs, glyph{
			text:     t.S,
			font:     baseFontName(t.Font),
			fontSize: t.FontSize,
			x:        t.X,
			y:        t.Y,
			w:        t.W,
		})
	}
	return glyphs
}

// baseFontName strips the six-letter subset tag ("ABCDEF+Helvetica")
func baseFontName(name string) string {
	if i := strings.IndexByte(name, '+'); i == 6 {
		return name[i+1:]
	}
	return name
}

// groupIntoRows groups glyphs sharing a baseline, top row first. Glyphs
// within a row keep stream order unless the stream runs backwards.
func groupIntoRows(glyphs []glyph, tolerance float64) [][]glyph {
	type rowBucket struct {
		yMin, yMax float64
		glyphs     []glyph
	}

	var buckets []rowBucket
	for _, g := range glyphs {
		tol := tolerance * g.fontSize
		found := false
		for i := range buckets {
			if g.y >= buckets[i].yMin-tol && g.y <= buckets[i].yMax+tol {
				buckets[i].glyphs = append(buckets[i].glyphs, g)
				buckets[i].yMin = math.Min(buckets[i].yMin, g.y)
				buckets[i].yMax = math.Max(buckets[i].yMax, g.y)
				found = true
				break
			}
		}
		if !found {
			buckets = append(buckets, rowBucket{yMin: g.y, yMax: g.y, glyphs: []glyph{g}})
		}
	}

	// Higher Y is nearer the top of the page
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].yMax > buckets[j].yMax
	})

	rows := make([][]glyph, len(buckets))
	for i, b := range buckets {
		row := b.glyphs
		sort.SliceStable(row, func(i, j int) bool {
			xTol := row[i].fontSize * 0.1
			if math.Abs(row[i].x-row[j].x) < xTol {
				return false
			}
			return row[i].x < row[j].x
		})
		rows[i] = row
	}
	return rows
}

// buildSpans turns a row of glyphs into spans, starting a new span
// whenever the font or size changes. Gaps wider than gapRatio times the
// font size become a space.
func buildSpans(row []glyph, gapRatio float64) []spanBuilder {
	var spans []spanBuilder
	var cur *spanBuilder

	for _, g := range row {
		if strings.TrimFunc(g.text, unicode.IsSpace) == "" {
			if cur != nil {
				cur.space()
			}
			continue
		}

		if cur == nil || cur.font != g.font || math.Abs(cur.fontSize-g.fontSize) > 0.05 {
			if cur != nil {
				spans = append(spans, *cur)
			}
			cur = &spanBuilder{text: g.text, font: g.font, fontSize: g.fontSize, x0: g.x, x1: g.x + g.w, y: g.y}
			continue
		}

		if g.x-cur.x1 > gapRatio*g.fontSize {
			cur.space()
		}
		cur.text += g.text
		cur.x0 = math.Min(cur.x0, g.x)
		cur.x1 = math.Max(cur.x1, g.x+g.w)
		cur.y = math.Min(cur.y, g.y)
	}
	if cur != nil {
		spans = append(spans, *cur)
	}
	return spans
}

// spanBuilder accumulates the glyphs of one span
type spanBuilder struct {
	text     string
	font     string
	fontSize float64
	x0, x1   float64
	y        float64 // Lowest baseline
}

func (b *spanBuilder) space() {
	if b.text != "" && !strings.HasSuffix(b.text, " ") {
		b.text += " "
	}
}

// span converts the builder to a model span on the given page. pageHeight
// flips the baseline into top-down coordinates.
func (b *spanBuilder) span(pageIndex int, pageHeight float64) model.TextSpan {
	bold, italic := model.FontFlags(b.font)
	top := pageHeight - b.y - b.fontSize
	bottom := pageHeight - b.y + b.fontSize*0.2
	return model.TextSpan{
		Text:     strings.TrimSpace(b.text),
		FontSize: b.fontSize,
		FontName: b.font,
		Bold:     bold,
		Italic:   italic,
		Page:     pageIndex,
		BBox:     model.NewBBox(b.x0, math.Max(top, 0), b.x1, math.Max(bottom, 0)),
	}
}
