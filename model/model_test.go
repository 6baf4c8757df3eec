package model

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

// ============================================================================
// Geometry Tests
// ============================================================================

func TestPointDistance(t *testing.T) {
	tests := []struct {
		name     string
		p1, p2   Point
		expected float64
	}{
		{"same point", Point{0, 0}, Point{0, 0}, 0},
		{"horizontal", Point{0, 0}, Point{3, 0}, 3},
		{"diagonal 3-4-5", Point{0, 0}, Point{3, 4}, 5},
		{"negative coords", Point{-1, -1}, Point{2, 3}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p1.Distance(tt.p2)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("Distance() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestNewBBox(t *testing.T) {
	tests := []struct {
		name string
		got  BBox
		want BBox
	}{
		{"ordered", NewBBox(10, 20, 110, 70), BBox{10, 20, 110, 70}},
		{"reversed", NewBBox(110, 70, 10, 20), BBox{10, 20, 110, 70}},
		{"mixed", NewBBox(110, 20, 10, 70), BBox{10, 20, 110, 70}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("NewBBox() = %+v, want %+v", tt.got, tt.want)
			}
		})
	}
}

func TestBBoxMetrics(t *testing.T) {
	b := NewBBox(10, 20, 110, 70)

	if b.Width() != 100 {
		t.Errorf("Width() = %v, want 100", b.Width())
	}
	if b.Height() != 50 {
		t.Errorf("Height() = %v, want 50", b.Height())
	}
	if b.Area() != 5000 {
		t.Errorf("Area() = %v, want 5000", b.Area())
	}
	if c := b.Center(); c != (Point{60, 45}) {
		t.Errorf("Center() = %+v, want {60 45}", c)
	}
	if !b.Contains(Point{10, 20}) || b.Contains(Point{5, 30}) {
		t.Error("Contains() boundary check failed")
	}
	if !b.IsValid() || b.IsZero() {
		t.Error("expected valid non-zero box")
	}
	if (BBox{}).IsValid() || !(BBox{}).IsZero() {
		t.Error("expected zero box to be invalid and zero")
	}
}

func TestBBoxIntersects(t *testing.T) {
	base := NewBBox(0, 0, 100, 100)
	tests := []struct {
		name  string
		other BBox
		want  bool
	}{
		{"overlapping", NewBBox(50, 50, 150, 150), true},
		{"contained", NewBBox(10, 10, 20, 20), true},
		{"touching edge", NewBBox(100, 0, 200, 100), true},
		{"separate", NewBBox(200, 200, 300, 300), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBBoxUnion(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	b := NewBBox(5, 20, 30, 25)

	if got, want := a.Union(b), NewBBox(0, 0, 30, 25); got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
	if got := (BBox{}).Union(b); got != b {
		t.Errorf("zero.Union(b) = %+v, want %+v", got, b)
	}
	if got := a.Union(BBox{}); got != a {
		t.Errorf("a.Union(zero) = %+v, want %+v", got, a)
	}
}

func TestBBoxVerticalGap(t *testing.T) {
	first := NewBBox(72, 100, 300, 118)

	if gap := first.VerticalGap(NewBBox(72, 124, 300, 142)); gap != 6 {
		t.Errorf("VerticalGap() = %v, want 6", gap)
	}
	if gap := first.VerticalGap(NewBBox(72, 110, 300, 128)); gap >= 0 {
		t.Errorf("overlapping boxes should give a negative gap, got %v", gap)
	}
}

// ============================================================================
// Script Tests
// ============================================================================

func TestScriptClassProperties(t *testing.T) {
	tests := []struct {
		script     ScriptClass
		name       string
		rtl        bool
		wordSpaces bool
		combining  bool
		hasCase    bool
	}{
		{ScriptLatin, "latin", false, true, false, true},
		{ScriptCyrillic, "cyrillic", false, true, false, true},
		{ScriptGreek, "greek", false, true, false, true},
		{ScriptArabic, "arabic", true, true, false, false},
		{ScriptHebrew, "hebrew", true, true, false, false},
		{ScriptThai, "thai", false, false, false, false},
		{ScriptDevanagari, "devanagari", false, true, true, false},
		{ScriptIndic, "indic", false, true, true, false},
		{ScriptComplex, "complex", false, true, true, false},
		{ScriptCJK, "cjk", false, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.script.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.script.IsRTL(); got != tt.rtl {
				t.Errorf("IsRTL() = %v, want %v", got, tt.rtl)
			}
			if got := tt.script.UsesWordSpaces(); got != tt.wordSpaces {
				t.Errorf("UsesWordSpaces() = %v, want %v", got, tt.wordSpaces)
			}
			if got := tt.script.UsesCombiningMarks(); got != tt.combining {
				t.Errorf("UsesCombiningMarks() = %v, want %v", got, tt.combining)
			}
			if got := tt.script.HasCase(); got != tt.hasCase {
				t.Errorf("HasCase() = %v, want %v", got, tt.hasCase)
			}
		})
	}
}

// ============================================================================
// Span Tests
// ============================================================================

func TestFontFlags(t *testing.T) {
	tests := []struct {
		font         string
		bold, italic bool
	}{
		{"Helvetica", false, false},
		{"Helvetica-Bold", true, false},
		{"Arial-BoldItalicMT", true, true},
		{"TimesNewRomanPS-ItalicMT", false, true},
		{"SourceSansPro-Semibold", true, false},
		{"Courier-Oblique", false, true},
		{"Roboto-Black", true, false},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.font, func(t *testing.T) {
			bold, italic := FontFlags(tt.font)
			if bold != tt.bold || italic != tt.italic {
				t.Errorf("FontFlags(%q) = (%v, %v), want (%v, %v)", tt.font, bold, italic, tt.bold, tt.italic)
			}
		})
	}
}

func TestTextSpanCounts(t *testing.T) {
	span := TextSpan{Text: "Глава 1 Введение"}
	if span.WordCount() != 3 {
		t.Errorf("WordCount() = %d, want 3", span.WordCount())
	}
	if span.RuneCount() != 16 {
		t.Errorf("RuneCount() = %d, want 16", span.RuneCount())
	}
}

func TestSpanCount(t *testing.T) {
	pages := []Page{
		{Spans: []TextSpan{{Text: "a"}, {Text: "b"}}},
		{},
		{Spans: []TextSpan{{Text: "c"}}},
	}
	if got := SpanCount(pages); got != 3 {
		t.Errorf("SpanCount() = %d, want 3", got)
	}
}

// ============================================================================
// Outline Tests
// ============================================================================

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelUnknown, "unknown"},
		{H1, "H1"},
		{H3, "H3"},
		{H6, "H6"},
		{Level(7), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.expected)
		}
	}
}

func TestClampLevel(t *testing.T) {
	tests := []struct {
		in, want Level
	}{
		{LevelUnknown, H1},
		{H2, H2},
		{Level(9), H6},
	}
	for _, tt := range tests {
		if got := ClampLevel(tt.in); got != tt.want {
			t.Errorf("ClampLevel(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelText(t *testing.T) {
	var l Level
	if err := l.UnmarshalText([]byte("h4")); err != nil || l != H4 {
		t.Errorf("UnmarshalText(h4) = %v, %v", l, err)
	}
	if err := l.UnmarshalText([]byte("H7")); err == nil {
		t.Error("expected error for H7")
	}
	if _, err := LevelUnknown.MarshalText(); err == nil {
		t.Error("expected error marshaling unknown level")
	}
}

func TestOutlineDocumentJSON(t *testing.T) {
	doc := OutlineDocument{
		Title: "Annual Report",
		Outline: []OutlineEntry{
			{Level: H1, Text: "1. Introduction", Page: 0},
			{Level: H2, Text: "1.1 Background", Page: 1},
		},
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"title":"Annual Report","outline":[{"level":"H1","text":"1. Introduction","page":0},{"level":"H2","text":"1.1 Background","page":1}]}`
	if string(data) != want {
		t.Errorf("Marshal() = %s\nwant %s", data, want)
	}

	var back OutlineDocument
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.Outline[1].Level != H2 {
		t.Errorf("round trip level = %v, want H2", back.Outline[1].Level)
	}
}

func TestEmptyOutlineJSON(t *testing.T) {
	data, err := json.Marshal(EmptyOutline())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"title":"Document","outline":[]}` {
		t.Errorf("Marshal(EmptyOutline()) = %s", data)
	}
}

func TestOutlineHelpers(t *testing.T) {
	doc := OutlineDocument{
		Title: "Guide",
		Outline: []OutlineEntry{
			{Level: H1, Text: "Setup", Page: 0},
			{Level: H2, Text: "Install", Page: 0},
			{Level: H1, Text: "Usage", Page: 2},
		},
	}

	if got := doc.EntriesAtLevel(H1); len(got) != 2 || got[1].Text != "Usage" {
		t.Errorf("EntriesAtLevel(H1) = %+v", got)
	}

	md := doc.Markdown()
	if !strings.HasPrefix(md, "# Guide\n") {
		t.Errorf("Markdown() missing title: %q", md)
	}
	if !strings.Contains(md, "  - Install (p. 0)\n") {
		t.Errorf("Markdown() missing indented H2: %q", md)
	}
}
