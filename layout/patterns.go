package layout

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/tsawler/outline/model"
)

// keywordPattern marks a heading by a leading word such as "Chapter" and
// fixes its level
type keywordPattern struct {
	re    *regexp.Regexp
	level model.Level
}

// numberPattern recognizes a numbering prefix; depth maps the first
// submatch to a nesting depth
type numberPattern struct {
	re    *regexp.Regexp
	depth func(prefix string) int
}

// patternSet holds the heading patterns for one script
type patternSet struct {
	numbering  []numberPattern
	keywords   []keywordPattern
	structural map[string]bool // Case-folded whole-text section names
}

// foldCase returns the case-folded form of s. A Caser keeps state between
// calls, so each call gets its own.
func foldCase(s string) string {
	return cases.Fold().String(s)
}

func decimalDepth(prefix string) int {
	return strings.Count(strings.TrimSuffix(prefix, "."), ".") + 1
}

func fixedDepth(d int) func(string) int {
	return func(string) int { return d }
}

var (
	decimalNumbering = numberPattern{regexp.MustCompile(`^(\d{1,3}(?:\.\d{1,3}){0,5})\.?\s+\S`), decimalDepth}
	romanNumbering   = numberPattern{regexp.MustCompile(`^([IVXLC]{1,6})\.\s+\S`), fixedDepth(1)}
	letterNumbering  = numberPattern{regexp.MustCompile(`^([A-Z])\.\s+\S`), fixedDepth(2)}

	// CJK headings often run the title straight after the number
	cjkNumbering = numberPattern{regexp.MustCompile(`^(\d{1,3}(?:\.\d{1,3}){0,5})[.、]?\s*[\p{Han}\p{Hiragana}\p{Katakana}\p{Hangul}]`), decimalDepth}

	numberingPrefix = regexp.MustCompile(`^(?:\d{1,3}(?:\.\d{1,3}){0,5}[.、]?|[IVXLC]{1,6}\.|[A-Z]\.)\s*`)
)

func structuralSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[foldCase(n)] = true
	}
	return set
}

var latinPatterns = &patternSet{
	numbering: []numberPattern{decimalNumbering, romanNumbering, letterNumbering},
	keywords: []keywordPattern{
		{regexp.MustCompile(`(?i)^(chapter|part)\s+(\d+|[ivxlc]+|one|two|three|four|five|six|seven|eight|nine|ten)\b`), model.H1},
		{regexp.MustCompile(`(?i)^appendix\s+([a-z]|\d+|[ivxlc]+)\b`), model.H1},
		{regexp.MustCompile(`(?i)^section\s+\d+(\.\d+)*\b`), model.H2},
	},
	structural: structuralSet(
		"introduction", "summary", "executive summary", "overview", "conclusion", "conclusions",
		"references", "abstract", "acknowledgements", "acknowledgments", "appendix", "appendices",
		"bibliography", "contents", "table of contents", "background", "preface", "foreword",
		"glossary", "index", "discussion", "results", "methods", "methodology", "scope",
	),
}

var greekPatterns = &patternSet{
	numbering: []numberPattern{decimalNumbering},
	keywords: []keywordPattern{
		{regexp.MustCompile(`(?i)^(κεφάλαιο|μέρος)\s+\S+`), model.H1},
		{regexp.MustCompile(`(?i)^ενότητα\s+\S+`), model.H2},
	},
	structural: structuralSet("εισαγωγή", "περίληψη", "συμπεράσματα", "επισκόπηση", "βιβλιογραφία", "περιεχόμενα"),
}

var cyrillicPatterns = &patternSet{
	numbering: []numberPattern{decimalNumbering},
	keywords: []keywordPattern{
		{regexp.MustCompile(`(?i)^(глава|часть)\s+\S+`), model.H1},
		{regexp.MustCompile(`(?i)^(раздел|параграф)\s+\S+`), model.H2},
	},
	structural: structuralSet(
		"введение", "заключение", "содержание", "оглавление", "аннотация", "обзор", "резюме",
		"список литературы", "приложение", "выводы",
	),
}

var cjkPatterns = &patternSet{
	numbering: []numberPattern{cjkNumbering, decimalNumbering},
	keywords: []keywordPattern{
		{regexp.MustCompile(`^第\s*[0-9一二三四五六七八九十百千〇零]+\s*[章部編编篇]`), model.H1},
		{regexp.MustCompile(`^第\s*[0-9一二三四五六七八九十百千〇零]+\s*[節节條条]`), model.H2},
		{regexp.MustCompile(`^제\s*\d+\s*[장부]`), model.H1},
		{regexp.MustCompile(`^제\s*\d+\s*절`), model.H2},
	},
	structural: structuralSet(
		"概要", "序論", "はじめに", "結論", "まとめ", "参考文献", "目次", "付録",
		"引言", "摘要", "结论", "总结", "目录", "参考文献", "附录",
		"서론", "결론", "요약", "참고문헌", "목차", "부록",
	),
}

var arabicPatterns = &patternSet{
	numbering: []numberPattern{decimalNumbering},
	keywords: []keywordPattern{
		{regexp.MustCompile(`^(الفصل|الباب|الجزء)\s+\S+`), model.H1},
		{regexp.MustCompile(`^(القسم|المبحث)\s+\S+`), model.H2},
	},
	structural: structuralSet("مقدمة", "المقدمة", "الخلاصة", "الخاتمة", "المراجع", "ملخص", "الملخص", "الفهرس"),
}

var hebrewPatterns = &patternSet{
	numbering: []numberPattern{decimalNumbering},
	keywords: []keywordPattern{
		{regexp.MustCompile(`^(פרק|חלק)\s+\S+`), model.H1},
	},
	structural: structuralSet("מבוא", "סיכום", "תקציר", "מקורות", "ביבליוגרפיה", "תוכן עניינים"),
}

var devanagariPatterns = &patternSet{
	numbering: []numberPattern{decimalNumbering},
	keywords: []keywordPattern{
		{regexp.MustCompile(`^(अध्याय|भाग)\s+\S+`), model.H1},
		{regexp.MustCompile(`^खंड\s+\S+`), model.H2},
	},
	structural: structuralSet("परिचय", "प्रस्तावना", "सारांश", "निष्कर्ष", "संदर्भ", "विषय सूची"),
}

var thaiPatterns = &patternSet{
	numbering: []numberPattern{decimalNumbering},
	keywords: []keywordPattern{
		{regexp.MustCompile(`^(บทที่|ภาค)\s*\S+`), model.H1},
	},
	structural: structuralSet("บทนำ", "สรุป", "บทคัดย่อ", "บรรณานุกรม", "สารบัญ", "ภาพรวม"),
}

// genericPatterns serves scripts without dedicated keyword tables
var genericPatterns = &patternSet{
	numbering:  []numberPattern{decimalNumbering},
	structural: map[string]bool{},
}

var patternsByScript = map[model.ScriptClass]*patternSet{
	model.ScriptUnknown:    latinPatterns,
	model.ScriptLatin:      latinPatterns,
	model.ScriptGreek:      greekPatterns,
	model.ScriptCyrillic:   cyrillicPatterns,
	model.ScriptCJK:        cjkPatterns,
	model.ScriptArabic:     arabicPatterns,
	model.ScriptHebrew:     hebrewPatterns,
	model.ScriptDevanagari: devanagariPatterns,
	model.ScriptThai:       thaiPatterns,
}

// patternsFor selects the pattern family for a script
func patternsFor(script model.ScriptClass) *patternSet {
	if p, ok := patternsByScript[script]; ok {
		return p
	}
	return genericPatterns
}

// keywordLevel returns the level fixed by a leading chapter or section
// keyword
func (p *patternSet) keywordLevel(text string) (model.Level, bool) {
	for _, k := range p.keywords {
		if k.re.MatchString(text) {
			return k.level, true
		}
	}
	return model.LevelUnknown, false
}

// numberingDepth returns the nesting depth of a numbering prefix
func (p *patternSet) numberingDepth(text string) (int, bool) {
	for _, n := range p.numbering {
		if m := n.re.FindStringSubmatch(text); m != nil {
			return n.depth(m[1]), true
		}
	}
	return 0, false
}

// stripNumbering removes a leading numbering prefix and a trailing colon
func (p *patternSet) stripNumbering(text string) string {
	if _, ok := p.numberingDepth(text); ok {
		text = numberingPrefix.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), ":"))
}

// isStructural reports whether the whole text is a conventional section
// name such as "Introduction"
func (p *patternSet) isStructural(text string) bool {
	return p.structural[foldCase(text)]
}
