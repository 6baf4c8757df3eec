package text

import (
	"sort"
	"unicode"

	"github.com/tsawler/outline/model"
)

// scriptRange maps an inclusive block of code points to a script class.
type scriptRange struct {
	lo, hi rune
	class  model.ScriptClass
}

// scriptTable lists the Unicode blocks the classifier recognizes. It must
// stay sorted by lo with no overlaps; Classify binary-searches it.
var scriptTable = []scriptRange{
	{0x0041, 0x024F, model.ScriptLatin},    // Basic Latin letters through Latin Extended-B
	{0x0300, 0x036F, model.ScriptLatin},    // Combining diacritical marks
	{0x0370, 0x03FF, model.ScriptGreek},    // Greek and Coptic
	{0x0400, 0x052F, model.ScriptCyrillic}, // Cyrillic, Cyrillic Supplement
	{0x0530, 0x058F, model.ScriptOther},    // Armenian
	{0x0590, 0x05FF, model.ScriptHebrew},
	{0x0600, 0x06FF, model.ScriptArabic},
	{0x0700, 0x074F, model.ScriptOther},  // Syriac
	{0x0750, 0x077F, model.ScriptArabic}, // Arabic Supplement
	{0x0780, 0x07FF, model.ScriptOther},  // Thaana, N'Ko
	{0x08A0, 0x08FF, model.ScriptArabic}, // Arabic Extended-A
	{0x0900, 0x097F, model.ScriptDevanagari},
	{0x0980, 0x0D7F, model.ScriptIndic},   // Bengali through Malayalam
	{0x0D80, 0x0DFF, model.ScriptComplex}, // Sinhala
	{0x0E00, 0x0E7F, model.ScriptThai},
	{0x0E80, 0x0EFF, model.ScriptThai},    // Lao
	{0x0F00, 0x0FFF, model.ScriptComplex}, // Tibetan
	{0x1000, 0x109F, model.ScriptComplex}, // Myanmar
	{0x10A0, 0x10FF, model.ScriptOther},   // Georgian
	{0x1100, 0x11FF, model.ScriptCJK},     // Hangul Jamo
	{0x1200, 0x137F, model.ScriptComplex}, // Ethiopic
	{0x1780, 0x17FF, model.ScriptComplex}, // Khmer
	{0x1800, 0x18AF, model.ScriptComplex}, // Mongolian
	{0x1E00, 0x1EFF, model.ScriptLatin},   // Latin Extended Additional
	{0x1F00, 0x1FFF, model.ScriptGreek},   // Greek Extended
	{0x2E80, 0x2FDF, model.ScriptCJK},     // CJK and Kangxi radicals
	{0x3000, 0x31FF, model.ScriptCJK},     // CJK symbols, kana, bopomofo, Hangul compatibility
	{0x3400, 0x4DBF, model.ScriptCJK},     // CJK Extension A
	{0x4E00, 0x9FFF, model.ScriptCJK},     // CJK Unified Ideographs
	{0xA720, 0xA7FF, model.ScriptLatin},   // Latin Extended-D
	{0xAC00, 0xD7AF, model.ScriptCJK},     // Hangul syllables
	{0xF900, 0xFAFF, model.ScriptCJK},     // CJK compatibility ideographs
	{0xFB1D, 0xFB4F, model.ScriptHebrew},  // Hebrew presentation forms
	{0xFB50, 0xFDFF, model.ScriptArabic},  // Arabic presentation forms A
	{0xFE70, 0xFEFF, model.ScriptArabic},  // Arabic presentation forms B
	{0xFF21, 0xFF5A, model.ScriptLatin},   // Full-width Latin
	{0xFF66, 0xFF9F, model.ScriptCJK},     // Half-width katakana
	{0x20000, 0x2FA1F, model.ScriptCJK},   // CJK Extensions B-F, compatibility supplement
}

// ScriptOf returns the script class of a single rune. Digits, punctuation,
// spaces and symbols have no script and return ScriptUnknown.
func ScriptOf(r rune) model.ScriptClass {
	if !unicode.IsLetter(r) && !unicode.IsMark(r) {
		return model.ScriptUnknown
	}
	i := sort.Search(len(scriptTable), func(i int) bool {
		return scriptTable[i].hi >= r
	})
	if i < len(scriptTable) && scriptTable[i].lo <= r {
		return scriptTable[i].class
	}
	return model.ScriptOther
}

// Classify returns the dominant script of text: the class with the most
// letters. Ties go to the script seen first. Text without letters
// (numbers, punctuation) is classified as Latin.
func Classify(text string) model.ScriptClass {
	var counts [model.ScriptOther + 1]int
	best := model.ScriptUnknown
	for _, r := range text {
		class := ScriptOf(r)
		if class == model.ScriptUnknown {
			continue
		}
		counts[class]++
		if best == model.ScriptUnknown || counts[class] > counts[best] {
			best = class
		}
	}
	if best == model.ScriptUnknown {
		return model.ScriptLatin
	}
	return best
}
