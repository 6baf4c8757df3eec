package model

// ScriptClass identifies the dominant writing system of a piece of text.
// It selects normalization rules and heading patterns; it carries no
// language information beyond the script itself.
type ScriptClass int

const (
	ScriptUnknown ScriptClass = iota
	ScriptLatin
	ScriptCJK
	ScriptArabic
	ScriptCyrillic
	ScriptDevanagari
	ScriptThai
	ScriptHebrew
	ScriptGreek
	ScriptIndic   // Bengali, Tamil, Telugu and the other Brahmic scripts of India
	ScriptComplex // Myanmar, Khmer, Tibetan, Mongolian, Ethiopic, Sinhala
	ScriptOther
)

var scriptNames = map[ScriptClass]string{
	ScriptUnknown:    "unknown",
	ScriptLatin:      "latin",
	ScriptCJK:        "cjk",
	ScriptArabic:     "arabic",
	ScriptCyrillic:   "cyrillic",
	ScriptDevanagari: "devanagari",
	ScriptThai:       "thai",
	ScriptHebrew:     "hebrew",
	ScriptGreek:      "greek",
	ScriptIndic:      "indic",
	ScriptComplex:    "complex",
	ScriptOther:      "other",
}

// String returns the lower-case script name
func (s ScriptClass) String() string {
	if name, ok := scriptNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsRTL reports whether the script is written right-to-left
func (s ScriptClass) IsRTL() bool {
	return s == ScriptArabic || s == ScriptHebrew
}

// UsesWordSpaces reports whether words are separated by spaces. Thai (and
// Lao, which shares its class) runs words together.
func (s ScriptClass) UsesWordSpaces() bool {
	return s != ScriptThai
}

// UsesCombiningMarks reports whether text in the script is built from base
// letters plus combining vowel signs that need canonical composition.
func (s ScriptClass) UsesCombiningMarks() bool {
	return s == ScriptDevanagari || s == ScriptIndic || s == ScriptComplex
}

// HasCase reports whether the script distinguishes upper and lower case
func (s ScriptClass) HasCase() bool {
	return s == ScriptLatin || s == ScriptCyrillic || s == ScriptGreek
}
