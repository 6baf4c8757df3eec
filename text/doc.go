// Package text prepares raw span text for heading analysis.
//
// Providers hand over text exactly as it sits in the document: compatibility
// forms, full-width punctuation, stray bidi controls, leader dots and broken
// UTF-8 are all common. Everything downstream compares and pattern-matches
// text, so it must first be brought into one canonical form.
//
// # Script Classification
//
// [Classify] returns the dominant [model.ScriptClass] of a string by counting
// letters per Unicode block. [ScriptOf] classifies a single rune:
//
//	text.Classify("Введение")   // model.ScriptCyrillic
//	text.Classify("第1章 概要")  // model.ScriptCJK
//
// # Normalization
//
// The [Normalizer] applies NFKC to every span and then a script-specific
// pass:
//
//   - Arabic, Hebrew - bidi control marks removed
//   - Devanagari, other Indic, complex scripts - recomposed with NFC
//   - Thai - boundary whitespace trimmed, internal spacing left alone
//   - CJK - full-width forms folded, ideographic space mapped to a space
//
// Runs of three or more dots collapse to "..." for every script. A span is
// never dropped here; the script it was classified as is cached on the span.
//
//	n := text.NewNormalizer()
//	pages = n.NormalizePages(pages)
package text
