// Package model defines the data types shared by the outline pipeline.
//
// Span providers produce [TextSpan] values grouped into [Page] values. The
// pipeline consumes them and produces an [OutlineDocument]: a title plus an
// ordered list of [OutlineEntry] headings.
//
// # Spans
//
// A [TextSpan] carries text together with the formatting attributes the
// heuristics need: font size, font name, bold and italic flags, page index
// and a [BBox] in top-down page coordinates. Its [ScriptClass] is filled in
// once during normalization and read by every later stage.
//
// # Outline
//
// [Level] values H1..H6 serialize as the strings "H1".."H6":
//
//	{"title": "Annual Report", "outline": [{"level": "H1", "text": "Summary", "page": 0}]}
//
// # Explicit Structure
//
// When a document carries navigation data, providers report it as
// [Bookmark] values which take precedence over inferred headings.
package model
