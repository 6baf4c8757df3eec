// Package outline infers a document outline (a title plus H1-H6 headings)
// from the formatted text spans of a paginated document.
//
// Basic usage:
//
//	doc, warnings, err := outline.Open("report.pdf").Outline()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", outline.FormatWarnings(warnings))
//	}
//
// With options:
//
//	doc, _, err := outline.Open("report.pdf").
//	    Pages(0, 1, 2).
//	    IgnoreBookmarks().
//	    Outline()
//
// Spans that were extracted by other means can be passed straight to the
// engine:
//
//	doc := outline.Extract(pages, "Annual Report")
//
// Extraction is deterministic: the same spans and configuration always
// produce the same outline.
package outline

import (
	"github.com/tsawler/outline/layout"
	"github.com/tsawler/outline/model"
)

// Open prepares outline extraction for a PDF file and returns an Extractor
// for fluent configuration. The file is opened lazily and closed by the
// terminal operation.
//
// Example:
//
//	doc, warnings, err := outline.Open("document.pdf").Outline()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromSource creates an Extractor over an already-opened span source.
// The caller remains responsible for closing it.
func FromSource(src Source) *Extractor {
	return &Extractor{
		source:  src,
		options: defaultOptions(),
	}
}

// Extract infers the outline of a document from its pages of spans using
// the default configuration. It never fails: a document without usable
// text yields the title "Document" and an empty outline.
func Extract(pages []model.Page, metadataTitle string) model.OutlineDocument {
	doc, _ := NewPipeline(layout.DefaultConfig()).Run(Input{
		Pages:         pages,
		MetadataTitle: metadataTitle,
	})
	return doc
}

// Must is a helper that wraps a call returning (T, error) and panics if
// the error is non-nil. It is intended for scripts and tests.
//
// Example:
//
//	count := outline.Must(outline.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustOutline is a helper that wraps a call to Outline() and panics if the
// error is non-nil, discarding warnings.
//
// Example:
//
//	doc := outline.MustOutline(outline.Open("document.pdf").Outline())
func MustOutline(doc model.OutlineDocument, _ []Warning, err error) model.OutlineDocument {
	if err != nil {
		panic(err)
	}
	return doc
}
