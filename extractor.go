package outline

import (
	"fmt"
	"sort"

	"github.com/tsawler/outline/layout"
	"github.com/tsawler/outline/model"
	"github.com/tsawler/outline/pdfsource"
)

// Source is a span provider: anything that can hand over the pages,
// metadata title and bookmarks of one document.
type Source interface {
	PageCount() int
	Page(pageIndex int) (model.Page, error)
	MetadataTitle() string
	Bookmarks() ([]model.Bookmark, error)
	Close() error
}

// Extractor provides a fluent interface for extracting outlines.
// Each configuration method returns a new Extractor instance, allowing
// method chaining. An Extractor is never modified after creation: terminal
// operations open the file, read it and close it within the call, so one
// Extractor may be used from several goroutines when it was created by
// Open. A Source passed to FromSource must itself support concurrent reads
// for that.
type Extractor struct {
	// Source
	filename string
	source   Source

	// Configuration
	options ExtractOptions
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		source:   e.source,
		options:  e.options.clone(),
	}
}

// acquire returns the source for one terminal operation. release closes
// the source when acquire opened it.
func (e *Extractor) acquire() (src Source, release func(), err error) {
	if e.source != nil {
		return e.source, func() {}, nil
	}
	if e.filename == "" {
		return nil, nil, pdfsource.ErrNoFilename
	}

	doc, err := pdfsource.Open(e.filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return doc, func() { _ = doc.Close() }, nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages restricts extraction to the given pages (0-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	doc, _, err := outline.Open("doc.pdf").Pages(0, 2, 4).Outline()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange restricts extraction to a range of pages (0-indexed, inclusive).
//
// Example:
//
//	doc, _, err := outline.Open("doc.pdf").PageRange(0, 9).Outline()
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// WithConfig replaces the heuristic configuration.
//
// Example:
//
//	cfg := layout.DefaultConfig()
//	cfg.Levels.StyleLevels = 4
//	doc, _, err := outline.Open("doc.pdf").WithConfig(cfg).Outline()
func (e *Extractor) WithConfig(config layout.Config) *Extractor {
	newExt := e.clone()
	newExt.options.config = config
	return newExt
}

// IgnoreBookmarks forces heading inference even when the document carries
// its own outline.
func (e *Extractor) IgnoreBookmarks() *Extractor {
	newExt := e.clone()
	newExt.options.config.UseBookmarks = false
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the number of pages in the document.
func (e *Extractor) PageCount() (int, error) {
	src, release, err := e.acquire()
	if err != nil {
		return 0, err
	}
	defer release()
	return src.PageCount(), nil
}

// Outline extracts the document outline and closes the source if the
// Extractor opened it. Pages that fail to parse are skipped and reported
// as warnings.
//
// Example:
//
//	doc, warnings, err := outline.Open("document.pdf").Outline()
func (e *Extractor) Outline() (model.OutlineDocument, []Warning, error) {
	doc, _, warnings, err := e.OutlineWithReport()
	return doc, warnings, err
}

// OutlineWithReport is Outline plus the pipeline report.
func (e *Extractor) OutlineWithReport() (model.OutlineDocument, Report, []Warning, error) {
	in, warnings, err := e.Input()
	if err != nil {
		return model.OutlineDocument{}, Report{}, warnings, err
	}

	doc, report := NewPipeline(e.options.config).Run(in)
	return doc, report, warnings, nil
}

// Input reads the spans, metadata title and bookmarks of the selected
// pages without running the pipeline, and closes the source if the
// Extractor opened it.
func (e *Extractor) Input() (Input, []Warning, error) {
	src, release, err := e.acquire()
	if err != nil {
		return Input{}, nil, err
	}
	defer release()

	indexes, err := e.resolvePages(src.PageCount())
	if err != nil {
		return Input{}, nil, err
	}

	var warnings []Warning
	in := Input{MetadataTitle: src.MetadataTitle()}

	for _, idx := range indexes {
		page, err := src.Page(idx)
		if err != nil {
			warnings = append(warnings, Warning{Page: idx, Message: err.Error()})
		}
		in.Pages = append(in.Pages, page)
	}

	if e.options.config.UseBookmarks {
		bookmarks, err := src.Bookmarks()
		if err != nil {
			warnings = append(warnings, Warning{Page: -1, Message: err.Error()})
		}
		in.Bookmarks = filterBookmarks(bookmarks, indexes, e.options.pages != nil)
	}

	return in, warnings, nil
}

// resolvePages returns the sorted, de-duplicated page selection.
func (e *Extractor) resolvePages(count int) ([]int, error) {

	if e.options.pages == nil {
		indexes := make([]int, count)
		for i := range indexes {
			indexes[i] = i
		}
		return indexes, nil
	}

	seen := make(map[int]bool)
	var indexes []int
	for _, p := range e.options.pages {
		if p < 0 || p >= count {
			return nil, fmt.Errorf("page %d out of range (document has %d pages)", p, count)
		}
		if !seen[p] {
			seen[p] = true
			indexes = append(indexes, p)
		}
	}
	sort.Ints(indexes)
	return indexes, nil
}

// filterBookmarks keeps the bookmarks pointing into the selected pages
func filterBookmarks(bookmarks []model.Bookmark, indexes []int, selective bool) []model.Bookmark {
	if !selective {
		return bookmarks
	}
	selected := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		selected[i] = true
	}
	var kept []model.Bookmark
	for _, b := range bookmarks {
		if selected[b.Page] {
			kept = append(kept, b)
		}
	}
	return kept
}
