package pdfsource

import (
	"errors"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/tsawler/outline/model"
)

var (
	// ErrNoFilename is returned when Open is called with an empty path
	ErrNoFilename = errors.New("pdfsource: no filename provided")

	// ErrEncrypted is returned for password-protected documents
	ErrEncrypted = errors.New("pdfsource: document is encrypted")

	// ErrPageRange is returned for a page index outside the document
	ErrPageRange = errors.New("pdfsource: page index out of range")
)

// Config holds configuration for span extraction
type Config struct {
	// RowTolerance is the baseline distance, as a fraction of font size,
	// within which glyphs belong to one row
	// Default: 0.5
	RowTolerance float64 `mapstructure:"row_tolerance" yaml:"row_tolerance"`

	// WordGapRatio is the horizontal gap, as a fraction of font size,
	// that separates two words
	// Default: 0.15
	WordGapRatio float64 `mapstructure:"word_gap_ratio" yaml:"word_gap_ratio"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		RowTolerance: 0.5,
		WordGapRatio: 0.15,
	}
}

// Document is an open PDF acting as a span provider. A Document is not
// safe for concurrent use; open one per goroutine.
type Document struct {
	path      string
	file      *os.File
	reader    *pdf.Reader
	config    Config
	pageCount int
}

// Open opens the PDF at path with default configuration
func Open(path string) (*Document, error) {
	return OpenWithConfig(path, DefaultConfig())
}

// OpenWithConfig opens the PDF at path
func OpenWithConfig(path string, config Config) (*Document, error) {
	if path == "" {
		return nil, ErrNoFilename
	}

	file, reader, err := openReader(path)
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return nil, fmt.Errorf("%w: %s", ErrEncrypted, path)
		}
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}

	d := &Document{
		path:   path,
		file:   file,
		reader: reader,
		config: config,
	}
	d.pageCount = d.countPages()
	return d, nil
}

// openReader wraps pdf.Open, which panics on some malformed files
func openReader(path string) (file *os.File, reader *pdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()
	return pdf.Open(path)
}

// countPages asks pdfcpu first, which reads the page tree in relaxed
// validation mode, and falls back to the reader's own count.
func (d *Document) countPages() int {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed

	f, err := os.Open(d.path)
	if err == nil {
		defer f.Close()
		if n, err := api.PageCount(f, conf); err == nil && n > 0 {
			return n
		}
	}
	return d.reader.NumPage()
}

// Path returns the file the document was opened from
func (d *Document) Path() string {
	return d.path
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	return d.pageCount
}

// Page extracts the spans of one page. pageIndex is 0-based, as is the
// Page field of every returned span.
func (d *Document) Page(pageIndex int) (model.Page, error) {
	if pageIndex < 0 || pageIndex >= d.pageCount {
		return model.Page{}, fmt.Errorf("%w: %d of %d", ErrPageRange, pageIndex, d.pageCount)
	}

	p := d.reader.Page(pageIndex + 1)
	page := model.Page{Index: pageIndex}
	if p.V.IsNull() {
		return page, nil
	}
	page.Width, page.Height = mediaBoxSize(p)

	texts, err := pageContent(p)
	if err != nil {
		return page, fmt.Errorf("failed to read page %d: %w", pageIndex, err)
	}

	glyphs := glyphsFromContent(texts)
	flipHeight := page.Height
	if flipHeight <= 0 {
		flipHeight = contentTop(glyphs)
	}

	for _, row := range groupIntoRows(glyphs, d.config.RowTolerance) {
		for _, b := range buildSpans(row, d.config.WordGapRatio) {
			span := b.span(pageIndex, flipHeight)
			if span.Text != "" {
				page.Spans = append(page.Spans, span)
			}
		}
	}
	return page, nil
}

// Spans returns the spans of one page
func (d *Document) Spans(pageIndex int) ([]model.TextSpan, error) {
	page, err := d.Page(pageIndex)
	return page.Spans, err
}

// Pages extracts every page. A page that fails to parse is returned empty
// and its error joined into the result.
func (d *Document) Pages() ([]model.Page, error) {
	pages := make([]model.Page, 0, d.pageCount)
	var errs []error
	for i := 0; i < d.pageCount; i++ {
		page, err := d.Page(i)
		if err != nil {
			errs = append(errs, err)
		}
		pages = append(pages, page)
	}
	return pages, errors.Join(errs...)
}

// pageContent wraps Page.Content, which panics on some malformed streams
func pageContent(p pdf.Page) (texts []pdf.Text, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed content stream: %v", r)
		}
	}()
	return p.Content().Text, nil
}

// mediaBoxSize returns the page size from the MediaBox, following the
// inheritance chain through the page tree
func mediaBoxSize(p pdf.Page) (width, height float64) {
	v := p.V
	for i := 0; i < 32 && !v.IsNull(); i++ {
		box := v.Key("MediaBox")
		if box.Len() == 4 {
			return box.Index(2).Float64() - box.Index(0).Float64(),
				box.Index(3).Float64() - box.Index(1).Float64()
		}
		v = v.Key("Parent")
	}
	return 0, 0
}

// contentTop estimates a page height from the highest glyph when the
// MediaBox is missing
func contentTop(glyphs []glyph) float64 {
	top := 0.0
	for _, g := range glyphs {
		if t := g.y + g.fontSize; t > top {
			top = t
		}
	}
	return top
}

// MetadataTitle returns the Title entry of the document information
// dictionary, or "" when absent
func (d *Document) MetadataTitle() (title string) {
	defer func() {
		if recover() != nil {
			title = ""
		}
	}()
	return d.reader.Trailer().Key("Info").Key("Title").Text()
}

// Bookmarks returns the document outline flattened in display order. Top
// level entries have Level 1; pages are converted to 0-based indexes and
// entries without a destination get page -1.
func (d *Document) Bookmarks() ([]model.Bookmark, error) {
	f, err := os.Open(d.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", d.path, err)
	}
	defer f.Close()

	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed

	bms, err := api.Bookmarks(f, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookmarks of %s: %w", d.path, err)
	}

	var result []model.Bookmark
	flattenBookmarks(bms, 1, &result)
	return result, nil
}

func flattenBookmarks(bms []pdfcpu.Bookmark, level int, out *[]model.Bookmark) {
	for _, bm := range bms {
		*out = append(*out, model.Bookmark{
			Title: bm.Title,
			Level: level,
			Page:  bm.PageFrom - 1,
		})
		flattenBookmarks(bm.Kids, level+1, out)
	}
}

// Close releases the underlying file
func (d *Document) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}
