// Package pdfsource extracts formatted text spans from PDF files.
//
// A [Document] is the span provider for the outline pipeline. Glyphs are
// read from each page's content stream, grouped into rows by baseline and
// split into spans wherever the font or size changes, so every span
// carries one consistent style:
//
//	doc, err := pdfsource.Open("report.pdf")
//	if err != nil {
//		return err
//	}
//	defer doc.Close()
//
//	pages, err := doc.Pages()
//	title := doc.MetadataTitle()
//	bookmarks, err := doc.Bookmarks()
//
// Page indexes are 0-based everywhere, including bookmark destinations.
// Bounding boxes are flipped into top-down coordinates using the page's
// MediaBox.
package pdfsource
