package pdfsource

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"

	"github.com/tsawler/outline/model"
)

// writeFixture generates a two-page PDF with a title, headings, body text
// and bookmarks
func writeFixture(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.pdf")

	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetTitle("Quarterly Operations Report", false)
	pdf.SetCompression(false)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Bookmark("Chapter 1", 0, -1)
	pdf.Text(72, 200, "Chapter 1")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Bookmark("1.1 Background", 1, -1)
	pdf.Text(72, 240, "1.1 Background")
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(72, 270, "Operations ran smoothly throughout the quarter.")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Bookmark("Chapter 2", 0, -1)
	pdf.Text(72, 200, "Chapter 2")
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(72, 240, "Costs were lower than planned.")

	if err := pdf.OutputFileAndClose(path); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestOpenErrors(t *testing.T) {
	if _, err := Open(""); !errors.Is(err, ErrNoFilename) {
		t.Errorf("Open(\"\") error = %v, want ErrNoFilename", err)
	}
	if _, err := Open(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("expected error opening a missing file")
	}
}

func TestDocument(t *testing.T) {
	doc, err := Open(writeFixture(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer doc.Close()

	if doc.PageCount() != 2 {
		t.Fatalf("PageCount() = %d, want 2", doc.PageCount())
	}

	if got := doc.MetadataTitle(); got != "Quarterly Operations Report" {
		t.Errorf("MetadataTitle() = %q", got)
	}

	t.Run("spans", func(t *testing.T) {
		page, err := doc.Page(0)
		if err != nil {
			t.Fatalf("Page(0) error = %v", err)
		}
		if page.Height < 791 || page.Height > 793 {
			t.Errorf("page height = %v, want 792", page.Height)
		}

		var chapter *model.TextSpan
		for i := range page.Spans {
			if page.Spans[i].Page != 0 {
				t.Errorf("span %q has page %d, want 0", page.Spans[i].Text, page.Spans[i].Page)
			}
			if strings.Contains(page.Spans[i].Text, "Chapter") {
				chapter = &page.Spans[i]
			}
		}
		if chapter == nil {
			t.Fatalf("no Chapter span among %+v", page.Spans)
		}
		if !chapter.Bold {
			t.Errorf("chapter span not bold (font %q)", chapter.FontName)
		}
		if chapter.FontSize < 19 || chapter.FontSize > 21 {
			t.Errorf("chapter font size = %v, want 20", chapter.FontSize)
		}
		if chapter.BBox.Y0 < 150 || chapter.BBox.Y0 > 200 {
			t.Errorf("chapter top = %v, want near 180", chapter.BBox.Y0)
		}
	})

	t.Run("page range", func(t *testing.T) {
		if _, err := doc.Spans(2); !errors.Is(err, ErrPageRange) {
			t.Errorf("Spans(2) error = %v, want ErrPageRange", err)
		}
		if _, err := doc.Spans(-1); !errors.Is(err, ErrPageRange) {
			t.Errorf("Spans(-1) error = %v, want ErrPageRange", err)
		}
	})

	t.Run("all pages", func(t *testing.T) {
		pages, err := doc.Pages()
		if err != nil {
			t.Fatalf("Pages() error = %v", err)
		}
		if len(pages) != 2 || pages[1].Index != 1 {
			t.Fatalf("Pages() returned %d pages", len(pages))
		}
		if len(pages[1].Spans) == 0 {
			t.Error("second page has no spans")
		}
	})

	t.Run("bookmarks", func(t *testing.T) {
		bms, err := doc.Bookmarks()
		if err != nil {
			t.Fatalf("Bookmarks() error = %v", err)
		}
		want := []model.Bookmark{
			{Title: "Chapter 1", Level: 1, Page: 0},
			{Title: "1.1 Background", Level: 2, Page: 0},
			{Title: "Chapter 2", Level: 1, Page: 1},
		}
		if len(bms) != len(want) {
			t.Fatalf("Bookmarks() = %+v, want %+v", bms, want)
		}
		for i := range want {
			if bms[i] != want[i] {
				t.Errorf("bookmark %d = %+v, want %+v", i, bms[i], want[i])
			}
		}
	})
}

func TestCloseTwice(t *testing.T) {
	doc, err := Open(writeFixture(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := doc.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := doc.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
