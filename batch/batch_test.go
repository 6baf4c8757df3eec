package batch

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"github.com/tsawler/outline"
	"github.com/tsawler/outline/cache"
	"github.com/tsawler/outline/model"
)

// memSource is a single-page document held in memory
type memSource struct {
	heading string
	closed  *atomic.Int32
}

func (s memSource) PageCount() int { return 1 }

func (s memSource) Page(int) (model.Page, error) {
	return model.Page{Index: 0, Spans: []model.TextSpan{
		{Text: s.heading, FontSize: 18, Bold: true},
		{Text: "The body of the report is written in plain sentences.", FontSize: 11},
		{Text: "It continues here with more detail on the findings.", FontSize: 11},
	}}, nil
}

func (s memSource) MetadataTitle() string                { return "" }
func (s memSource) Bookmarks() ([]model.Bookmark, error) { return nil, nil }

func (s memSource) Close() error {
	s.closed.Add(1)
	return nil
}

type fakeOpener struct {
	opened atomic.Int32
	closed atomic.Int32
}

func (f *fakeOpener) open(path string) (outline.Source, error) {
	f.opened.Add(1)
	name := filepath.Base(path)
	if name == "broken.pdf" {
		return nil, errors.New("not a PDF file")
	}
	return memSource{heading: "Report on " + name[:len(name)-4], closed: &f.closed}, nil
}

func writeInputs(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4 "+name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRunner_Run(t *testing.T) {
	input := writeInputs(t, "alpha.pdf", "beta.pdf", "broken.pdf", "notes.txt")
	output := filepath.Join(t.TempDir(), "out")

	for _, workers := range []int{1, 3} {
		opener := &fakeOpener{}
		config := DefaultConfig()
		config.Workers = workers

		summary, err := NewRunner(config, nil).WithOpener(opener.open).Run(context.Background(), input, output)
		if err != nil {
			t.Fatalf("workers=%d: Run() error = %v", workers, err)
		}

		if len(summary.Results) != 3 {
			t.Fatalf("got %d results, want 3 (txt skipped)", len(summary.Results))
		}
		if summary.Processed != 2 || summary.Failed != 1 {
			t.Errorf("processed %d failed %d, want 2 and 1", summary.Processed, summary.Failed)
		}
		if _, err := uuid.Parse(summary.RunID); err != nil {
			t.Errorf("RunID %q is not a UUID", summary.RunID)
		}
		if opener.opened.Load() != 3 || opener.closed.Load() != 2 {
			t.Errorf("opened %d closed %d", opener.opened.Load(), opener.closed.Load())
		}

		// Results keep input order regardless of completion order
		want := []string{"alpha.pdf", "beta.pdf", "broken.pdf"}
		for i, res := range summary.Results {
			if res.File != want[i] {
				t.Errorf("result %d = %s, want %s", i, res.File, want[i])
			}
		}
		if summary.Results[2].Error == "" {
			t.Error("broken document has no error recorded")
		}
	}

	data, err := os.ReadFile(filepath.Join(output, "alpha.json"))
	if err != nil {
		t.Fatalf("missing output: %v", err)
	}
	var doc model.OutlineDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid output JSON: %v", err)
	}
	if doc.Title != "Report on alpha" || len(doc.Outline) != 1 || doc.Outline[0].Level != model.H1 {
		t.Errorf("alpha.json = %+v", doc)
	}

	data, err = os.ReadFile(filepath.Join(output, SummaryFile))
	if err != nil {
		t.Fatalf("missing summary: %v", err)
	}
	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("invalid summary JSON: %v", err)
	}
	if summary.Failed != 1 {
		t.Errorf("summary.json failed = %d", summary.Failed)
	}
}

func TestRunner_Cache(t *testing.T) {
	input := writeInputs(t, "alpha.pdf", "beta.pdf")
	output := t.TempDir()

	store, err := cache.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	opener := &fakeOpener{}
	runner := NewRunner(DefaultConfig(), nil).WithOpener(opener.open).WithCache(store)

	first, err := runner.Run(context.Background(), input, output)
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	if first.Cached != 0 {
		t.Errorf("first run cached = %d, want 0", first.Cached)
	}

	second, err := runner.Run(context.Background(), input, output)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if second.Cached != 2 || second.Processed != 2 {
		t.Errorf("second run cached %d processed %d, want 2 and 2", second.Cached, second.Processed)
	}
	if opener.opened.Load() != 2 {
		t.Errorf("documents opened %d times, want 2", opener.opened.Load())
	}
	if second.Results[0].Title != "Report on alpha" {
		t.Errorf("cached title = %q", second.Results[0].Title)
	}
}

func TestRunner_Cancelled(t *testing.T) {
	input := writeInputs(t, "alpha.pdf", "beta.pdf")
	output := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opener := &fakeOpener{}
	summary, err := NewRunner(DefaultConfig(), nil).WithOpener(opener.open).Run(ctx, input, output)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if summary == nil || summary.Failed != 2 {
		t.Fatalf("summary = %+v, want both documents failed", summary)
	}
	if opener.opened.Load() != 0 {
		t.Error("documents opened after cancellation")
	}
}

func TestRunner_Files(t *testing.T) {
	runner := NewRunner(DefaultConfig(), nil)

	if _, err := runner.Files(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for a missing directory")
	}

	file := filepath.Join(writeInputs(t, "one.pdf"), "one.pdf")
	if _, err := runner.Files(file); err == nil {
		t.Error("expected error when the input is a file")
	}

	files, err := runner.Files(writeInputs(t, "b.pdf", "a.pdf", "c.doc"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "a.pdf" {
		t.Errorf("Files() = %v", files)
	}
}
