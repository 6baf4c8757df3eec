package layout

import (
	"reflect"
	"testing"

	"github.com/tsawler/outline/model"
)

// placed returns a leveled candidate positioned on a page
func placed(text string, page, seq int, level model.Level, y float64) HeadingCandidate {
	c := cand(text, 16, true, seq)
	c.Level = level
	c.Span.Page = page
	c.Span.BBox = model.NewBBox(72, y, 400, y+19)
	return c
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name       string
		candidates []HeadingCandidate
		want       []model.OutlineEntry
	}{
		{
			name: "split heading joined",
			candidates: []HeadingCandidate{
				placed("Annual Report of the", 0, 0, model.H1, 100),
				placed("Regional Office", 0, 1, model.H1, 121),
			},
			want: []model.OutlineEntry{{Level: model.H1, Text: "Annual Report of the Regional Office", Page: 0}},
		},
		{
			name: "body text between",
			candidates: []HeadingCandidate{
				placed("Methods", 0, 0, model.H2, 100),
				placed("Results", 0, 2, model.H2, 160),
			},
			want: []model.OutlineEntry{
				{Level: model.H2, Text: "Methods", Page: 0},
				{Level: model.H2, Text: "Results", Page: 0},
			},
		},
		{
			name: "gap too large",
			candidates: []HeadingCandidate{
				placed("Methods", 0, 0, model.H2, 100),
				placed("Results", 0, 1, model.H2, 200),
			},
			want: []model.OutlineEntry{
				{Level: model.H2, Text: "Methods", Page: 0},
				{Level: model.H2, Text: "Results", Page: 0},
			},
		},
		{
			name: "numbered follower",
			candidates: []HeadingCandidate{
				placed("1. Scope", 0, 0, model.H1, 100),
				numbered(placed("2. Terms", 0, 1, model.H1, 121), model.H1),
			},
			want: []model.OutlineEntry{
				{Level: model.H1, Text: "1. Scope", Page: 0},
				{Level: model.H1, Text: "2. Terms", Page: 0},
			},
		},
		{
			name: "different pages",
			candidates: []HeadingCandidate{
				placed("Overview", 0, 0, model.H1, 700),
				placed("Continued", 1, 1, model.H1, 100),
			},
			want: []model.OutlineEntry{
				{Level: model.H1, Text: "Overview", Page: 0},
				{Level: model.H1, Text: "Continued", Page: 1},
			},
		},
		{
			name: "case-insensitive duplicates",
			candidates: []HeadingCandidate{
				placed("Overview", 2, 0, model.H1, 100),
				placed("overview", 2, 1, model.H1, 121),
				placed("OVERVIEW", 3, 5, model.H1, 100),
			},
			want: []model.OutlineEntry{
				{Level: model.H1, Text: "Overview", Page: 2},
				{Level: model.H1, Text: "OVERVIEW", Page: 3},
			},
		},
		{
			name: "sorted by position",
			candidates: []HeadingCandidate{
				placed("Lower", 0, 0, model.H2, 500),
				placed("Upper", 0, 3, model.H2, 100),
				placed("Middle", 0, 6, model.H1, 300),
			},
			want: []model.OutlineEntry{
				{Level: model.H2, Text: "Upper", Page: 0},
				{Level: model.H1, Text: "Middle", Page: 0},
				{Level: model.H2, Text: "Lower", Page: 0},
			},
		},
		{
			name: "blank text dropped",
			candidates: []HeadingCandidate{
				placed("   ", 0, 0, model.H1, 100),
				placed("Summary", 0, 3, model.H1, 200),
			},
			want: []model.OutlineEntry{{Level: model.H1, Text: "Summary", Page: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.candidates, DefaultMergeConfig())
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMerge_Disabled(t *testing.T) {
	config := DefaultMergeConfig()
	config.Enabled = false

	got := Merge([]HeadingCandidate{
		placed("Annual Report of the", 0, 0, model.H1, 100),
		placed("Regional Office", 0, 1, model.H1, 121),
	}, config)

	if len(got) != 2 {
		t.Errorf("Merge() with merging disabled = %+v", got)
	}
}

func TestMerge_MaxLength(t *testing.T) {
	config := DefaultMergeConfig()
	config.MaxMergedLength = 25

	got := Merge([]HeadingCandidate{
		placed("Annual Report of the", 0, 0, model.H1, 100),
		placed("Regional Office", 0, 1, model.H1, 121),
	}, config)

	if len(got) != 2 {
		t.Errorf("Merge() joined past MaxMergedLength: %+v", got)
	}
}

func TestMerge_MaxPerLevel(t *testing.T) {
	var candidates []HeadingCandidate
	for i := 0; i < 10; i++ {
		candidates = append(candidates, placed(string(rune('A'+i))+" Section", i, i*2, model.H2, 100))
	}
	candidates = append(candidates, placed("Closing", 10, 30, model.H1, 100))

	config := DefaultMergeConfig()
	config.MaxPerLevel = 4
	got := Merge(candidates, config)

	if len(got) != 5 {
		t.Fatalf("got %d entries, want 5: %+v", len(got), got)
	}
	if got[3].Text != "D Section" || got[4].Text != "Closing" {
		t.Errorf("cap should keep the earliest entries per level: %+v", got)
	}
}
