package layout

import (
	"testing"

	"github.com/tsawler/outline/model"
)

func cand(text string, size float64, bold bool, seq int) HeadingCandidate {
	span := latin(text, size, bold)
	return HeadingCandidate{Span: span, Style: StyleOf(span), SuggestedLevel: model.H6, Seq: seq}
}

func numbered(c HeadingCandidate, level model.Level) HeadingCandidate {
	c.Numbered = true
	c.SuggestedLevel = level
	return c
}

func TestGroupByStyle(t *testing.T) {
	candidates := []HeadingCandidate{
		cand("Methods", 14, false, 0),
		cand("Report", 24, true, 1),
		cand("Results", 14, true, 2),
		cand("Discussion", 14, false, 3),
	}

	groups := GroupByStyle(candidates)

	want := []StyleKey{{24, true}, {14, true}, {14, false}}
	if len(groups) != len(want) {
		t.Fatalf("got %d groups, want %d", len(groups), len(want))
	}
	for i, g := range groups {
		if g.Key != want[i] {
			t.Errorf("group %d key = %v, want %v", i, g.Key, want[i])
		}
	}
	if len(groups[2].Candidates) != 2 || groups[2].Candidates[0].Span.Text != "Methods" {
		t.Errorf("group members out of order: %+v", groups[2].Candidates)
	}
}

func TestAssignLevels(t *testing.T) {
	candidates := []HeadingCandidate{
		cand("Annual Report", 28, true, 0),
		cand("Market Review", 20, true, 3),
		cand("Regional Detail", 16, true, 5),
		cand("Store Notes", 13, true, 8),
		numbered(cand("2.1 Pricing", 13, true, 9), model.H2),
		cand("Closing Remarks", 20, true, 12),
	}

	tests := []struct {
		name        string
		styleLevels int
		want        []model.Level
	}{
		{"default", 3, []model.Level{model.H1, model.H2, model.H3, model.H3, model.H2, model.H2}},
		{"six levels", 6, []model.Level{model.H1, model.H2, model.H3, model.H4, model.H2, model.H2}},
		{"one level", 1, []model.Level{model.H1, model.H1, model.H1, model.H1, model.H2, model.H1}},
		{"above six", 9, []model.Level{model.H1, model.H2, model.H3, model.H4, model.H2, model.H2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultLevelConfig()
			config.StyleLevels = tt.styleLevels

			got := AssignLevels(candidates, config)

			if len(got) != len(tt.want) {
				t.Fatalf("got %d candidates, want %d", len(got), len(tt.want))
			}
			for i, c := range got {
				if c.Seq != candidates[i].Seq {
					t.Errorf("result %d has Seq %d, want reading order", i, c.Seq)
				}
				if c.Level != tt.want[i] {
					t.Errorf("%q level = %v, want %v", c.Span.Text, c.Level, tt.want[i])
				}
			}
		})
	}
}

func TestAssignLevels_MaxPerStyle(t *testing.T) {
	var candidates []HeadingCandidate
	for i := 0; i < 20; i++ {
		candidates = append(candidates, cand("Entry", 14, true, i))
	}
	candidates = append(candidates, cand("Cover Title", 24, true, 20))

	config := DefaultLevelConfig()
	config.MaxPerStyle = 5
	got := AssignLevels(candidates, config)

	if len(got) != 6 {
		t.Fatalf("got %d candidates, want 6", len(got))
	}
	if got[4].Seq != 4 || got[5].Span.Text != "Cover Title" {
		t.Errorf("cap should keep the earliest candidates: %+v", got)
	}

	config.MaxPerStyle = 0
	if got := AssignLevels(candidates, config); len(got) != 21 {
		t.Errorf("MaxPerStyle 0 kept %d, want all 21", len(got))
	}
}

func TestStyleKey(t *testing.T) {
	if got := StyleOf(model.TextSpan{FontSize: 11.96, Bold: true}); got != (StyleKey{12, true}) {
		t.Errorf("StyleOf() = %v", got)
	}
	if (StyleKey{12, true}).String() != "12.0pt bold" || (StyleKey{10.5, false}).String() != "10.5pt" {
		t.Error("unexpected StyleKey.String() output")
	}
	if !(StyleKey{12, true}).outranks(StyleKey{12, false}) || (StyleKey{12, true}).outranks(StyleKey{14, false}) {
		t.Error("size must outrank weight")
	}
}
