package model

import (
	"fmt"
	"strings"
)

// Level is an outline heading level, H1 (most prominent) through H6.
type Level int

const (
	LevelUnknown Level = iota
	H1
	H2
	H3
	H4
	H5
	H6
)

// MaxLevel is the deepest heading level an outline can carry
const MaxLevel = H6

// ClampLevel forces l into the H1..H6 range
func ClampLevel(l Level) Level {
	if l < H1 {
		return H1
	}
	if l > MaxLevel {
		return MaxLevel
	}
	return l
}

// String returns "H1".."H6", or "unknown"
func (l Level) String() string {
	if l >= H1 && l <= H6 {
		return fmt.Sprintf("H%d", int(l))
	}
	return "unknown"
}

// MarshalText encodes the level as "H1".."H6"
func (l Level) MarshalText() ([]byte, error) {
	if l < H1 || l > H6 {
		return nil, fmt.Errorf("invalid heading level %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText decodes "H1".."H6" (case-insensitive)
func (l *Level) UnmarshalText(b []byte) error {
	s := strings.ToUpper(strings.TrimSpace(string(b)))
	if len(s) == 2 && s[0] == 'H' && s[1] >= '1' && s[1] <= '6' {
		*l = Level(s[1] - '0')
		return nil
	}
	return fmt.Errorf("invalid heading level %q", string(b))
}

// OutlineEntry is one heading of the final outline.
type OutlineEntry struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// OutlineDocument is the result of outline extraction for one document.
type OutlineDocument struct {
	Title   string         `json:"title"`
	Outline []OutlineEntry `json:"outline"`
}

// FallbackTitle is used when no better title can be found
const FallbackTitle = "Document"

// EmptyOutline returns the degraded result for a document without usable text
func EmptyOutline() OutlineDocument {
	return OutlineDocument{Title: FallbackTitle, Outline: []OutlineEntry{}}
}

// EntriesAtLevel returns the entries at the given level in outline order
func (d OutlineDocument) EntriesAtLevel(level Level) []OutlineEntry {
	var result []OutlineEntry
	for _, e := range d.Outline {
		if e.Level == level {
			result = append(result, e)
		}
	}
	return result
}

// Markdown renders the outline as an indented markdown list
func (d OutlineDocument) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(d.Title)
	sb.WriteString("\n\n")
	for _, e := range d.Outline {
		indent := int(e.Level) - 1
		if indent < 0 {
			indent = 0
		}
		sb.WriteString(strings.Repeat("  ", indent))
		fmt.Fprintf(&sb, "- %s (p. %d)\n", e.Text, e.Page)
	}
	return sb.String()
}

// Bookmark is an entry of a document's explicit navigation structure,
// such as a PDF outline. Level starts at 1 for top-level entries.
type Bookmark struct {
	Title string
	Level int
	Page  int
}
