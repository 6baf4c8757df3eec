package layout

import (
	"regexp"

	"github.com/tsawler/outline/model"
	"github.com/tsawler/outline/text"
)

var bookmarkNumbering = regexp.MustCompile(`^\d+(\.\d+)*\.?\s*`)

// OutlineFromBookmarks converts a document's explicit navigation structure
// into outline entries. Numbering prefixes are stripped, levels clamped to
// H1..H6 and entries without a resolvable page skipped; the result is
// deduplicated, ordered and capped like inferred headings.
func OutlineFromBookmarks(bookmarks []model.Bookmark, normalizer *text.Normalizer, maxPerLevel int) []model.OutlineEntry {
	if normalizer == nil {
		normalizer = text.NewNormalizer()
	}

	placed := make([]placedEntry, 0, len(bookmarks))
	for _, b := range bookmarks {
		if b.Page < 0 {
			continue
		}
		title, _ := normalizer.Normalize(b.Title)
		if stripped := bookmarkNumbering.ReplaceAllString(title, ""); stripped != "" {
			title = stripped
		}
		placed = append(placed, placedEntry{
			entry: model.OutlineEntry{
				Level: model.ClampLevel(model.Level(b.Level)),
				Text:  title,
				Page:  b.Page,
			},
		})
	}

	return finishEntries(placed, maxPerLevel)
}
