package outline

import (
	"fmt"
	"strings"
)

// Warning is a non-fatal problem met while extracting an outline, such
// as a page whose content stream could not be parsed.
type Warning struct {
	// Page is the 0-based page index, or -1 for document-level warnings
	Page int

	// Message describes the problem
	Message string
}

func (w Warning) String() string {
	if w.Page < 0 {
		return w.Message
	}
	return fmt.Sprintf("page %d: %s", w.Page, w.Message)
}

// FormatWarnings joins warnings into a single line for logging
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
