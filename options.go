package outline

import "github.com/tsawler/outline/layout"

// ExtractOptions holds configuration for outline extraction.
type ExtractOptions struct {
	// Page selection (0-indexed); nil means all pages
	pages []int

	// Heuristic configuration
	config layout.Config
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:  nil,
		config: layout.DefaultConfig(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		config: o.config,
	}

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}
