package layout

import (
	"fmt"
	"sort"

	"github.com/tsawler/outline/model"
)

// StyleKey identifies a visual heading style
type StyleKey struct {
	Size float64 // Font size rounded to 0.1pt
	Bold bool
}

// StyleOf returns the style key of a span
func StyleOf(span model.TextSpan) StyleKey {
	return StyleKey{Size: RoundSize(span.FontSize), Bold: span.Bold}
}

func (k StyleKey) String() string {
	if k.Bold {
		return fmt.Sprintf("%.1fpt bold", k.Size)
	}
	return fmt.Sprintf("%.1fpt", k.Size)
}

// outranks reports whether k is more prominent than other: larger first,
// then bold before regular.
func (k StyleKey) outranks(other StyleKey) bool {
	if k.Size != other.Size {
		return k.Size > other.Size
	}
	return k.Bold && !other.Bold
}

// StyleGroup is the set of candidates sharing one style
type StyleGroup struct {
	Key        StyleKey
	Candidates []HeadingCandidate
}

// LevelConfig holds configuration for level assignment
type LevelConfig struct {
	// StyleLevels is the number of distinct levels style ranking produces;
	// styles ranked below it share the last level. At most 6.
	// Default: 3
	StyleLevels int `mapstructure:"style_levels" yaml:"style_levels"`

	// MaxPerStyle is the number of candidates kept per style group,
	// earliest first; 0 keeps all
	// Default: 15
	MaxPerStyle int `mapstructure:"max_per_style" yaml:"max_per_style"`
}

// DefaultLevelConfig returns sensible default configuration
func DefaultLevelConfig() LevelConfig {
	return LevelConfig{
		StyleLevels: 3,
		MaxPerStyle: 15,
	}
}

// GroupByStyle partitions candidates by style key and ranks the groups
// from most to least prominent. Candidates keep their input order within a
// group.
func GroupByStyle(candidates []HeadingCandidate) []StyleGroup {
	index := make(map[StyleKey]int)
	var groups []StyleGroup

	for _, c := range candidates {
		i, ok := index[c.Style]
		if !ok {
			i = len(groups)
			index[c.Style] = i
			groups = append(groups, StyleGroup{Key: c.Style})
		}
		groups[i].Candidates = append(groups[i].Candidates, c)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key.outranks(groups[j].Key)
	})
	return groups
}

// AssignLevels gives every candidate its final level and applies the per
// style cap. The style ranked i-th (from 0) maps to level min(i+1,
// StyleLevels); numbered candidates keep the level their numbering implies.
// The result is in reading order.
func AssignLevels(candidates []HeadingCandidate, config LevelConfig) []HeadingCandidate {
	styleLevels := config.StyleLevels
	if styleLevels < 1 {
		styleLevels = 1
	}
	if styleLevels > int(model.MaxLevel) {
		styleLevels = int(model.MaxLevel)
	}

	var result []HeadingCandidate
	for rank, group := range GroupByStyle(candidates) {
		level := model.Level(rank + 1)
		if int(level) > styleLevels {
			level = model.Level(styleLevels)
		}

		kept := group.Candidates
		if config.MaxPerStyle > 0 && len(kept) > config.MaxPerStyle {
			kept = kept[:config.MaxPerStyle]
		}
		for _, c := range kept {
			c.Level = level
			if c.Numbered {
				c.Level = model.ClampLevel(c.SuggestedLevel)
			}
			result = append(result, c)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Seq < result[j].Seq
	})
	return result
}
