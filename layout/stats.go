package layout

import (
	"math"

	"github.com/tsawler/outline/model"
)

// DefaultFontSize is assumed for the base and average size of a document
// without spans
const DefaultFontSize = 12.0

// DocumentStatistics summarizes the font sizes of a document. It is
// computed once and passed by value to the stages that need it.
type DocumentStatistics struct {
	// BaseFontSize is the most frequent (body text) size
	BaseFontSize float64

	// AverageFontSize is the mean size over all spans
	AverageFontSize float64

	// SizeHistogram maps a size, rounded to 0.1pt, to its span count
	SizeHistogram map[float64]int

	// SpanCount is the number of spans measured
	SpanCount int
}

// LargeThreshold returns the size above which text counts as large:
// the greater of base+2 and average+1.
func (s DocumentStatistics) LargeThreshold() float64 {
	return math.Max(s.BaseFontSize+2, s.AverageFontSize+1)
}

// RoundSize rounds a font size to 0.1pt so extraction jitter such as
// 11.9999 and 12.0001 lands in one bucket.
func RoundSize(size float64) float64 {
	return math.Round(size*10) / 10
}

// ComputeStatistics measures the font sizes of every span on pages. When
// two sizes are equally frequent the smaller one is taken as the base.
func ComputeStatistics(pages []model.Page) DocumentStatistics {
	stats := DocumentStatistics{
		BaseFontSize:    DefaultFontSize,
		AverageFontSize: DefaultFontSize,
		SizeHistogram:   make(map[float64]int),
	}

	var sum float64
	for _, page := range pages {
		for _, span := range page.Spans {
			if span.FontSize <= 0 {
				continue
			}
			stats.SizeHistogram[RoundSize(span.FontSize)]++
			sum += span.FontSize
			stats.SpanCount++
		}
	}
	if stats.SpanCount == 0 {
		return stats
	}

	stats.AverageFontSize = sum / float64(stats.SpanCount)

	best, bestCount := 0.0, 0
	for size, count := range stats.SizeHistogram {
		if count > bestCount || (count == bestCount && size < best) {
			best, bestCount = size, count
		}
	}
	stats.BaseFontSize = best

	return stats
}
