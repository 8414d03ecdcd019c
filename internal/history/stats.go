package history

import (
	"errors"
	"math"

	"RateVault/internal/model"
)

// SeriesStats summarizes a rate series for chart annotation.
type SeriesStats struct {
	High      float64
	Low       float64
	Change    float64 // last rate minus first rate
	ChangePct float64 // Change relative to the first rate, in percent
}

// Summarize scans a series and returns its high, low, and first-to-last
// change.
func Summarize(points []model.RatePoint) (SeriesStats, error) {
	if len(points) == 0 {
		return SeriesStats{}, errors.New("no points provided")
	}
	high := math.Inf(-1)
	low := math.Inf(1)
	for _, p := range points {
		if p.Rate > high {
			high = p.Rate
		}
		if p.Rate < low {
			low = p.Rate
		}
	}
	first := points[0].Rate
	last := points[len(points)-1].Rate
	stats := SeriesStats{High: high, Low: low, Change: last - first}
	if first != 0 {
		stats.ChangePct = (last - first) / first * 100
	}
	return stats, nil
}

// RangePosition returns where a rate sits within the series range (0.0~1.0).
func RangePosition(rate, high, low float64) float64 {
	if high == low {
		return 0.5
	}
	pos := (rate - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos
}
