package emotions

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
)

type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// tiers is ordered by descending lower bound; each bound is inclusive.
var tiers = []struct {
	min  float64
	tier Tier
}{
	{0.5, TierHigh},
	{0.1, TierMedium},
	{math.Inf(-1), TierLow},
}

func Classify(probability float64) Tier {
	for _, t := range tiers {
		if probability >= t.min {
			return t.tier
		}
	}
	return TierLow
}

// SortDescending orders scores by probability, highest first. Ties keep
// their input order.
func SortDescending(scores []Score) []Score {
	sorted := slices.Clone(scores)
	slices.SortStableFunc(sorted, func(a, b Score) int {
		return cmp.Compare(b.Probability, a.Probability)
	})
	return sorted
}

// Percent converts a probability to a 0-100 value rounded to two decimals.
// Rounding is done on the exact binary value, ties to even.
func Percent(probability float64) float64 {
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(probability*100, 'f', 2, 64), 64)
	return rounded
}

// FormatPercent renders Percent(probability) with a trailing "%". Whole
// numbers keep one decimal ("87.0%").
func FormatPercent(probability float64) string {
	s := strconv.FormatFloat(Percent(probability), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "%"
}
