package wall

import (
	"fmt"
	"math"
)

// Section is one structural segment of the stem. A wall cross-section is an
// ordered slice of sections, bottom first; the order carries meaning (the
// lowest section bears the most load) and is never reordered.
type Section struct {
	HeightIn float64 `json:"height_in"`
	WidthIn  float64 `json:"width_in"`
}

const minSectionWidthIn = 8.0

var cmuBlockWidthsIn = []float64{8, 10, 12, 16}

func unitWeightPcf(m Material) float64 {
	if m == MaterialCMU {
		return 125 // grouted
	}
	return 150
}

// quantizeWidth rounds a stem width up to a buildable dimension: whole
// inches for cast concrete, nominal block widths for CMU.
func quantizeWidth(m Material, widthIn float64) float64 {
	if widthIn < minSectionWidthIn {
		widthIn = minSectionWidthIn
	}
	if m != MaterialCMU {
		return math.Ceil(widthIn)
	}
	for _, b := range cmuBlockWidthsIn {
		if widthIn <= b {
			return b
		}
	}
	return cmuBlockWidthsIn[len(cmuBlockWidthsIn)-1]
}

// buildSections partitions totalHeightIn into 1-3 stacked sections with
// widths non-increasing bottom to top. baseWidthIn is the partition
// parameter the optimizer controls; this function does not search.
//
// Upper sections get whole-inch heights and the bottom section absorbs the
// remainder, so the heights sum to totalHeightIn exactly.
func buildSections(totalHeightIn float64, m Material, maxSections int, baseWidthIn float64) ([]Section, error) {
	if totalHeightIn <= 0 {
		return nil, fmt.Errorf("non-positive wall height %.2f", totalHeightIn)
	}
	if maxSections < 1 {
		maxSections = 1
	}

	n := 1
	if totalHeightIn > 48 {
		n = 2
	}
	if totalHeightIn > 96 {
		n = 3
	}
	if n > maxSections {
		n = maxSections
	}

	upper := math.Floor(totalHeightIn / float64(n))
	bottomH := totalHeightIn - float64(n-1)*upper

	base := quantizeWidth(m, baseWidthIn)
	secs := make([]Section, 0, n)
	for i := 0; i < n; i++ {
		h := upper
		if i == 0 {
			h = bottomH
		}
		// Taper 2 in per level above the base.
		w := quantizeWidth(m, base-2*float64(i))
		if len(secs) > 0 && w > secs[len(secs)-1].WidthIn {
			w = secs[len(secs)-1].WidthIn
		}
		secs = append(secs, Section{HeightIn: h, WidthIn: w})
	}

	if err := validateSections(secs, totalHeightIn); err != nil {
		return nil, err
	}
	return secs, nil
}

// validateSections enforces the construction invariants: positive
// dimensions, widths non-increasing upward, and section heights summing to
// the wall height exactly (no tolerance).
func validateSections(secs []Section, totalHeightIn float64) error {
	if len(secs) == 0 {
		return fmt.Errorf("empty section list")
	}
	sum := 0.0
	for i, s := range secs {
		if s.HeightIn <= 0 || s.WidthIn <= 0 {
			return fmt.Errorf("section %d has non-positive dimensions", i)
		}
		if i > 0 && s.WidthIn > secs[i-1].WidthIn {
			return fmt.Errorf("section %d wider than the one below it", i)
		}
		sum += s.HeightIn
	}
	if sum != totalHeightIn {
		return fmt.Errorf("section heights sum to %.17g, want %.17g", sum, totalHeightIn)
	}
	return nil
}
