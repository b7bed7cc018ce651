package wall

import (
	earth "Rampart/internal/calc/earth"
)

const (
	maxSweepSteps  = 50
	maxBaseWidthIn = 24.0
)

// defaultBaseWidth is the seed stem width for a given height: the smallest
// geometrically plausible base, thickened for tall walls.
func defaultBaseWidth(m Material, totalHeightIn float64) float64 {
	return quantizeWidth(m, totalHeightIn/12.0)
}

// search runs the bounded monotonic sweep for the requested objective. One
// scalar varies per objective; everything else is held fixed so the result
// is reproducible and explainable. Returns the winning candidate, the step
// count, and whether the run converged; on a non-converged run the
// candidate carries the last evaluated result for diagnostics.
func search(in DesignInput, c earth.Case, lim Limits) (candidate, int, bool, error) {
	switch in.Objective {
	case MinimizeFooting:
		return searchFootprint(in, c, lim)
	default:
		return searchExcavation(in, c, lim)
	}
}

// shallowestFooting sizes the footing for a fixed stem: thickness grows
// from the practical minimum until the candidate passes every stability
// check. Every factor is non-decreasing in thickness, so the first pass is
// the shallowest pass. Returns the last footing tried, its result, the
// number of thicknesses tried, and whether a passing one was found.
func shallowestFooting(secs []Section, c earth.Case, m Material, minToeIn float64, lim Limits) (Footing, Result, int, bool) {
	var f Footing
	var r Result
	tried := 0
	for t := minFootingThicknessIn; t <= maxFootingThicknessIn; t++ {
		tried++
		f = sizeFooting(secs, c, m, minToeIn, t, lim)
		r = Evaluate(secs, f, c, m, lim)
		if r.Passed {
			return f, r, tried, true
		}
	}
	return f, r, tried, false
}

// searchExcavation holds the stem geometry at the default base width and
// accepts the shallowest passing footing for it.
func searchExcavation(in DesignInput, c earth.Case, lim Limits) (candidate, int, bool, error) {
	secs, err := buildSections(in.HeightIn, in.Material, 3, defaultBaseWidth(in.Material, in.HeightIn))
	if err != nil {
		return candidate{}, 0, false, err
	}
	f, r, steps, ok := shallowestFooting(secs, c, in.Material, in.ToeLengthIn, lim)
	return candidate{sections: secs, footing: f, result: r}, steps, ok, nil
}

// searchFootprint sweeps the stem base width across the buildable range and
// keeps the passing candidate with the smallest footprint (toe + heel).
// Ties go to the thinner footing. Each width is sized with the shallowest
// passing footing, so the default-width candidate is exactly the excavation
// sweep's winner and minimizing footprint can never come out wider.
func searchFootprint(in DesignInput, c earth.Case, lim Limits) (candidate, int, bool, error) {
	widths := sweepWidths(in.Material)

	var best, last candidate
	found := false
	steps := 0
	for _, w := range widths {
		if steps >= maxSweepSteps {
			break
		}
		steps++
		secs, err := buildSections(in.HeightIn, in.Material, 3, w)
		if err != nil {
			return candidate{}, steps, false, err
		}
		f, r, _, ok := shallowestFooting(secs, c, in.Material, in.ToeLengthIn, lim)
		last = candidate{sections: secs, footing: f, result: r}
		if !ok {
			continue
		}
		if !found || betterFootprint(f, best.footing) {
			best = last
			found = true
		}
	}
	if !found {
		return last, steps, false, nil
	}
	return best, steps, true, nil
}

func betterFootprint(a, b Footing) bool {
	fa := a.ToeIn + a.HeelIn
	fb := b.ToeIn + b.HeelIn
	if fa != fb {
		return fa < fb
	}
	return a.ThicknessIn < b.ThicknessIn
}

// sweepWidths enumerates candidate base widths: whole inches for cast
// concrete, the nominal block set for CMU.
func sweepWidths(m Material) []float64 {
	if m == MaterialCMU {
		return append([]float64(nil), cmuBlockWidthsIn...)
	}
	var ws []float64
	for w := minSectionWidthIn; w <= maxBaseWidthIn; w++ {
		ws = append(ws, w)
	}
	return ws
}
