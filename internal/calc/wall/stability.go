package wall

import (
	"math"

	earth "Rampart/internal/calc/earth"
)

// Result carries the three factors of safety for one candidate. Passed is
// true only when every factor meets its configured minimum; there is no
// partial credit.
type Result struct {
	OverturningFactor float64 `json:"overturning_factor"`
	SlidingFactor     float64 `json:"sliding_factor"`
	BearingFactor     float64 `json:"bearing_factor"`
	Passed            bool    `json:"passed"`

	minOverturning float64
	minSliding     float64
	minBearing     float64
}

// FailingFactor names the first factor below its minimum, for diagnostic
// display on infeasible designs.
func (r Result) FailingFactor() string {
	switch {
	case r.Passed:
		return ""
	case r.OverturningFactor < r.minOverturning:
		return "overturning"
	case r.SlidingFactor < r.minSliding:
		return "sliding"
	default:
		return "bearing"
	}
}

// Evaluate checks one (sections, footing) candidate against the load case.
func Evaluate(secs []Section, f Footing, c earth.Case, m Material, lim Limits) Result {
	st := computeStatics(secs, f, c, m)

	r := Result{
		minOverturning: lim.MinOverturning,
		minSliding:     lim.MinSliding,
		minBearing:     lim.MinBearing,
	}

	driving := st.PaLb + st.PsLb
	r.OverturningFactor = st.ResistLbFt / st.DriveLbFt
	r.SlidingFactor = (c.Soil.FrictionCoeff*st.VLb + st.PassiveLb) / driving
	if math.IsInf(st.QmaxPsf, 1) {
		r.BearingFactor = 0
	} else {
		r.BearingFactor = c.Soil.AllowableBearingPsf / st.QmaxPsf
	}

	r.Passed = r.OverturningFactor >= lim.MinOverturning &&
		r.SlidingFactor >= lim.MinSliding &&
		r.BearingFactor >= lim.MinBearing
	return r
}
