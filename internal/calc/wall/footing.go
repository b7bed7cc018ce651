package wall

import (
	"math"

	earth "Rampart/internal/calc/earth"
)

// Footing belongs to exactly one wall specification. Lengths are inches.
type Footing struct {
	ToeIn       float64 `json:"toe_in"`
	HeelIn      float64 `json:"heel_in"`
	ThicknessIn float64 `json:"thickness_in"`
}

const (
	minFootingThicknessIn = 12.0
	maxFootingThicknessIn = 36.0
	minHeelIn             = 12.0
	minToePracticalIn     = 6.0
	maxHeelIn             = 120.0
	footingConcretePcf    = 150.0
)

// ruleThickness is the minimum-cover rule: footing thickness scales with
// wall height and never drops below 12 in.
func ruleThickness(totalHeightIn float64) float64 {
	t := math.Ceil(totalHeightIn / 8.0)
	if t < minFootingThicknessIn {
		t = minFootingThicknessIn
	}
	return t
}

// statics holds the force/moment bookkeeping for one candidate, per foot of
// wall length. Moments are taken about the front bottom corner of the toe.
// Lateral pressure acts over the stem height; the buried footing face
// contributes passive resistance instead.
type statics struct {
	VLb        float64 // total vertical load, lb/ft
	ResistLbFt float64 // resisting moment, lb-ft/ft
	DriveLbFt  float64 // overturning moment, lb-ft/ft
	PaLb       float64 // active earth resultant, lb/ft
	PsLb       float64 // surcharge resultant, lb/ft
	PassiveLb  float64 // passive resistance at the toe face, lb/ft
	WidthFt    float64 // footing width B
	EccFt      float64 // resultant eccentricity from center, + toward toe
	QmaxPsf    float64 // peak bearing pressure
}

func computeStatics(secs []Section, f Footing, c earth.Case, m Material) statics {
	toe := f.ToeIn / 12.0
	heel := f.HeelIn / 12.0
	t := f.ThicknessIn / 12.0
	baseW := secs[0].WidthIn / 12.0
	B := toe + baseW + heel

	var st statics
	st.WidthFt = B

	// Stem sections, front faces flush above the toe.
	totalH := 0.0
	for _, s := range secs {
		w := s.WidthIn / 12.0
		h := s.HeightIn / 12.0
		totalH += h
		wt := w * h * unitWeightPcf(m)
		st.VLb += wt
		st.ResistLbFt += wt * (toe + w/2)
	}

	// Footing slab, always cast concrete.
	wf := B * t * footingConcretePcf
	st.VLb += wf
	st.ResistLbFt += wf * B / 2

	// Retained soil and permanent topping over the heel. Live surcharge is
	// excluded from the resisting side.
	soilArm := toe + baseW + heel/2
	ws := heel * totalH * c.GammaPcf
	wo := heel * c.OverburdenPsf
	st.VLb += ws + wo
	st.ResistLbFt += (ws + wo) * soilArm

	// Driving side.
	st.PaLb = 0.5 * c.Ka * c.GammaPcf * totalH * totalH
	st.PsLb = c.Ka * c.SurchargePsf * totalH
	st.DriveLbFt = st.PaLb*totalH/3 + st.PsLb*totalH/2
	st.PassiveLb = 0.5 * c.Kp * c.GammaPcf * t * t

	// Bearing pressure under the eccentric resultant.
	xbar := (st.ResistLbFt - st.DriveLbFt) / st.VLb
	st.EccFt = B/2 - xbar
	e := math.Abs(st.EccFt)
	switch {
	case xbar <= 0:
		st.QmaxPsf = math.Inf(1)
	case e <= B/6:
		st.QmaxPsf = st.VLb / B * (1 + 6*e/B)
	case B/2-e > 0:
		st.QmaxPsf = 2 * st.VLb / (3 * (B/2 - e))
	default:
		st.QmaxPsf = math.Inf(1)
	}
	return st
}

// sizeFooting computes the one footing for a candidate stem: toe from the
// user minimum (never below the 6 in practical minimum), thickness from the
// cover rule unless the caller pins it, and the smallest heel that keeps
// the resultant inside the middle third and the toe pressure under the
// bearing target. Deterministic, exactly one footing per call.
func sizeFooting(secs []Section, c earth.Case, m Material, minToeIn, thicknessIn float64, lim Limits) Footing {
	t := thicknessIn
	if t <= 0 {
		totalH := 0.0
		for _, s := range secs {
			totalH += s.HeightIn
		}
		t = ruleThickness(totalH)
	}

	toe := minToeIn
	if toe < minToePracticalIn {
		toe = minToePracticalIn
	}

	ceiling := c.Soil.AllowableBearingPsf
	if lim.MinBearing > 0 {
		ceiling = c.Soil.AllowableBearingPsf / lim.MinBearing
	}

	f := Footing{ToeIn: toe, ThicknessIn: t, HeelIn: minHeelIn}
	for f.HeelIn < maxHeelIn {
		st := computeStatics(secs, f, c, m)
		if math.Abs(st.EccFt) <= st.WidthFt/6 && st.QmaxPsf <= ceiling {
			break
		}
		f.HeelIn++
	}
	return f
}
