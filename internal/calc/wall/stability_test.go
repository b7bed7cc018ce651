package wall

import (
	"testing"

	earth "Rampart/internal/calc/earth"
)

// Hand-checked case: 48 in concrete stem (8 in wide), 12/12/12 footing,
// stiff flat backfill. Factors worked out by hand: overturning ~5.82,
// sliding ~2.67, bearing ~4.9.
func TestEvaluate_HandCheckedCandidate(t *testing.T) {
	t.Parallel()

	c := mustCase(t, earth.StiffnessStiff, earth.SlopeFlat, 48)
	secs, err := buildSections(48, MaterialConcrete, 3, 8)
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	f := Footing{ToeIn: 12, HeelIn: 12, ThicknessIn: 12}

	r := Evaluate(secs, f, c, MaterialConcrete, DefaultLimits())
	if !r.Passed {
		t.Fatalf("expected pass, got %+v (failing %s)", r, r.FailingFactor())
	}
	if r.OverturningFactor < 5.7 || r.OverturningFactor > 5.95 {
		t.Fatalf("overturning factor off hand calc: %.3f", r.OverturningFactor)
	}
	if r.SlidingFactor < 2.55 || r.SlidingFactor > 2.8 {
		t.Fatalf("sliding factor off hand calc: %.3f", r.SlidingFactor)
	}
	if r.BearingFactor < 4.6 || r.BearingFactor > 5.1 {
		t.Fatalf("bearing factor off hand calc: %.3f", r.BearingFactor)
	}
}

func TestEvaluate_AllFactorsMustPass(t *testing.T) {
	t.Parallel()

	c := mustCase(t, earth.StiffnessSoft, earth.Slope1to1, 144)
	secs, err := buildSections(144, MaterialConcrete, 3, 12)
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	// Deliberately undersized footing for a 12 ft wall under a 1:1 slope.
	f := Footing{ToeIn: 6, HeelIn: 12, ThicknessIn: 12}

	r := Evaluate(secs, f, c, MaterialConcrete, DefaultLimits())
	if r.Passed {
		t.Fatalf("undersized candidate must not pass: %+v", r)
	}
	if r.FailingFactor() == "" {
		t.Fatalf("failed result must name a failing factor")
	}
}

func TestFailingFactor_NamesFirstShortfall(t *testing.T) {
	t.Parallel()

	lim := DefaultLimits()
	r := Result{
		OverturningFactor: 2.0,
		SlidingFactor:     1.2,
		BearingFactor:     0.8,
		minOverturning:    lim.MinOverturning,
		minSliding:        lim.MinSliding,
		minBearing:        lim.MinBearing,
	}
	if got := r.FailingFactor(); got != "sliding" {
		t.Fatalf("failing factor: got %q want sliding", got)
	}

	r.SlidingFactor = 2.0
	if got := r.FailingFactor(); got != "bearing" {
		t.Fatalf("failing factor: got %q want bearing", got)
	}

	r.Passed = true
	if got := r.FailingFactor(); got != "" {
		t.Fatalf("passed result must not name a factor, got %q", got)
	}
}

func TestLimitsFor_JurisdictionPresets(t *testing.T) {
	t.Parallel()

	ibc := LimitsFor(CodeIBC)
	if ibc.MinOverturning != 1.5 || ibc.MinSliding != 1.5 || ibc.MinBearing != 1.0 {
		t.Fatalf("unexpected IBC preset: %+v", ibc)
	}
	ec7 := LimitsFor(CodeEC7)
	if ec7 == ibc {
		t.Fatalf("EC7 preset should differ from IBC")
	}
	if DefaultLimits() != ibc {
		t.Fatalf("default limits should be the IBC preset")
	}
}
