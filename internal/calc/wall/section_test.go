package wall

import "testing"

func TestBuildSections_HeightsSumExactly(t *testing.T) {
	t.Parallel()

	for _, h := range []float64{24, 48, 61.7, 96, 97.3, 120, 144} {
		secs, err := buildSections(h, MaterialConcrete, 3, 10)
		if err != nil {
			t.Fatalf("height %.2f: %v", h, err)
		}
		sum := 0.0
		for _, s := range secs {
			sum += s.HeightIn
		}
		if sum != h {
			t.Fatalf("height %.2f: sections sum to %.17g", h, sum)
		}
	}
}

func TestBuildSections_CountScalesWithHeight(t *testing.T) {
	t.Parallel()

	cases := []struct {
		height float64
		want   int
	}{
		{24, 1}, {48, 1}, {49, 2}, {96, 2}, {97, 3}, {144, 3},
	}
	for _, c := range cases {
		secs, err := buildSections(c.height, MaterialConcrete, 3, 12)
		if err != nil {
			t.Fatalf("height %.0f: %v", c.height, err)
		}
		if len(secs) != c.want {
			t.Fatalf("height %.0f: got %d sections, want %d", c.height, len(secs), c.want)
		}
	}
}

func TestBuildSections_WidthsNonIncreasingUpward(t *testing.T) {
	t.Parallel()

	secs, err := buildSections(144, MaterialConcrete, 3, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(secs); i++ {
		if secs[i].WidthIn > secs[i-1].WidthIn {
			t.Fatalf("section %d wider than the one below: %+v", i, secs)
		}
	}
	if secs[0].WidthIn != 14 {
		t.Fatalf("base width: got %.1f want 14", secs[0].WidthIn)
	}
}

func TestBuildSections_CMUWidthsAreBlockSizes(t *testing.T) {
	t.Parallel()

	secs, err := buildSections(144, MaterialCMU, 3, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range secs {
		found := false
		for _, b := range cmuBlockWidthsIn {
			if s.WidthIn == b {
				found = true
			}
		}
		if !found {
			t.Fatalf("width %.1f is not a nominal block size", s.WidthIn)
		}
	}
}

func TestBuildSections_MaxSectionsCap(t *testing.T) {
	t.Parallel()

	secs, err := buildSections(144, MaterialConcrete, 1, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(secs) != 1 {
		t.Fatalf("cap ignored: got %d sections", len(secs))
	}
	if secs[0].HeightIn != 144 {
		t.Fatalf("single section must carry the full height, got %.1f", secs[0].HeightIn)
	}
}

func TestValidateSections_RejectsBadGeometry(t *testing.T) {
	t.Parallel()

	if err := validateSections([]Section{{HeightIn: 40, WidthIn: 8}, {HeightIn: 10, WidthIn: 12}}, 50); err == nil {
		t.Fatalf("expected error for widening upward")
	}
	if err := validateSections([]Section{{HeightIn: 40, WidthIn: 8}}, 48); err == nil {
		t.Fatalf("expected error for height sum mismatch")
	}
	if err := validateSections(nil, 48); err == nil {
		t.Fatalf("expected error for empty list")
	}
}
