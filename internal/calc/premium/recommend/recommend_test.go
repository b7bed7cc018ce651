package recommend

import (
	"testing"

	earth "Rampart/internal/calc/earth"
	wall "Rampart/internal/calc/wall"
)

func TestWall_MaterialSwitchesAtEightFeet(t *testing.T) {
	t.Parallel()

	low, err := Wall(WallRecommendInput{HeightIn: 96, Soil: earth.StiffnessStiff})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if low.Material != wall.MaterialCMU {
		t.Fatalf("96 in wall should recommend cmu, got %s", low.Material)
	}

	tall, err := Wall(WallRecommendInput{HeightIn: 120, Soil: earth.StiffnessStiff})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tall.Material != wall.MaterialConcrete {
		t.Fatalf("120 in wall should recommend concrete, got %s", tall.Material)
	}
}

func TestWall_SoftSitesPreferSmallFootprint(t *testing.T) {
	t.Parallel()

	res, err := Wall(WallRecommendInput{HeightIn: 72, Soil: earth.StiffnessSoft})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Objective != wall.MinimizeFooting {
		t.Fatalf("soft site objective: got %s", res.Objective)
	}
	if res.BaseWidthIn < 8 {
		t.Fatalf("base width below buildable minimum: %.1f", res.BaseWidthIn)
	}
}

func TestWall_RejectsOutOfRangeHeight(t *testing.T) {
	t.Parallel()

	if _, err := Wall(WallRecommendInput{HeightIn: 200}); err == nil {
		t.Fatalf("expected error for out-of-range height")
	}
}
