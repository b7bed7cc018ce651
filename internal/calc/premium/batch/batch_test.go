package batch

import (
	"testing"

	earth "Rampart/internal/calc/earth"
	wall "Rampart/internal/calc/wall"
)

func TestCalculateWall_PreservesOrderAndIndependence(t *testing.T) {
	t.Parallel()

	in := WallBatchInput{Items: []wall.DesignInput{
		{HeightIn: 48, Material: wall.MaterialConcrete, Soil: earth.StiffnessStiff, ToeLengthIn: 12},
		{HeightIn: 96, Material: wall.MaterialCMU, Soil: earth.StiffnessStiff},
		{HeightIn: 144, Material: wall.MaterialConcrete, Surcharge: earth.Slope1to1, Soil: earth.StiffnessSoft},
	}}
	res, err := CalculateWall(in, wall.Limits{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(res.Results))
	}

	// Each slot must match an independent single run of the same input.
	for i, item := range in.Items {
		single, err := wall.Design(item, wall.Limits{})
		if err != nil {
			t.Fatalf("item %d: %v", i, err)
		}
		if res.Results[i].Converged != single.Converged {
			t.Fatalf("item %d: batch %v vs single %v", i, res.Results[i].Converged, single.Converged)
		}
	}
}

func TestCalculateWall_EmptyAndContractErrors(t *testing.T) {
	t.Parallel()

	if _, err := CalculateWall(WallBatchInput{}, wall.Limits{}); err == nil {
		t.Fatalf("expected error for empty batch")
	}

	in := WallBatchInput{Items: []wall.DesignInput{
		{HeightIn: 48, Material: wall.MaterialConcrete, Soil: earth.StiffnessStiff},
		{HeightIn: 500, Material: wall.MaterialConcrete, Soil: earth.StiffnessStiff},
	}}
	if _, err := CalculateWall(in, wall.Limits{}); err == nil {
		t.Fatalf("expected error for out-of-range item")
	}
}
