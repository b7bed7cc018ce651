package recommend

import (
	"fmt"

	earth "Rampart/internal/calc/earth"
	wall "Rampart/internal/calc/wall"
)

type WallRecommendInput struct {
	HeightIn float64         `json:"height_in"`
	Soil     earth.Stiffness `json:"soil"`
}

type WallRecommendResult struct {
	Material    wall.Material  `json:"material"`
	Objective   wall.Objective `json:"objective"`
	BaseWidthIn float64        `json:"base_width_in"`
	Notes       string         `json:"notes"`
}

// Wall suggests a starting point before a full design run: CMU is economical
// up to 8 ft, cast concrete above; soft sites usually care about footprint.
func Wall(in WallRecommendInput) (WallRecommendResult, error) {
	if in.HeightIn < 24 || in.HeightIn > 144 {
		return WallRecommendResult{}, fmt.Errorf("invalid height")
	}
	if in.Soil == "" {
		in.Soil = earth.StiffnessStiff
	}
	if _, err := earth.SoilFor(in.Soil); err != nil {
		return WallRecommendResult{}, err
	}

	mat := wall.MaterialCMU
	if in.HeightIn > 96 {
		mat = wall.MaterialConcrete
	}
	obj := wall.MinimizeExcavation
	if in.Soil == earth.StiffnessSoft {
		obj = wall.MinimizeFooting
	}
	base := in.HeightIn / 12.0
	if base < 8 {
		base = 8
	}
	return WallRecommendResult{
		Material:    mat,
		Objective:   obj,
		BaseWidthIn: base,
		Notes:       "Starting point only; run the full design for a verdict.",
	}, nil
}
