package earth

import (
	"fmt"
	"math"
)

type Stiffness string

const (
	StiffnessStiff Stiffness = "stiff"
	StiffnessSoft  Stiffness = "soft"
)

type Slope string

const (
	SlopeFlat Slope = "flat"
	Slope1to1 Slope = "1:1"
	Slope1to2 Slope = "1:2"
	Slope1to4 Slope = "1:4"
)

// Soil bundles the parameters a stiffness class implies. Values are
// conservative presets for granular backfill; jurisdictions that require
// different numbers override them through the wall package limits.
type Soil struct {
	PhiDeg              float64 `json:"phi_deg"`
	GammaPcf            float64 `json:"gamma_pcf"`
	AllowableBearingPsf float64 `json:"allowable_bearing_psf"`
	FrictionCoeff       float64 `json:"friction_coeff"`
}

// Case is the load case derived once per design run and reused by every
// candidate evaluated for that run.
type Case struct {
	Ka            float64 `json:"ka"`
	Kp            float64 `json:"kp"`
	SurchargePsf  float64 `json:"surcharge_psf"`
	OverburdenPsf float64 `json:"overburden_psf"`
	GammaPcf      float64 `json:"gamma_pcf"`
	Soil          Soil    `json:"soil"`
}

// SlabSurchargePsf is the uniform allowance for an adjacent slab on grade.
const SlabSurchargePsf = 100.0

func SoilFor(s Stiffness) (Soil, error) {
	switch s {
	case StiffnessStiff:
		return Soil{PhiDeg: 34, GammaPcf: 120, AllowableBearingPsf: 2500, FrictionCoeff: 0.40}, nil
	case StiffnessSoft:
		return Soil{PhiDeg: 28, GammaPcf: 110, AllowableBearingPsf: 1500, FrictionCoeff: 0.30}, nil
	}
	return Soil{}, fmt.Errorf("unknown soil stiffness %q", s)
}

func SlopeAngleDeg(s Slope) (float64, error) {
	switch s {
	case SlopeFlat:
		return 0, nil
	case Slope1to1:
		return 45, nil
	case Slope1to2:
		return 26.565, nil
	case Slope1to4:
		return 14.036, nil
	}
	return 0, fmt.Errorf("unknown surcharge slope %q", s)
}

// Derive computes the load case for one wall. heightIn is the retained
// height above the footing, toppingDepthIn the depth of soil topping behind
// the wall. Pure: identical arguments yield a bit-identical Case.
func Derive(stiff Stiffness, slope Slope, heightIn, toppingDepthIn float64, adjacentSlab bool) (Case, error) {
	soil, err := SoilFor(stiff)
	if err != nil {
		return Case{}, err
	}
	betaDeg, err := SlopeAngleDeg(slope)
	if err != nil {
		return Case{}, err
	}

	phi := soil.PhiDeg * math.Pi / 180.0
	beta := betaDeg * math.Pi / 180.0

	// Rankine with sloped backfill is undefined for beta >= phi; a 1:1
	// slope exceeds both friction angles, so the angle entering the Ka
	// relation is capped at 0.9*phi. The true slope still drives the
	// equivalent surcharge below.
	bk := beta
	if bk > 0.9*phi {
		bk = 0.9 * phi
	}
	root := math.Sqrt(math.Cos(bk)*math.Cos(bk) - math.Cos(phi)*math.Cos(phi))
	ka := math.Cos(bk) * (math.Cos(bk) - root) / (math.Cos(bk) + root)
	kp := math.Pow(math.Tan(math.Pi/4+phi/2), 2)

	// Slope wedge as an equivalent uniform surcharge over the retained
	// height: half the wedge rise at the wall line.
	hFt := heightIn / 12.0
	q := soil.GammaPcf * math.Tan(beta) * hFt / 2.0
	if adjacentSlab {
		q += SlabSurchargePsf
	}

	return Case{
		Ka:            ka,
		Kp:            kp,
		SurchargePsf:  q,
		OverburdenPsf: soil.GammaPcf * toppingDepthIn / 12.0,
		GammaPcf:      soil.GammaPcf,
		Soil:          soil,
	}, nil
}
