package wall

import (
	"fmt"

	earth "Rampart/internal/calc/earth"
)

type Material string

const (
	MaterialConcrete Material = "concrete"
	MaterialCMU      Material = "cmu"
)

type Objective string

const (
	MinimizeExcavation Objective = "minimize_excavation"
	MinimizeFooting    Objective = "minimize_footing"
)

// Code selects a jurisdiction preset for the stability minimums.
type Code string

const (
	CodeIBC Code = "IBC"
	CodeEC7 Code = "EC7"
)

// Limits are the configured factor-of-safety minimums. They are
// jurisdiction configuration, not engine constants.
type Limits struct {
	MinOverturning float64 `json:"min_overturning"`
	MinSliding     float64 `json:"min_sliding"`
	MinBearing     float64 `json:"min_bearing"`
}

func DefaultLimits() Limits {
	return LimitsFor(CodeIBC)
}

func LimitsFor(code Code) Limits {
	switch code {
	case CodeEC7:
		return Limits{MinOverturning: 1.4, MinSliding: 1.1, MinBearing: 1.4}
	default:
		return Limits{MinOverturning: 1.5, MinSliding: 1.5, MinBearing: 1.0}
	}
}

// DesignInput is one validated design request. Lengths are inches.
type DesignInput struct {
	HeightIn        float64         `json:"height_in"`
	Material        Material        `json:"material"`
	Surcharge       earth.Slope     `json:"surcharge"`
	Objective       Objective       `json:"objective"`
	Soil            earth.Stiffness `json:"soil"`
	ToppingDepthIn  float64         `json:"topping_depth_in"`
	HasAdjacentSlab bool            `json:"has_adjacent_slab"`
	ToeLengthIn     float64         `json:"toe_length_in"`
	Code            Code            `json:"code,omitempty"`
}

// Validate normalizes the optional enums and enforces the input contract.
// The API layer calls this before Design; Design calls it again because a
// malformed input reaching the engine is an internal defect, not a user
// error.
func (in *DesignInput) Validate() error {
	if in.Surcharge == "" {
		in.Surcharge = earth.SlopeFlat
	}
	if in.Objective == "" {
		in.Objective = MinimizeExcavation
	}
	if in.Code == "" {
		in.Code = CodeIBC
	}
	if in.HeightIn < 24 || in.HeightIn > 144 {
		return fmt.Errorf("height %.1f in out of range 24-144", in.HeightIn)
	}
	if in.ToppingDepthIn < 0 || in.ToppingDepthIn > 24 {
		return fmt.Errorf("topping depth %.1f in out of range 0-24", in.ToppingDepthIn)
	}
	if in.ToeLengthIn < 0 || in.ToeLengthIn > 120 {
		return fmt.Errorf("toe length %.1f in out of range 0-120", in.ToeLengthIn)
	}
	if in.Material != MaterialConcrete && in.Material != MaterialCMU {
		return fmt.Errorf("unknown material %q", in.Material)
	}
	if in.Objective != MinimizeExcavation && in.Objective != MinimizeFooting {
		return fmt.Errorf("unknown objective %q", in.Objective)
	}
	if in.Code != CodeIBC && in.Code != CodeEC7 {
		return fmt.Errorf("unknown design code %q", in.Code)
	}
	if _, err := earth.SoilFor(in.Soil); err != nil {
		return err
	}
	if _, err := earth.SlopeAngleDeg(in.Surcharge); err != nil {
		return err
	}
	return nil
}

// WallSpecification is the final artifact of a converged run. Sections are
// ordered bottom to top.
type WallSpecification struct {
	TotalHeightIn float64   `json:"total_height_in"`
	Material      Material  `json:"material"`
	Sections      []Section `json:"sections"`
	Footing       Footing   `json:"footing"`
	Stability     Result    `json:"stability"`
}

// Outcome is the structured result of one design run. Infeasibility is a
// normal domain outcome, carried here rather than as an error.
type Outcome struct {
	Converged     bool               `json:"converged"`
	Specification *WallSpecification `json:"wall_specification,omitempty"`
	FailingFactor string             `json:"failing_factor,omitempty"`
	LastStability *Result            `json:"last_stability,omitempty"`
	Steps         int                `json:"steps"`
	Case          earth.Case         `json:"load_case"`
	Notes         string             `json:"notes"`
}

type candidate struct {
	sections []Section
	footing  Footing
	result   Result
}

// Design runs one complete optimization for the given input. Errors are
// contract violations only; a design that cannot be stabilized within
// geometric bounds comes back as a non-converged Outcome.
func Design(in DesignInput, lim Limits) (Outcome, error) {
	if err := in.Validate(); err != nil {
		return Outcome{}, err
	}
	if lim == (Limits{}) {
		lim = LimitsFor(in.Code)
	}

	c, err := earth.Derive(in.Soil, in.Surcharge, in.HeightIn, in.ToppingDepthIn, in.HasAdjacentSlab)
	if err != nil {
		return Outcome{}, err
	}

	cand, steps, ok, err := search(in, c, lim)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		return Outcome{
			Converged:     false,
			FailingFactor: cand.result.FailingFactor(),
			LastStability: &cand.result,
			Steps:         steps,
			Case:          c,
			Notes:         "No stable candidate within geometric bounds.",
		}, nil
	}

	spec, err := buildSpecification(in, cand)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Converged:     true,
		Specification: &spec,
		Steps:         steps,
		Case:          c,
		Notes:         "Converged within the sweep bound.",
	}, nil
}

// buildSpecification is pure assembly. Handing it a failed candidate is a
// programming error in the optimizer, not a user-facing condition.
func buildSpecification(in DesignInput, cand candidate) (WallSpecification, error) {
	if !cand.result.Passed {
		return WallSpecification{}, fmt.Errorf("unconverged candidate passed to specification builder")
	}
	return WallSpecification{
		TotalHeightIn: in.HeightIn,
		Material:      in.Material,
		Sections:      cand.sections,
		Footing:       cand.footing,
		Stability:     cand.result,
	}, nil
}
