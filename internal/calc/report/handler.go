package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/phpdave11/gofpdf"

	wall "Rampart/internal/calc/wall"
)

type Input struct {
	Project string `json:"project"`
	Author  string `json:"author"`
	wall.DesignInput
}

type Handler struct {
	Limits wall.Limits
}

// Preview renders the one-page submission preview: parameters, verdict, and
// a scaled cross-section sketch.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, false)
}

// Detailed renders the full engineering report with the load case and the
// per-check stability table. Premium route.
func (h *Handler) Detailed(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, true)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, detailed bool) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := input.DesignInput.Validate(); err != nil {
		http.Error(w, "Invalid design parameters: "+err.Error(), http.StatusBadRequest)
		return
	}
	out, err := wall.Design(input.DesignInput, h.Limits)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusInternalServerError)
		return
	}

	title := "Retaining Wall Design Preview"
	if detailed {
		title = "Retaining Wall Design Report"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	writeParameters(pdf, input.DesignInput)

	if !out.Converged {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "RESULT: unable to generate a compliant design for these parameters")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 6, fmt.Sprintf("Governing check: %s (last run: overturning %.2f, sliding %.2f, bearing %.2f)",
			out.FailingFactor,
			out.LastStability.OverturningFactor,
			out.LastStability.SlidingFactor,
			out.LastStability.BearingFactor))
		finish(w, pdf)
		return
	}

	spec := out.Specification
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "RESULT: PASS")
	pdf.Ln(10)

	writeGeometry(pdf, spec)
	drawSection(pdf, spec)

	if detailed {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Load Case")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 5, fmt.Sprintf("Active pressure coefficient Ka = %.3f, passive Kp = %.3f", out.Case.Ka, out.Case.Kp))
		pdf.Ln(5)
		pdf.Cell(0, 5, fmt.Sprintf("Soil unit weight = %.0f pcf, allowable bearing = %.0f psf, base friction = %.2f",
			out.Case.GammaPcf, out.Case.Soil.AllowableBearingPsf, out.Case.Soil.FrictionCoeff))
		pdf.Ln(5)
		pdf.Cell(0, 5, fmt.Sprintf("Surcharge = %.0f psf, heel overburden = %.0f psf", out.Case.SurchargePsf, out.Case.OverburdenPsf))
		pdf.Ln(10)

		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Stability Checks")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		lim := h.Limits
		if lim == (wall.Limits{}) {
			lim = wall.LimitsFor(input.Code)
		}
		writeCheck(pdf, "Overturning", spec.Stability.OverturningFactor, lim.MinOverturning)
		writeCheck(pdf, "Sliding", spec.Stability.SlidingFactor, lim.MinSliding)
		writeCheck(pdf, "Bearing", spec.Stability.BearingFactor, lim.MinBearing)
	}

	finish(w, pdf)
}

func writeParameters(pdf *gofpdf.Fpdf, in wall.DesignInput) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Design Parameters")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, fmt.Sprintf("Wall height: %.1f in   Material: %s   Design code: %s", in.HeightIn, in.Material, in.Code))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Backfill slope: %s   Soil: %s   Topping: %.1f in   Adjacent slab: %v",
		in.Surcharge, in.Soil, in.ToppingDepthIn, in.HasAdjacentSlab))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Minimum toe: %.1f in   Objective: %s", in.ToeLengthIn, in.Objective))
	pdf.Ln(10)
}

func writeGeometry(pdf *gofpdf.Fpdf, spec *wall.WallSpecification) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Geometry")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for i, s := range spec.Sections {
		pdf.Cell(0, 5, fmt.Sprintf("Section %d (bottom up): %.1f in tall x %.1f in wide", i+1, s.HeightIn, s.WidthIn))
		pdf.Ln(5)
	}
	f := spec.Footing
	pdf.Cell(0, 5, fmt.Sprintf("Footing: toe %.1f in, heel %.1f in, thickness %.1f in", f.ToeIn, f.HeelIn, f.ThicknessIn))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Factors: overturning %.2f, sliding %.2f, bearing %.2f",
		spec.Stability.OverturningFactor, spec.Stability.SlidingFactor, spec.Stability.BearingFactor))
	pdf.Ln(10)
}

// drawSection sketches the cross-section to scale: footing slab with the
// stem sections stacked above it, front faces flush over the toe.
func drawSection(pdf *gofpdf.Fpdf, spec *wall.WallSpecification) {
	const (
		left   = 30.0 // mm
		bottom = 250.0
		maxH   = 90.0
	)
	f := spec.Footing
	totalIn := spec.TotalHeightIn + f.ThicknessIn
	scale := maxH / totalIn // mm per inch

	baseW := spec.Sections[0].WidthIn
	footW := (f.ToeIn + baseW + f.HeelIn) * scale

	pdf.SetDrawColor(0, 0, 0)
	pdf.Rect(left, bottom-f.ThicknessIn*scale, footW, f.ThicknessIn*scale, "D")

	y := bottom - f.ThicknessIn*scale
	x := left + f.ToeIn*scale
	for _, s := range spec.Sections {
		h := s.HeightIn * scale
		pdf.Rect(x, y-h, s.WidthIn*scale, h, "D")
		y -= h
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(left, bottom+5, fmt.Sprintf("Scale: 1 in = %.2f mm", scale))
}

func writeCheck(pdf *gofpdf.Fpdf, name string, factor, min float64) {
	pdf.Cell(0, 5, fmt.Sprintf("%s: %.2f >= %.2f  OK", name, factor, min))
	pdf.Ln(5)
}

func finish(w http.ResponseWriter, pdf *gofpdf.Fpdf) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"wall-design.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
	}
}
