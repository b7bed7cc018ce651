package importer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/xuri/excelize/v2"

	earth "Rampart/internal/calc/earth"
	wall "Rampart/internal/calc/wall"
)

type Handler struct {
	Limits wall.Limits
}

type WallImportResult struct {
	Count   int            `json:"count"`
	Results []wall.Outcome `json:"results"`
}

// Wall imports a sheet of design inputs and runs each row. Bad rows are
// skipped, matching the tolerant intake the batch customers expect from
// spreadsheet uploads.
func (h *Handler) Wall(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	var results []wall.Outcome
	for i := 1; i < len(rows); i++ {
		input, err := parseWallRow(rows[i])
		if err != nil {
			continue
		}
		out, err := wall.Design(input, h.Limits)
		if err != nil {
			continue
		}
		results = append(results, out)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(WallImportResult{Count: len(results), Results: results})
}

// expected columns: height_in, material, surcharge, soil, objective,
// topping_depth_in (optional), toe_length_in (optional),
// adjacent_slab yes/no (optional)
func parseWallRow(row []string) (wall.DesignInput, error) {
	if len(row) < 4 {
		return wall.DesignInput{}, fmt.Errorf("bad row")
	}
	height, err := toFloat(row[0])
	if err != nil {
		return wall.DesignInput{}, err
	}
	in := wall.DesignInput{
		HeightIn:  height,
		Material:  wall.Material(strings.TrimSpace(row[1])),
		Surcharge: earth.Slope(strings.TrimSpace(row[2])),
		Soil:      earth.Stiffness(strings.TrimSpace(row[3])),
	}
	if len(row) > 4 && row[4] != "" {
		in.Objective = wall.Objective(strings.TrimSpace(row[4]))
	}
	if len(row) > 5 && row[5] != "" {
		in.ToppingDepthIn, _ = toFloat(row[5])
	}
	if len(row) > 6 && row[6] != "" {
		in.ToeLengthIn, _ = toFloat(row[6])
	}
	if len(row) > 7 {
		v := strings.ToLower(strings.TrimSpace(row[7]))
		in.HasAdjacentSlab = v == "yes" || v == "true" || v == "1"
	}
	return in, nil
}

func toFloat(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(s, "%f", &v)
	return v, err
}
