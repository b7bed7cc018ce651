package batch

import (
	"encoding/json"
	"net/http"

	wall "Rampart/internal/calc/wall"
)

type Handler struct {
	Limits wall.Limits
}

func (h *Handler) Wall(w http.ResponseWriter, r *http.Request) {
	var input WallBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := CalculateWall(input, h.Limits)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
