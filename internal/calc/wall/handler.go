package wall

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
)

// Store persists a converged specification under a caller-supplied request
// id. Ids are unique across concurrent runs; the engine itself stays
// stateless.
type Store interface {
	SaveSpecification(ctx context.Context, requestID string, userID int, payload []byte) error
}

type Handler struct {
	Limits Limits
	Store  Store
}

type designRequest struct {
	DesignInput
	RequestID string `json:"request_id,omitempty"`
}

func (h *Handler) Design(w http.ResponseWriter, r *http.Request) {
	var req designRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := req.DesignInput.Validate(); err != nil {
		http.Error(w, "Invalid design parameters: "+err.Error(), http.StatusBadRequest)
		return
	}

	out, err := Design(req.DesignInput, h.Limits)
	if err != nil {
		// Validation already passed, so this is an engine defect, not a
		// user error.
		log.Printf("wall design internal error: %v", err)
		http.Error(w, "Calculation error", http.StatusInternalServerError)
		return
	}

	if out.Converged && h.Store != nil && req.RequestID != "" {
		userID, _ := r.Context().Value("userID").(int)
		payload, _ := json.Marshal(out.Specification)
		if err := h.Store.SaveSpecification(r.Context(), req.RequestID, userID, payload); err != nil {
			log.Printf("save specification %s: %v", req.RequestID, err)
			http.Error(w, "Storage error", http.StatusConflict)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
