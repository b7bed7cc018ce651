package pay

import (
	"Rampart/internal/repo"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

const (
	premiumPriceKopecks = 49900
	premiumDuration     = 30 * 24 * time.Hour
)

type Handler struct {
	Client *Client
	Repo   repo.Repository
}

type purchaseResponse struct {
	TicketID   int    `json:"ticket_id"`
	PaymentURL string `json:"payment_url"`
}

// Purchase opens a pending premium ticket and hands the caller the payment
// page URL. Premium is granted only after the webhook confirms the charge.
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int)
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ticketID, err := h.Repo.CreatePremiumTicket(r.Context(), userID)
	if err != nil {
		log.Printf("CreatePremiumTicket error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	resp, err := h.Client.Init(InitRequest{
		Amount:      premiumPriceKopecks,
		OrderID:     fmt.Sprintf("premium-%d", ticketID),
		Description: "Premium access, 30 days",
		CustomerKey: fmt.Sprintf("user-%d", userID),
	})
	if err != nil {
		log.Printf("payment init error: %v", err)
		http.Error(w, "Payment provider error", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(purchaseResponse{TicketID: ticketID, PaymentURL: resp.PaymentURL})
}

// Webhook receives payment notifications. The provider retries until it
// reads a literal OK body, so every handled outcome must answer with it.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	token, _ := payload["Token"].(string)
	if !h.Client.VerifyToken(payload, token) {
		http.Error(w, "Invalid token", http.StatusForbidden)
		return
	}

	status, _ := payload["Status"].(string)
	orderID, _ := payload["OrderId"].(string)

	var ticketID int
	if _, err := fmt.Sscanf(orderID, "premium-%d", &ticketID); err != nil {
		http.Error(w, "Unknown order", http.StatusBadRequest)
		return
	}

	ticket, err := h.Repo.GetPremiumTicket(r.Context(), ticketID)
	if err != nil {
		http.Error(w, "Unknown ticket", http.StatusNotFound)
		return
	}

	switch status {
	case "CONFIRMED":
		if ticket.Status != "paid" {
			if err := h.Repo.SetPremiumUntil(r.Context(), ticket.UserID, time.Now().Add(premiumDuration)); err != nil {
				log.Printf("SetPremiumUntil error: %v", err)
				http.Error(w, "DB error", http.StatusInternalServerError)
				return
			}
			if err := h.Repo.UpdatePremiumTicketStatus(r.Context(), ticketID, "paid"); err != nil {
				log.Printf("UpdatePremiumTicketStatus error: %v", err)
			}
		}
	case "REJECTED", "CANCELED", "DEADLINE_EXPIRED":
		_ = h.Repo.UpdatePremiumTicketStatus(r.Context(), ticketID, "failed")
	}

	w.Write([]byte("OK"))
}
