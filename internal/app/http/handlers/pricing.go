package handlers

import (
	"net/http"
	"strconv"

	"squeegee-samurai/go_backend/internal/domain/quote/pricing"
)

type pricingResponse struct {
	Success bool                `json:"success"`
	Panes   int                 `json:"panes"`
	Tiers   []pricing.TierQuote `json:"tiers"`
}

// CommercialPricing serves GET /api/pricing/commercial, the instant
// storefront pricing table: ?panes=N&firstTime=true.
func (h *Handlers) CommercialPricing(w http.ResponseWriter, r *http.Request) {
	panes := 0
	if raw := r.URL.Query().Get("panes"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Success: false, Error: "panes must be an integer"})
			return
		}
		panes = n
	}

	firstTime := false
	if raw := r.URL.Query().Get("firstTime"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Success: false, Error: "firstTime must be a boolean"})
			return
		}
		firstTime = b
	}

	tiers, err := pricing.ComputeTierTable(panes, firstTime)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Success: false, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, pricingResponse{Success: true, Panes: panes, Tiers: tiers})
}
