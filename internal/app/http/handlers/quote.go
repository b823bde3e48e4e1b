package handlers

import (
	"io"
	"math"
	"net/http"

	"go.uber.org/zap"

	"squeegee-samurai/go_backend/internal/domain/quote"
	"squeegee-samurai/go_backend/internal/domain/quote/flow"
)

const maxBodyBytes = 1 << 20

type quoteAccepted struct {
	Success   bool            `json:"success"`
	QuoteID   string          `json:"quoteId"`
	Total     int64           `json:"total"`
	Breakdown quote.Breakdown `json:"breakdown"`
	Message   string          `json:"message"`
}

// CreateQuote serves POST /api/quote.
func (h *Handlers) CreateQuote(w http.ResponseWriter, r *http.Request) {
	h.handleQuote(w, r, h.API)
}

// CreateQuoteServerless serves POST /api-serverless/quote, the entry point
// with the longer execution allowance and the PDF/email tail.
func (h *Handlers) CreateQuoteServerless(w http.ResponseWriter, r *http.Request) {
	h.handleQuote(w, r, h.Serverless)
}

func (h *Handlers) handleQuote(w http.ResponseWriter, r *http.Request, orch *flow.Orchestrator) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Success: false, Error: "Request body must be JSON object"})
		return
	}

	accepted, subErr := orch.Submit(r.Context(), body)
	if subErr != nil {
		status := http.StatusBadRequest
		if subErr.Kind != flow.KindInvalid {
			status = http.StatusInternalServerError
		}
		h.Log.Warn("quote submission rejected",
			zap.Int("status", status), zap.String("reason", subErr.Message), zap.Error(subErr.Err))
		writeJSON(w, status, apiError{Success: false, Error: subErr.Message})
		return
	}

	writeJSON(w, http.StatusCreated, quoteAccepted{
		Success:   true,
		QuoteID:   accepted.QuoteID,
		Total:     roundDollars(accepted.TotalCents),
		Breakdown: accepted.Breakdown,
		Message:   "Quote received. We'll be in touch within 24 hours.",
	})
}

// roundDollars collapses cents to the whole-dollar figure shown in the
// submission response; the exact amount lives in the breakdown.
func roundDollars(cents int64) int64 {
	return int64(math.Round(float64(cents) / 100))
}
