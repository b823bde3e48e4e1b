package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"squeegee-samurai/go_backend/internal/domain/quote"
	"squeegee-samurai/go_backend/internal/domain/quote/pdf"
)

// TestPDF serves GET /api/test-pdf: a fixed sample estimate rendered
// inline, for checking the document layout without a real submission.
func (h *Handlers) TestPDF(w http.ResponseWriter, r *http.Request) {
	doc := pdf.Document{
		QuoteID: "test-quote-12345",
		Contact: quote.Contact{
			FirstName: "John",
			LastName:  "Doe",
			Email:     "test@example.com",
		},
		BusinessName: "Test Business Inc.",
		Breakdown: quote.Breakdown{
			{Label: "Window Cleaning (20 windows)", AmountCents: 20000},
			{Label: "Screen Cleaning (10 screens)", AmountCents: 5000},
			{Label: "2nd Story Upcharge", AmountCents: 4000},
		},
		TotalCents: 29000,
		Segment:    "Residential",
		CreatedAt:  time.Now(),
	}

	data, err := h.Renderer.Generate(doc)
	if err != nil {
		h.Log.Error("test pdf generation failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, apiError{Success: false, Error: "Failed to generate test PDF"})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="test-quote.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
