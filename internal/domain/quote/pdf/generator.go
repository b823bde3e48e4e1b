package pdf

import (
	"time"

	"squeegee-samurai/go_backend/internal/domain/quote"
)

// Document is everything the estimate PDF needs. Rendering is
// deterministic: the same Document always yields the same bytes.
type Document struct {
	QuoteID      string
	Contact      quote.Contact
	BusinessName string
	Breakdown    quote.Breakdown
	TotalCents   int64
	Segment      string
	CreatedAt    time.Time
}

type Generator interface {
	Generate(doc Document) ([]byte, error)
}
