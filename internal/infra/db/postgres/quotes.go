package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"squeegee-samurai/go_backend/internal/domain/quote"
	"squeegee-samurai/go_backend/internal/domain/quote/flow"
)

const insertQuoteSQL = `INSERT INTO quotes (
	first_name, last_name, email, phone, address, city, zip_code,
	property_type, service_type, segment,
	form_input, quote_breakdown, quote_total_cents, image_urls, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 'new')
RETURNING id`

// InsertQuote writes a new quote record and returns its generated id.
// Acquire failures are wrapped in flow.ErrStoreUnavailable so the caller
// can tell "cannot reach the database" from "insert rejected".
func (db *DB) InsertQuote(ctx context.Context, sub quote.Submission, res quote.Result) (string, error) {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", flow.ErrStoreUnavailable, err)
	}
	defer conn.Release()

	// Commercial leads submit without names; the record still gets a pair.
	firstName := sub.Contact.FirstName
	if firstName == "" {
		firstName = "Commercial"
	}
	lastName := sub.Contact.LastName
	if lastName == "" {
		lastName = "Lead"
	}

	formJSON, err := json.Marshal(sub.FormInput)
	if err != nil {
		return "", fmt.Errorf("marshal form input: %w", err)
	}
	breakdownJSON, err := json.Marshal(res.Breakdown)
	if err != nil {
		return "", fmt.Errorf("marshal breakdown: %w", err)
	}

	var imageURLs any
	if len(sub.FormInput.ImageURLs) > 0 {
		imageURLs = sub.FormInput.ImageURLs
	}

	var id string
	err = conn.QueryRow(ctx, insertQuoteSQL,
		firstName,
		lastName,
		sub.Contact.Email,
		nullable(sub.Contact.Phone),
		nullable(sub.Contact.Address),
		nullable(sub.Contact.City),
		nullable(sub.Contact.ZipCode),
		nullable(sub.FormInput.PropertyType),
		nullable(sub.FormInput.ServiceType),
		nullable(res.Segment),
		formJSON,
		breakdownJSON,
		res.TotalCents,
		imageURLs,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert quote: %w", err)
	}
	return id, nil
}

func (db *DB) MarkPDFGenerated(ctx context.Context, quoteID, path string, expiresAt time.Time) error {
	_, err := db.Pool.Exec(ctx, `UPDATE quotes SET
		pdf_path = $1,
		pdf_generated_at = NOW(),
		pdf_url_expires_at = $2,
		pdf_object_created_at = NOW(),
		signed_url_last_generated_at = NOW(),
		pdf_status = 'generated'
	WHERE id = $3`, path, expiresAt, quoteID)
	if err != nil {
		return fmt.Errorf("mark pdf generated: %w", err)
	}
	return nil
}

func (db *DB) MarkEmailSent(ctx context.Context, quoteID string) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE quotes SET email_sent_at = NOW(), email_status = 'sent' WHERE id = $1`, quoteID)
	if err != nil {
		return fmt.Errorf("mark email sent: %w", err)
	}
	return nil
}

func (db *DB) MarkSideEffectsFailed(ctx context.Context, quoteID, reason string) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE quotes SET pdf_status = 'failed', email_status = 'failed', email_error = $1 WHERE id = $2`,
		reason, quoteID)
	if err != nil {
		return fmt.Errorf("mark side effects failed: %w", err)
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
