// Package flow sequences a quote submission: validate, price, persist,
// then the best-effort PDF and email tail. A successful submission
// guarantees persistence only; everything after the insert is recorded on
// the quote record and never changes the client-visible outcome.
package flow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"squeegee-samurai/go_backend/internal/domain/quote"
	"squeegee-samurai/go_backend/internal/domain/quote/pdf"
	"squeegee-samurai/go_backend/internal/domain/quote/pricing"
)

// ErrStoreUnavailable marks persistence errors caused by failing to reach
// the store at all, as opposed to a rejected write.
var ErrStoreUnavailable = errors.New("store unavailable")

// DefaultURLTTL bounds signed PDF links when no expiry is configured.
const DefaultURLTTL = 72 * time.Hour

// Store persists quote records and their side-effect status flags.
type Store interface {
	InsertQuote(ctx context.Context, sub quote.Submission, res quote.Result) (string, error)
	MarkPDFGenerated(ctx context.Context, quoteID, path string, expiresAt time.Time) error
	MarkEmailSent(ctx context.Context, quoteID string) error
	MarkSideEffectsFailed(ctx context.Context, quoteID, reason string) error
}

// ObjectStore holds generated documents and issues time-limited links.
type ObjectStore interface {
	Upload(ctx context.Context, path, contentType string, data []byte) error
	SignURL(ctx context.Context, path string, ttl time.Duration) (url string, expiresAt time.Time, err error)
}

// Mailer delivers the transactional quote emails. Implementations degrade
// to a logged no-op when no provider is configured.
type Mailer interface {
	SendCustomerQuote(ctx context.Context, email, businessName, pdfURL, quoteID string, expiresAt time.Time) error
	SendOwnerNotification(ctx context.Context, sub quote.Submission, res quote.Result, quoteID, pdfURL string) error
}

// ErrorKind classifies submission failures for the transport layer.
type ErrorKind int

const (
	KindInvalid     ErrorKind = iota + 1 // client input, 400
	KindUnavailable                      // store unreachable, 500
	KindInternal                         // write failed, 500
)

// SubmitError carries a client-safe message alongside the underlying cause.
type SubmitError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *SubmitError) Unwrap() error { return e.Err }

// Accepted is the positive outcome: the quote is durably saved.
type Accepted struct {
	QuoteID    string
	TotalCents int64
	Breakdown  quote.Breakdown
}

// Orchestrator runs the submission pipeline. Renderer and Objects are
// optional as a pair: when either is absent the tail skips document
// delivery and sends the owner notification only, matching the entry
// point that has no PDF wiring.
type Orchestrator struct {
	Store    Store
	Renderer pdf.Generator
	Objects  ObjectStore
	Mailer   Mailer
	URLTTL   time.Duration
	Log      *zap.Logger

	// Now is overridable in tests; zero value means time.Now.
	Now func() time.Time
}

// Submit processes one raw submission body. A nil error means the record
// is saved; the PDF/email tail may still have failed, which is visible
// only on the stored record.
func (o *Orchestrator) Submit(ctx context.Context, body []byte) (*Accepted, *SubmitError) {
	log := o.logger()

	sub, err := quote.ParseSubmission(body)
	if err != nil {
		return nil, &SubmitError{Kind: KindInvalid, Message: err.Error()}
	}

	res, err := pricing.Compute(*sub)
	if err != nil {
		return nil, &SubmitError{Kind: KindInvalid, Message: err.Error()}
	}

	quoteID, err := o.Store.InsertQuote(ctx, *sub, res)
	if err != nil {
		if errors.Is(err, ErrStoreUnavailable) {
			log.Error("db connection failed", zap.Error(err))
			return nil, &SubmitError{Kind: KindUnavailable, Message: "Database unavailable", Err: err}
		}
		log.Error("db insert failed", zap.Error(err))
		return nil, &SubmitError{Kind: KindInternal, Message: "Failed to save quote", Err: err}
	}

	o.runSideEffects(ctx, quoteID, *sub, res)

	return &Accepted{QuoteID: quoteID, TotalCents: res.TotalCents, Breakdown: res.Breakdown}, nil
}

// runSideEffects is the best-effort tail, keyed by quote id so an external
// re-drive can repeat it. Failures are logged and recorded on the record.
func (o *Orchestrator) runSideEffects(ctx context.Context, quoteID string, sub quote.Submission, res quote.Result) {
	log := o.logger().With(zap.String("quote_id", quoteID))

	if o.Renderer == nil || o.Objects == nil {
		if o.Mailer == nil {
			return
		}
		if err := o.Mailer.SendOwnerNotification(ctx, sub, res, quoteID, ""); err != nil {
			log.Warn("owner notification failed, quote saved", zap.Error(err))
		}
		return
	}

	if err := o.deliverDocument(ctx, quoteID, sub, res); err != nil {
		log.Warn("pdf/email tail failed, quote saved", zap.Error(err))
		if markErr := o.Store.MarkSideEffectsFailed(ctx, quoteID, err.Error()); markErr != nil {
			log.Error("recording side-effect failure failed", zap.Error(markErr))
		}
		return
	}
	log.Info("quote processed with pdf and emails")
}

func (o *Orchestrator) deliverDocument(ctx context.Context, quoteID string, sub quote.Submission, res quote.Result) error {
	now := o.now()

	data, err := o.Renderer.Generate(pdf.Document{
		QuoteID:      quoteID,
		Contact:      sub.Contact,
		BusinessName: sub.FormInput.BusinessName,
		Breakdown:    res.Breakdown,
		TotalCents:   res.TotalCents,
		Segment:      res.Segment,
		CreatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}

	// Namespaced by year to keep buckets browsable and ids collision-free.
	path := fmt.Sprintf("%d/%s.pdf", now.Year(), quoteID)
	if err := o.Objects.Upload(ctx, path, "application/pdf", data); err != nil {
		return fmt.Errorf("upload pdf: %w", err)
	}

	ttl := o.URLTTL
	if ttl <= 0 {
		ttl = DefaultURLTTL
	}
	signedURL, expiresAt, err := o.Objects.SignURL(ctx, path, ttl)
	if err != nil {
		return fmt.Errorf("sign pdf url: %w", err)
	}

	if err := o.Store.MarkPDFGenerated(ctx, quoteID, path, expiresAt); err != nil {
		return fmt.Errorf("mark pdf generated: %w", err)
	}

	if o.Mailer != nil {
		if err := o.Mailer.SendCustomerQuote(ctx, sub.Contact.Email, sub.FormInput.BusinessName, signedURL, quoteID, expiresAt); err != nil {
			return fmt.Errorf("send customer quote: %w", err)
		}
		if err := o.Mailer.SendOwnerNotification(ctx, sub, res, quoteID, signedURL); err != nil {
			return fmt.Errorf("send owner notification: %w", err)
		}
	}

	if err := o.Store.MarkEmailSent(ctx, quoteID); err != nil {
		return fmt.Errorf("mark email sent: %w", err)
	}
	return nil
}

func (o *Orchestrator) logger() *zap.Logger {
	if o.Log != nil {
		return o.Log
	}
	return zap.NewNop()
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}
