package flow

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"squeegee-samurai/go_backend/internal/domain/quote"
	"squeegee-samurai/go_backend/internal/domain/quote/pdf"
)

// ==========================
// Fakes
// ==========================

type fakeStore struct {
	insertErr error

	inserted       int
	pdfMarked      bool
	pdfPath        string
	pdfExpiresAt   time.Time
	emailMarked    bool
	failedMarked   bool
	failedReason   string
	lastSubmission quote.Submission
	lastResult     quote.Result
}

func (s *fakeStore) InsertQuote(ctx context.Context, sub quote.Submission, res quote.Result) (string, error) {
	if s.insertErr != nil {
		return "", s.insertErr
	}
	s.inserted++
	s.lastSubmission = sub
	s.lastResult = res
	return "q-123", nil
}

func (s *fakeStore) MarkPDFGenerated(ctx context.Context, quoteID, path string, expiresAt time.Time) error {
	s.pdfMarked = true
	s.pdfPath = path
	s.pdfExpiresAt = expiresAt
	return nil
}

func (s *fakeStore) MarkEmailSent(ctx context.Context, quoteID string) error {
	s.emailMarked = true
	return nil
}

func (s *fakeStore) MarkSideEffectsFailed(ctx context.Context, quoteID, reason string) error {
	s.failedMarked = true
	s.failedReason = reason
	return nil
}

type fakeRenderer struct {
	err  error
	docs []pdf.Document
}

func (r *fakeRenderer) Generate(doc pdf.Document) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.docs = append(r.docs, doc)
	return []byte("%PDF-fake"), nil
}

type fakeObjects struct {
	uploadErr error
	signErr   error
	now       time.Time

	uploadedPath string
	signedTTL    time.Duration
}

func (o *fakeObjects) Upload(ctx context.Context, path, contentType string, data []byte) error {
	if o.uploadErr != nil {
		return o.uploadErr
	}
	o.uploadedPath = path
	return nil
}

func (o *fakeObjects) SignURL(ctx context.Context, path string, ttl time.Duration) (string, time.Time, error) {
	if o.signErr != nil {
		return "", time.Time{}, o.signErr
	}
	o.signedTTL = ttl
	return "https://storage.example.com/sign/" + path, o.now.Add(ttl), nil
}

type fakeMailer struct {
	customerErr error
	ownerErr    error

	customerSent int
	customerURL  string
	ownerSent    int
	ownerPDFURL  string
}

func (m *fakeMailer) SendCustomerQuote(ctx context.Context, email, businessName, pdfURL, quoteID string, expiresAt time.Time) error {
	if m.customerErr != nil {
		return m.customerErr
	}
	m.customerSent++
	m.customerURL = pdfURL
	return nil
}

func (m *fakeMailer) SendOwnerNotification(ctx context.Context, sub quote.Submission, res quote.Result, quoteID, pdfURL string) error {
	if m.ownerErr != nil {
		return m.ownerErr
	}
	m.ownerSent++
	m.ownerPDFURL = pdfURL
	return nil
}

// ==========================
// Helpers
// ==========================

var testNow = time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)

func commercialBody(panes int) []byte {
	return []byte(fmt.Sprintf(`{
		"contact": {"email": "a@b.com"},
		"formInput": {"propertyType": "Commercial", "serviceType": "Biweekly Exterior", "windowCount": %d}
	}`, panes))
}

func newOrchestrator(t *testing.T, store *fakeStore, renderer pdf.Generator, objects ObjectStore, mailer Mailer) *Orchestrator {
	return &Orchestrator{
		Store:    store,
		Renderer: renderer,
		Objects:  objects,
		Mailer:   mailer,
		URLTTL:   259200 * time.Second,
		Log:      zaptest.NewLogger(t),
		Now:      func() time.Time { return testNow },
	}
}

// ==========================
// Tests
// ==========================

func TestSubmitFullTail(t *testing.T) {
	store := &fakeStore{}
	renderer := &fakeRenderer{}
	objects := &fakeObjects{now: testNow}
	mailer := &fakeMailer{}
	o := newOrchestrator(t, store, renderer, objects, mailer)

	acc, subErr := o.Submit(context.Background(), commercialBody(12))
	require.Nil(t, subErr)

	assert.Equal(t, "q-123", acc.QuoteID)
	assert.Equal(t, int64(5700), acc.TotalCents)

	assert.Equal(t, "2026/q-123.pdf", objects.uploadedPath)
	assert.Equal(t, 259200*time.Second, objects.signedTTL)
	assert.True(t, store.pdfMarked)
	assert.Equal(t, "2026/q-123.pdf", store.pdfPath)
	assert.Equal(t, testNow.Add(259200*time.Second), store.pdfExpiresAt)
	assert.Equal(t, 1, mailer.customerSent)
	assert.Equal(t, 1, mailer.ownerSent)
	assert.Equal(t, mailer.customerURL, mailer.ownerPDFURL)
	assert.True(t, store.emailMarked)
	assert.False(t, store.failedMarked)
}

func TestSubmitValidationFailureNeverPersists(t *testing.T) {
	store := &fakeStore{}
	o := newOrchestrator(t, store, nil, nil, nil)

	_, subErr := o.Submit(context.Background(), []byte(`{"contact": {}, "formInput": {}}`))
	require.NotNil(t, subErr)
	assert.Equal(t, KindInvalid, subErr.Kind)
	assert.Equal(t, "Contact email is required", subErr.Message)
	assert.Zero(t, store.inserted)
}

func TestSubmitPricingFailureNeverPersists(t *testing.T) {
	store := &fakeStore{}
	o := newOrchestrator(t, store, nil, nil, nil)

	body := []byte(`{"contact": {"email": "a@b.com"}, "formInput": {"propertyType": "Commercial", "serviceType": "Hourly", "windowCount": 3}}`)
	_, subErr := o.Submit(context.Background(), body)
	require.NotNil(t, subErr)
	assert.Equal(t, KindInvalid, subErr.Kind)
	assert.Zero(t, store.inserted)
}

func TestSubmitStoreUnavailable(t *testing.T) {
	store := &fakeStore{insertErr: fmt.Errorf("%w: dial refused", ErrStoreUnavailable)}
	o := newOrchestrator(t, store, nil, nil, nil)

	_, subErr := o.Submit(context.Background(), commercialBody(12))
	require.NotNil(t, subErr)
	assert.Equal(t, KindUnavailable, subErr.Kind)
	assert.Equal(t, "Database unavailable", subErr.Message)
}

func TestSubmitInsertFailure(t *testing.T) {
	store := &fakeStore{insertErr: errors.New("constraint violation")}
	o := newOrchestrator(t, store, nil, nil, nil)

	_, subErr := o.Submit(context.Background(), commercialBody(12))
	require.NotNil(t, subErr)
	assert.Equal(t, KindInternal, subErr.Kind)
	assert.Equal(t, "Failed to save quote", subErr.Message)
}

func TestSubmitRendererFailureIsBestEffort(t *testing.T) {
	store := &fakeStore{}
	renderer := &fakeRenderer{err: errors.New("layout exploded")}
	objects := &fakeObjects{now: testNow}
	mailer := &fakeMailer{}
	o := newOrchestrator(t, store, renderer, objects, mailer)

	acc, subErr := o.Submit(context.Background(), commercialBody(12))
	require.Nil(t, subErr)
	assert.Equal(t, "q-123", acc.QuoteID)
	assert.Equal(t, int64(5700), acc.TotalCents)

	assert.True(t, store.failedMarked)
	assert.Contains(t, store.failedReason, "render pdf")
	assert.False(t, store.pdfMarked)
	assert.False(t, store.emailMarked)
	assert.Zero(t, mailer.customerSent)
}

func TestSubmitCustomerEmailFailureIsBestEffort(t *testing.T) {
	store := &fakeStore{}
	mailer := &fakeMailer{customerErr: errors.New("smtp down")}
	o := newOrchestrator(t, store, &fakeRenderer{}, &fakeObjects{now: testNow}, mailer)

	_, subErr := o.Submit(context.Background(), commercialBody(12))
	require.Nil(t, subErr)

	// PDF side completed before the email broke; only the failure flags
	// and the missing email_sent mark tell the tale.
	assert.True(t, store.pdfMarked)
	assert.False(t, store.emailMarked)
	assert.True(t, store.failedMarked)
	assert.Contains(t, store.failedReason, "send customer quote")
}

func TestSubmitWithoutDocumentTailSendsOwnerOnly(t *testing.T) {
	store := &fakeStore{}
	mailer := &fakeMailer{}
	o := &Orchestrator{Store: store, Mailer: mailer, Log: zaptest.NewLogger(t)}

	acc, subErr := o.Submit(context.Background(), commercialBody(12))
	require.Nil(t, subErr)
	assert.Equal(t, "q-123", acc.QuoteID)

	assert.Equal(t, 1, mailer.ownerSent)
	assert.Empty(t, mailer.ownerPDFURL)
	assert.Zero(t, mailer.customerSent)
	assert.False(t, store.pdfMarked)
	assert.False(t, store.emailMarked)
	assert.False(t, store.failedMarked)
}

func TestSubmitOwnerFailureWithoutTailDoesNotMarkRecord(t *testing.T) {
	store := &fakeStore{}
	mailer := &fakeMailer{ownerErr: errors.New("provider down")}
	o := &Orchestrator{Store: store, Mailer: mailer, Log: zaptest.NewLogger(t)}

	_, subErr := o.Submit(context.Background(), commercialBody(12))
	require.Nil(t, subErr)
	assert.False(t, store.failedMarked)
}

func TestSubmitRendererDocumentMatchesQuote(t *testing.T) {
	store := &fakeStore{}
	renderer := &fakeRenderer{}
	o := newOrchestrator(t, store, renderer, &fakeObjects{now: testNow}, &fakeMailer{})

	_, subErr := o.Submit(context.Background(), commercialBody(12))
	require.Nil(t, subErr)

	require.Len(t, renderer.docs, 1)
	doc := renderer.docs[0]
	assert.Equal(t, "q-123", doc.QuoteID)
	assert.Equal(t, "a@b.com", doc.Contact.Email)
	assert.Equal(t, int64(5700), doc.TotalCents)
	assert.Equal(t, "Commercial", doc.Segment)
	assert.Equal(t, testNow, doc.CreatedAt)
}
