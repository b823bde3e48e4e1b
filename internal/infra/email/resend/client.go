// Package resend sends the transactional quote emails through the Resend
// HTTP API. An unset API key degrades every send to a logged no-op so
// local development works without a provider.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"squeegee-samurai/go_backend/internal/domain/quote"
)

const defaultBaseURL = "https://api.resend.com"

type Client struct {
	APIKey      string
	From        string
	NotifyEmail string
	BaseURL     string
	HTTP        *http.Client
	Log         *zap.Logger
}

func New(apiKey, from, notifyEmail string, log *zap.Logger) *Client {
	if from == "" {
		from = "quotes@squeegee-samurai.com"
	}
	return &Client{
		APIKey:      apiKey,
		From:        from,
		NotifyEmail: notifyEmail,
		BaseURL:     defaultBaseURL,
		HTTP:        &http.Client{Timeout: 15 * time.Second},
		Log:         log,
	}
}

// SendCustomerQuote mails the signed PDF link to the requester.
func (c *Client) SendCustomerQuote(ctx context.Context, email, businessName, pdfURL, quoteID string, expiresAt time.Time) error {
	if c.APIKey == "" {
		c.logger().Info("resend not configured; skipping customer quote email",
			zap.String("to", email), zap.String("quote_id", quoteID), zap.String("pdf_url", pdfURL))
		return nil
	}

	greeting := "Hello"
	if businessName != "" {
		greeting = "Hi " + businessName + " team"
	}

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>%s,</h2>
  <p>Thank you for requesting a quote from Squeegee Samurai. We've prepared a detailed estimate based on your requirements.</p>
  <p style="text-align: center;"><a href="%s" style="background-color: #e53e3e; color: white; padding: 14px 28px; text-decoration: none; font-weight: bold;">View Your Quote (PDF)</a></p>
  <p style="font-size: 14px;">This link expires on <strong>%s</strong>.</p>
  <p>Questions? Reply to this email or call us at <strong>(540) 335-1059</strong>.</p>
  <p style="font-size: 13px;">&mdash;<br/>The Squeegee Samurai Team<br/><em>Clarity through Pane</em></p>
</div>`, greeting, pdfURL, expiresAt.Format("January 2, 2006"))

	if err := c.send(ctx, email, "Your Squeegee Samurai Quote is Ready", html); err != nil {
		return fmt.Errorf("customer quote email: %w", err)
	}
	c.logger().Info("customer quote email sent", zap.String("to", email), zap.String("quote_id", quoteID))
	return nil
}

// SendOwnerNotification mails the lead details to the operator. Missing
// NOTIFY_EMAIL skips the send entirely.
func (c *Client) SendOwnerNotification(ctx context.Context, sub quote.Submission, res quote.Result, quoteID, pdfURL string) error {
	if c.NotifyEmail == "" {
		c.logger().Info("notify email not set; skipping owner notification", zap.String("quote_id", quoteID))
		return nil
	}
	if c.APIKey == "" {
		c.logger().Info("resend not configured; skipping owner notification",
			zap.String("quote_id", quoteID), zap.Int64("total_cents", res.TotalCents))
		return nil
	}

	contactName := contactName(sub)
	total := fmt.Sprintf("$%.2f", float64(res.TotalCents)/100)

	var b strings.Builder
	fmt.Fprintf(&b, `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	fmt.Fprintf(&b, `<h3>New Quote Received</h3><table style="width: 100%%; border-collapse: collapse;">`)
	row := func(label, value string) {
		fmt.Fprintf(&b, `<tr><td style="padding: 10px; font-weight: bold;">%s</td><td style="padding: 10px;">%s</td></tr>`, label, value)
	}
	row("Quote ID:", quoteID)
	row("Contact:", contactName)
	row("Email:", sub.Contact.Email)
	if sub.Contact.Phone != "" {
		row("Phone:", sub.Contact.Phone)
	}
	serviceType := sub.FormInput.ServiceType
	if serviceType == "" {
		serviceType = "N/A"
	}
	row("Service Type:", serviceType)
	row("Total:", total)
	b.WriteString(`</table>`)
	if sub.FormInput.SpecialRequests != "" {
		fmt.Fprintf(&b, `<p><strong>Special Requests:</strong><br/>%s</p>`, sub.FormInput.SpecialRequests)
	}
	if pdfURL != "" {
		fmt.Fprintf(&b, `<p style="text-align: center;"><a href="%s" style="background-color: #e53e3e; color: white; padding: 14px 28px; text-decoration: none; font-weight: bold;">View Quote PDF</a></p>`, pdfURL)
	}
	b.WriteString(`</div>`)

	subject := fmt.Sprintf("New Quote: %s - %s", contactName, total)
	if err := c.send(ctx, c.NotifyEmail, subject, b.String()); err != nil {
		return fmt.Errorf("owner notification email: %w", err)
	}
	c.logger().Info("owner notification sent", zap.String("quote_id", quoteID))
	return nil
}

func (c *Client) send(ctx context.Context, to, subject, html string) error {
	body, err := json.Marshal(map[string]any{
		"from":    c.From,
		"to":      []string{to},
		"subject": subject,
		"html":    html,
	})
	if err != nil {
		return err
	}

	urlStr := strings.TrimRight(c.baseURL(), "/") + "/emails"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("resend status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

// contactName resolves who the lead is: business name, then full name,
// then the bare email.
func contactName(sub quote.Submission) string {
	if sub.FormInput.BusinessName != "" {
		return sub.FormInput.BusinessName
	}
	if sub.Contact.FirstName != "" && sub.Contact.LastName != "" {
		return sub.Contact.FirstName + " " + sub.Contact.LastName
	}
	return sub.Contact.Email
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultBaseURL
}

func (c *Client) logger() *zap.Logger {
	if c.Log != nil {
		return c.Log
	}
	return zap.NewNop()
}
