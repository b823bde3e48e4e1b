// Package supabase talks to Supabase Storage over its REST API: object
// upload and time-limited signed retrieval URLs.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	BaseURL        string
	ServiceRoleKey string
	Bucket         string
	HTTP           *http.Client

	// Now is overridable in tests; zero value means time.Now.
	Now func() time.Time
}

func New(baseURL, serviceRoleKey, bucket string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		BaseURL:        baseURL,
		ServiceRoleKey: serviceRoleKey,
		Bucket:         bucket,
		HTTP:           httpClient,
	}
}

// Upload stores an object at path inside the configured bucket. Paths may
// contain slashes; each segment is escaped individually.
func (c *Client) Upload(ctx context.Context, path, contentType string, data []byte) error {
	urlStr := strings.TrimRight(c.BaseURL, "/") + "/storage/v1/object/" + c.Bucket + "/" + escapePath(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, urlStr, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.ServiceRoleKey)
	req.Header.Set("apikey", c.ServiceRoleKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("storage status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

// SignURL issues a signed retrieval link for an already-uploaded object.
// The returned URL must not be used past expiresAt.
func (c *Client) SignURL(ctx context.Context, path string, ttl time.Duration) (string, time.Time, error) {
	payload, err := json.Marshal(map[string]any{"expiresIn": int(ttl.Seconds())})
	if err != nil {
		return "", time.Time{}, err
	}

	urlStr := strings.TrimRight(c.BaseURL, "/") + "/storage/v1/object/sign/" + c.Bucket + "/" + escapePath(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, bytes.NewReader(payload))
	if err != nil {
		return "", time.Time{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.ServiceRoleKey)
	req.Header.Set("apikey", c.ServiceRoleKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", time.Time{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", time.Time{}, fmt.Errorf("storage status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out struct {
		SignedURL string `json:"signedURL"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", time.Time{}, err
	}
	if out.SignedURL == "" {
		return "", time.Time{}, fmt.Errorf("storage returned empty signed url")
	}

	expiresAt := c.now().Add(ttl)
	return strings.TrimRight(c.BaseURL, "/") + "/storage/v1" + out.SignedURL, expiresAt, nil
}

func (c *Client) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
