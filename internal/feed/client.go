// Package feed talks to the ActNxt insight service: it pulls the user's
// insight feed and pushes deferred feedback events back up. Requests retry a
// few times with backoff before the failure reaches the caller.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/AmaliaEG/ActNext-sub000/internal/model"
)

const (
	requestTimeout = 10 * time.Second
	retryAttempts  = 3
)

// TokenSource yields the current bearer token. It is read per request, so a
// login that happens after the client is built still authenticates the next
// sync.
type TokenSource func() string

// StaticToken wraps a fixed token as a TokenSource.
func StaticToken(token string) TokenSource {
	return func() string { return token }
}

type Client struct {
	baseURL string
	token   TokenSource
	http    *http.Client
}

func NewClient(baseURL string, token TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Fetch returns the raw insight records for the authenticated user.
func (c *Client) Fetch(ctx context.Context) ([]model.Insight, error) {
	var out []model.Insight
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/insights", nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			c.authorize(req)
			resp, err := c.http.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return statusError(resp)
			}
			return json.NewDecoder(resp.Body).Decode(&out)
		},
		retry.Attempts(retryAttempts),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch insights: %w", err)
	}
	return out, nil
}

// PushFeedback delivers queued feedback events to the service.
func (c *Client) PushFeedback(ctx context.Context, events []model.FeedbackEvent) error {
	if len(events) == 0 {
		return nil
	}
	payload, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode feedback: %w", err)
	}
	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/feedback", bytes.NewReader(payload))
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Content-Type", "application/json")
			c.authorize(req)
			resp, err := c.http.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
				return statusError(resp)
			}
			return nil
		},
		retry.Attempts(retryAttempts),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return fmt.Errorf("push feedback: %w", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token == nil {
		return
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = resp.Status
	}
	err := fmt.Errorf("feed: unexpected status %d: %s", resp.StatusCode, msg)
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		// Client errors will not heal on retry.
		return retry.Unrecoverable(err)
	}
	return err
}
