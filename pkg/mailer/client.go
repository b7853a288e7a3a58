package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thavon/voice-lead-service/pkg/logger"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.resend.com"

// Client sends transactional email through the Resend HTTP API
type Client struct {
	apiKey     string
	from       string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a mail client. from is the sender address used on every
// message, e.g. "Thavon <notifications@thavon.app>".
func NewClient(apiKey, from string) *Client {
	return &Client{
		apiKey:  apiKey,
		from:    from,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID string `json:"id"`
}

// Send delivers one HTML email to a single recipient
func (c *Client) Send(ctx context.Context, to, subject, htmlBody string) error {
	if c.apiKey == "" {
		return fmt.Errorf("mailer: api key not configured")
	}

	payload, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		HTML:    htmlBody,
	})
	if err != nil {
		return fmt.Errorf("mailer: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("mailer: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mailer: resend returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed sendResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.ID != "" {
		logger.Base().Debug("email accepted",
			zap.String("message_id", parsed.ID),
			zap.String("to", to),
		)
	}
	return nil
}
