package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thavon/voice-lead-service/internal/assistant"
	"github.com/thavon/voice-lead-service/pkg/logger"
	"go.uber.org/zap"
)

const defaultVapiBaseURL = "https://api.vapi.ai"

// UpstreamError carries the voice platform's rejection so handlers can
// surface it as a gateway failure instead of a generic 500.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("voice platform returned %d: %s", e.StatusCode, e.Body)
}

// VapiClient places calls through the Vapi REST API
type VapiClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewVapiClient creates a Vapi API client. baseURL may be empty to use the
// hosted endpoint.
func NewVapiClient(apiKey, baseURL string) *VapiClient {
	if baseURL == "" {
		baseURL = defaultVapiBaseURL
	}
	return &VapiClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Customer is the far-end party of an outbound call
type Customer struct {
	Number string `json:"number"`
	Name   string `json:"name,omitempty"`
}

type createCallRequest struct {
	PhoneNumberID string          `json:"phoneNumberId,omitempty"`
	Customer      *Customer       `json:"customer,omitempty"`
	Assistant     *assistant.Spec `json:"assistant"`
}

// CallRef identifies a call the platform accepted
type CallRef struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// CreateCall asks the platform to dial the customer from the given tenant
// number with the supplied assistant configuration.
func (c *VapiClient) CreateCall(ctx context.Context, phoneNumberID string, customer Customer, spec *assistant.Spec) (*CallRef, error) {
	return c.post(ctx, "/call/phone", createCallRequest{
		PhoneNumberID: phoneNumberID,
		Customer:      &customer,
		Assistant:     spec,
	})
}

// CreateTestCall creates a web-based call with no telephony leg, used by the
// dashboard's test-call feature.
func (c *VapiClient) CreateTestCall(ctx context.Context, spec *assistant.Spec) (*CallRef, error) {
	return c.post(ctx, "/call", createCallRequest{Assistant: spec})
}

func (c *VapiClient) post(ctx context.Context, path string, payload createCallRequest) (*CallRef, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal call request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build call request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send call request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Base().Error("voice platform rejected call",
			zap.Int("status", resp.StatusCode),
			zap.String("path", path),
			zap.String("body", string(respBody)),
		)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var ref CallRef
	if err := json.Unmarshal(respBody, &ref); err != nil {
		return nil, fmt.Errorf("decode call response: %w", err)
	}
	return &ref, nil
}
