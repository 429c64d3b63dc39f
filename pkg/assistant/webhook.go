// Package assistant integrates the member portal with the n8n assistant webhook.
// It owns the outbound call contract (message submission + health probe) and the
// in-memory conversation state machine built on top of it.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultWebhookURL is the baked-in fallback; override via ASSISTANT_WEBHOOK_URL.
	DefaultWebhookURL = "https://gamay92355.app.n8n.cloud/webhook/angus-assistant"

	// DefaultTimeout bounds a regular Send exchange.
	DefaultTimeout = 30 * time.Second

	// healthTimeout is intentionally independent of the Send timeout.
	healthTimeout = 5 * time.Second

	sourceTag          = "angus-connect-hub"
	healthProbeMessage = "health_check"
	healthProbeUser    = "system"
	healthProbeEmail   = "system@healthcheck.com"

	fallbackReply   = "Respuesta recibida"
	msgTimeout      = "Tiempo de espera agotado"
	errTimeout      = "La consulta tardó demasiado en procesarse"
	msgConnError    = "Error de conexión"
)

// Doer abstracts the HTTP transport so tests can substitute a fake network.
// *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebhookContext carries request metadata the workflow can use for routing.
type WebhookContext struct {
	UserEmail string `json:"userEmail,omitempty"`
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
}

// WebhookRequest is the JSON body posted to the n8n webhook. Built fresh per
// send, never retained.
type WebhookRequest struct {
	Message   string          `json:"message"`
	UserID    string          `json:"userId,omitempty"`
	SessionID string          `json:"sessionId,omitempty"`
	Context   *WebhookContext `json:"context,omitempty"`
}

// Result normalizes whatever the webhook returned. Every call site deals with
// this one shape instead of the matrix of ways a third-party workflow can
// answer (wrong content-type, plain text, arbitrary JSON, slow backend).
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Client performs exactly one kind of exchange against the configured webhook.
type Client struct {
	webhookURL string
	timeout    time.Duration
	httpClient Doer
}

type ClientOption func(*Client)

// WithTimeout overrides the default Send timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// WithDoer injects a custom transport.
func WithDoer(d Doer) ClientOption {
	return func(c *Client) { c.httpClient = d }
}

func NewClient(webhookURL string, opts ...ClientOption) *Client {
	if webhookURL == "" {
		webhookURL = DefaultWebhookURL
	}
	c := &Client{
		webhookURL: webhookURL,
		timeout:    DefaultTimeout,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send posts the request to the webhook and normalizes the outcome. It never
// returns a Go error: transport failures, timeouts, bad statuses and malformed
// bodies all come back through Result.Success.
func (c *Client) Send(ctx context.Context, req *WebhookRequest) *Result {
	payload, err := json.Marshal(req)
	if err != nil {
		return &Result{Success: false, Message: msgConnError, Error: err.Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewBuffer(payload))
	if err != nil {
		return &Result{Success: false, Message: msgConnError, Error: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return &Result{Success: false, Message: msgTimeout, Error: errTimeout}
		}
		return &Result{Success: false, Message: msgConnError, Error: err.Error()}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &Result{
			Success: false,
			Message: msgConnError,
			Error:   fmt.Sprintf("HTTP error: status %d", res.StatusCode),
		}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return &Result{Success: false, Message: msgConnError, Error: err.Error()}
	}

	contentType := res.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return rawTextResult(body)
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		// Declared JSON but not parseable. Degrade to raw text, never raise.
		return rawTextResult(body)
	}

	return &Result{Success: true, Message: extractReply(data), Data: data}
}

// HealthCheck probes the webhook with a synthetic request under a short fixed
// timeout. True iff the call completes with a 2xx status. It does not touch any
// conversation state; that belongs to the Conversation.
func (c *Client) HealthCheck(ctx context.Context) bool {
	probe := &WebhookRequest{
		Message:   healthProbeMessage,
		UserID:    healthProbeUser,
		SessionID: healthProbeMessage,
		Context: &WebhookContext{
			UserEmail: healthProbeEmail,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Source:    sourceTag,
		},
	}

	payload, err := json.Marshal(probe)
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewBuffer(payload))
	if err != nil {
		return false
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return false
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)

	return res.StatusCode >= 200 && res.StatusCode < 300
}

func rawTextResult(body []byte) *Result {
	text := string(body)
	message := text
	if message == "" {
		message = fallbackReply
	}
	return &Result{
		Success: true,
		Message: message,
		Data:    map[string]interface{}{"rawResponse": text},
	}
}

// extractReply pulls a human-readable reply out of an arbitrary JSON payload.
// n8n workflows commonly answer with one of "output", "message" or "response";
// anything else is serialized whole.
func extractReply(data interface{}) string {
	if obj, ok := data.(map[string]interface{}); ok {
		for _, key := range []string{"output", "message", "response"} {
			if val, ok := obj[key].(string); ok && val != "" {
				return val
			}
		}
	}
	serialized, err := json.Marshal(data)
	if err != nil {
		return fallbackReply
	}
	return string(serialized)
}
