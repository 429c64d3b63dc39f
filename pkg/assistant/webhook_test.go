package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type failingDoer struct {
	err error
}

func (d *failingDoer) Do(req *http.Request) (*http.Response, error) {
	return nil, d.err
}

func decodeJSONBody(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func TestSendNormalization(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantSuccess bool
		wantMessage string
	}{
		{
			name:        "json with output field",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        `{"output": "hola"}`,
			wantSuccess: true,
			wantMessage: "hola",
		},
		{
			name:        "json with message field",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        `{"message": "buenas"}`,
			wantSuccess: true,
			wantMessage: "buenas",
		},
		{
			name:        "json with response field",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        `{"response": "listo"}`,
			wantSuccess: true,
			wantMessage: "listo",
		},
		{
			name:        "output wins over message",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        `{"message": "segundo", "output": "primero"}`,
			wantSuccess: true,
			wantMessage: "primero",
		},
		{
			name:        "json without known fields serialized whole",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        `{"foo":"bar"}`,
			wantSuccess: true,
			wantMessage: `{"foo":"bar"}`,
		},
		{
			name:        "plain text passthrough",
			status:      http.StatusOK,
			contentType: "text/plain",
			body:        "hi",
			wantSuccess: true,
			wantMessage: "hi",
		},
		{
			name:        "empty non-json body falls back to literal",
			status:      http.StatusOK,
			contentType: "text/plain",
			body:        "",
			wantSuccess: true,
			wantMessage: fallbackReply,
		},
		{
			name:        "declared json but unparseable degrades to raw text",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        "not json at all",
			wantSuccess: true,
			wantMessage: "not json at all",
		},
		{
			name:        "server error status",
			status:      http.StatusInternalServerError,
			contentType: "application/json",
			body:        `{"output":"ignored"}`,
			wantSuccess: false,
			wantMessage: msgConnError,
		},
		{
			name:        "not found status",
			status:      http.StatusNotFound,
			contentType: "text/plain",
			body:        "missing",
			wantSuccess: false,
			wantMessage: msgConnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL)
			res := client.Send(context.Background(), &WebhookRequest{Message: "hola"})

			assert.Equal(t, tt.wantSuccess, res.Success)
			assert.Equal(t, tt.wantMessage, res.Message)
			if !tt.wantSuccess {
				assert.NotEmpty(t, res.Error)
			}
		})
	}
}

func TestSendFailureStatusCarriesCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	res := NewClient(srv.URL).Send(context.Background(), &WebhookRequest{Message: "x"})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "502")
}

func TestSendTransportFailure(t *testing.T) {
	client := NewClient("http://example.invalid", WithDoer(&failingDoer{err: errors.New("dial refused")}))

	res := client.Send(context.Background(), &WebhookRequest{Message: "hola"})
	assert.False(t, res.Success)
	assert.Equal(t, msgConnError, res.Message)
	assert.Contains(t, res.Error, "dial refused")
}

func TestSendTimeoutIsDistinguishable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server arms client-disconnect detection,
		// then outlast the client timeout. The time.After arm bounds the
		// handler so srv.Close never waits on it forever.
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithTimeout(time.Millisecond))

	done := make(chan *Result, 1)
	go func() {
		done <- client.Send(context.Background(), &WebhookRequest{Message: "hola"})
	}()

	select {
	case res := <-done:
		assert.False(t, res.Success)
		assert.Equal(t, msgTimeout, res.Message)
		assert.Equal(t, errTimeout, res.Error)
	case <-time.After(2 * time.Second):
		t.Fatal("Send did not return within the timeout window")
	}
}

func TestHealthCheck(t *testing.T) {
	t.Run("true on any 2xx regardless of body", func(t *testing.T) {
		var got WebhookRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = decodeJSONBody(r, &got)
			w.WriteHeader(http.StatusAccepted)
			w.Write([]byte("whatever"))
		}))
		defer srv.Close()

		ok := NewClient(srv.URL).HealthCheck(context.Background())
		assert.True(t, ok)
		assert.Equal(t, healthProbeMessage, got.Message)
		assert.Equal(t, healthProbeUser, got.UserID)
		assert.Equal(t, healthProbeMessage, got.SessionID)
		if assert.NotNil(t, got.Context) {
			assert.Equal(t, healthProbeEmail, got.Context.UserEmail)
			assert.Equal(t, sourceTag, got.Context.Source)
		}
	})

	t.Run("false on non-success status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		assert.False(t, NewClient(srv.URL).HealthCheck(context.Background()))
	})

	t.Run("false when the transport always fails", func(t *testing.T) {
		client := NewClient("http://example.invalid", WithDoer(&failingDoer{err: errors.New("no route")}))
		assert.False(t, client.HealthCheck(context.Background()))
	})
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("")
	assert.Equal(t, DefaultWebhookURL, c.webhookURL)
	assert.Equal(t, DefaultTimeout, c.timeout)
}
