package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

const (
	msgServiceUnavailable = "Servicio temporalmente no disponible"
	msgProbeFailed        = "El servicio de asistencia está temporalmente no disponible. Por favor, inténtalo de nuevo en unos minutos."

	errorTemplate = "🤖 **Error de conexión**\n\n%s\n\n💡 **Posibles soluciones:**\n• El webhook de N8N no está configurado\n• El workflow no está activo\n• Problema temporal del servicio\n• Verifica tu conexión a internet\n\n🔄 **Intenta:**\n• Hacer clic en \"Reintentar\" arriba\n• Esperar unos minutos y volver a intentar"
)

// ChatMessage is one entry in a conversation log. Once appended it is never
// mutated or reordered.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	IsError   bool      `json:"is_error,omitempty"`
}

// Sender is what a Conversation needs from the webhook client.
type Sender interface {
	Send(ctx context.Context, req *WebhookRequest) *Result
	HealthCheck(ctx context.Context) bool
}

var _ Sender = &Client{}

// Identity is the authenticated member attached to a conversation, used only
// to populate userId/userEmail on outbound requests.
type Identity struct {
	UserID string
	Email  string
}

// Conversation owns the message log, the derived connection state and the
// send lifecycle for one assistant session. It lives in memory only and is
// discarded when the owning screen/session goes away.
type Conversation struct {
	client   Sender
	identity Identity

	mu        sync.Mutex
	messages  []ChatMessage
	busy      bool
	connected bool
	lastErr   string
}

func NewConversation(client Sender, identity Identity) *Conversation {
	return &Conversation{
		client:   client,
		identity: identity,
	}
}

// CheckConnection probes the webhook and updates connection state. Probe
// outcomes are the only thing that moves the Connected/Disconnected machine.
func (c *Conversation) CheckConnection(ctx context.Context) bool {
	ok := c.client.HealthCheck(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = ok
	if ok {
		c.lastErr = ""
	} else {
		c.lastErr = msgServiceUnavailable
	}
	return ok
}

// SendMessage appends the user entry immediately, then resolves exactly one
// assistant entry, either a genuine reply or a synthesized error notice. A blank
// message or a send already in flight is a no-op; the busy flag is the sole
// concurrency guard (no queueing, no cancellation of the in-flight send).
func (c *Conversation) SendMessage(ctx context.Context, text string) {
	c.mu.Lock()
	if strings.TrimSpace(text) == "" || c.busy {
		c.mu.Unlock()
		return
	}
	c.busy = true
	c.lastErr = ""
	c.messages = append(c.messages, ChatMessage{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	})
	wasConnected := c.connected
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	if !wasConnected {
		if !c.CheckConnection(ctx) {
			c.appendFailure(msgProbeFailed)
			return
		}
	}

	req := &WebhookRequest{
		Message:   text,
		UserID:    c.identity.UserID,
		SessionID: "session_" + uuid.NewString(),
		Context: &WebhookContext{
			UserEmail: c.identity.Email,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Source:    sourceTag,
		},
	}

	res := c.client.Send(ctx, req)
	if res.Success {
		c.mu.Lock()
		c.messages = append(c.messages, ChatMessage{
			ID:        uuid.NewString(),
			Role:      RoleAssistant,
			Content:   res.Message,
			Timestamp: time.Now(),
		})
		c.mu.Unlock()
		return
	}

	// A failed send while marked Connected does NOT flip the state back to
	// Disconnected; only an explicit probe changes it. Stale optimism is the
	// product behavior here.
	reason := res.Error
	if reason == "" {
		reason = res.Message
	}
	c.appendFailure(reason)
}

// ClearMessages resets the log and the stored error. Connection state is left
// alone.
func (c *Conversation) ClearMessages() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
	c.lastErr = ""
}

// Messages returns a snapshot copy of the log.
func (c *Conversation) Messages() []ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *Conversation) IsBusy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// LastError is the user-facing error text from the most recent failure, empty
// after a successful probe or send.
func (c *Conversation) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Conversation) appendFailure(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = reason
	c.messages = append(c.messages, ChatMessage{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   fmt.Sprintf(errorTemplate, reason),
		Timestamp: time.Now(),
		IsError:   true,
	})
}
