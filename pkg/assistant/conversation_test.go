package assistant

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeSender records calls and returns scripted outcomes.
type fakeSender struct {
	mu          sync.Mutex
	healthy     bool
	result      *Result
	sendCalls   int
	healthCalls int
	lastReq     *WebhookRequest
}

func (f *fakeSender) Send(ctx context.Context, req *WebhookRequest) *Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendCalls++
	f.lastReq = req
	return f.result
}

func (f *fakeSender) HealthCheck(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.healthCalls++
	return f.healthy
}

func TestSendMessageAppendsExactlyTwoEntries(t *testing.T) {
	sender := &fakeSender{healthy: true, result: &Result{Success: true, Message: "hola"}}
	conv := NewConversation(sender, Identity{UserID: "u-1", Email: "socio@angus.org.ar"})

	conv.SendMessage(context.Background(), "¿Cuándo es el próximo remate?")

	msgs := conv.Messages()
	if assert.Len(t, msgs, 2) {
		assert.Equal(t, RoleUser, msgs[0].Role)
		assert.Equal(t, "¿Cuándo es el próximo remate?", msgs[0].Content)
		assert.False(t, msgs[0].IsError)

		assert.Equal(t, RoleAssistant, msgs[1].Role)
		assert.Equal(t, "hola", msgs[1].Content)
		assert.False(t, msgs[1].IsError)
	}
	assert.Equal(t, 1, sender.sendCalls)
	assert.NotEqual(t, msgs[0].ID, msgs[1].ID)
	assert.Empty(t, conv.LastError())
}

func TestSendMessageBlankIsNoOp(t *testing.T) {
	sender := &fakeSender{healthy: true, result: &Result{Success: true, Message: "x"}}
	conv := NewConversation(sender, Identity{})

	conv.SendMessage(context.Background(), "")
	conv.SendMessage(context.Background(), "   ")

	assert.Empty(t, conv.Messages())
	assert.Equal(t, 0, sender.sendCalls)
	assert.Equal(t, 0, sender.healthCalls)
}

func TestSendMessageWhileBusyIsNoOp(t *testing.T) {
	sender := &fakeSender{healthy: true, result: &Result{Success: true, Message: "ok"}}
	conv := NewConversation(sender, Identity{})

	// Simulate an in-flight send.
	conv.mu.Lock()
	conv.busy = true
	conv.mu.Unlock()

	conv.SendMessage(context.Background(), "hola")

	assert.Empty(t, conv.Messages())
	assert.Equal(t, 0, sender.sendCalls)
}

func TestSendMessageBusyClearedOnEveryPath(t *testing.T) {
	tests := []struct {
		name   string
		sender *fakeSender
	}{
		{"success", &fakeSender{healthy: true, result: &Result{Success: true, Message: "ok"}}},
		{"send failure", &fakeSender{healthy: true, result: &Result{Success: false, Message: msgConnError, Error: "boom"}}},
		{"probe failure", &fakeSender{healthy: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := NewConversation(tt.sender, Identity{})
			conv.SendMessage(context.Background(), "hola")
			assert.False(t, conv.IsBusy())
		})
	}
}

func TestSendMessageProbesWhenDisconnected(t *testing.T) {
	sender := &fakeSender{healthy: true, result: &Result{Success: true, Message: "ok"}}
	conv := NewConversation(sender, Identity{})

	// Initial state is Disconnected, so the first send must probe.
	conv.SendMessage(context.Background(), "hola")

	assert.Equal(t, 1, sender.healthCalls)
	assert.Equal(t, 1, sender.sendCalls)
	assert.True(t, conv.IsConnected())

	// Now Connected: no further probing.
	conv.SendMessage(context.Background(), "otra consulta")
	assert.Equal(t, 1, sender.healthCalls)
	assert.Equal(t, 2, sender.sendCalls)
}

func TestSendMessageProbeFailureSkipsNetworkSend(t *testing.T) {
	sender := &fakeSender{healthy: false}
	conv := NewConversation(sender, Identity{})

	conv.SendMessage(context.Background(), "hola")

	msgs := conv.Messages()
	if assert.Len(t, msgs, 2) {
		assert.Equal(t, RoleAssistant, msgs[1].Role)
		assert.True(t, msgs[1].IsError)
		assert.Contains(t, msgs[1].Content, msgProbeFailed)
	}
	assert.Equal(t, 0, sender.sendCalls)
	assert.False(t, conv.IsConnected())
	assert.Equal(t, msgProbeFailed, conv.LastError())
}

func TestSendMessageFailureSynthesizesErrorEntry(t *testing.T) {
	sender := &fakeSender{healthy: true, result: &Result{Success: false, Message: msgTimeout, Error: errTimeout}}
	conv := NewConversation(sender, Identity{})

	conv.SendMessage(context.Background(), "hola")

	msgs := conv.Messages()
	if assert.Len(t, msgs, 2) {
		assert.True(t, msgs[1].IsError)
		assert.Contains(t, msgs[1].Content, errTimeout)
	}
	assert.Equal(t, errTimeout, conv.LastError())

	// Failed send while Connected does not flip the connection state.
	assert.True(t, conv.IsConnected())
}

func TestSendMessageBuildsRequestFromIdentity(t *testing.T) {
	sender := &fakeSender{healthy: true, result: &Result{Success: true, Message: "ok"}}
	conv := NewConversation(sender, Identity{UserID: "u-42", Email: "cabañera@angus.org.ar"})

	conv.SendMessage(context.Background(), "hola")

	req := sender.lastReq
	if assert.NotNil(t, req) {
		assert.Equal(t, "hola", req.Message)
		assert.Equal(t, "u-42", req.UserID)
		assert.NotEmpty(t, req.SessionID)
		if assert.NotNil(t, req.Context) {
			assert.Equal(t, "cabañera@angus.org.ar", req.Context.UserEmail)
			assert.Equal(t, sourceTag, req.Context.Source)
			assert.NotEmpty(t, req.Context.Timestamp)
		}
	}

	// Session identifiers are fresh per send.
	first := req.SessionID
	conv.SendMessage(context.Background(), "otra")
	assert.NotEqual(t, first, sender.lastReq.SessionID)
}

func TestCheckConnectionTransitions(t *testing.T) {
	sender := &fakeSender{healthy: false}
	conv := NewConversation(sender, Identity{})

	assert.False(t, conv.CheckConnection(context.Background()))
	assert.False(t, conv.IsConnected())
	assert.Equal(t, msgServiceUnavailable, conv.LastError())

	// A successful probe after a failed one clears the error.
	sender.mu.Lock()
	sender.healthy = true
	sender.mu.Unlock()

	assert.True(t, conv.CheckConnection(context.Background()))
	assert.True(t, conv.IsConnected())
	assert.Empty(t, conv.LastError())
}

func TestClearMessages(t *testing.T) {
	sender := &fakeSender{healthy: false}
	conv := NewConversation(sender, Identity{})

	conv.SendMessage(context.Background(), "hola")
	assert.NotEmpty(t, conv.Messages())
	assert.NotEmpty(t, conv.LastError())

	connectedBefore := conv.IsConnected()
	conv.ClearMessages()

	assert.Empty(t, conv.Messages())
	assert.Empty(t, conv.LastError())
	assert.Equal(t, connectedBefore, conv.IsConnected())
}
