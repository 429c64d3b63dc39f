package service

import (
	"context"
	"sync"
	"testing"

	"angus-connect-be/internal/dto"
	"angus-connect-be/internal/repository/memory"
	"angus-connect-be/pkg/assistant"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type scriptedSender struct {
	mu        sync.Mutex
	healthy   bool
	result    *assistant.Result
	sendCalls int
	lastReq   *assistant.WebhookRequest
}

func (s *scriptedSender) Send(ctx context.Context, req *assistant.WebhookRequest) *assistant.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendCalls++
	s.lastReq = req
	return s.result
}

func (s *scriptedSender) HealthCheck(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.healthy
}

func newAssistantFixture(sender assistant.Sender) IAssistantService {
	return NewAssistantService(sender, memory.NewConversationRepository())
}

func TestAssistantSendMessageSuccess(t *testing.T) {
	sender := &scriptedSender{healthy: true, result: &assistant.Result{Success: true, Message: "El próximo remate es el viernes."}}
	svc := newAssistantFixture(sender)
	userID := uuid.New()

	res, err := svc.SendMessage(context.Background(), userID, "socio@angus.org.ar", &dto.SendAssistantMessageRequest{
		Message: "¿Cuándo es el próximo remate?",
	})

	assert.NoError(t, err)
	assert.True(t, res.Connected)
	if assert.Len(t, res.Messages, 2) {
		assert.Equal(t, "user", res.Messages[0].Role)
		assert.Equal(t, "assistant", res.Messages[1].Role)
		assert.Equal(t, "El próximo remate es el viernes.", res.Messages[1].Content)
		assert.False(t, res.Messages[1].IsError)
	}

	// The member identity travels on the outbound request.
	assert.Equal(t, userID.String(), sender.lastReq.UserID)
	assert.Equal(t, "socio@angus.org.ar", sender.lastReq.Context.UserEmail)
}

func TestAssistantSendMessageFailureNeverErrors(t *testing.T) {
	sender := &scriptedSender{healthy: false}
	svc := newAssistantFixture(sender)

	res, err := svc.SendMessage(context.Background(), uuid.New(), "socio@angus.org.ar", &dto.SendAssistantMessageRequest{
		Message: "hola",
	})

	// Delivery failures surface as error entries in the log, not as errors.
	assert.NoError(t, err)
	assert.False(t, res.Connected)
	if assert.Len(t, res.Messages, 2) {
		assert.True(t, res.Messages[1].IsError)
	}
	assert.Equal(t, 0, sender.sendCalls)
}

func TestAssistantConversationPersistsAcrossCalls(t *testing.T) {
	sender := &scriptedSender{healthy: true, result: &assistant.Result{Success: true, Message: "ok"}}
	svc := newAssistantFixture(sender)
	userID := uuid.New()

	_, err := svc.SendMessage(context.Background(), userID, "a@angus.org.ar", &dto.SendAssistantMessageRequest{Message: "primera"})
	assert.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), userID, "a@angus.org.ar", &dto.SendAssistantMessageRequest{Message: "segunda"})
	assert.NoError(t, err)

	msgs := svc.GetMessages(userID, "a@angus.org.ar")
	assert.Len(t, msgs, 4)

	// A different member starts clean.
	assert.Empty(t, svc.GetMessages(uuid.New(), "b@angus.org.ar"))
}

func TestAssistantClearMessages(t *testing.T) {
	sender := &scriptedSender{healthy: true, result: &assistant.Result{Success: true, Message: "ok"}}
	svc := newAssistantFixture(sender)
	userID := uuid.New()

	_, _ = svc.SendMessage(context.Background(), userID, "a@angus.org.ar", &dto.SendAssistantMessageRequest{Message: "hola"})
	assert.NotEmpty(t, svc.GetMessages(userID, "a@angus.org.ar"))

	svc.ClearMessages(userID, "a@angus.org.ar")
	assert.Empty(t, svc.GetMessages(userID, "a@angus.org.ar"))

	// Clearing leaves the connection state alone.
	status := svc.Status(userID, "a@angus.org.ar")
	assert.True(t, status.Connected)
}

func TestAssistantCheckConnection(t *testing.T) {
	sender := &scriptedSender{healthy: false}
	svc := newAssistantFixture(sender)
	userID := uuid.New()

	status := svc.Status(userID, "a@angus.org.ar")
	assert.False(t, status.Connected)
	assert.Empty(t, status.LastError)

	status = svc.CheckConnection(context.Background(), userID, "a@angus.org.ar")
	assert.False(t, status.Connected)
	assert.NotEmpty(t, status.LastError)

	sender.mu.Lock()
	sender.healthy = true
	sender.mu.Unlock()

	status = svc.CheckConnection(context.Background(), userID, "a@angus.org.ar")
	assert.True(t, status.Connected)
	assert.Empty(t, status.LastError)
}
