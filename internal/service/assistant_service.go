package service

import (
	"context"

	"angus-connect-be/internal/dto"
	"angus-connect-be/internal/repository/memory"
	"angus-connect-be/pkg/assistant"

	"github.com/google/uuid"
)

type IAssistantService interface {
	SendMessage(ctx context.Context, userId uuid.UUID, email string, req *dto.SendAssistantMessageRequest) (*dto.SendAssistantMessageResponse, error)
	GetMessages(userId uuid.UUID, email string) []dto.AssistantMessageResponse
	ClearMessages(userId uuid.UUID, email string)
	Status(userId uuid.UUID, email string) *dto.AssistantStatusResponse
	CheckConnection(ctx context.Context, userId uuid.UUID, email string) *dto.AssistantStatusResponse
}

// assistantService fronts the n8n conversation layer for the REST API. Each
// member gets one live conversation, held in the in-memory store.
type assistantService struct {
	client           assistant.Sender
	conversationRepo *memory.ConversationRepository
}

func NewAssistantService(client assistant.Sender, conversationRepo *memory.ConversationRepository) IAssistantService {
	return &assistantService{
		client:           client,
		conversationRepo: conversationRepo,
	}
}

func (s *assistantService) conversation(userId uuid.UUID, email string) *assistant.Conversation {
	if conv, found := s.conversationRepo.Get(userId); found {
		return conv
	}

	conv := assistant.NewConversation(s.client, assistant.Identity{
		UserID: userId.String(),
		Email:  email,
	})
	s.conversationRepo.Save(userId, conv)
	return conv
}

func toMessageResponses(messages []assistant.ChatMessage) []dto.AssistantMessageResponse {
	out := make([]dto.AssistantMessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, dto.AssistantMessageResponse{
			Id:        m.ID,
			Role:      string(m.Role),
			Content:   m.Content,
			Timestamp: m.Timestamp,
			IsError:   m.IsError,
		})
	}
	return out
}

func (s *assistantService) toStatus(conv *assistant.Conversation) *dto.AssistantStatusResponse {
	return &dto.AssistantStatusResponse{
		Connected: conv.IsConnected(),
		Busy:      conv.IsBusy(),
		LastError: conv.LastError(),
	}
}

func (s *assistantService) SendMessage(ctx context.Context, userId uuid.UUID, email string, req *dto.SendAssistantMessageRequest) (*dto.SendAssistantMessageResponse, error) {
	conv := s.conversation(userId, email)

	conv.SendMessage(ctx, req.Message)

	// Keep the conversation's idle timer fresh.
	s.conversationRepo.Save(userId, conv)

	return &dto.SendAssistantMessageResponse{
		Messages:  toMessageResponses(conv.Messages()),
		Connected: conv.IsConnected(),
	}, nil
}

func (s *assistantService) GetMessages(userId uuid.UUID, email string) []dto.AssistantMessageResponse {
	conv := s.conversation(userId, email)
	return toMessageResponses(conv.Messages())
}

func (s *assistantService) ClearMessages(userId uuid.UUID, email string) {
	conv := s.conversation(userId, email)
	conv.ClearMessages()
}

func (s *assistantService) Status(userId uuid.UUID, email string) *dto.AssistantStatusResponse {
	conv := s.conversation(userId, email)
	return s.toStatus(conv)
}

func (s *assistantService) CheckConnection(ctx context.Context, userId uuid.UUID, email string) *dto.AssistantStatusResponse {
	conv := s.conversation(userId, email)
	conv.CheckConnection(ctx)
	return s.toStatus(conv)
}
