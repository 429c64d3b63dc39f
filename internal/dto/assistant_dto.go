package dto

import "time"

type SendAssistantMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

type AssistantMessageResponse struct {
	Id        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	IsError   bool      `json:"is_error,omitempty"`
}

type SendAssistantMessageResponse struct {
	Messages  []AssistantMessageResponse `json:"messages"`
	Connected bool                       `json:"connected"`
}

type AssistantStatusResponse struct {
	Connected bool   `json:"connected"`
	Busy      bool   `json:"busy"`
	LastError string `json:"last_error,omitempty"`
}
