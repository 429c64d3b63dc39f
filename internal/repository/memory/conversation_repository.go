package memory

import (
	"time"

	"angus-connect-be/pkg/assistant"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ConversationRepository keeps one live assistant conversation per member.
// Conversations are transient: an idle hour evicts them.
type ConversationRepository struct {
	cache *cache.Cache
}

func NewConversationRepository() *ConversationRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ConversationRepository{
		cache: c,
	}
}

func (r *ConversationRepository) Save(userID uuid.UUID, conv *assistant.Conversation) {
	r.cache.Set(userID.String(), conv, cache.DefaultExpiration)
}

func (r *ConversationRepository) Get(userID uuid.UUID) (*assistant.Conversation, bool) {
	if x, found := r.cache.Get(userID.String()); found {
		return x.(*assistant.Conversation), true
	}
	return nil, false
}

func (r *ConversationRepository) Delete(userID uuid.UUID) {
	r.cache.Delete(userID.String())
}
