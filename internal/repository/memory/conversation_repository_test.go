package memory

import (
	"testing"

	"angus-connect-be/pkg/assistant"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestConversationRepositoryRoundTrip(t *testing.T) {
	repo := NewConversationRepository()
	userID := uuid.New()

	_, found := repo.Get(userID)
	assert.False(t, found)

	conv := assistant.NewConversation(nil, assistant.Identity{UserID: userID.String()})
	repo.Save(userID, conv)

	got, found := repo.Get(userID)
	assert.True(t, found)
	assert.Same(t, conv, got)
}

func TestConversationRepositoryIsolatesUsers(t *testing.T) {
	repo := NewConversationRepository()
	alice := uuid.New()
	bob := uuid.New()

	convA := assistant.NewConversation(nil, assistant.Identity{UserID: alice.String()})
	repo.Save(alice, convA)

	_, found := repo.Get(bob)
	assert.False(t, found)

	got, found := repo.Get(alice)
	assert.True(t, found)
	assert.Same(t, convA, got)
}

func TestConversationRepositoryDelete(t *testing.T) {
	repo := NewConversationRepository()
	userID := uuid.New()

	repo.Save(userID, assistant.NewConversation(nil, assistant.Identity{}))
	repo.Delete(userID)

	_, found := repo.Get(userID)
	assert.False(t, found)

	// Deleting an absent entry is a no-op.
	repo.Delete(userID)
}
