package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"angus-connect-be/internal/model"
	"angus-connect-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memNotificationRepo struct {
	created []model.Notification
	failing bool
}

func (r *memNotificationRepo) CreateNotification(ctx context.Context, n *model.Notification) error {
	if r.failing {
		return assert.AnError
	}
	r.created = append(r.created, *n)
	return nil
}

func (r *memNotificationRepo) GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return r.created, int64(len(r.created)), nil
}

func (r *memNotificationRepo) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return int64(len(r.created)), nil
}

func (r *memNotificationRepo) MarkAsRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	return nil
}

func (r *memNotificationRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return nil
}

type recordingDelivery struct {
	sent      map[uuid.UUID][]model.Notification
	broadcast []model.Notification
}

func newRecordingDelivery() *recordingDelivery {
	return &recordingDelivery{sent: make(map[uuid.UUID][]model.Notification)}
}

func (d *recordingDelivery) Send(userID uuid.UUID, n model.Notification) {
	d.sent[userID] = append(d.sent[userID], n)
}

func (d *recordingDelivery) Broadcast(n model.Notification) {
	d.broadcast = append(d.broadcast, n)
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newNotificationFixture() (*NotificationService, *memNotificationRepo, *recordingDelivery) {
	repo := &memNotificationRepo{}
	delivery := newRecordingDelivery()
	svc := NewNotificationService(repo, nil, delivery, nopLogger{})
	return svc, repo, delivery
}

func TestHandleEventBroadcastPersistsOnceWithNilUser(t *testing.T) {
	svc, repo, delivery := newNotificationFixture()
	remateID := uuid.New()

	event := events.BaseEvent{
		Type: "events." + events.TypeRemateActivado,
		Data: map[string]interface{}{
			"titulo":      "Remate Anual de Toros",
			"entity_type": "remate",
			"entity_id":   remateID.String(),
		},
		OccurredAt: time.Now(),
	}

	err := svc.handleEvent(context.Background(), event)
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	notif := repo.created[0]
	assert.Equal(t, uuid.Nil, notif.UserID)
	assert.Equal(t, events.TypeRemateActivado, notif.TypeCode)
	assert.Equal(t, "Remate en curso", notif.Title)
	assert.Equal(t, "El remate \"Remate Anual de Toros\" ya está activo. ¡No te lo pierdas!", notif.Message)
	assert.Equal(t, "remate", notif.EntityType)

	var meta map[string]interface{}
	require.NoError(t, json.Unmarshal(notif.Metadata, &meta))
	assert.Equal(t, "/remates/"+remateID.String(), meta["action_url"])

	assert.Len(t, delivery.broadcast, 1)
	assert.Empty(t, delivery.sent)
}

func TestHandleEventSelfTargetedDeliversToPayloadUser(t *testing.T) {
	svc, repo, delivery := newNotificationFixture()
	userID := uuid.New()

	event := events.BaseEvent{
		Type: "events." + events.TypeUserRegistered,
		Data: map[string]interface{}{
			"user_id": userID.String(),
			"nombre":  "María",
		},
		OccurredAt: time.Now(),
	}

	err := svc.handleEvent(context.Background(), event)
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, userID, repo.created[0].UserID)
	assert.Equal(t, "Hola María, tu cuenta ya está activa.", repo.created[0].Message)

	assert.Len(t, delivery.sent[userID], 1)
	assert.Empty(t, delivery.broadcast)
}

func TestHandleEventUnknownTypeIsSkipped(t *testing.T) {
	svc, repo, delivery := newNotificationFixture()

	event := events.BaseEvent{
		Type:       "events.SOMETHING_ELSE",
		Data:       map[string]interface{}{},
		OccurredAt: time.Now(),
	}

	err := svc.handleEvent(context.Background(), event)
	assert.NoError(t, err)
	assert.Empty(t, repo.created)
	assert.Empty(t, delivery.broadcast)
}

func TestHandleEventMissingUserIDIsDropped(t *testing.T) {
	svc, repo, _ := newNotificationFixture()

	event := events.BaseEvent{
		Type:       "events." + events.TypeUserRegistered,
		Data:       map[string]interface{}{"nombre": "sin id"},
		OccurredAt: time.Now(),
	}

	// Malformed payloads are dropped, not retried.
	err := svc.handleEvent(context.Background(), event)
	assert.NoError(t, err)
	assert.Empty(t, repo.created)
}

func TestHandleEventSystemBroadcastUsesPayloadTitle(t *testing.T) {
	svc, repo, _ := newNotificationFixture()

	event := events.BaseEvent{
		Type: "events." + events.TypeSystemBroadcast,
		Data: map[string]interface{}{
			"title":   "Mantenimiento programado",
			"message": "El portal estará fuera de servicio el sábado.",
		},
		OccurredAt: time.Now(),
	}

	err := svc.handleEvent(context.Background(), event)
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "Mantenimiento programado", repo.created[0].Title)
	assert.Equal(t, "El portal estará fuera de servicio el sábado.", repo.created[0].Message)
}

func TestHandleEventRepoFailureIsReturned(t *testing.T) {
	repo := &memNotificationRepo{failing: true}
	svc := NewNotificationService(repo, nil, newRecordingDelivery(), nopLogger{})

	event := events.BaseEvent{
		Type:       "events." + events.TypeNoticiaPublicada,
		Data:       map[string]interface{}{"titulo": "x"},
		OccurredAt: time.Now(),
	}

	// Persistence failures propagate so the bus can redeliver.
	err := svc.handleEvent(context.Background(), event)
	assert.Error(t, err)
}
