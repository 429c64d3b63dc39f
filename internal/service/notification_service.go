package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"angus-connect-be/internal/model"
	"angus-connect-be/internal/pkg/logger"
	"angus-connect-be/internal/repository"
	"angus-connect-be/pkg/events"
	pktNats "angus-connect-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

// notificationTemplate renders one event type into a member-facing message.
// Placeholders use {key} and resolve against the event payload.
type notificationTemplate struct {
	Title     string
	Template  string
	Broadcast bool
}

var notificationTemplates = map[string]notificationTemplate{
	events.TypeRemateActivado: {
		Title:     "Remate en curso",
		Template:  "El remate \"{titulo}\" ya está activo. ¡No te lo pierdas!",
		Broadcast: true,
	},
	events.TypeRemateFinalizado: {
		Title:     "Remate finalizado",
		Template:  "El remate \"{titulo}\" ha finalizado.",
		Broadcast: true,
	},
	events.TypeNoticiaPublicada: {
		Title:     "Nueva noticia",
		Template:  "Se publicó una nueva noticia: \"{titulo}\"",
		Broadcast: true,
	},
	events.TypeUserRegistered: {
		Title:    "Bienvenido a Angus Connect",
		Template: "Hola {nombre}, tu cuenta ya está activa.",
	},
	// Admin announcements carry their own title in the payload.
	events.TypeSystemBroadcast: {
		Template:  "{message}",
		Broadcast: true,
	},
}

type NotificationService struct {
	repo       repository.NotificationRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(repo repository.NotificationRepository, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	tmpl, ok := notificationTemplates[typeCode]
	if !ok {
		// Not every bus event turns into a member notification.
		s.logger.Debug("NotificationService", fmt.Sprintf("No template for event '%s', skipping", typeCode), nil)
		return nil
	}

	s.logger.Info("NotificationService", fmt.Sprintf("Processing event: %s", typeCode), map[string]interface{}{"type": typeCode})

	if tmpl.Broadcast {
		notif := s.buildNotification(uuid.Nil, typeCode, tmpl, event)

		// Broadcast rows persist once with the nil user id. The read
		// path folds them into every member's inbox.
		if err := s.repo.CreateNotification(ctx, &notif); err != nil {
			s.logger.Error("NotificationService", "Error saving broadcast notification", map[string]interface{}{"error": err})
			return err
		}

		if s.delivery != nil {
			s.delivery.Broadcast(notif)
		}
		return nil
	}

	// Self-targeted: the payload names the recipient.
	uidStr, ok := event.Payload()["user_id"].(string)
	if !ok {
		s.logger.Warn("NotificationService", fmt.Sprintf("No user_id in payload for event %s", typeCode), nil)
		return nil
	}
	userID, err := uuid.Parse(uidStr)
	if err != nil {
		s.logger.Warn("NotificationService", "Invalid user_id in payload", map[string]interface{}{"user_id": uidStr})
		return nil
	}

	notif := s.buildNotification(userID, typeCode, tmpl, event)

	if err := s.repo.CreateNotification(ctx, &notif); err != nil {
		s.logger.Error("NotificationService", fmt.Sprintf("Error saving notification for user %s", userID), map[string]interface{}{"error": err})
		return err
	}

	if s.delivery != nil {
		s.delivery.Send(userID, notif)
	}

	return nil
}

func (s *NotificationService) buildNotification(userID uuid.UUID, typeCode string, tmpl notificationTemplate, event events.Event) model.Notification {
	payload := event.Payload()

	title := tmpl.Title
	if title == "" {
		if t, ok := payload["title"].(string); ok {
			title = t
		}
	}

	msg := tmpl.Template
	for k, v := range payload {
		placeholder := fmt.Sprintf("{%s}", k)
		valStr := fmt.Sprintf("%v", v)
		msg = strings.ReplaceAll(msg, placeholder, valStr)
	}

	entityType := ""
	var entityID *uuid.UUID

	if et, ok := payload["entity_type"].(string); ok {
		entityType = et
	}
	if eidStr, ok := payload["entity_id"].(string); ok {
		if eid, err := uuid.Parse(eidStr); err == nil {
			entityID = &eid
		}
	}

	metaMap := make(map[string]interface{})
	for k, v := range payload {
		metaMap[k] = v
	}
	if entityType != "" && entityID != nil {
		metaMap["action_url"] = fmt.Sprintf("/%ss/%s", entityType, entityID.String())
	}
	metaJSON, _ := json.Marshal(metaMap)

	return model.Notification{
		ID:         uuid.New(),
		UserID:     userID,
		TypeCode:   typeCode,
		Title:      title,
		Message:    msg,
		Metadata:   datatypes.JSON(metaJSON),
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now(),
		IsRead:     false,
	}
}

// GetNotifications fetches notifications for a user.
func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByUserID(ctx, userID, limit, offset)
}

// GetUnreadCount fetches unread count.
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkAsRead marks a notification as read for one member.
func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}

// MarkAllAsRead marks all notifications as read for a user.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
