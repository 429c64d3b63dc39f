package implementation

import (
	"context"
	"errors"
	"time"

	"angus-connect-be/internal/model"
	"angus-connect-be/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) CreateNotification(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// GetNotificationsByUserID returns the member's own notifications plus
// broadcast rows (user_id = uuid.Nil), newest first. Broadcast rows get
// their read state from notification_reads, never from the shared column.
func (r *NotificationRepositoryImpl) GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	var notifications []model.Notification
	var total int64

	db := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? OR user_id = ?", userID, uuid.Nil)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}

	if err := r.overlayBroadcastReadState(ctx, userID, notifications); err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (r *NotificationRepositoryImpl) overlayBroadcastReadState(ctx context.Context, userID uuid.UUID, notifications []model.Notification) error {
	broadcastIDs := make([]uuid.UUID, 0, len(notifications))
	for _, n := range notifications {
		if n.UserID == uuid.Nil {
			broadcastIDs = append(broadcastIDs, n.ID)
		}
	}
	if len(broadcastIDs) == 0 {
		return nil
	}

	var reads []model.NotificationRead
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND notification_id IN ?", userID, broadcastIDs).
		Find(&reads).Error
	if err != nil {
		return err
	}

	readAt := make(map[uuid.UUID]time.Time, len(reads))
	for _, read := range reads {
		readAt[read.NotificationID] = read.ReadAt
	}

	for i := range notifications {
		if notifications[i].UserID != uuid.Nil {
			continue
		}
		if at, ok := readAt[notifications[i].ID]; ok {
			at := at
			notifications[i].IsRead = true
			notifications[i].ReadAt = &at
		} else {
			notifications[i].IsRead = false
			notifications[i].ReadAt = nil
		}
	}
	return nil
}

func (r *NotificationRepositoryImpl) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where(`(user_id = ? AND is_read = ?)
			OR (user_id = ? AND NOT EXISTS (
				SELECT 1 FROM notification_reads nr
				WHERE nr.notification_id = notifications.id AND nr.user_id = ?))`,
			userID, false, uuid.Nil, userID).
		Count(&count).Error
	return count, err
}

// MarkAsRead marks one notification read for the given member. A member can
// only touch their own rows; broadcast rows get a per-member read mark.
func (r *NotificationRepositoryImpl) MarkAsRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	var notification model.Notification
	err := r.db.WithContext(ctx).First(&notification, "id = ?", notificationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.New("notification not found")
	}
	if err != nil {
		return err
	}

	if notification.UserID == uuid.Nil {
		read := model.NotificationRead{
			NotificationID: notificationID,
			UserID:         userID,
			ReadAt:         time.Now(),
		}
		return r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&read).Error
	}

	// Not the owner: report not-found rather than leaking the row.
	if notification.UserID != userID {
		return errors.New("notification not found")
	}

	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		}).Error
}

// MarkAllAsRead flips the member's own unread rows and drops a read mark on
// every broadcast row the member has not read yet.
func (r *NotificationRepositoryImpl) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	now := time.Now()

	err := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		}).Error
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Exec(`
		INSERT INTO notification_reads (notification_id, user_id, read_at)
		SELECT n.id, ?, ? FROM notifications n
		WHERE n.user_id = ? AND NOT EXISTS (
			SELECT 1 FROM notification_reads nr
			WHERE nr.notification_id = n.id AND nr.user_id = ?)`,
		userID, now, uuid.Nil, userID).Error
}
