package implementation

import (
	"context"
	"os"
	"testing"

	"angus-connect-be/internal/model"
	"angus-connect-be/internal/repository"
	"angus-connect-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func notificationTestDB(t *testing.T) *gorm.DB {
	dsn := os.Getenv("TEST_DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("TEST_DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Notification{}, &model.NotificationRead{}))
	return db
}

func createNotification(t *testing.T, repo repository.NotificationRepository, userID uuid.UUID) model.Notification {
	notif := model.Notification{
		ID:       uuid.New(),
		UserID:   userID,
		TypeCode: "SYSTEM_BROADCAST",
		Title:    "Aviso",
		Message:  "mensaje de prueba",
	}
	require.NoError(t, repo.CreateNotification(context.Background(), &notif))
	return notif
}

func cleanupNotification(t *testing.T, db *gorm.DB, id uuid.UUID) {
	t.Cleanup(func() {
		db.Exec("DELETE FROM notification_reads WHERE notification_id = ?", id)
		db.Exec("DELETE FROM notifications WHERE id = ?", id)
	})
}

// One member reading an announcement must not mark it read for anyone else.
func TestBroadcastReadStateIsPerMember(t *testing.T) {
	db := notificationTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	memberA := uuid.New()
	memberB := uuid.New()

	// Baselines absorb broadcast rows left by other tests on a shared DB.
	baseA, err := repo.GetUnreadCount(ctx, memberA)
	require.NoError(t, err)
	baseB, err := repo.GetUnreadCount(ctx, memberB)
	require.NoError(t, err)

	broadcast := createNotification(t, repo, uuid.Nil)
	cleanupNotification(t, db, broadcast.ID)

	countA, err := repo.GetUnreadCount(ctx, memberA)
	require.NoError(t, err)
	countB, err := repo.GetUnreadCount(ctx, memberB)
	require.NoError(t, err)
	assert.Equal(t, baseA+1, countA)
	assert.Equal(t, baseB+1, countB)

	require.NoError(t, repo.MarkAllAsRead(ctx, memberA))

	countA, err = repo.GetUnreadCount(ctx, memberA)
	require.NoError(t, err)
	assert.Equal(t, int64(0), countA)

	countB, err = repo.GetUnreadCount(ctx, memberB)
	require.NoError(t, err)
	assert.Equal(t, baseB+1, countB, "member A reading the announcement hid it from member B")

	// The inbox read flags agree with the counts.
	listA, _, err := repo.GetNotificationsByUserID(ctx, memberA, 50, 0)
	require.NoError(t, err)
	listB, _, err := repo.GetNotificationsByUserID(ctx, memberB, 50, 0)
	require.NoError(t, err)
	require.NotEmpty(t, listA)
	require.NotEmpty(t, listB)
	assert.True(t, findNotification(listA, broadcast.ID).IsRead)
	assert.False(t, findNotification(listB, broadcast.ID).IsRead)
}

func TestMarkAsReadBroadcastIsPerMember(t *testing.T) {
	db := notificationTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	memberA := uuid.New()
	memberB := uuid.New()

	broadcast := createNotification(t, repo, uuid.Nil)
	cleanupNotification(t, db, broadcast.ID)

	require.NoError(t, repo.MarkAsRead(ctx, broadcast.ID, memberA))
	// Marking twice is a no-op, not an error.
	require.NoError(t, repo.MarkAsRead(ctx, broadcast.ID, memberA))

	listA, _, err := repo.GetNotificationsByUserID(ctx, memberA, 50, 0)
	require.NoError(t, err)
	listB, _, err := repo.GetNotificationsByUserID(ctx, memberB, 50, 0)
	require.NoError(t, err)
	assert.True(t, findNotification(listA, broadcast.ID).IsRead)
	assert.False(t, findNotification(listB, broadcast.ID).IsRead)
}

func TestMarkAsReadScopedToOwner(t *testing.T) {
	db := notificationTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	stranger := uuid.New()

	notif := createNotification(t, repo, owner)
	cleanupNotification(t, db, notif.ID)

	// Another member cannot mark someone else's notification read.
	err := repo.MarkAsRead(ctx, notif.ID, stranger)
	assert.Error(t, err)

	list, _, err := repo.GetNotificationsByUserID(ctx, owner, 10, 0)
	require.NoError(t, err)
	assert.False(t, findNotification(list, notif.ID).IsRead)

	require.NoError(t, repo.MarkAsRead(ctx, notif.ID, owner))

	list, _, err = repo.GetNotificationsByUserID(ctx, owner, 10, 0)
	require.NoError(t, err)
	assert.True(t, findNotification(list, notif.ID).IsRead)
}

func findNotification(list []model.Notification, id uuid.UUID) model.Notification {
	for _, n := range list {
		if n.ID == id {
			return n
		}
	}
	return model.Notification{}
}
