package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pethealth/internal/database"
	"pethealth/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestNotificationCreateAssignsID(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()

	n := &domain.Notification{
		UserID:  1,
		Type:    domain.NotifAppointment,
		Title:   "Confirmed",
		Message: "See you tomorrow",
		Data:    map[string]any{"appointment_id": float64(5)},
	}
	require.NoError(t, repo.Create(ctx, n))
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.CreatedAt.IsZero())

	list, err := repo.ListByUser(ctx, 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, n.ID, list[0].ID)
	assert.Equal(t, "See you tomorrow", list[0].Message)
	assert.Equal(t, float64(5), list[0].Data["appointment_id"])
}

func TestNotificationListNewestFirst(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Notification{
			UserID:    1,
			Type:      domain.NotifVaccination,
			Title:     "n",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	list, err := repo.ListByUser(ctx, 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))
	assert.True(t, list[1].CreatedAt.After(list[2].CreatedAt))

	// pagination
	page, err := repo.ListByUser(ctx, 1, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestNotificationCounts(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Notification{UserID: 1, Type: domain.NotifAppointment, Title: "a"}))
	require.NoError(t, repo.Create(ctx, &domain.Notification{UserID: 1, Type: domain.NotifMedication, Title: "b", IsRead: true}))
	require.NoError(t, repo.Create(ctx, &domain.Notification{UserID: 2, Type: domain.NotifAppointment, Title: "c"}))

	unread, err := repo.CountUnread(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	total, err := repo.CountByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestNotificationMarkAsReadIsUserScoped(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()

	n := &domain.Notification{UserID: 1, Type: domain.NotifAppointment, Title: "a"}
	require.NoError(t, repo.Create(ctx, n))

	// another user cannot acknowledge it
	err := repo.MarkAsRead(ctx, n.ID, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.MarkAsRead(ctx, n.ID, 1))
	unread, err := repo.CountUnread(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestNotificationMarkAllAsRead(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Notification{UserID: 1, Type: domain.NotifAppointment, Title: "n"}))
	}
	require.NoError(t, repo.Create(ctx, &domain.Notification{UserID: 2, Type: domain.NotifAppointment, Title: "other"}))

	require.NoError(t, repo.MarkAllAsRead(ctx, 1))

	unread, err := repo.CountUnread(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, unread)

	otherUnread, err := repo.CountUnread(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), otherUnread)
}

func TestNotificationDelete(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()

	n := &domain.Notification{UserID: 1, Type: domain.NotifAppointment, Title: "a"}
	require.NoError(t, repo.Create(ctx, n))

	assert.ErrorIs(t, repo.Delete(ctx, n.ID, 2), gorm.ErrRecordNotFound)
	require.NoError(t, repo.Delete(ctx, n.ID, 1))
	assert.ErrorIs(t, repo.Delete(ctx, n.ID, 1), gorm.ErrRecordNotFound)
}

func TestNotificationMarkCompleted(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()

	n := &domain.Notification{UserID: 1, Type: domain.NotifVaccination, Title: "due"}
	require.NoError(t, repo.Create(ctx, n))

	require.NoError(t, repo.MarkCompleted(ctx, n.ID, 1))

	list, err := repo.ListByUser(ctx, 1, 10, 0)
	require.NoError(t, err)
	assert.True(t, list[0].IsCompleted)
	assert.False(t, list[0].IsRead)
}
