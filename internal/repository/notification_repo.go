package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pethealth/internal/domain"
)

type notificationModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	UserID      int64      `gorm:"column:user_id;index:idx_notifications_user_unread"`
	Type        string     `gorm:"column:type"`
	Title       string     `gorm:"column:title"`
	Message     *string    `gorm:"column:message"`
	Priority    string     `gorm:"column:priority"`
	IsRead      bool       `gorm:"column:is_read;index:idx_notifications_user_unread"`
	IsCompleted bool       `gorm:"column:is_completed"`
	Data        []byte     `gorm:"column:data"`
	DueDate     *time.Time `gorm:"column:due_date"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
}

func (notificationModel) TableName() string { return "notifications" }

func toDomainNotification(m notificationModel) domain.Notification {
	var msg string
	if m.Message != nil {
		msg = *m.Message
	}

	var data map[string]any
	if len(m.Data) > 0 {
		_ = json.Unmarshal(m.Data, &data)
	}

	return domain.Notification{
		ID:          m.ID,
		UserID:      m.UserID,
		Type:        domain.NotificationType(m.Type),
		Title:       m.Title,
		Message:     msg,
		Priority:    domain.NotificationPriority(m.Priority),
		IsRead:      m.IsRead,
		IsCompleted: m.IsCompleted,
		Data:        data,
		DueDate:     m.DueDate,
		CreatedAt:   m.CreatedAt,
	}
}

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) DB() *gorm.DB {
	return r.db
}

// Create persists n, assigning an opaque id and creation time on the way in.
func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	var raw []byte
	if n.Data != nil {
		b, err := json.Marshal(n.Data)
		if err != nil {
			return err
		}
		raw = b
	}

	var msg *string
	if n.Message != "" {
		m := n.Message
		msg = &m
	}

	m := &notificationModel{
		ID:          n.ID,
		UserID:      n.UserID,
		Type:        string(n.Type),
		Title:       n.Title,
		Message:     msg,
		Priority:    string(n.Priority),
		IsRead:      n.IsRead,
		IsCompleted: n.IsCompleted,
		Data:        raw,
		DueDate:     n.DueDate,
		CreatedAt:   n.CreatedAt,
	}

	return r.db.WithContext(ctx).Create(m).Error
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, error) {
	var rows []notificationModel

	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Notification, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainNotification(m))
	}
	return out, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, id string, userID int64) error {
	res := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (r *NotificationRepository) MarkCompleted(ctx context.Context, id string, userID int64) error {
	res := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_completed", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id string, userID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&notificationModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
