package notification

import (
	"context"

	"pethealth/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	MarkAsRead(ctx context.Context, id string, userID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) error
	MarkCompleted(ctx context.Context, id string, userID int64) error
	Delete(ctx context.Context, id string, userID int64) error
}

// Pusher is the realtime side: the hub implements it.
type Pusher interface {
	SendToUser(userID int64, event string, payload any) bool
	SendToRole(role string, event string, payload any)
	Broadcast(event string, payload any)
}

// UserDirectory resolves role membership for fan-out notifications.
type UserDirectory interface {
	ListIDsByRole(ctx context.Context, role domain.UserRole) ([]int64, error)
}
