package notification

import "pethealth/internal/domain"

type ListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
	Total         int64                 `json:"total"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}
