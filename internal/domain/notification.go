package domain

import "time"

// NotificationType enumerates every push event kind the platform emits.
// The set is closed: the realtime routing table and the client-side alert
// table both cover it exhaustively.
type NotificationType string

const (
	// Owner notifications
	NotifAppointment   NotificationType = "appointment"
	NotifVetResponse   NotificationType = "vet_response"
	NotifNutritionPlan NotificationType = "nutrition_plan"
	NotifHealthRecord  NotificationType = "health_record"
	NotifVaccination   NotificationType = "vaccination"
	NotifMedication    NotificationType = "medication"

	// Vet notifications
	NotifNewAppointment       NotificationType = "new_appointment"
	NotifAppointmentCancelled NotificationType = "appointment_cancelled"
	NotifAppointmentUpdated   NotificationType = "appointment_updated"
	NotifUrgent               NotificationType = "urgent"
	NotifArticlePublished     NotificationType = "article_published"

	// Admin notifications
	NotifNewUser           NotificationType = "new_user"
	NotifNewVetApplication NotificationType = "new_vet_application"
	NotifArticlePending    NotificationType = "article_pending"
	NotifNutritionPending  NotificationType = "nutrition_pending"
	NotifSystemAlert       NotificationType = "system_alert"
	NotifUserReport        NotificationType = "user_report"

	// Broadcast-only kinds: pushed for display, never persisted
	NotifNewAppointmentBroadcast NotificationType = "new_appointment_broadcast"
	NotifNewArticle              NotificationType = "new_article"
	NotifAnnouncement            NotificationType = "announcement"
)

// NotificationTypes lists all kinds in declaration order. Tests use it to
// prove the routing tables are exhaustive.
var NotificationTypes = []NotificationType{
	NotifAppointment, NotifVetResponse, NotifNutritionPlan,
	NotifHealthRecord, NotifVaccination, NotifMedication,
	NotifNewAppointment, NotifAppointmentCancelled, NotifAppointmentUpdated,
	NotifUrgent, NotifArticlePublished,
	NotifNewUser, NotifNewVetApplication, NotifArticlePending,
	NotifNutritionPending, NotifSystemAlert, NotifUserReport,
	NotifNewAppointmentBroadcast, NotifNewArticle, NotifAnnouncement,
}

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

// Notification is a per-user record of a push event. Subject references
// (appointment id, pet id, ...) travel opaquely in Data; nothing
// dereferences them server-side.
type Notification struct {
	ID          string               `json:"id"`
	UserID      int64                `json:"user_id,omitempty"`
	Type        NotificationType     `json:"type"`
	Title       string               `json:"title"`
	Message     string               `json:"message"`
	Priority    NotificationPriority `json:"priority"`
	IsRead      bool                 `json:"is_read"`
	IsCompleted bool                 `json:"is_completed"`
	Data        map[string]any       `json:"data,omitempty"`
	DueDate     *time.Time           `json:"due_date,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}
