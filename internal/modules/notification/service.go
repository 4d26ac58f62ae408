package notification

import (
	"context"
	"fmt"
	"time"

	"pethealth/internal/domain"
	"pethealth/internal/realtime"
)

type Service struct {
	repo  Repository
	push  Pusher
	users UserDirectory
}

func NewService(repo Repository, push Pusher, users UserDirectory) *Service {
	return &Service{repo: repo, push: push, users: users}
}

// Create persists a notification for one user and pushes it over the
// realtime channel. The push is best-effort: an offline user picks the
// record up on the next full-list fetch.
func (s *Service) Create(ctx context.Context, n *domain.Notification) error {
	if n.Priority == "" {
		n.Priority = domain.PriorityMedium
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	if s.push != nil {
		s.push.SendToUser(n.UserID, realtime.EventName(n.Type), n)
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, int64, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	list, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		unread = 0
	}

	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		total = int64(len(list))
	}

	return list, unread, total, nil
}

func (s *Service) GetUnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *Service) MarkAsRead(ctx context.Context, id string, userID int64) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *Service) MarkCompleted(ctx context.Context, id string, userID int64) error {
	return s.repo.MarkCompleted(ctx, id, userID)
}

func (s *Service) Delete(ctx context.Context, id string, userID int64) error {
	return s.repo.Delete(ctx, id, userID)
}

// notifyRole fans a notification out to every user holding the role,
// one persisted record per recipient.
func (s *Service) notifyRole(ctx context.Context, role domain.UserRole, t domain.NotificationType, title, message string, priority domain.NotificationPriority, data map[string]any) error {
	ids, err := s.users.ListIDsByRole(ctx, role)
	if err != nil {
		return err
	}
	for _, id := range ids {
		n := &domain.Notification{
			UserID:   id,
			Type:     t,
			Title:    title,
			Message:  message,
			Priority: priority,
			Data:     data,
		}
		if err := s.Create(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

// Owner-facing notifications.

func (s *Service) NotifyAppointmentConfirmed(ctx context.Context, ownerID, appointmentID int64, start time.Time) error {
	return s.Create(ctx, &domain.Notification{
		UserID:  ownerID,
		Type:    domain.NotifAppointment,
		Title:   "Appointment confirmed",
		Message: fmt.Sprintf("Your appointment on %s has been confirmed", start.Format("Jan 2, 2006 15:04")),
		Data:    map[string]any{"appointment_id": appointmentID},
	})
}

func (s *Service) NotifyVetResponse(ctx context.Context, ownerID, appointmentID int64, message string) error {
	return s.Create(ctx, &domain.Notification{
		UserID:  ownerID,
		Type:    domain.NotifVetResponse,
		Title:   "Response from your vet",
		Message: message,
		Data:    map[string]any{"appointment_id": appointmentID},
	})
}

func (s *Service) NotifyNutritionPlanReady(ctx context.Context, ownerID, petID, planID int64) error {
	return s.Create(ctx, &domain.Notification{
		UserID:  ownerID,
		Type:    domain.NotifNutritionPlan,
		Title:   "Nutrition plan ready",
		Message: "A new nutrition plan for your pet has been approved",
		Data:    map[string]any{"pet_id": petID, "plan_id": planID},
	})
}

func (s *Service) NotifyHealthRecordAdded(ctx context.Context, ownerID, petID, recordID int64) error {
	return s.Create(ctx, &domain.Notification{
		UserID:   ownerID,
		Type:     domain.NotifHealthRecord,
		Title:    "Health record added",
		Message:  "A new health record was added for your pet",
		Priority: domain.PriorityLow,
		Data:     map[string]any{"pet_id": petID, "record_id": recordID},
	})
}

func (s *Service) NotifyVaccinationDue(ctx context.Context, ownerID, petID, vaccinationID int64, vaccine string, due time.Time) error {
	return s.Create(ctx, &domain.Notification{
		UserID:   ownerID,
		Type:     domain.NotifVaccination,
		Title:    "Vaccination due",
		Message:  fmt.Sprintf("%s vaccination is due on %s", vaccine, due.Format("Jan 2, 2006")),
		Priority: domain.PriorityHigh,
		DueDate:  &due,
		Data:     map[string]any{"pet_id": petID, "vaccination_id": vaccinationID},
	})
}

func (s *Service) NotifyMedicationDue(ctx context.Context, ownerID, petID, medicationID int64, name string, due time.Time) error {
	return s.Create(ctx, &domain.Notification{
		UserID:   ownerID,
		Type:     domain.NotifMedication,
		Title:    "Medication reminder",
		Message:  fmt.Sprintf("Time to give %s", name),
		Priority: domain.PriorityHigh,
		DueDate:  &due,
		Data:     map[string]any{"pet_id": petID, "medication_id": medicationID},
	})
}

// Vet-facing notifications.

func (s *Service) NotifyNewAppointment(ctx context.Context, vetID, appointmentID, petID int64, start time.Time) error {
	return s.Create(ctx, &domain.Notification{
		UserID:  vetID,
		Type:    domain.NotifNewAppointment,
		Title:   "New appointment request",
		Message: fmt.Sprintf("New appointment requested for %s", start.Format("Jan 2, 2006 15:04")),
		Data:    map[string]any{"appointment_id": appointmentID, "pet_id": petID},
	})
}

func (s *Service) NotifyAppointmentCancelled(ctx context.Context, userID, appointmentID int64, reason string) error {
	msg := "An appointment has been cancelled"
	if reason != "" {
		msg = msg + ". Reason: " + reason
	}
	return s.Create(ctx, &domain.Notification{
		UserID:  userID,
		Type:    domain.NotifAppointmentCancelled,
		Title:   "Appointment cancelled",
		Message: msg,
		Data:    map[string]any{"appointment_id": appointmentID},
	})
}

func (s *Service) NotifyAppointmentUpdated(ctx context.Context, vetID, appointmentID int64) error {
	return s.Create(ctx, &domain.Notification{
		UserID:  vetID,
		Type:    domain.NotifAppointmentUpdated,
		Title:   "Appointment updated",
		Message: "An appointment on your schedule has been updated",
		Data:    map[string]any{"appointment_id": appointmentID},
	})
}

func (s *Service) NotifyUrgentAppointment(ctx context.Context, vetID, appointmentID int64, reason string) error {
	return s.Create(ctx, &domain.Notification{
		UserID:   vetID,
		Type:     domain.NotifUrgent,
		Title:    "Urgent appointment",
		Message:  reason,
		Priority: domain.PriorityUrgent,
		Data:     map[string]any{"appointment_id": appointmentID},
	})
}

func (s *Service) NotifyArticlePublished(ctx context.Context, authorID, articleID int64, title string) error {
	return s.Create(ctx, &domain.Notification{
		UserID:  authorID,
		Type:    domain.NotifArticlePublished,
		Title:   "Article published",
		Message: fmt.Sprintf("Your article %q has been published", title),
		Data:    map[string]any{"article_id": articleID},
	})
}

// Admin-facing notifications, fanned out to every admin.

func (s *Service) NotifyAdminsNewUser(ctx context.Context, userID int64, name string) error {
	return s.notifyRole(ctx, domain.RoleAdmin, domain.NotifNewUser,
		"New user registered",
		fmt.Sprintf("%s just signed up", name),
		domain.PriorityLow,
		map[string]any{"user_id": userID})
}

func (s *Service) NotifyAdminsVetApplication(ctx context.Context, applicationID int64, clinic string) error {
	return s.notifyRole(ctx, domain.RoleAdmin, domain.NotifNewVetApplication,
		"New vet application",
		fmt.Sprintf("Application from %s awaits review", clinic),
		domain.PriorityHigh,
		map[string]any{"application_id": applicationID})
}

func (s *Service) NotifyAdminsArticlePending(ctx context.Context, articleID int64, title string) error {
	return s.notifyRole(ctx, domain.RoleAdmin, domain.NotifArticlePending,
		"Article pending review",
		fmt.Sprintf("Article %q awaits approval", title),
		domain.PriorityMedium,
		map[string]any{"article_id": articleID})
}

func (s *Service) NotifyAdminsNutritionPending(ctx context.Context, planID int64) error {
	return s.notifyRole(ctx, domain.RoleAdmin, domain.NotifNutritionPending,
		"Nutrition plan pending review",
		"A nutrition plan awaits approval",
		domain.PriorityMedium,
		map[string]any{"plan_id": planID})
}

func (s *Service) NotifyAdminsSystemAlert(ctx context.Context, message string) error {
	return s.notifyRole(ctx, domain.RoleAdmin, domain.NotifSystemAlert,
		"System alert",
		message,
		domain.PriorityUrgent,
		nil)
}

func (s *Service) NotifyAdminsUserReport(ctx context.Context, reportID int64, subject string) error {
	return s.notifyRole(ctx, domain.RoleAdmin, domain.NotifUserReport,
		"User report",
		subject,
		domain.PriorityHigh,
		map[string]any{"report_id": reportID})
}

// Broadcast-only events: pushed for display, never persisted.

func (s *Service) BroadcastNewAppointment(ctx context.Context, start time.Time) {
	if s.push == nil {
		return
	}
	s.push.SendToRole(string(domain.RoleVet),
		realtime.EventName(domain.NotifNewAppointmentBroadcast),
		map[string]any{"start_time": start})
}

func (s *Service) BroadcastNewArticle(ctx context.Context, articleID int64, title string) {
	if s.push == nil {
		return
	}
	s.push.Broadcast(realtime.EventName(domain.NotifNewArticle),
		map[string]any{"article_id": articleID, "title": title})
}

func (s *Service) BroadcastAnnouncement(ctx context.Context, title, message string) {
	if s.push == nil {
		return
	}
	s.push.Broadcast(realtime.EventName(domain.NotifAnnouncement),
		map[string]any{"title": title, "message": message})
}
