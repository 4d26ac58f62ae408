package appointment

import (
	"context"
	"time"

	"pethealth/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Appointment, error)
	ListByVet(ctx context.Context, vetID int64) ([]domain.Appointment, error)
	CheckAvailability(ctx context.Context, vetID int64, start, end time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, updates map[string]any) error
	Update(ctx context.Context, a *domain.Appointment) error
}

type PetGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
}

type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Notifier is the slice of the notification service the appointment
// lifecycle emits through.
type Notifier interface {
	NotifyNewAppointment(ctx context.Context, vetID, appointmentID, petID int64, start time.Time) error
	NotifyUrgentAppointment(ctx context.Context, vetID, appointmentID int64, reason string) error
	NotifyAppointmentConfirmed(ctx context.Context, ownerID, appointmentID int64, start time.Time) error
	NotifyAppointmentCancelled(ctx context.Context, userID, appointmentID int64, reason string) error
	NotifyAppointmentUpdated(ctx context.Context, vetID, appointmentID int64) error
	NotifyVetResponse(ctx context.Context, ownerID, appointmentID int64, message string) error
	BroadcastNewAppointment(ctx context.Context, start time.Time)
}
