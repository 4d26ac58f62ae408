package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"pethealth/internal/domain"
)

type Service struct {
	appointments Repository
	pets         PetGetter
	users        UserGetter
	notifs       Notifier
}

func NewService(appointments Repository, pets PetGetter, users UserGetter, notifs Notifier) *Service {
	return &Service{
		appointments: appointments,
		pets:         pets,
		users:        users,
		notifs:       notifs,
	}
}

func (s *Service) Create(ctx context.Context, ownerID int64, req CreateRequest) (*domain.Appointment, error) {
	if req.EndTime.Before(req.StartTime) || req.EndTime.Equal(req.StartTime) {
		return nil, ErrValidation
	}
	if req.StartTime.Before(time.Now()) {
		return nil, ErrValidation
	}

	pet, err := s.pets.GetByID(ctx, req.PetID)
	if err != nil {
		return nil, ErrValidation
	}
	if pet.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	vet, err := s.users.GetByID(ctx, req.VetID)
	if err != nil || vet.Role != domain.RoleVet {
		return nil, ErrValidation
	}

	ok, err := s.appointments.CheckAvailability(ctx, req.VetID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAvailable
	}

	a := &domain.Appointment{
		OwnerID:   ownerID,
		VetID:     req.VetID,
		PetID:     req.PetID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    domain.AppointmentRequested,
		Reason:    req.Reason,
		Urgent:    req.Urgent,
	}

	if err := s.appointments.Create(ctx, a); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyNewAppointment(ctx, a.VetID, a.ID, a.PetID, a.StartTime)
		if a.Urgent {
			_ = s.notifs.NotifyUrgentAppointment(ctx, a.VetID, a.ID, a.Reason)
		}
		s.notifs.BroadcastNewAppointment(ctx, a.StartTime)
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, id, callerID int64) (*domain.Appointment, error) {
	a, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.OwnerID != callerID && a.VetID != callerID {
		return nil, ErrForbidden
	}
	return a, nil
}

func (s *Service) ListForOwner(ctx context.Context, ownerID int64) ([]domain.Appointment, error) {
	return s.appointments.ListByOwner(ctx, ownerID)
}

func (s *Service) ListForVet(ctx context.Context, vetID int64) ([]domain.Appointment, error) {
	return s.appointments.ListByVet(ctx, vetID)
}

// Confirm moves a requested appointment to confirmed. Vet action; the
// owner gets notified.
func (s *Service) Confirm(ctx context.Context, id, vetID int64) (*domain.Appointment, error) {
	a, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.VetID != vetID {
		return nil, ErrForbidden
	}
	if a.Status != domain.AppointmentRequested {
		return nil, ErrBadTransition
	}

	if err := s.appointments.UpdateStatus(ctx, id, domain.AppointmentConfirmed, nil); err != nil {
		return nil, err
	}
	a.Status = domain.AppointmentConfirmed

	if s.notifs != nil {
		_ = s.notifs.NotifyAppointmentConfirmed(ctx, a.OwnerID, a.ID, a.StartTime)
	}

	return a, nil
}

// Cancel may be called by either party; the other one gets notified.
func (s *Service) Cancel(ctx context.Context, id, callerID int64, reason string) (*domain.Appointment, error) {
	a, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.OwnerID != callerID && a.VetID != callerID {
		return nil, ErrForbidden
	}
	if a.Status == domain.AppointmentCancelled || a.Status == domain.AppointmentCompleted {
		return nil, ErrBadTransition
	}

	now := time.Now()
	updates := map[string]any{
		"cancelled_at":        now,
		"cancellation_reason": reason,
	}
	if err := s.appointments.UpdateStatus(ctx, id, domain.AppointmentCancelled, updates); err != nil {
		return nil, err
	}
	a.Status = domain.AppointmentCancelled
	a.CancelledAt = &now
	a.CancellationReason = reason

	if s.notifs != nil {
		other := a.VetID
		if callerID == a.VetID {
			other = a.OwnerID
		}
		_ = s.notifs.NotifyAppointmentCancelled(ctx, other, a.ID, reason)
	}

	return a, nil
}

// Complete marks a confirmed appointment as done. Vet action.
func (s *Service) Complete(ctx context.Context, id, vetID int64) (*domain.Appointment, error) {
	a, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.VetID != vetID {
		return nil, ErrForbidden
	}
	if a.Status != domain.AppointmentConfirmed {
		return nil, ErrBadTransition
	}

	if err := s.appointments.UpdateStatus(ctx, id, domain.AppointmentCompleted, nil); err != nil {
		return nil, err
	}
	a.Status = domain.AppointmentCompleted
	return a, nil
}

// Reschedule moves the slot. Owner action; the vet gets notified.
func (s *Service) Reschedule(ctx context.Context, id, ownerID int64, req RescheduleRequest) (*domain.Appointment, error) {
	if req.EndTime.Before(req.StartTime) || req.EndTime.Equal(req.StartTime) {
		return nil, ErrValidation
	}
	if req.StartTime.Before(time.Now()) {
		return nil, ErrValidation
	}

	a, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	if a.Status == domain.AppointmentCancelled || a.Status == domain.AppointmentCompleted {
		return nil, ErrBadTransition
	}

	ok, err := s.appointments.CheckAvailability(ctx, a.VetID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAvailable
	}

	a.StartTime = req.StartTime
	a.EndTime = req.EndTime
	// A reschedule needs a fresh confirmation from the vet
	a.Status = domain.AppointmentRequested

	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyAppointmentUpdated(ctx, a.VetID, a.ID)
	}

	return a, nil
}

// Respond sends a vet's message on an appointment to its owner.
func (s *Service) Respond(ctx context.Context, id, vetID int64, message string) error {
	a, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}
	if a.VetID != vetID {
		return ErrForbidden
	}

	if s.notifs != nil {
		return s.notifs.NotifyVetResponse(ctx, a.OwnerID, a.ID, message)
	}
	return nil
}

func (s *Service) getByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}
