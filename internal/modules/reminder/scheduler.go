package reminder

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"pethealth/internal/domain"
)

// vaccination reminders fire this far ahead of the due date
const dueWindow = 7 * 24 * time.Hour

type PetRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
	ListDueVaccinations(ctx context.Context, until time.Time, remindedBefore time.Time) ([]domain.Vaccination, error)
	MarkVaccinationReminded(ctx context.Context, id int64, at time.Time) error
	ListActiveMedications(ctx context.Context, now time.Time, remindedBefore time.Time) ([]domain.Medication, error)
	MarkMedicationReminded(ctx context.Context, id int64, at time.Time) error
}

type Notifier interface {
	NotifyVaccinationDue(ctx context.Context, ownerID, petID, vaccinationID int64, vaccine string, due time.Time) error
	NotifyMedicationDue(ctx context.Context, ownerID, petID, medicationID int64, name string, due time.Time) error
	NotifyAdminsSystemAlert(ctx context.Context, message string) error
}

// Scheduler periodically converts due vaccinations and active medications
// into owner notifications. Each item is reminded at most once per day.
type Scheduler struct {
	pets   PetRepository
	notifs Notifier
	cron   *cron.Cron
	now    func() time.Time
}

func NewScheduler(pets PetRepository, notifs Notifier) *Scheduler {
	return &Scheduler{
		pets:   pets,
		notifs: notifs,
		cron:   cron.New(),
		now:    time.Now,
	}
}

// Start schedules the sweep with the given cron spec and begins running.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, func() {
		if err := s.Sweep(context.Background()); err != nil {
			log.Printf("reminder sweep failed: %v", err)
		}
	}); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Sweep runs one reminder pass.
func (s *Scheduler) Sweep(ctx context.Context) error {
	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	vaccinations, err := s.pets.ListDueVaccinations(ctx, now.Add(dueWindow), startOfDay)
	if err != nil {
		_ = s.notifs.NotifyAdminsSystemAlert(ctx, "Reminder sweep failed to read vaccinations")
		return err
	}

	for _, v := range vaccinations {
		if v.NextDueAt == nil {
			continue
		}
		pet, err := s.pets.GetByID(ctx, v.PetID)
		if err != nil {
			continue
		}
		if err := s.notifs.NotifyVaccinationDue(ctx, pet.OwnerID, v.PetID, v.ID, v.Vaccine, *v.NextDueAt); err != nil {
			continue
		}
		_ = s.pets.MarkVaccinationReminded(ctx, v.ID, now)
	}

	medications, err := s.pets.ListActiveMedications(ctx, now, startOfDay)
	if err != nil {
		_ = s.notifs.NotifyAdminsSystemAlert(ctx, "Reminder sweep failed to read medications")
		return err
	}

	for _, m := range medications {
		pet, err := s.pets.GetByID(ctx, m.PetID)
		if err != nil {
			continue
		}
		if err := s.notifs.NotifyMedicationDue(ctx, pet.OwnerID, m.PetID, m.ID, m.Name, now); err != nil {
			continue
		}
		_ = s.pets.MarkMedicationReminded(ctx, m.ID, now)
	}

	return nil
}
