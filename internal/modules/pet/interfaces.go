package pet

import (
	"context"
	"time"

	"pethealth/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, p *domain.Pet) error
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Pet, error)
	Update(ctx context.Context, p *domain.Pet) error
	Delete(ctx context.Context, id, ownerID int64) error

	CreateHealthRecord(ctx context.Context, rec *domain.HealthRecord) error
	ListHealthRecords(ctx context.Context, petID int64) ([]domain.HealthRecord, error)
	CreateVaccination(ctx context.Context, v *domain.Vaccination) error
	ListVaccinations(ctx context.Context, petID int64) ([]domain.Vaccination, error)
	CreateMedication(ctx context.Context, m *domain.Medication) error
	ListMedications(ctx context.Context, petID int64) ([]domain.Medication, error)
}

// Notifier is the slice of the notification service the pet flows need.
type Notifier interface {
	NotifyHealthRecordAdded(ctx context.Context, ownerID, petID, recordID int64) error
	NotifyVaccinationDue(ctx context.Context, ownerID, petID, vaccinationID int64, vaccine string, due time.Time) error
}
