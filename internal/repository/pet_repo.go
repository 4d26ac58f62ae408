package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"pethealth/internal/domain"
)

type PetRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{db: db}
}

func (r *PetRepository) Create(ctx context.Context, p *domain.Pet) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PetRepository) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	var p domain.Pet
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PetRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Pet, error) {
	var pets []domain.Pet
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&pets).Error
	return pets, err
}

func (r *PetRepository) Update(ctx context.Context, p *domain.Pet) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PetRepository) Delete(ctx context.Context, id, ownerID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&domain.Pet{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PetRepository) CreateHealthRecord(ctx context.Context, rec *domain.HealthRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *PetRepository) ListHealthRecords(ctx context.Context, petID int64) ([]domain.HealthRecord, error) {
	var recs []domain.HealthRecord
	err := r.db.WithContext(ctx).
		Where("pet_id = ?", petID).
		Order("created_at DESC").
		Find(&recs).Error
	return recs, err
}

func (r *PetRepository) CreateVaccination(ctx context.Context, v *domain.Vaccination) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *PetRepository) ListVaccinations(ctx context.Context, petID int64) ([]domain.Vaccination, error) {
	var vs []domain.Vaccination
	err := r.db.WithContext(ctx).
		Where("pet_id = ?", petID).
		Order("given_at DESC").
		Find(&vs).Error
	return vs, err
}

func (r *PetRepository) CreateMedication(ctx context.Context, m *domain.Medication) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PetRepository) ListMedications(ctx context.Context, petID int64) ([]domain.Medication, error) {
	var ms []domain.Medication
	err := r.db.WithContext(ctx).
		Where("pet_id = ?", petID).
		Order("start_at DESC").
		Find(&ms).Error
	return ms, err
}

// ListDueVaccinations finds vaccinations due within the window that have
// not been reminded since cutoff. The reminder sweep uses it.
func (r *PetRepository) ListDueVaccinations(ctx context.Context, until time.Time, remindedBefore time.Time) ([]domain.Vaccination, error) {
	var vs []domain.Vaccination
	err := r.db.WithContext(ctx).
		Where("next_due_at IS NOT NULL AND next_due_at <= ?", until).
		Where("reminded_at IS NULL OR reminded_at < ?", remindedBefore).
		Find(&vs).Error
	return vs, err
}

func (r *PetRepository) MarkVaccinationReminded(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Vaccination{}).
		Where("id = ?", id).
		Update("reminded_at", at).Error
}

// ListActiveMedications finds medications whose schedule covers now and
// that have not been reminded since cutoff.
func (r *PetRepository) ListActiveMedications(ctx context.Context, now time.Time, remindedBefore time.Time) ([]domain.Medication, error) {
	var ms []domain.Medication
	err := r.db.WithContext(ctx).
		Where("start_at <= ?", now).
		Where("end_at IS NULL OR end_at >= ?", now).
		Where("reminded_at IS NULL OR reminded_at < ?", remindedBefore).
		Find(&ms).Error
	return ms, err
}

func (r *PetRepository) MarkMedicationReminded(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Medication{}).
		Where("id = ?", id).
		Update("reminded_at", at).Error
}
