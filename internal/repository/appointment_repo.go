package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"pethealth/internal/domain"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	var a domain.Appointment
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Appointment, error) {
	var out []domain.Appointment
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("start_time DESC").
		Find(&out).Error
	return out, err
}

func (r *AppointmentRepository) ListByVet(ctx context.Context, vetID int64) ([]domain.Appointment, error) {
	var out []domain.Appointment
	err := r.db.WithContext(ctx).
		Where("vet_id = ?", vetID).
		Order("start_time DESC").
		Find(&out).Error
	return out, err
}

// CheckAvailability reports whether the vet has no overlapping
// non-cancelled appointment in [start, end). A partial unique index backs
// this check under PostgreSQL; the query is the portable guard.
func (r *AppointmentRepository) CheckAvailability(ctx context.Context, vetID int64, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("vet_id = ?", vetID).
		Where("status <> ?", string(domain.AppointmentCancelled)).
		Where("start_time < ? AND end_time > ?", end, start).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, updates map[string]any) error {
	if updates == nil {
		updates = map[string]any{}
	}
	updates["status"] = string(status)
	res := r.db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AppointmentRepository) Update(ctx context.Context, a *domain.Appointment) error {
	return r.db.WithContext(ctx).Save(a).Error
}
