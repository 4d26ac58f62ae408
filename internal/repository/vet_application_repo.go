package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"pethealth/internal/domain"
)

type VetApplicationRepository struct {
	db *gorm.DB
}

func NewVetApplicationRepository(db *gorm.DB) *VetApplicationRepository {
	return &VetApplicationRepository{db: db}
}

func (r *VetApplicationRepository) Create(ctx context.Context, a *domain.VetApplication) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *VetApplicationRepository) GetByID(ctx context.Context, id int64) (*domain.VetApplication, error) {
	var a domain.VetApplication
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *VetApplicationRepository) HasPending(ctx context.Context, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.VetApplication{}).
		Where("user_id = ? AND status = ?", userID, string(domain.ApplicationPending)).
		Count(&count).Error
	return count > 0, err
}

func (r *VetApplicationRepository) ListPending(ctx context.Context) ([]domain.VetApplication, error) {
	var out []domain.VetApplication
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.ApplicationPending)).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *VetApplicationRepository) Review(ctx context.Context, id, reviewerID int64, status domain.ApplicationStatus, reason string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.VetApplication{}).
		Where("id = ? AND status = ?", id, string(domain.ApplicationPending)).
		Updates(map[string]any{
			"status":          string(status),
			"reviewed_by":     reviewerID,
			"reviewed_at":     time.Now(),
			"rejected_reason": reason,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, rep *domain.Report) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *ReportRepository) List(ctx context.Context, limit, offset int) ([]domain.Report, error) {
	var out []domain.Report
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	return out, err
}
