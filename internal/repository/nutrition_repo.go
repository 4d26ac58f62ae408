package repository

import (
	"context"

	"gorm.io/gorm"

	"pethealth/internal/domain"
)

type NutritionRepository struct {
	db *gorm.DB
}

func NewNutritionRepository(db *gorm.DB) *NutritionRepository {
	return &NutritionRepository{db: db}
}

func (r *NutritionRepository) Create(ctx context.Context, p *domain.NutritionPlan) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *NutritionRepository) GetByID(ctx context.Context, id int64) (*domain.NutritionPlan, error) {
	var p domain.NutritionPlan
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *NutritionRepository) ListByPet(ctx context.Context, petID int64) ([]domain.NutritionPlan, error) {
	var out []domain.NutritionPlan
	err := r.db.WithContext(ctx).
		Where("pet_id = ?", petID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *NutritionRepository) ListByStatus(ctx context.Context, status domain.NutritionPlanStatus) ([]domain.NutritionPlan, error) {
	var out []domain.NutritionPlan
	err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *NutritionRepository) SetStatus(ctx context.Context, id int64, status domain.NutritionPlanStatus) error {
	res := r.db.WithContext(ctx).
		Model(&domain.NutritionPlan{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
