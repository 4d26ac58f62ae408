package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"pethealth/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) DB() *gorm.DB {
	return r.db
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Email = strings.TrimSpace(strings.ToLower(u.Email))
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	email = strings.TrimSpace(strings.ToLower(email))
	if err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	email = strings.TrimSpace(strings.ToLower(email))
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) UpdateRole(ctx context.Context, userID int64, role domain.UserRole) error {
	res := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Update("role", string(role))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListIDsByRole returns the ids of every user holding the given role.
// Notification fan-out to admins and vets goes through this.
func (r *UserRepository) ListIDsByRole(ctx context.Context, role domain.UserRole) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("role = ?", string(role)).
		Pluck("id", &ids).Error
	return ids, err
}
