package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"pethealth/internal/domain"
)

type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	var a domain.Article
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ArticleRepository) ListPublished(ctx context.Context, limit, offset int) ([]domain.Article, error) {
	var out []domain.Article
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.ArticlePublished)).
		Order("published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *ArticleRepository) ListByStatus(ctx context.Context, status domain.ArticleStatus) ([]domain.Article, error) {
	var out []domain.Article
	err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *ArticleRepository) SetStatus(ctx context.Context, id int64, status domain.ArticleStatus, publishedAt *time.Time) error {
	updates := map[string]any{"status": string(status)}
	if publishedAt != nil {
		updates["published_at"] = *publishedAt
	}
	res := r.db.WithContext(ctx).
		Model(&domain.Article{}).
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
