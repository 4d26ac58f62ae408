package article

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"pethealth/internal/domain"
)

var (
	ErrNotFound      = errors.New("article not found")
	ErrBadTransition = errors.New("article is not pending review")
)

type CreateRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

type Repository interface {
	Create(ctx context.Context, a *domain.Article) error
	GetByID(ctx context.Context, id int64) (*domain.Article, error)
	ListPublished(ctx context.Context, limit, offset int) ([]domain.Article, error)
	ListByStatus(ctx context.Context, status domain.ArticleStatus) ([]domain.Article, error)
	SetStatus(ctx context.Context, id int64, status domain.ArticleStatus, publishedAt *time.Time) error
}

type Notifier interface {
	NotifyAdminsArticlePending(ctx context.Context, articleID int64, title string) error
	NotifyArticlePublished(ctx context.Context, authorID, articleID int64, title string) error
	BroadcastNewArticle(ctx context.Context, articleID int64, title string)
}

type Service struct {
	articles Repository
	notifs   Notifier
}

func NewService(articles Repository, notifs Notifier) *Service {
	return &Service{articles: articles, notifs: notifs}
}

// Submit files a vet's article for admin review.
func (s *Service) Submit(ctx context.Context, authorID int64, req CreateRequest) (*domain.Article, error) {
	a := &domain.Article{
		AuthorID: authorID,
		Title:    req.Title,
		Body:     req.Body,
		Status:   domain.ArticlePending,
	}
	if err := s.articles.Create(ctx, a); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyAdminsArticlePending(ctx, a.ID, a.Title)
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Article, error) {
	a, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *Service) ListPublished(ctx context.Context, limit, offset int) ([]domain.Article, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.articles.ListPublished(ctx, limit, offset)
}

func (s *Service) ListPending(ctx context.Context) ([]domain.Article, error) {
	return s.articles.ListByStatus(ctx, domain.ArticlePending)
}

// Approve publishes a pending article: the author hears about it, and
// everyone connected gets the display-only broadcast.
func (s *Service) Approve(ctx context.Context, id int64) (*domain.Article, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != domain.ArticlePending {
		return nil, ErrBadTransition
	}

	now := time.Now()
	if err := s.articles.SetStatus(ctx, id, domain.ArticlePublished, &now); err != nil {
		return nil, err
	}
	a.Status = domain.ArticlePublished
	a.PublishedAt = &now

	if s.notifs != nil {
		_ = s.notifs.NotifyArticlePublished(ctx, a.AuthorID, a.ID, a.Title)
		s.notifs.BroadcastNewArticle(ctx, a.ID, a.Title)
	}

	return a, nil
}

func (s *Service) Reject(ctx context.Context, id int64) (*domain.Article, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != domain.ArticlePending {
		return nil, ErrBadTransition
	}

	if err := s.articles.SetStatus(ctx, id, domain.ArticleRejected, nil); err != nil {
		return nil, err
	}
	a.Status = domain.ArticleRejected
	return a, nil
}
