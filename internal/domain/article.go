package domain

import "time"

type ArticleStatus string

const (
	ArticlePending   ArticleStatus = "pending"
	ArticlePublished ArticleStatus = "published"
	ArticleRejected  ArticleStatus = "rejected"
)

type Article struct {
	ID          int64         `json:"id"`
	AuthorID    int64         `json:"author_id"`
	Title       string        `json:"title" validate:"required"`
	Body        string        `json:"body" validate:"required" gorm:"type:text"`
	Status      ArticleStatus `json:"status"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type NutritionPlanStatus string

const (
	NutritionPending  NutritionPlanStatus = "pending"
	NutritionApproved NutritionPlanStatus = "approved"
	NutritionRejected NutritionPlanStatus = "rejected"
)

type NutritionPlan struct {
	ID         int64               `json:"id"`
	PetID      int64               `json:"pet_id" validate:"required"`
	VetID      int64               `json:"vet_id"`
	Title      string              `json:"title" validate:"required"`
	Guidelines string              `json:"guidelines" validate:"required" gorm:"type:text"`
	Status     NutritionPlanStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// Report is a user-submitted complaint routed to admins.
type Report struct {
	ID         int64     `json:"id"`
	ReporterID int64     `json:"reporter_id"`
	Subject    string    `json:"subject" validate:"required"`
	Details    string    `json:"details,omitempty" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
}
