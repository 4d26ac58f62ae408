package nutrition

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pethealth/internal/domain"
)

var (
	ErrNotFound      = errors.New("nutrition plan not found")
	ErrBadTransition = errors.New("nutrition plan is not pending review")
	ErrForbidden     = errors.New("pet belongs to another owner")
)

type CreateRequest struct {
	PetID      int64  `json:"pet_id" validate:"required"`
	Title      string `json:"title" validate:"required"`
	Guidelines string `json:"guidelines" validate:"required"`
}

type Repository interface {
	Create(ctx context.Context, p *domain.NutritionPlan) error
	GetByID(ctx context.Context, id int64) (*domain.NutritionPlan, error)
	ListByPet(ctx context.Context, petID int64) ([]domain.NutritionPlan, error)
	ListByStatus(ctx context.Context, status domain.NutritionPlanStatus) ([]domain.NutritionPlan, error)
	SetStatus(ctx context.Context, id int64, status domain.NutritionPlanStatus) error
}

type PetGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
}

type Notifier interface {
	NotifyAdminsNutritionPending(ctx context.Context, planID int64) error
	NotifyNutritionPlanReady(ctx context.Context, ownerID, petID, planID int64) error
}

type Service struct {
	plans  Repository
	pets   PetGetter
	notifs Notifier
}

func NewService(plans Repository, pets PetGetter, notifs Notifier) *Service {
	return &Service{plans: plans, pets: pets, notifs: notifs}
}

// Create files a vet's nutrition plan for admin review.
func (s *Service) Create(ctx context.Context, vetID int64, req CreateRequest) (*domain.NutritionPlan, error) {
	if _, err := s.pets.GetByID(ctx, req.PetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p := &domain.NutritionPlan{
		PetID:      req.PetID,
		VetID:      vetID,
		Title:      req.Title,
		Guidelines: req.Guidelines,
		Status:     domain.NutritionPending,
	}
	if err := s.plans.Create(ctx, p); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyAdminsNutritionPending(ctx, p.ID)
	}

	return p, nil
}

func (s *Service) ListForPet(ctx context.Context, petID, callerID int64, callerRole domain.UserRole) ([]domain.NutritionPlan, error) {
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if pet.OwnerID != callerID && callerRole == domain.RoleOwner {
		return nil, ErrForbidden
	}
	return s.plans.ListByPet(ctx, petID)
}

func (s *Service) ListPending(ctx context.Context) ([]domain.NutritionPlan, error) {
	return s.plans.ListByStatus(ctx, domain.NutritionPending)
}

// Approve releases the plan to the pet's owner.
func (s *Service) Approve(ctx context.Context, id int64) (*domain.NutritionPlan, error) {
	p, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.NutritionPending {
		return nil, ErrBadTransition
	}

	if err := s.plans.SetStatus(ctx, id, domain.NutritionApproved); err != nil {
		return nil, err
	}
	p.Status = domain.NutritionApproved

	if s.notifs != nil {
		if pet, err := s.pets.GetByID(ctx, p.PetID); err == nil {
			_ = s.notifs.NotifyNutritionPlanReady(ctx, pet.OwnerID, p.PetID, p.ID)
		}
	}

	return p, nil
}

func (s *Service) Reject(ctx context.Context, id int64) (*domain.NutritionPlan, error) {
	p, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.NutritionPending {
		return nil, ErrBadTransition
	}

	if err := s.plans.SetStatus(ctx, id, domain.NutritionRejected); err != nil {
		return nil, err
	}
	p.Status = domain.NutritionRejected
	return p, nil
}

func (s *Service) getByID(ctx context.Context, id int64) (*domain.NutritionPlan, error) {
	p, err := s.plans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
