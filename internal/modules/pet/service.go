package pet

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pethealth/internal/domain"
)

type Service struct {
	pets   Repository
	notifs Notifier
}

func NewService(pets Repository, notifs Notifier) *Service {
	return &Service{pets: pets, notifs: notifs}
}

func (s *Service) Create(ctx context.Context, ownerID int64, req CreatePetRequest) (*domain.Pet, error) {
	p := &domain.Pet{
		OwnerID:   ownerID,
		Name:      req.Name,
		Species:   req.Species,
		Breed:     req.Breed,
		BirthDate: req.BirthDate,
		WeightKg:  req.WeightKg,
		Notes:     req.Notes,
	}
	if err := s.pets.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, ownerID int64) ([]domain.Pet, error) {
	return s.pets.ListByOwner(ctx, ownerID)
}

// Get returns the pet if the caller may see it: its owner, or any vet.
func (s *Service) Get(ctx context.Context, id, callerID int64, callerRole domain.UserRole) (*domain.Pet, error) {
	p, err := s.pets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.OwnerID != callerID && callerRole == domain.RoleOwner {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id, ownerID int64, req UpdatePetRequest) (*domain.Pet, error) {
	p, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Breed != "" {
		p.Breed = req.Breed
	}
	if req.WeightKg > 0 {
		p.WeightKg = req.WeightKg
	}
	if req.Notes != "" {
		p.Notes = req.Notes
	}

	if err := s.pets.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id, ownerID int64) error {
	if err := s.pets.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// AddHealthRecord is a vet action; the pet's owner gets notified.
func (s *Service) AddHealthRecord(ctx context.Context, petID, vetID int64, req CreateHealthRecordRequest) (*domain.HealthRecord, error) {
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rec := &domain.HealthRecord{
		PetID:   petID,
		VetID:   vetID,
		Title:   req.Title,
		Details: req.Details,
	}
	if err := s.pets.CreateHealthRecord(ctx, rec); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyHealthRecordAdded(ctx, p.OwnerID, petID, rec.ID)
	}

	return rec, nil
}

func (s *Service) ListHealthRecords(ctx context.Context, petID, callerID int64, callerRole domain.UserRole) ([]domain.HealthRecord, error) {
	if _, err := s.Get(ctx, petID, callerID, callerRole); err != nil {
		return nil, err
	}
	return s.pets.ListHealthRecords(ctx, petID)
}

func (s *Service) AddVaccination(ctx context.Context, petID, ownerID int64, req CreateVaccinationRequest) (*domain.Vaccination, error) {
	if _, err := s.getOwned(ctx, petID, ownerID); err != nil {
		return nil, err
	}

	v := &domain.Vaccination{
		PetID:     petID,
		Vaccine:   req.Vaccine,
		GivenAt:   req.GivenAt,
		NextDueAt: req.NextDueAt,
	}
	if err := s.pets.CreateVaccination(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) ListVaccinations(ctx context.Context, petID, callerID int64, callerRole domain.UserRole) ([]domain.Vaccination, error) {
	if _, err := s.Get(ctx, petID, callerID, callerRole); err != nil {
		return nil, err
	}
	return s.pets.ListVaccinations(ctx, petID)
}

func (s *Service) AddMedication(ctx context.Context, petID, ownerID int64, req CreateMedicationRequest) (*domain.Medication, error) {
	if _, err := s.getOwned(ctx, petID, ownerID); err != nil {
		return nil, err
	}

	m := &domain.Medication{
		PetID:    petID,
		Name:     req.Name,
		Dosage:   req.Dosage,
		Schedule: req.Schedule,
		StartAt:  req.StartAt,
		EndAt:    req.EndAt,
	}
	if err := s.pets.CreateMedication(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) ListMedications(ctx context.Context, petID, callerID int64, callerRole domain.UserRole) ([]domain.Medication, error) {
	if _, err := s.Get(ctx, petID, callerID, callerRole); err != nil {
		return nil, err
	}
	return s.pets.ListMedications(ctx, petID)
}

func (s *Service) getOwned(ctx context.Context, id, ownerID int64) (*domain.Pet, error) {
	p, err := s.pets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return p, nil
}
