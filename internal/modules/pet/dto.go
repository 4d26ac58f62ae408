package pet

import "time"

type CreatePetRequest struct {
	Name      string     `json:"name" validate:"required"`
	Species   string     `json:"species" validate:"required"`
	Breed     string     `json:"breed,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	WeightKg  float64    `json:"weight_kg,omitempty" validate:"omitempty,gt=0"`
	Notes     string     `json:"notes,omitempty"`
}

type UpdatePetRequest struct {
	Name     string  `json:"name,omitempty"`
	Breed    string  `json:"breed,omitempty"`
	WeightKg float64 `json:"weight_kg,omitempty" validate:"omitempty,gt=0"`
	Notes    string  `json:"notes,omitempty"`
}

type CreateHealthRecordRequest struct {
	Title   string `json:"title" validate:"required"`
	Details string `json:"details,omitempty"`
}

type CreateVaccinationRequest struct {
	Vaccine   string     `json:"vaccine" validate:"required"`
	GivenAt   time.Time  `json:"given_at" validate:"required"`
	NextDueAt *time.Time `json:"next_due_at,omitempty"`
}

type CreateMedicationRequest struct {
	Name     string     `json:"name" validate:"required"`
	Dosage   string     `json:"dosage,omitempty"`
	Schedule string     `json:"schedule,omitempty"`
	StartAt  time.Time  `json:"start_at" validate:"required"`
	EndAt    *time.Time `json:"end_at,omitempty"`
}
