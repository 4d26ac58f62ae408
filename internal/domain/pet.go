package domain

import "time"

type Pet struct {
	ID        int64      `json:"id"`
	OwnerID   int64      `json:"owner_id"`
	Name      string     `json:"name" validate:"required"`
	Species   string     `json:"species" validate:"required"`
	Breed     string     `json:"breed,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	WeightKg  float64    `json:"weight_kg,omitempty"`
	Notes     string     `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type HealthRecord struct {
	ID        int64     `json:"id"`
	PetID     int64     `json:"pet_id" validate:"required"`
	VetID     int64     `json:"vet_id"`
	Title     string    `json:"title" validate:"required"`
	Details   string    `json:"details,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

type Vaccination struct {
	ID         int64      `json:"id"`
	PetID      int64      `json:"pet_id" validate:"required"`
	Vaccine    string     `json:"vaccine" validate:"required"`
	GivenAt    time.Time  `json:"given_at"`
	NextDueAt  *time.Time `json:"next_due_at,omitempty"`
	RemindedAt *time.Time `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
}

type Medication struct {
	ID         int64      `json:"id"`
	PetID      int64      `json:"pet_id" validate:"required"`
	Name       string     `json:"name" validate:"required"`
	Dosage     string     `json:"dosage,omitempty"`
	Schedule   string     `json:"schedule,omitempty"`
	StartAt    time.Time  `json:"start_at"`
	EndAt      *time.Time `json:"end_at,omitempty"`
	RemindedAt *time.Time `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
}
