package domain

import "time"

type AppointmentStatus string

const (
	AppointmentRequested AppointmentStatus = "requested"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

type Appointment struct {
	ID        int64             `json:"id"`
	OwnerID   int64             `json:"owner_id" validate:"required"`
	VetID     int64             `json:"vet_id" validate:"required"`
	PetID     int64             `json:"pet_id" validate:"required"`
	StartTime time.Time         `json:"start_time" validate:"required"`
	EndTime   time.Time         `json:"end_time" validate:"required"`
	Status    AppointmentStatus `json:"status"`
	Reason    string            `json:"reason,omitempty" gorm:"type:text"`
	Urgent    bool              `json:"urgent,omitempty"`
	Notes     string            `json:"notes,omitempty" gorm:"type:text"`

	CancellationReason string     `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Pet   *Pet  `json:"pet,omitempty" gorm:"foreignKey:PetID"`
}
