package appointment

import "time"

type CreateRequest struct {
	VetID     int64     `json:"vet_id" validate:"required"`
	PetID     int64     `json:"pet_id" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
	Reason    string    `json:"reason,omitempty"`
	Urgent    bool      `json:"urgent,omitempty"`
}

type RescheduleRequest struct {
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason,omitempty"`
}

type RespondRequest struct {
	Message string `json:"message" validate:"required"`
}
