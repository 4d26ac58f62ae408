package appointment

import "errors"

var (
	ErrValidation    = errors.New("invalid appointment request")
	ErrNotFound      = errors.New("appointment not found")
	ErrForbidden     = errors.New("appointment belongs to another user")
	ErrNotAvailable  = errors.New("vet is not available in this time slot")
	ErrSlotTaken     = errors.New("time slot already booked")
	ErrBadTransition = errors.New("invalid status transition")
)
