package auth

import "errors"

var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrApplicationPending  = errors.New("vet application already pending")
	ErrAlreadyVet          = errors.New("user already has the vet role")
)
