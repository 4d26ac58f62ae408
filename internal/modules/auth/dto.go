package auth

import "pethealth/internal/domain"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VetApplicationRequest struct {
	ClinicName    string `json:"clinic_name" validate:"required"`
	LicenseNumber string `json:"license_number" validate:"required"`
	Specialty     string `json:"specialty,omitempty"`
}

type LoginResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
}
