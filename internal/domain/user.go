package domain

import "time"

type UserRole string

const (
	RoleOwner UserRole = "owner"
	RoleVet   UserRole = "vet"
	RoleAdmin UserRole = "admin"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// VetApplication is a request by a registered user to be granted the vet
// role. Admins review it; approval promotes the user.
type VetApplication struct {
	ID             int64             `json:"id"`
	UserID         int64             `json:"user_id"`
	ClinicName     string            `json:"clinic_name"`
	LicenseNumber  string            `json:"license_number"`
	Specialty      string            `json:"specialty,omitempty"`
	Status         ApplicationStatus `json:"status"`
	ReviewedBy     *int64            `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time        `json:"reviewed_at,omitempty"`
	RejectedReason string            `json:"rejected_reason,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}
