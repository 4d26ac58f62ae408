package auth

import (
	"context"

	"pethealth/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type VetApplicationRepository interface {
	Create(ctx context.Context, a *domain.VetApplication) error
	HasPending(ctx context.Context, userID int64) (bool, error)
}

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}

// Notifier is the slice of the notification service the auth flow needs.
type Notifier interface {
	NotifyAdminsNewUser(ctx context.Context, userID int64, name string) error
	NotifyAdminsVetApplication(ctx context.Context, applicationID int64, clinic string) error
}
