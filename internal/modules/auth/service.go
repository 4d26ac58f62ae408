package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pethealth/internal/domain"
)

type Service struct {
	users        UserRepository
	applications VetApplicationRepository
	jwt          jwtService
	notifs       Notifier
}

type LoginResult struct {
	User        *domain.User
	AccessToken string
}

func NewService(users UserRepository, applications VetApplicationRepository, jwt jwtService, notifs Notifier) *Service {
	return &Service{
		users:        users,
		applications: applications,
		jwt:          jwt,
		notifs:       notifs,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         domain.RoleOwner,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyAdminsNewUser(ctx, user.ID, user.Name)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, AccessToken: token}, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// ApplyVet files a vet application for review by admins.
func (s *Service) ApplyVet(ctx context.Context, userID int64, req VetApplicationRequest) (*domain.VetApplication, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleVet {
		return nil, ErrAlreadyVet
	}

	pending, err := s.applications.HasPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrApplicationPending
	}

	app := &domain.VetApplication{
		UserID:        userID,
		ClinicName:    req.ClinicName,
		LicenseNumber: req.LicenseNumber,
		Specialty:     req.Specialty,
		Status:        domain.ApplicationPending,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyAdminsVetApplication(ctx, app.ID, app.ClinicName)
	}

	return app, nil
}
