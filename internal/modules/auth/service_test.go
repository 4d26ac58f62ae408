package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pethealth/internal/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil && u.ID == 0 {
		u.ID = 42
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, a *domain.VetApplication) error {
	args := m.Called(ctx, a)
	if a != nil && a.ID == 0 {
		a.ID = 7
	}
	return args.Error(0)
}

func (m *MockApplicationRepository) HasPending(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

type MockJWT struct {
	mock.Mock
}

func (m *MockJWT) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyAdminsNewUser(ctx context.Context, userID int64, name string) error {
	args := m.Called(ctx, userID, name)
	return args.Error(0)
}

func (m *MockNotifier) NotifyAdminsVetApplication(ctx context.Context, applicationID int64, clinic string) error {
	args := m.Called(ctx, applicationID, clinic)
	return args.Error(0)
}

func TestRegisterCreatesOwnerAndNotifiesAdmins(t *testing.T) {
	users := new(MockUserRepository)
	notifs := new(MockNotifier)
	svc := NewService(users, nil, nil, notifs)

	users.On("ExistsByEmail", mock.Anything, "new@mail.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifs.On("NotifyAdminsNewUser", mock.Anything, int64(42), "New User").Return(nil)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "  NEW@mail.com ",
		Password: "password123",
		Name:     "New User",
	})

	assert.NoError(t, err)
	assert.Equal(t, "new@mail.com", user.Email)
	assert.Equal(t, domain.RoleOwner, user.Role)
	assert.Empty(t, user.PasswordHash)
	notifs.AssertExpectations(t)
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, nil, nil, nil)

	users.On("ExistsByEmail", mock.Anything, "taken@mail.com").Return(true, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "taken@mail.com",
		Password: "password123",
		Name:     "Dup",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginReturnsToken(t *testing.T) {
	users := new(MockUserRepository)
	j := new(MockJWT)
	svc := NewService(users, nil, j, nil)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	users.On("GetByEmail", mock.Anything, "vet@mail.com").Return(&domain.User{
		ID:           3,
		Email:        "vet@mail.com",
		PasswordHash: string(hash),
		Role:         domain.RoleVet,
	}, nil)
	j.On("GenerateToken", int64(3), "vet").Return("h.p.s", nil)

	res, err := svc.Login(context.Background(), LoginRequest{Email: "vet@mail.com", Password: "secret123"})

	assert.NoError(t, err)
	assert.Equal(t, "h.p.s", res.AccessToken)
	assert.Empty(t, res.User.PasswordHash)
}

func TestLoginWrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, nil, nil, nil)

	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	users.On("GetByEmail", mock.Anything, "vet@mail.com").Return(&domain.User{
		ID:           3,
		PasswordHash: string(hash),
	}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "vet@mail.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, nil, nil, nil)

	users.On("GetByEmail", mock.Anything, "ghost@mail.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@mail.com", Password: "any"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestApplyVetNotifiesAdmins(t *testing.T) {
	users := new(MockUserRepository)
	apps := new(MockApplicationRepository)
	notifs := new(MockNotifier)
	svc := NewService(users, apps, nil, notifs)

	users.On("GetByID", mock.Anything, int64(5)).Return(&domain.User{ID: 5, Role: domain.RoleOwner}, nil)
	apps.On("HasPending", mock.Anything, int64(5)).Return(false, nil)
	apps.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifs.On("NotifyAdminsVetApplication", mock.Anything, int64(7), "Happy Paws").Return(nil)

	app, err := svc.ApplyVet(context.Background(), 5, VetApplicationRequest{
		ClinicName:    "Happy Paws",
		LicenseNumber: "VET-1234",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.ApplicationPending, app.Status)
	notifs.AssertExpectations(t)
}

func TestApplyVetRejectsExistingVet(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, nil, nil, nil)

	users.On("GetByID", mock.Anything, int64(5)).Return(&domain.User{ID: 5, Role: domain.RoleVet}, nil)

	_, err := svc.ApplyVet(context.Background(), 5, VetApplicationRequest{ClinicName: "X", LicenseNumber: "Y"})
	assert.ErrorIs(t, err, ErrAlreadyVet)
}

func TestApplyVetRejectsDuplicatePending(t *testing.T) {
	users := new(MockUserRepository)
	apps := new(MockApplicationRepository)
	svc := NewService(users, apps, nil, nil)

	users.On("GetByID", mock.Anything, int64(5)).Return(&domain.User{ID: 5, Role: domain.RoleOwner}, nil)
	apps.On("HasPending", mock.Anything, int64(5)).Return(true, nil)

	_, err := svc.ApplyVet(context.Background(), 5, VetApplicationRequest{ClinicName: "X", LicenseNumber: "Y"})
	assert.ErrorIs(t, err, ErrApplicationPending)
}
