package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"pethealth/internal/domain"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, a *domain.Appointment) error {
	args := m.Called(ctx, a)
	if a != nil && a.ID == 0 {
		a.ID = 100
	}
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Appointment, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockRepository) ListByVet(ctx context.Context, vetID int64) ([]domain.Appointment, error) {
	args := m.Called(ctx, vetID)
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockRepository) CheckAvailability(ctx context.Context, vetID int64, start, end time.Time) (bool, error) {
	args := m.Called(ctx, vetID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, updates map[string]any) error {
	args := m.Called(ctx, id, status, updates)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, a *domain.Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

type MockPetGetter struct {
	mock.Mock
}

func (m *MockPetGetter) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pet), args.Error(1)
}

type MockUserGetter struct {
	mock.Mock
}

func (m *MockUserGetter) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyNewAppointment(ctx context.Context, vetID, appointmentID, petID int64, start time.Time) error {
	args := m.Called(ctx, vetID, appointmentID, petID, start)
	return args.Error(0)
}

func (m *MockNotifier) NotifyUrgentAppointment(ctx context.Context, vetID, appointmentID int64, reason string) error {
	args := m.Called(ctx, vetID, appointmentID, reason)
	return args.Error(0)
}

func (m *MockNotifier) NotifyAppointmentConfirmed(ctx context.Context, ownerID, appointmentID int64, start time.Time) error {
	args := m.Called(ctx, ownerID, appointmentID, start)
	return args.Error(0)
}

func (m *MockNotifier) NotifyAppointmentCancelled(ctx context.Context, userID, appointmentID int64, reason string) error {
	args := m.Called(ctx, userID, appointmentID, reason)
	return args.Error(0)
}

func (m *MockNotifier) NotifyAppointmentUpdated(ctx context.Context, vetID, appointmentID int64) error {
	args := m.Called(ctx, vetID, appointmentID)
	return args.Error(0)
}

func (m *MockNotifier) NotifyVetResponse(ctx context.Context, ownerID, appointmentID int64, message string) error {
	args := m.Called(ctx, ownerID, appointmentID, message)
	return args.Error(0)
}

func (m *MockNotifier) BroadcastNewAppointment(ctx context.Context, start time.Time) {
	m.Called(ctx, start)
}

func fixture() (*MockRepository, *MockPetGetter, *MockUserGetter, *MockNotifier, *Service) {
	repo := new(MockRepository)
	pets := new(MockPetGetter)
	users := new(MockUserGetter)
	notifs := new(MockNotifier)
	return repo, pets, users, notifs, NewService(repo, pets, users, notifs)
}

func validCreateReq() CreateRequest {
	start := time.Now().Add(24 * time.Hour)
	return CreateRequest{
		PetID:     1,
		VetID:     2,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Reason:    "Checkup",
	}
}

func TestCreateNotifiesVetAndBroadcasts(t *testing.T) {
	repo, pets, users, notifs, svc := fixture()
	req := validCreateReq()

	pets.On("GetByID", mock.Anything, int64(1)).Return(&domain.Pet{ID: 1, OwnerID: 10}, nil)
	users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, Role: domain.RoleVet}, nil)
	repo.On("CheckAvailability", mock.Anything, int64(2), req.StartTime, req.EndTime).Return(true, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifs.On("NotifyNewAppointment", mock.Anything, int64(2), int64(100), int64(1), req.StartTime).Return(nil)
	notifs.On("BroadcastNewAppointment", mock.Anything, req.StartTime)

	a, err := svc.Create(context.Background(), 10, req)

	assert.NoError(t, err)
	assert.Equal(t, domain.AppointmentRequested, a.Status)
	notifs.AssertExpectations(t)
	notifs.AssertNotCalled(t, "NotifyUrgentAppointment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateUrgentAddsUrgentNotification(t *testing.T) {
	repo, pets, users, notifs, svc := fixture()
	req := validCreateReq()
	req.Urgent = true
	req.Reason = "Hit by car"

	pets.On("GetByID", mock.Anything, int64(1)).Return(&domain.Pet{ID: 1, OwnerID: 10}, nil)
	users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, Role: domain.RoleVet}, nil)
	repo.On("CheckAvailability", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifs.On("NotifyNewAppointment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	notifs.On("NotifyUrgentAppointment", mock.Anything, int64(2), int64(100), "Hit by car").Return(nil)
	notifs.On("BroadcastNewAppointment", mock.Anything, mock.Anything)

	_, err := svc.Create(context.Background(), 10, req)

	assert.NoError(t, err)
	notifs.AssertExpectations(t)
}

func TestCreateRejectsForeignPet(t *testing.T) {
	_, pets, _, _, svc := fixture()
	req := validCreateReq()

	pets.On("GetByID", mock.Anything, int64(1)).Return(&domain.Pet{ID: 1, OwnerID: 999}, nil)

	_, err := svc.Create(context.Background(), 10, req)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateRejectsNonVetTarget(t *testing.T) {
	_, pets, users, _, svc := fixture()
	req := validCreateReq()

	pets.On("GetByID", mock.Anything, int64(1)).Return(&domain.Pet{ID: 1, OwnerID: 10}, nil)
	users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, Role: domain.RoleOwner}, nil)

	_, err := svc.Create(context.Background(), 10, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateRejectsTakenSlot(t *testing.T) {
	repo, pets, users, _, svc := fixture()
	req := validCreateReq()

	pets.On("GetByID", mock.Anything, int64(1)).Return(&domain.Pet{ID: 1, OwnerID: 10}, nil)
	users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, Role: domain.RoleVet}, nil)
	repo.On("CheckAvailability", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	_, err := svc.Create(context.Background(), 10, req)
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestCreateRejectsPastStart(t *testing.T) {
	_, _, _, _, svc := fixture()
	req := validCreateReq()
	req.StartTime = time.Now().Add(-time.Hour)
	req.EndTime = req.StartTime.Add(30 * time.Minute)

	_, err := svc.Create(context.Background(), 10, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestConfirmNotifiesOwner(t *testing.T) {
	repo, _, _, notifs, svc := fixture()
	start := time.Now().Add(time.Hour)
	a := &domain.Appointment{ID: 5, OwnerID: 10, VetID: 2, StartTime: start, Status: domain.AppointmentRequested}

	repo.On("GetByID", mock.Anything, int64(5)).Return(a, nil)
	repo.On("UpdateStatus", mock.Anything, int64(5), domain.AppointmentConfirmed, mock.Anything).Return(nil)
	notifs.On("NotifyAppointmentConfirmed", mock.Anything, int64(10), int64(5), start).Return(nil)

	got, err := svc.Confirm(context.Background(), 5, 2)

	assert.NoError(t, err)
	assert.Equal(t, domain.AppointmentConfirmed, got.Status)
	notifs.AssertExpectations(t)
}

func TestConfirmRejectsWrongVet(t *testing.T) {
	repo, _, _, _, svc := fixture()
	a := &domain.Appointment{ID: 5, OwnerID: 10, VetID: 2, Status: domain.AppointmentRequested}
	repo.On("GetByID", mock.Anything, int64(5)).Return(a, nil)

	_, err := svc.Confirm(context.Background(), 5, 99)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestConfirmRejectsBadTransition(t *testing.T) {
	repo, _, _, _, svc := fixture()
	a := &domain.Appointment{ID: 5, OwnerID: 10, VetID: 2, Status: domain.AppointmentCancelled}
	repo.On("GetByID", mock.Anything, int64(5)).Return(a, nil)

	_, err := svc.Confirm(context.Background(), 5, 2)
	assert.ErrorIs(t, err, ErrBadTransition)
}

func TestCancelByOwnerNotifiesVet(t *testing.T) {
	repo, _, _, notifs, svc := fixture()
	a := &domain.Appointment{ID: 5, OwnerID: 10, VetID: 2, Status: domain.AppointmentConfirmed}

	repo.On("GetByID", mock.Anything, int64(5)).Return(a, nil)
	repo.On("UpdateStatus", mock.Anything, int64(5), domain.AppointmentCancelled, mock.Anything).Return(nil)
	notifs.On("NotifyAppointmentCancelled", mock.Anything, int64(2), int64(5), "conflict").Return(nil)

	got, err := svc.Cancel(context.Background(), 5, 10, "conflict")

	assert.NoError(t, err)
	assert.Equal(t, domain.AppointmentCancelled, got.Status)
	assert.Equal(t, "conflict", got.CancellationReason)
	notifs.AssertExpectations(t)
}

func TestCancelByVetNotifiesOwner(t *testing.T) {
	repo, _, _, notifs, svc := fixture()
	a := &domain.Appointment{ID: 5, OwnerID: 10, VetID: 2, Status: domain.AppointmentRequested}

	repo.On("GetByID", mock.Anything, int64(5)).Return(a, nil)
	repo.On("UpdateStatus", mock.Anything, int64(5), domain.AppointmentCancelled, mock.Anything).Return(nil)
	notifs.On("NotifyAppointmentCancelled", mock.Anything, int64(10), int64(5), "").Return(nil)

	_, err := svc.Cancel(context.Background(), 5, 2, "")
	assert.NoError(t, err)
	notifs.AssertExpectations(t)
}

func TestCancelTwiceFails(t *testing.T) {
	repo, _, _, _, svc := fixture()
	a := &domain.Appointment{ID: 5, OwnerID: 10, VetID: 2, Status: domain.AppointmentCancelled}
	repo.On("GetByID", mock.Anything, int64(5)).Return(a, nil)

	_, err := svc.Cancel(context.Background(), 5, 10, "again")
	assert.ErrorIs(t, err, ErrBadTransition)
}

func TestRescheduleReRequestsConfirmation(t *testing.T) {
	repo, _, _, notifs, svc := fixture()
	a := &domain.Appointment{ID: 5, OwnerID: 10, VetID: 2, Status: domain.AppointmentConfirmed}
	start := time.Now().Add(48 * time.Hour)
	req := RescheduleRequest{StartTime: start, EndTime: start.Add(time.Hour)}

	repo.On("GetByID", mock.Anything, int64(5)).Return(a, nil)
	repo.On("CheckAvailability", mock.Anything, int64(2), req.StartTime, req.EndTime).Return(true, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	notifs.On("NotifyAppointmentUpdated", mock.Anything, int64(2), int64(5)).Return(nil)

	got, err := svc.Reschedule(context.Background(), 5, 10, req)

	assert.NoError(t, err)
	assert.Equal(t, domain.AppointmentRequested, got.Status)
	assert.Equal(t, start, got.StartTime)
	notifs.AssertExpectations(t)
}

func TestRespondNotifiesOwner(t *testing.T) {
	repo, _, _, notifs, svc := fixture()
	a := &domain.Appointment{ID: 5, OwnerID: 10, VetID: 2}

	repo.On("GetByID", mock.Anything, int64(5)).Return(a, nil)
	notifs.On("NotifyVetResponse", mock.Anything, int64(10), int64(5), "Bring the vaccination booklet").Return(nil)

	err := svc.Respond(context.Background(), 5, 2, "Bring the vaccination booklet")
	assert.NoError(t, err)
	notifs.AssertExpectations(t)
}

func TestGetNotFound(t *testing.T) {
	repo, _, _, _, svc := fixture()
	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), 404, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}
