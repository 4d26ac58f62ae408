package admin

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pethealth/internal/domain"
)

var (
	ErrNotFound        = errors.New("application not found")
	ErrAlreadyReviewed = errors.New("application already reviewed")
)

type ReviewRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason,omitempty"`
}

type ReportRequest struct {
	Subject string `json:"subject" validate:"required"`
	Details string `json:"details,omitempty"`
}

type AnnouncementRequest struct {
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type ApplicationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.VetApplication, error)
	ListPending(ctx context.Context) ([]domain.VetApplication, error)
	Review(ctx context.Context, id, reviewerID int64, status domain.ApplicationStatus, reason string) error
}

type UserRepository interface {
	UpdateRole(ctx context.Context, userID int64, role domain.UserRole) error
}

type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) error
	List(ctx context.Context, limit, offset int) ([]domain.Report, error)
}

type Notifier interface {
	NotifyAdminsUserReport(ctx context.Context, reportID int64, subject string) error
	BroadcastAnnouncement(ctx context.Context, title, message string)
}

type Service struct {
	applications ApplicationRepository
	users        UserRepository
	reports      ReportRepository
	notifs       Notifier
}

func NewService(applications ApplicationRepository, users UserRepository, reports ReportRepository, notifs Notifier) *Service {
	return &Service{
		applications: applications,
		users:        users,
		reports:      reports,
		notifs:       notifs,
	}
}

func (s *Service) ListPendingApplications(ctx context.Context) ([]domain.VetApplication, error) {
	return s.applications.ListPending(ctx)
}

// ReviewApplication resolves a pending vet application. Approval promotes
// the applicant to the vet role.
func (s *Service) ReviewApplication(ctx context.Context, id, reviewerID int64, req ReviewRequest) (*domain.VetApplication, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if app.Status != domain.ApplicationPending {
		return nil, ErrAlreadyReviewed
	}

	status := domain.ApplicationRejected
	if req.Approve {
		status = domain.ApplicationApproved
	}

	if err := s.applications.Review(ctx, id, reviewerID, status, req.Reason); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	app.Status = status

	if req.Approve {
		if err := s.users.UpdateRole(ctx, app.UserID, domain.RoleVet); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// FileReport records a user complaint and alerts every admin.
func (s *Service) FileReport(ctx context.Context, reporterID int64, req ReportRequest) (*domain.Report, error) {
	r := &domain.Report{
		ReporterID: reporterID,
		Subject:    req.Subject,
		Details:    req.Details,
	}
	if err := s.reports.Create(ctx, r); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyAdminsUserReport(ctx, r.ID, r.Subject)
	}

	return r, nil
}

func (s *Service) ListReports(ctx context.Context, limit, offset int) ([]domain.Report, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.reports.List(ctx, limit, offset)
}

// Announce pushes a platform-wide display-only announcement.
func (s *Service) Announce(ctx context.Context, req AnnouncementRequest) {
	if s.notifs != nil {
		s.notifs.BroadcastAnnouncement(ctx, req.Title, req.Message)
	}
}
