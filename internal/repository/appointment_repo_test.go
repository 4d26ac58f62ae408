package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pethealth/internal/domain"
)

func seedAppointment(t *testing.T, repo *AppointmentRepository, vetID int64, start, end time.Time, status domain.AppointmentStatus) *domain.Appointment {
	t.Helper()
	a := &domain.Appointment{
		OwnerID:   100,
		VetID:     vetID,
		PetID:     1,
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

func TestCheckAvailabilityDetectsOverlap(t *testing.T) {
	repo := NewAppointmentRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	seedAppointment(t, repo, 1, base, base.Add(time.Hour), domain.AppointmentConfirmed)

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"same slot", base, base.Add(time.Hour), false},
		{"overlap head", base.Add(-30 * time.Minute), base.Add(30 * time.Minute), false},
		{"overlap tail", base.Add(30 * time.Minute), base.Add(90 * time.Minute), false},
		{"inside", base.Add(10 * time.Minute), base.Add(20 * time.Minute), false},
		{"touching before", base.Add(-time.Hour), base, true},
		{"touching after", base.Add(time.Hour), base.Add(2 * time.Hour), true},
		{"clear", base.Add(3 * time.Hour), base.Add(4 * time.Hour), true},
	}
	for _, tc := range cases {
		ok, err := repo.CheckAvailability(ctx, 1, tc.start, tc.end)
		require.NoError(t, err)
		assert.Equal(t, tc.want, ok, tc.name)
	}
}

func TestCheckAvailabilityIgnoresCancelled(t *testing.T) {
	repo := NewAppointmentRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	seedAppointment(t, repo, 1, base, base.Add(time.Hour), domain.AppointmentCancelled)

	ok, err := repo.CheckAvailability(ctx, 1, base, base.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckAvailabilityPerVet(t *testing.T) {
	repo := NewAppointmentRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	seedAppointment(t, repo, 1, base, base.Add(time.Hour), domain.AppointmentRequested)

	ok, err := repo.CheckAvailability(ctx, 2, base, base.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateStatusAppliesExtraColumns(t *testing.T) {
	repo := NewAppointmentRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Now().Add(time.Hour)
	a := seedAppointment(t, repo, 1, base, base.Add(time.Hour), domain.AppointmentConfirmed)

	now := time.Now()
	err := repo.UpdateStatus(ctx, a.ID, domain.AppointmentCancelled, map[string]any{
		"cancelled_at":        now,
		"cancellation_reason": "owner conflict",
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentCancelled, got.Status)
	assert.Equal(t, "owner conflict", got.CancellationReason)
	require.NotNil(t, got.CancelledAt)
}

func TestUpdateStatusUnknownID(t *testing.T) {
	repo := NewAppointmentRepository(newTestDB(t))
	err := repo.UpdateStatus(context.Background(), 9999, domain.AppointmentConfirmed, nil)
	assert.Error(t, err)
}

func TestListByOwnerAndVet(t *testing.T) {
	repo := NewAppointmentRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	seedAppointment(t, repo, 1, base, base.Add(time.Hour), domain.AppointmentRequested)
	seedAppointment(t, repo, 2, base.Add(2*time.Hour), base.Add(3*time.Hour), domain.AppointmentRequested)

	byOwner, err := repo.ListByOwner(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, byOwner, 2)
	// newest start first
	assert.True(t, byOwner[0].StartTime.After(byOwner[1].StartTime))

	byVet, err := repo.ListByVet(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byVet, 1)
}
