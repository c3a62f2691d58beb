package capacity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
)

var (
	computeDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	computeNow  = time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
)

func appt(status domain.AppointmentStatus, duration int, expected, actual float64) *domain.Appointment {
	return &domain.Appointment{
		StaffID:         1,
		Date:            computeDate,
		DurationMinutes: duration,
		Status:          status,
		RevenueExpected: expected,
		RevenueActual:   actual,
	}
}

func TestComputeCapacity_EmptyDay(t *testing.T) {
	got := computeCapacity(1, computeDate, 480, 0, nil, computeNow)

	assert.Equal(t, int64(1), got.StaffID)
	assert.Equal(t, 480, got.TotalAvailableMinutes)
	assert.Equal(t, 0, got.BookedMinutes)
	assert.Equal(t, float64(0), got.UtilizationPercentage)
	assert.False(t, got.UtilizationUndefined)
	assert.Equal(t, computeNow, got.LastCalculatedAt)
}

func TestComputeCapacity_MixedStatuses(t *testing.T) {
	appointments := []*domain.Appointment{
		appt(domain.StatusScheduled, 30, 1500, 0),
		appt(domain.StatusConfirmed, 60, 3000, 0),
		appt(domain.StatusCompleted, 45, 2000, 2200),
		appt(domain.StatusCancelled, 30, 1500, 0),
		appt(domain.StatusNoShow, 30, 1000, 0),
	}

	got := computeCapacity(1, computeDate, 480, 60, appointments, computeNow)

	// Отменённый приём учитывается только счётчиком отмен
	assert.Equal(t, 1, got.AppointmentsCancelled)

	// scheduled + confirmed + completed + no_show
	assert.Equal(t, 4, got.AppointmentsScheduled)
	assert.Equal(t, 1, got.AppointmentsCompleted)
	assert.Equal(t, 1, got.NoShows)

	// no_show не бронирует минуты, завершённый - бронирует
	assert.Equal(t, 30+60+45, got.BookedMinutes)
	assert.Equal(t, 45, got.CompletedMinutes)
	assert.Equal(t, 60, got.BlockedMinutes)

	assert.Equal(t, float64(1500+3000+2000+1000), got.RevenueExpected)
	assert.Equal(t, float64(2200), got.RevenueActual)

	assert.InDelta(t, float64(135)/480*100, got.UtilizationPercentage, 0.001)
	assert.False(t, got.UtilizationUndefined)
}

func TestComputeCapacity_Overbooking(t *testing.T) {
	appointments := []*domain.Appointment{
		appt(domain.StatusScheduled, 300, 0, 0),
		appt(domain.StatusScheduled, 300, 0, 0),
	}

	got := computeCapacity(1, computeDate, 480, 0, appointments, computeNow)

	assert.InDelta(t, 125.0, got.UtilizationPercentage, 0.001)
	assert.True(t, got.IsOverbooked())
	assert.Equal(t, 0, got.AvailableMinutesRemaining())
}

func TestComputeCapacity_NoAvailabilityWithBookings(t *testing.T) {
	appointments := []*domain.Appointment{appt(domain.StatusScheduled, 30, 0, 0)}

	got := computeCapacity(1, computeDate, 0, 0, appointments, computeNow)

	assert.True(t, got.UtilizationUndefined)
	assert.Equal(t, float64(0), got.UtilizationPercentage)
}

func TestComputeCapacity_NoAvailabilityNoBookings(t *testing.T) {
	got := computeCapacity(1, computeDate, 0, 0, nil, computeNow)

	assert.False(t, got.UtilizationUndefined)
	assert.Equal(t, float64(0), got.UtilizationPercentage)
}

func TestComputeCapacity_Idempotent(t *testing.T) {
	appointments := []*domain.Appointment{
		appt(domain.StatusScheduled, 30, 1500, 0),
		appt(domain.StatusCompleted, 60, 2000, 2000),
	}

	first := computeCapacity(1, computeDate, 480, 0, appointments, computeNow)
	second := computeCapacity(1, computeDate, 480, 0, appointments, computeNow)

	require.Equal(t, first, second)
}

func TestStaffCapacity_NoShowRate(t *testing.T) {
	c := domain.StaffCapacity{AppointmentsScheduled: 4, NoShows: 1}
	assert.InDelta(t, 0.25, c.NoShowRate(), 0.001)

	empty := domain.StaffCapacity{}
	assert.Equal(t, float64(0), empty.NoShowRate())
}
