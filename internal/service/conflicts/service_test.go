package conflicts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	"github.com/m04kA/CMP-SchedulingService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeAppointmentRepo) GetActiveByStaffAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Appointment, error) {
	return f.appointments, f.err
}

type fakeAvailability struct {
	windows []domain.AvailabilityWindow
	err     error
}

func (f *fakeAvailability) Windows(_ context.Context, _ int64, _ time.Time) ([]domain.AvailabilityWindow, error) {
	return f.windows, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var checkDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func window(start, end string) domain.AvailabilityWindow {
	return domain.AvailabilityWindow{
		StaffID: 1,
		Date:    checkDate,
		Start:   types.TimeString(start),
		End:     types.TimeString(end),
	}
}

func activeAppointment(id int64, start, end string) *domain.Appointment {
	return &domain.Appointment{
		ID:        id,
		StaffID:   1,
		Date:      checkDate,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    domain.StatusScheduled,
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{name: "identical", aStart: "09:00", aEnd: "10:00", bStart: "09:00", bEnd: "10:00", want: true},
		{name: "partial overlap", aStart: "09:00", aEnd: "10:00", bStart: "09:30", bEnd: "10:30", want: true},
		{name: "contained", aStart: "09:00", aEnd: "12:00", bStart: "10:00", bEnd: "11:00", want: true},
		{name: "touching endpoints", aStart: "09:00", aEnd: "09:30", bStart: "09:30", bEnd: "10:00", want: false},
		{name: "touching reversed", aStart: "09:30", aEnd: "10:00", bStart: "09:00", bEnd: "09:30", want: false},
		{name: "disjoint", aStart: "09:00", aEnd: "10:00", bStart: "11:00", bEnd: "12:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := overlaps(
				types.TimeString(tt.aStart), types.TimeString(tt.aEnd),
				types.TimeString(tt.bStart), types.TimeString(tt.bEnd),
			)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindConflict_ExcludesOwnAppointment(t *testing.T) {
	appts := []*domain.Appointment{activeAppointment(7, "10:00", "11:00")}

	excludeID := int64(7)
	assert.Nil(t, findConflict(appts, types.TimeString("10:00"), types.TimeString("11:00"), &excludeID))

	otherID := int64(8)
	assert.NotNil(t, findConflict(appts, types.TimeString("10:00"), types.TimeString("11:00"), &otherID))
}

func TestFindConflict_SkipsInactive(t *testing.T) {
	cancelled := activeAppointment(3, "10:00", "11:00")
	cancelled.Status = domain.StatusCancelled

	assert.Nil(t, findConflict(
		[]*domain.Appointment{cancelled},
		types.TimeString("10:00"), types.TimeString("11:00"), nil,
	))
}

func TestCheck_Free(t *testing.T) {
	svc := NewService(
		&fakeAppointmentRepo{appointments: []*domain.Appointment{activeAppointment(1, "09:00", "09:30")}},
		&fakeAvailability{windows: []domain.AvailabilityWindow{window("09:00", "18:00")}},
		nopLogger{},
	)

	// Граничащий интервал конфликтом не считается
	err := svc.Check(context.Background(), 1, checkDate, types.TimeString("09:30"), types.TimeString("10:00"), nil)
	assert.NoError(t, err)
}

func TestCheck_Conflict(t *testing.T) {
	svc := NewService(
		&fakeAppointmentRepo{appointments: []*domain.Appointment{activeAppointment(42, "10:00", "11:00")}},
		&fakeAvailability{windows: []domain.AvailabilityWindow{window("09:00", "18:00")}},
		nopLogger{},
	)

	err := svc.Check(context.Background(), 1, checkDate, types.TimeString("10:30"), types.TimeString("11:30"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchedulingConflict)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, int64(42), conflictErr.AppointmentID)
}

func TestCheck_OutsideWorkingHours(t *testing.T) {
	svc := NewService(
		&fakeAppointmentRepo{},
		&fakeAvailability{windows: []domain.AvailabilityWindow{window("09:00", "13:00")}},
		nopLogger{},
	)

	err := svc.Check(context.Background(), 1, checkDate, types.TimeString("12:30"), types.TimeString("13:30"), nil)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestCheck_NoScheduleMeansOutsideHours(t *testing.T) {
	svc := NewService(&fakeAppointmentRepo{}, &fakeAvailability{}, nopLogger{})

	err := svc.Check(context.Background(), 1, checkDate, types.TimeString("10:00"), types.TimeString("11:00"), nil)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestCheck_RepoError(t *testing.T) {
	svc := NewService(
		&fakeAppointmentRepo{err: errors.New("connection refused")},
		&fakeAvailability{windows: []domain.AvailabilityWindow{window("09:00", "18:00")}},
		nopLogger{},
	)

	err := svc.Check(context.Background(), 1, checkDate, types.TimeString("10:00"), types.TimeString("11:00"), nil)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestHasConflict(t *testing.T) {
	svc := NewService(
		&fakeAppointmentRepo{appointments: []*domain.Appointment{activeAppointment(1, "10:00", "11:00")}},
		&fakeAvailability{windows: []domain.AvailabilityWindow{window("09:00", "18:00")}},
		nopLogger{},
	)

	got, err := svc.HasConflict(context.Background(), 1, checkDate, types.TimeString("10:00"), types.TimeString("11:00"), nil)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = svc.HasConflict(context.Background(), 1, checkDate, types.TimeString("14:00"), types.TimeString("15:00"), nil)
	require.NoError(t, err)
	assert.False(t, got)
}
