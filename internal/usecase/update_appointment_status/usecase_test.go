package update_appointment_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/CMP-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/CMP-SchedulingService/pkg/ptr"
	"github.com/m04kA/CMP-SchedulingService/pkg/types"
)

type fakeRepo struct {
	appointment *domain.Appointment
	getErr      error

	updatedStatus   *domain.AppointmentStatus
	cancelledReason *string
}

func (f *fakeRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copied := *f.appointment
	return &copied, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, _ int64, status domain.AppointmentStatus) error {
	f.updatedStatus = &status
	f.appointment.Status = status
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, _ int64, reason string) error {
	f.cancelledReason = &reason
	f.appointment.Status = domain.StatusCancelled
	f.appointment.CancellationReason = &reason
	return nil
}

type fakeCalculator struct {
	recomputeCalls int
}

func (f *fakeCalculator) Recompute(_ context.Context, _ int64, _ time.Time) error {
	f.recomputeCalls++
	return nil
}

func (f *fakeCalculator) Enqueue(_ int64, _ time.Time) error {
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func scheduledAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              10,
		PatientID:       1,
		StaffID:         5,
		Date:            time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		EndTime:         types.TimeString("10:30"),
		DurationMinutes: 30,
		Status:          domain.StatusScheduled,
	}
}

func newUseCase(repo *fakeRepo, calc *fakeCalculator) *UseCase {
	return NewUseCase(repo, calc, fakeTxManager{}, time.Second, nopLogger{})
}

func TestExecute_Confirm(t *testing.T) {
	repo := &fakeRepo{appointment: scheduledAppointment()}
	calc := &fakeCalculator{}

	resp, err := newUseCase(repo, calc).Execute(context.Background(), &Request{
		AppointmentID: 10,
		NewStatus:     "confirmed",
	})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.updatedStatus)
	assert.Equal(t, 1, calc.recomputeCalls)
}

func TestExecute_CancelWritesReason(t *testing.T) {
	repo := &fakeRepo{appointment: scheduledAppointment()}
	calc := &fakeCalculator{}

	resp, err := newUseCase(repo, calc).Execute(context.Background(), &Request{
		AppointmentID:      10,
		NewStatus:          "cancelled",
		CancellationReason: ptr.Ptr("пациент отменил запись"),
	})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, repo.cancelledReason)
	assert.Equal(t, "пациент отменил запись", *repo.cancelledReason)
	assert.Nil(t, repo.updatedStatus)
}

func TestExecute_CancelRequiresReason(t *testing.T) {
	repo := &fakeRepo{appointment: scheduledAppointment()}

	_, err := newUseCase(repo, &fakeCalculator{}).Execute(context.Background(), &Request{
		AppointmentID: 10,
		NewStatus:     "cancelled",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_InvalidTransition(t *testing.T) {
	appt := scheduledAppointment()
	appt.Status = domain.StatusCompleted
	repo := &fakeRepo{appointment: appt}
	calc := &fakeCalculator{}

	_, err := newUseCase(repo, calc).Execute(context.Background(), &Request{
		AppointmentID:      10,
		NewStatus:          "cancelled",
		CancellationReason: ptr.Ptr("поздно"),
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 0, calc.recomputeCalls)
}

func TestExecute_SkippingStepsForbidden(t *testing.T) {
	repo := &fakeRepo{appointment: scheduledAppointment()}

	_, err := newUseCase(repo, &fakeCalculator{}).Execute(context.Background(), &Request{
		AppointmentID: 10,
		NewStatus:     "completed",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_UnknownStatus(t *testing.T) {
	repo := &fakeRepo{appointment: scheduledAppointment()}

	_, err := newUseCase(repo, &fakeCalculator{}).Execute(context.Background(), &Request{
		AppointmentID: 10,
		NewStatus:     "postponed",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ScheduledIsNotATarget(t *testing.T) {
	appt := scheduledAppointment()
	appt.Status = domain.StatusConfirmed
	repo := &fakeRepo{appointment: appt}

	_, err := newUseCase(repo, &fakeCalculator{}).Execute(context.Background(), &Request{
		AppointmentID: 10,
		NewStatus:     "scheduled",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeRepo{getErr: appointmentRepo.ErrAppointmentNotFound}

	_, err := newUseCase(repo, &fakeCalculator{}).Execute(context.Background(), &Request{
		AppointmentID: 999,
		NewStatus:     "confirmed",
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
