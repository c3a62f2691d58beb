package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/CMP-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/CMP-SchedulingService/internal/service/conflicts"
	"github.com/m04kA/CMP-SchedulingService/pkg/types"
)

type fakeRepo struct {
	appointment *domain.Appointment
	getErr      error
	rescheduled bool
}

func (f *fakeRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copied := *f.appointment
	return &copied, nil
}

func (f *fakeRepo) Reschedule(_ context.Context, _ int64, date time.Time, start, end types.TimeString, durationMinutes int) error {
	f.rescheduled = true
	f.appointment.Date = date
	f.appointment.StartTime = start
	f.appointment.EndTime = end
	f.appointment.DurationMinutes = durationMinutes
	return nil
}

type fakeChecker struct {
	err       error
	excludeID *int64
}

func (f *fakeChecker) Check(_ context.Context, _ int64, _ time.Time, _, _ types.TimeString, excludeID *int64) error {
	f.excludeID = excludeID
	return f.err
}

type fakeCalculator struct {
	recomputed []time.Time
}

func (f *fakeCalculator) Recompute(_ context.Context, _ int64, date time.Time) error {
	f.recomputed = append(f.recomputed, date)
	return nil
}

func (f *fakeCalculator) Enqueue(_ int64, _ time.Time) error {
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	testNow = time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	oldDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	newDate = time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)
)

func confirmedAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              10,
		PatientID:       1,
		StaffID:         5,
		Date:            oldDate,
		StartTime:       types.TimeString("10:00"),
		EndTime:         types.TimeString("10:30"),
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}
}

func newFixture(repo *fakeRepo, checker *fakeChecker, calc *fakeCalculator) *UseCase {
	uc := NewUseCase(repo, checker, calc, fakeTxManager{}, time.Second, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func TestExecute_MoveToAnotherDay(t *testing.T) {
	repo := &fakeRepo{appointment: confirmedAppointment()}
	checker := &fakeChecker{}
	calc := &fakeCalculator{}

	resp, err := newFixture(repo, checker, calc).Execute(context.Background(), &Request{
		AppointmentID: 10,
		NewDate:       newDate,
		NewStartTime:  types.TimeString("14:00"),
	})
	require.NoError(t, err)

	assert.True(t, repo.rescheduled)
	assert.Equal(t, newDate, resp.Date)
	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
	// Длительность сохраняется, окончание пересчитывается
	assert.Equal(t, types.TimeString("14:30"), resp.EndTime)
	assert.Equal(t, 30, resp.DurationMinutes)

	// Проверка конфликтов исключает сам переносимый приём
	require.NotNil(t, checker.excludeID)
	assert.Equal(t, int64(10), *checker.excludeID)

	// Пересчитываются обе затронутые даты
	require.Len(t, calc.recomputed, 2)
	assert.Equal(t, oldDate, calc.recomputed[0])
	assert.Equal(t, newDate, calc.recomputed[1])
}

func TestExecute_SameDayRecomputesOnce(t *testing.T) {
	repo := &fakeRepo{appointment: confirmedAppointment()}
	calc := &fakeCalculator{}

	_, err := newFixture(repo, &fakeChecker{}, calc).Execute(context.Background(), &Request{
		AppointmentID: 10,
		NewDate:       oldDate,
		NewStartTime:  types.TimeString("15:00"),
	})
	require.NoError(t, err)

	assert.Len(t, calc.recomputed, 1)
}

func TestExecute_NotReschedulable(t *testing.T) {
	appt := confirmedAppointment()
	appt.Status = domain.StatusInProgress
	repo := &fakeRepo{appointment: appt}

	_, err := newFixture(repo, &fakeChecker{}, &fakeCalculator{}).Execute(context.Background(), &Request{
		AppointmentID: 10,
		NewDate:       newDate,
		NewStartTime:  types.TimeString("14:00"),
	})
	assert.ErrorIs(t, err, ErrNotReschedulable)
	assert.False(t, repo.rescheduled)
}

func TestExecute_Conflict(t *testing.T) {
	repo := &fakeRepo{appointment: confirmedAppointment()}
	checker := &fakeChecker{err: &conflicts.ConflictError{AppointmentID: 77}}

	_, err := newFixture(repo, checker, &fakeCalculator{}).Execute(context.Background(), &Request{
		AppointmentID: 10,
		NewDate:       newDate,
		NewStartTime:  types.TimeString("14:00"),
	})
	assert.ErrorIs(t, err, ErrSchedulingConflict)
	assert.False(t, repo.rescheduled)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	repo := &fakeRepo{appointment: confirmedAppointment()}
	checker := &fakeChecker{err: conflicts.ErrOutsideWorkingHours}

	_, err := newFixture(repo, checker, &fakeCalculator{}).Execute(context.Background(), &Request{
		AppointmentID: 10,
		NewDate:       newDate,
		NewStartTime:  types.TimeString("14:00"),
	})
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_DateInPast(t *testing.T) {
	repo := &fakeRepo{appointment: confirmedAppointment()}

	_, err := newFixture(repo, &fakeChecker{}, &fakeCalculator{}).Execute(context.Background(), &Request{
		AppointmentID: 10,
		NewDate:       testNow.AddDate(0, 0, -1),
		NewStartTime:  types.TimeString("14:00"),
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_CrossesMidnight(t *testing.T) {
	repo := &fakeRepo{appointment: confirmedAppointment()}

	_, err := newFixture(repo, &fakeChecker{}, &fakeCalculator{}).Execute(context.Background(), &Request{
		AppointmentID: 10,
		NewDate:       newDate,
		NewStartTime:  types.TimeString("23:45"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeRepo{getErr: appointmentRepo.ErrAppointmentNotFound}

	_, err := newFixture(repo, &fakeChecker{}, &fakeCalculator{}).Execute(context.Background(), &Request{
		AppointmentID: 999,
		NewDate:       newDate,
		NewStartTime:  types.TimeString("14:00"),
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
