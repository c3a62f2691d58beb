package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	"github.com/m04kA/CMP-SchedulingService/internal/integrations/staffdirectory"
	"github.com/m04kA/CMP-SchedulingService/internal/service/conflicts"
	"github.com/m04kA/CMP-SchedulingService/pkg/types"
)

type fakeAppointmentRepo struct {
	created *domain.Appointment
	err     error
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	created := *appointment
	created.ID = 101
	f.created = &created
	return &created, nil
}

type fakeConflictChecker struct {
	err error
}

func (f *fakeConflictChecker) Check(_ context.Context, _ int64, _ time.Time, _, _ types.TimeString, _ *int64) error {
	return f.err
}

type fakePlanner struct {
	hasCapacity bool
	err         error
}

func (f *fakePlanner) HasCapacity(_ context.Context, _ int64, _ time.Time, _ int) (bool, error) {
	return f.hasCapacity, f.err
}

type fakeCalculator struct {
	recomputeErr   error
	recomputeCalls int
	enqueueCalls   int
}

func (f *fakeCalculator) Recompute(_ context.Context, _ int64, _ time.Time) error {
	f.recomputeCalls++
	return f.recomputeErr
}

func (f *fakeCalculator) Enqueue(_ int64, _ time.Time) error {
	f.enqueueCalls++
	return nil
}

type fakeStaffDirectory struct {
	staff    *staffdirectory.StaffMember
	staffErr error
	apptType *staffdirectory.AppointmentType
	typeErr  error
}

func (f *fakeStaffDirectory) GetStaff(_ context.Context, _ int64) (*staffdirectory.StaffMember, error) {
	return f.staff, f.staffErr
}

func (f *fakeStaffDirectory) GetAppointmentType(_ context.Context, _ int64) (*staffdirectory.AppointmentType, error) {
	return f.apptType, f.typeErr
}

type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
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
	testNow  = time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	repo       *fakeAppointmentRepo
	checker    *fakeConflictChecker
	planner    *fakePlanner
	calculator *fakeCalculator
	directory  *fakeStaffDirectory
	txManager  *fakeTxManager
	uc         *UseCase
}

func price(v float64) *float64 { return &v }

func newFixture() *fixture {
	f := &fixture{
		repo:       &fakeAppointmentRepo{},
		checker:    &fakeConflictChecker{},
		planner:    &fakePlanner{hasCapacity: true},
		calculator: &fakeCalculator{},
		directory: &fakeStaffDirectory{
			staff: &staffdirectory.StaffMember{ID: 5, FullName: "Петров И. С.", Role: "doctor", Active: true},
			apptType: &staffdirectory.AppointmentType{
				ID:              2,
				Name:            "Первичная консультация",
				DurationMinutes: 30,
				Price:           price(1500),
			},
		},
		txManager: &fakeTxManager{},
	}

	f.uc = NewUseCase(f.repo, f.checker, f.planner, f.calculator, f.directory, f.txManager, time.Second, nopLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: testNow}
	return f
}

func validRequest() *Request {
	return &Request{
		PatientID:         1,
		StaffID:           5,
		AppointmentTypeID: 2,
		Date:              testDate,
		StartTime:         types.TimeString("10:00"),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	// Окончание вычисляется из длительности типа приёма
	assert.Equal(t, types.TimeString("10:30"), resp.EndTime)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, float64(1500), resp.RevenueExpected)

	// Пересчёт загрузки запускается после коммита
	assert.Equal(t, 1, f.calculator.recomputeCalls)
	assert.Equal(t, 0, f.calculator.enqueueCalls)
}

func TestExecute_DurationOverride(t *testing.T) {
	f := newFixture()

	req := validRequest()
	override := 45
	req.DurationMinutes = &override

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, types.TimeString("10:45"), resp.EndTime)
}

func TestExecute_FreeAppointmentType(t *testing.T) {
	f := newFixture()
	f.directory.apptType.Price = nil

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, float64(0), resp.RevenueExpected)
}

func TestExecute_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "zero patient", mutate: func(r *Request) { r.PatientID = 0 }},
		{name: "negative staff", mutate: func(r *Request) { r.StaffID = -1 }},
		{name: "zero type", mutate: func(r *Request) { r.AppointmentTypeID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "empty start time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "bad start time", mutate: func(r *Request) { r.StartTime = "25:00" }},
		{name: "zero duration override", mutate: func(r *Request) { d := 0; r.DurationMinutes = &d }},
		{name: "negative priority", mutate: func(r *Request) { r.Priority = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_DateInPast(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_SameDayAllowed(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.Date = time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_StaffNotFound(t *testing.T) {
	f := newFixture()
	f.directory.staff = nil
	f.directory.staffErr = staffdirectory.ErrStaffNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_StaffInactive(t *testing.T) {
	f := newFixture()
	f.directory.staff.Active = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStaffInactive)
}

func TestExecute_AppointmentTypeNotFound(t *testing.T) {
	f := newFixture()
	f.directory.apptType = nil
	f.directory.typeErr = staffdirectory.ErrAppointmentTypeNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAppointmentTypeNotFound)
}

func TestExecute_CrossesMidnight(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.StartTime = types.TimeString("23:45")

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_NoCapacity(t *testing.T) {
	f := newFixture()
	f.planner.hasCapacity = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNoCapacity)

	// До транзакции дело не дошло
	assert.Nil(t, f.repo.created)
}

func TestExecute_SchedulingConflict(t *testing.T) {
	f := newFixture()
	f.checker.err = &conflicts.ConflictError{
		AppointmentID: 77,
		Start:         types.TimeString("10:00"),
		End:           types.TimeString("10:30"),
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSchedulingConflict)
	assert.Nil(t, f.repo.created)
	assert.Equal(t, 0, f.calculator.recomputeCalls)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	f := newFixture()
	f.checker.err = conflicts.ErrOutsideWorkingHours

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_StorageTimeout(t *testing.T) {
	f := newFixture()
	f.txManager.err = context.DeadlineExceeded

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStorageTimeout)
}

func TestExecute_RecomputeFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture()
	f.calculator.recomputeErr = errors.New("recompute failed")

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.ID)

	// Сбой пересчёта уходит в очередь повторов
	assert.Equal(t, 1, f.calculator.enqueueCalls)
}
