package planning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	capacitystore "github.com/m04kA/CMP-SchedulingService/internal/infra/storage/capacity"
	"github.com/m04kA/CMP-SchedulingService/internal/integrations/staffdirectory"
)

type fakeCapacityRepo struct {
	byStaff map[int64]*domain.StaffCapacity
	byDate  []*domain.StaffCapacity
	history []*domain.StaffCapacity
	err     error
}

func (f *fakeCapacityRepo) GetByStaffAndDate(_ context.Context, staffID int64, _ time.Time) (*domain.StaffCapacity, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.byStaff[staffID]
	if !ok {
		return nil, capacitystore.ErrCapacityNotFound
	}
	return c, nil
}

func (f *fakeCapacityRepo) GetByDate(_ context.Context, _ time.Time) ([]*domain.StaffCapacity, error) {
	return f.byDate, f.err
}

func (f *fakeCapacityRepo) GetRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.StaffCapacity, error) {
	return f.history, f.err
}

type fakeStaffDirectory struct {
	staff []staffdirectory.StaffMember
	err   error
}

func (f *fakeStaffDirectory) ListActiveStaffWithGracefulDegradation(_ context.Context) ([]staffdirectory.StaffMember, error) {
	return f.staff, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var planDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func defaultConfig() Config {
	return Config{
		UnderutilizedThreshold:  70,
		LowUtilizationBound:     50,
		MediumUtilizationBound:  70,
		NoShowRateBound:         0.2,
		SlotSizeMinutes:         30,
		AverageRevenuePerMinute: 50,
		ForecastWindowDays:      14,
		ForecastBuffer:          1.1,
	}
}

func capacityRow(staffID int64, total, booked int, utilization float64) *domain.StaffCapacity {
	return &domain.StaffCapacity{
		StaffID:               staffID,
		Date:                  planDate,
		TotalAvailableMinutes: total,
		BookedMinutes:         booked,
		UtilizationPercentage: utilization,
	}
}

func newTestService(repo *fakeCapacityRepo, dir *fakeStaffDirectory, cfg Config) *Service {
	return NewService(repo, dir, cfg, nopLogger{})
}

func TestGetUnderutilizedStaff_StrictThreshold(t *testing.T) {
	repo := &fakeCapacityRepo{byDate: []*domain.StaffCapacity{
		capacityRow(1, 480, 240, 50),
		capacityRow(2, 480, 336, 70), // ровно на пороге - не недозагружен
		capacityRow(3, 480, 335, 69.9),
	}}

	svc := newTestService(repo, &fakeStaffDirectory{}, defaultConfig())

	got, err := svc.GetUnderutilizedStaff(context.Background(), planDate, 0)
	require.NoError(t, err)

	require.Len(t, got, 2)
	// Сортировка по возрастанию загрузки
	assert.Equal(t, int64(1), got[0].StaffID)
	assert.Equal(t, int64(3), got[1].StaffID)
}

func TestGetUnderutilizedStaff_ThresholdOverride(t *testing.T) {
	repo := &fakeCapacityRepo{byDate: []*domain.StaffCapacity{
		capacityRow(1, 480, 240, 50),
		capacityRow(2, 480, 335, 69.9),
	}}

	svc := newTestService(repo, &fakeStaffDirectory{}, defaultConfig())

	// Порог из запроса перекрывает порог из конфигурации
	got, err := svc.GetUnderutilizedStaff(context.Background(), planDate, 60)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].StaffID)
}

func TestGetUnderutilizedStaff_SkipsUndefinedAndZeroMinutes(t *testing.T) {
	undefined := capacityRow(1, 0, 30, 0)
	undefined.UtilizationUndefined = true

	repo := &fakeCapacityRepo{byDate: []*domain.StaffCapacity{
		undefined,
		capacityRow(2, 0, 0, 0),
		capacityRow(3, 480, 120, 25),
	}}

	svc := newTestService(repo, &fakeStaffDirectory{}, defaultConfig())

	got, err := svc.GetUnderutilizedStaff(context.Background(), planDate, 0)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].StaffID)
	assert.Equal(t, 360, got[0].AvailableMinutes)
	assert.Equal(t, float64(360*50), got[0].RevenuePotential)
}

func TestGetUnderutilizedStaff_NamesFromDirectory(t *testing.T) {
	repo := &fakeCapacityRepo{byDate: []*domain.StaffCapacity{capacityRow(1, 480, 120, 25)}}
	dir := &fakeStaffDirectory{staff: []staffdirectory.StaffMember{
		{ID: 1, FullName: "Иванова А. П.", Active: true},
	}}

	svc := newTestService(repo, dir, defaultConfig())

	got, err := svc.GetUnderutilizedStaff(context.Background(), planDate, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Иванова А. П.", got[0].StaffName)
}

func TestGetUnderutilizedStaff_DirectoryDownStillWorks(t *testing.T) {
	repo := &fakeCapacityRepo{byDate: []*domain.StaffCapacity{capacityRow(1, 480, 120, 25)}}
	dir := &fakeStaffDirectory{err: errors.New("directory unavailable")}

	svc := newTestService(repo, dir, defaultConfig())

	got, err := svc.GetUnderutilizedStaff(context.Background(), planDate, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].StaffName)
}

func TestOptimizeSchedule_PriorityAndOrdering(t *testing.T) {
	repo := &fakeCapacityRepo{byDate: []*domain.StaffCapacity{
		capacityRow(1, 480, 288, 60), // приоритет 2
		capacityRow(2, 480, 120, 25), // приоритет 1, потенциал 360 * 50
		capacityRow(3, 480, 48, 10),  // приоритет 1, потенциал 432 * 50
	}}

	svc := newTestService(repo, &fakeStaffDirectory{}, defaultConfig())

	got, err := svc.OptimizeSchedule(context.Background(), planDate)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Внутри приоритета 1 первым идёт больший потенциал выручки
	assert.Equal(t, int64(3), got[0].StaffID)
	assert.Equal(t, 1, got[0].Priority)
	assert.Equal(t, int64(2), got[1].StaffID)
	assert.Equal(t, 1, got[1].Priority)
	assert.Equal(t, int64(1), got[2].StaffID)
	assert.Equal(t, 2, got[2].Priority)

	// 432 свободных минуты при слоте 30 минут
	assert.Equal(t, 14, got[0].SuggestedSlots)
}

func TestGetClinicCapacity_UnweightedAverage(t *testing.T) {
	undefined := capacityRow(3, 0, 60, 0)
	undefined.UtilizationUndefined = true

	repo := &fakeCapacityRepo{byDate: []*domain.StaffCapacity{
		capacityRow(1, 480, 240, 50),
		capacityRow(2, 240, 216, 90),
		undefined, // исключается из среднего, но входит в суммы
	}}

	svc := newTestService(repo, &fakeStaffDirectory{}, defaultConfig())

	got, err := svc.GetClinicCapacity(context.Background(), planDate)
	require.NoError(t, err)

	assert.Equal(t, 3, got.StaffCount)
	assert.Equal(t, 720, got.TotalAvailableMinutes)
	assert.Equal(t, 0, got.TotalAppointments)
	assert.Equal(t, 516, got.TotalBookedMinutes)
	assert.InDelta(t, 70.0, got.AverageUtilization, 0.001)
	assert.False(t, got.Degraded)

	// (480-240)/30 + (240-216)/30 + 0
	assert.Equal(t, 8, got.AvailableCapacity)
}

func TestGetClinicCapacity_WeightedAverage(t *testing.T) {
	repo := &fakeCapacityRepo{byDate: []*domain.StaffCapacity{
		capacityRow(1, 480, 240, 50),
		capacityRow(2, 240, 216, 90),
	}}

	cfg := defaultConfig()
	cfg.WeightedAverage = true
	svc := newTestService(repo, &fakeStaffDirectory{}, cfg)

	got, err := svc.GetClinicCapacity(context.Background(), planDate)
	require.NoError(t, err)

	// (50*480 + 90*240) / 720
	assert.InDelta(t, (50.0*480+90*240)/720, got.AverageUtilization, 0.001)
}

func TestGetClinicCapacity_DegradedWhenDirectoryDown(t *testing.T) {
	repo := &fakeCapacityRepo{byDate: []*domain.StaffCapacity{capacityRow(1, 480, 240, 50)}}
	dir := &fakeStaffDirectory{err: errors.New("timeout")}

	svc := newTestService(repo, dir, defaultConfig())

	got, err := svc.GetClinicCapacity(context.Background(), planDate)
	require.NoError(t, err)
	assert.True(t, got.Degraded)
}

func TestForecastCapacity(t *testing.T) {
	repo := &fakeCapacityRepo{history: []*domain.StaffCapacity{
		{StaffID: 1, AppointmentsScheduled: 8, NoShows: 2, UtilizationPercentage: 80},
		{StaffID: 1, AppointmentsScheduled: 10, NoShows: 0, UtilizationPercentage: 90},
		{StaffID: 1, AppointmentsScheduled: 6, NoShows: 0, UtilizationPercentage: 70},
	}}

	svc := newTestService(repo, &fakeStaffDirectory{}, defaultConfig())

	got, err := svc.ForecastCapacity(context.Background(), 1, planDate)
	require.NoError(t, err)

	assert.Equal(t, 14, got.WindowDays)
	assert.Equal(t, 3, got.SampledDays)
	assert.InDelta(t, 80.0, got.AverageUtilization, 0.001)
	assert.InDelta(t, 8.0, got.PredictedDemand, 0.001)
	// ceil(8 * 1.1) = 9
	assert.Equal(t, 9, got.RecommendedSlots)
	assert.InDelta(t, 0.25/3, got.AverageNoShowRate, 0.001)
}

func TestForecastCapacity_NoHistory(t *testing.T) {
	svc := newTestService(&fakeCapacityRepo{}, &fakeStaffDirectory{}, defaultConfig())

	got, err := svc.ForecastCapacity(context.Background(), 1, planDate)
	require.NoError(t, err)

	assert.Equal(t, 0, got.SampledDays)
	assert.Equal(t, float64(0), got.PredictedDemand)
	assert.Equal(t, 0, got.RecommendedSlots)
}

func TestHasCapacity(t *testing.T) {
	repo := &fakeCapacityRepo{byStaff: map[int64]*domain.StaffCapacity{
		1: capacityRow(1, 480, 420, 87.5),
	}}

	svc := newTestService(repo, &fakeStaffDirectory{}, defaultConfig())

	got, err := svc.HasCapacity(context.Background(), 1, planDate, 60)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = svc.HasCapacity(context.Background(), 1, planDate, 61)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestHasCapacity_MissingRecordMeansAvailable(t *testing.T) {
	svc := newTestService(&fakeCapacityRepo{byStaff: map[int64]*domain.StaffCapacity{}}, &fakeStaffDirectory{}, defaultConfig())

	got, err := svc.HasCapacity(context.Background(), 99, planDate, 120)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestHasCapacity_UndefinedUtilizationNotLimited(t *testing.T) {
	undefined := capacityRow(1, 0, 90, 0)
	undefined.UtilizationUndefined = true

	svc := newTestService(&fakeCapacityRepo{byStaff: map[int64]*domain.StaffCapacity{1: undefined}}, &fakeStaffDirectory{}, defaultConfig())

	got, err := svc.HasCapacity(context.Background(), 1, planDate, 240)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestGetCapacityAlerts(t *testing.T) {
	overbooked := capacityRow(5, 480, 600, 125)
	low := capacityRow(2, 480, 96, 20)
	medium := capacityRow(3, 480, 288, 60)
	healthy := capacityRow(1, 480, 384, 80)
	noShows := capacityRow(4, 480, 384, 80)
	noShows.AppointmentsScheduled = 10
	noShows.NoShows = 3

	repo := &fakeCapacityRepo{byDate: []*domain.StaffCapacity{healthy, overbooked, low, medium, noShows}}

	svc := newTestService(repo, &fakeStaffDirectory{}, defaultConfig())

	got, err := svc.GetCapacityAlerts(context.Background(), planDate)
	require.NoError(t, err)
	require.Len(t, got, 4)

	// high-алерты идут первыми, внутри серьёзности сортировка по StaffID
	assert.Equal(t, int64(2), got[0].StaffID)
	assert.Equal(t, domain.AlertLowUtilization, got[0].Kind)
	assert.Equal(t, domain.SeverityHigh, got[0].Severity)

	assert.Equal(t, int64(4), got[1].StaffID)
	assert.Equal(t, domain.AlertNoShows, got[1].Kind)

	assert.Equal(t, int64(5), got[2].StaffID)
	assert.Equal(t, domain.AlertHighUtilization, got[2].Kind)

	assert.Equal(t, int64(3), got[3].StaffID)
	assert.Equal(t, domain.SeverityMedium, got[3].Severity)
}
