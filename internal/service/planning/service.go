package planning

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	capacitystore "github.com/m04kA/CMP-SchedulingService/internal/infra/storage/capacity"
	"github.com/m04kA/CMP-SchedulingService/internal/service/planning/models"
)

// Config настройки планировщика загрузки
type Config struct {
	// UnderutilizedThreshold порог недозагрузки в процентах (строгое сравнение)
	UnderutilizedThreshold float64
	// LowUtilizationBound граница сильной недозагрузки для алертов и приоритетов
	LowUtilizationBound float64
	// MediumUtilizationBound верхняя граница умеренной недозагрузки
	MediumUtilizationBound float64
	// NoShowRateBound доля неявок, выше которой поднимается алерт
	NoShowRateBound float64
	// SlotSizeMinutes размер слота для пересчёта минут в ёмкость
	SlotSizeMinutes int
	// AverageRevenuePerMinute оценка выручки на минуту для потенциала
	AverageRevenuePerMinute float64
	// ForecastWindowDays размер трейлинг-окна прогноза
	ForecastWindowDays int
	// ForecastBuffer множитель запаса к прогнозируемому спросу
	ForecastBuffer float64
	// WeightedAverage взвешивать среднюю загрузку клиники по доступным минутам
	WeightedAverage bool
}

// Service планировщик загрузки: строит отчёты и рекомендации поверх
// рассчитанных записей staff_capacity, сам ничего не пересчитывает
type Service struct {
	capacityRepo   CapacityRepository
	staffDirectory StaffDirectoryClient
	cfg            Config
	logger         Logger
}

// NewService создает новый экземпляр планировщика
func NewService(capacityRepo CapacityRepository, staffDirectory StaffDirectoryClient, cfg Config, logger Logger) *Service {
	return &Service{
		capacityRepo:   capacityRepo,
		staffDirectory: staffDirectory,
		cfg:            cfg,
		logger:         logger,
	}
}

// GetUnderutilizedStaff возвращает сотрудников с загрузкой строго ниже порога
// threshold <= 0 означает порог по умолчанию из конфигурации
// Сотрудники без доступных минут (загрузка не определена) не попадают в список:
// их нельзя дозагрузить
func (s *Service) GetUnderutilizedStaff(ctx context.Context, date time.Time, threshold float64) ([]models.UnderutilizedStaff, error) {
	if threshold <= 0 {
		threshold = s.cfg.UnderutilizedThreshold
	}

	capacities, err := s.capacityRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnderutilizedStaff - get capacities: %v", ErrInternal, err)
	}

	names := s.staffNames(ctx)

	result := make([]models.UnderutilizedStaff, 0)
	for _, c := range capacities {
		if c.UtilizationUndefined || c.TotalAvailableMinutes == 0 {
			continue
		}
		if c.UtilizationPercentage >= threshold {
			continue
		}

		remaining := c.AvailableMinutesRemaining()
		result = append(result, models.UnderutilizedStaff{
			StaffID:               c.StaffID,
			StaffName:             names[c.StaffID],
			Date:                  c.Date,
			UtilizationPercentage: c.UtilizationPercentage,
			AvailableMinutes:      remaining,
			RevenuePotential:      float64(remaining) * s.cfg.AverageRevenuePerMinute,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].UtilizationPercentage < result[j].UtilizationPercentage
	})

	return result, nil
}

// OptimizeSchedule строит рекомендации по дозаполнению расписания на дату
// Приоритет 1 получает сильная недозагрузка (< LowUtilizationBound),
// приоритет 2 - умеренная; внутри приоритета сортировка по потенциалу выручки
func (s *Service) OptimizeSchedule(ctx context.Context, date time.Time) ([]models.ScheduleSuggestion, error) {
	underutilized, err := s.GetUnderutilizedStaff(ctx, date, 0)
	if err != nil {
		return nil, err
	}

	suggestions := make([]models.ScheduleSuggestion, 0, len(underutilized))
	for _, u := range underutilized {
		priority := 2
		if u.UtilizationPercentage < s.cfg.LowUtilizationBound {
			priority = 1
		}

		suggestions = append(suggestions, models.ScheduleSuggestion{
			StaffID:               u.StaffID,
			StaffName:             u.StaffName,
			Date:                  u.Date,
			UtilizationPercentage: u.UtilizationPercentage,
			AvailableMinutes:      u.AvailableMinutes,
			SuggestedSlots:        u.AvailableMinutes / s.cfg.SlotSizeMinutes,
			RevenuePotential:      u.RevenuePotential,
			Priority:              priority,
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Priority != suggestions[j].Priority {
			return suggestions[i].Priority < suggestions[j].Priority
		}
		return suggestions[i].RevenuePotential > suggestions[j].RevenuePotential
	})

	return suggestions, nil
}

// GetClinicCapacity агрегирует загрузку клиники на дату
// Средняя загрузка по умолчанию невзвешенная (среднее по сотрудникам);
// взвешивание по доступным минутам включается конфигом
func (s *Service) GetClinicCapacity(ctx context.Context, date time.Time) (*models.ClinicCapacity, error) {
	capacities, err := s.capacityRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: GetClinicCapacity - get capacities: %v", ErrInternal, err)
	}

	result := &models.ClinicCapacity{Date: date}

	_, dirErr := s.staffDirectory.ListActiveStaffWithGracefulDegradation(ctx)
	if dirErr != nil {
		result.Degraded = true
	}

	var utilizationSum float64
	var weightedSum float64
	var counted int

	for _, c := range capacities {
		result.StaffCount++
		result.TotalAppointments += c.AppointmentsScheduled
		result.TotalAvailableMinutes += c.TotalAvailableMinutes
		result.TotalBookedMinutes += c.BookedMinutes
		result.AvailableCapacity += c.AvailableMinutesRemaining() / s.cfg.SlotSizeMinutes
		result.RevenueExpected += c.RevenueExpected
		result.RevenueActual += c.RevenueActual

		if c.UtilizationUndefined {
			continue
		}
		utilizationSum += c.UtilizationPercentage
		weightedSum += c.UtilizationPercentage * float64(c.TotalAvailableMinutes)
		counted++
	}

	if s.cfg.WeightedAverage && result.TotalAvailableMinutes > 0 {
		result.AverageUtilization = weightedSum / float64(result.TotalAvailableMinutes)
	} else if counted > 0 {
		result.AverageUtilization = utilizationSum / float64(counted)
	}

	return result, nil
}

// ForecastCapacity прогнозирует спрос сотрудника на дату по трейлинг-истории
// Спрос - среднее число записанных приёмов в день за окно;
// рекомендация слотов - ceil(спрос * буфер)
func (s *Service) ForecastCapacity(ctx context.Context, staffID int64, date time.Time) (*models.CapacityForecast, error) {
	from := date.AddDate(0, 0, -s.cfg.ForecastWindowDays)
	to := date.AddDate(0, 0, -1)

	history, err := s.capacityRepo.GetRange(ctx, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: ForecastCapacity - get history: %v", ErrInternal, err)
	}

	forecast := &models.CapacityForecast{
		StaffID:    staffID,
		Date:       date,
		WindowDays: s.cfg.ForecastWindowDays,
	}

	if len(history) == 0 {
		return forecast, nil
	}

	var appointments int
	var noShowRateSum float64
	var utilizationSum float64
	var utilizationDays int
	for _, c := range history {
		appointments += c.AppointmentsScheduled
		noShowRateSum += c.NoShowRate()
		if !c.UtilizationUndefined {
			utilizationSum += c.UtilizationPercentage
			utilizationDays++
		}
	}

	forecast.SampledDays = len(history)
	forecast.PredictedDemand = float64(appointments) / float64(len(history))
	forecast.RecommendedSlots = int(math.Ceil(forecast.PredictedDemand * s.cfg.ForecastBuffer))
	forecast.AverageNoShowRate = noShowRateSum / float64(len(history))
	if utilizationDays > 0 {
		forecast.AverageUtilization = utilizationSum / float64(utilizationDays)
	}

	return forecast, nil
}

// HasCapacity проверяет, хватает ли у сотрудника свободных минут на дату
// Отсутствие записи загрузки трактуется как наличие ёмкости: окончательное
// слово за проверкой конфликтов при бронировании
func (s *Service) HasCapacity(ctx context.Context, staffID int64, date time.Time, requiredMinutes int) (bool, error) {
	c, err := s.capacityRepo.GetByStaffAndDate(ctx, staffID, date)
	if errors.Is(err, capacitystore.ErrCapacityNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasCapacity - get capacity: %v", ErrInternal, err)
	}

	// Запись вне расписания (загрузка не определена) ёмкостью не ограничивается
	if c.UtilizationUndefined {
		return true, nil
	}

	return c.AvailableMinutesRemaining() >= requiredMinutes, nil
}

// staffNames возвращает имена активных сотрудников по ID
// При недоступности справочника возвращает пустую карту: отчёты строятся
// без имён, а не падают
func (s *Service) staffNames(ctx context.Context) map[int64]string {
	staff, err := s.staffDirectory.ListActiveStaffWithGracefulDegradation(ctx)
	if err != nil {
		return map[int64]string{}
	}

	names := make(map[int64]string, len(staff))
	for _, m := range staff {
		names[m.ID] = m.FullName
	}
	return names
}
