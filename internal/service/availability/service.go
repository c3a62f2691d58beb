package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
)

// Service модель доступности: чистые запросы без мутаций
// Окна доступности выводятся из недельного графика, точечных правок и отпусков
type Service struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// ForDate возвращает доступность сотрудника на дату
// Отсутствие расписания — валидное состояние: возвращается пустой набор окон
func (s *Service) ForDate(ctx context.Context, staffID int64, date time.Time) (*DayAvailability, error) {
	entries, err := s.scheduleRepo.GetWeeklySchedule(ctx, staffID, date.Weekday())
	if err != nil {
		s.logger.Error("ForDate: failed to get weekly schedule for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get weekly schedule: %v", ErrInternal, err)
	}

	overrides, err := s.scheduleRepo.GetOverrides(ctx, staffID, date)
	if err != nil {
		s.logger.Error("ForDate: failed to get overrides for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get overrides: %v", ErrInternal, err)
	}

	timeOff, err := s.scheduleRepo.GetApprovedTimeOff(ctx, staffID, date)
	if err != nil {
		s.logger.Error("ForDate: failed to get time off for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
	}

	day := buildDayAvailability(staffID, date, entries, overrides, timeOff)
	return &day, nil
}

// Windows возвращает упорядоченные окна доступности сотрудника на дату
func (s *Service) Windows(ctx context.Context, staffID int64, date time.Time) ([]domain.AvailabilityWindow, error) {
	day, err := s.ForDate(ctx, staffID, date)
	if err != nil {
		return nil, err
	}
	return day.Windows, nil
}
