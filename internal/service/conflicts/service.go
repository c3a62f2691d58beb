package conflicts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	"github.com/m04kA/CMP-SchedulingService/pkg/types"
)

// Service проверка конфликтов расписания
// Интервал конфликтует, если пересекается с активным приёмом того же сотрудника
// или не помещается целиком ни в одно окно доступности (запись вне рабочих
// часов — отдельный вид конфликта)
type Service struct {
	appointmentRepo AppointmentRepository
	availability    AvailabilityProvider
	logger          Logger
}

// NewService создает новый экземпляр проверки конфликтов
func NewService(appointmentRepo AppointmentRepository, availability AvailabilityProvider, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		availability:    availability,
		logger:          logger,
	}
}

// Check проверяет интервал [start, end) на конфликты для сотрудника на дату
// Возвращает nil, если интервал свободен; *ConflictError при пересечении
// с приёмом; ErrOutsideWorkingHours при выходе за окна доступности
// excludeID исключает собственный приём при переносе
//
// Вызов внутри сериализуемой транзакции блокирует день сотрудника (FOR UPDATE),
// закрывая гонку между проверкой и вставкой
func (s *Service) Check(ctx context.Context, staffID int64, date time.Time, start, end types.TimeString, excludeID *int64) error {
	windows, err := s.availability.Windows(ctx, staffID, date)
	if err != nil {
		s.logger.Error("Check: failed to get availability for staff=%d: %v", staffID, err)
		return fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	if !containedInAnyWindow(windows, start, end) {
		s.logger.Warn("Check: interval %s-%s outside working hours for staff=%d on %s",
			start, end, staffID, date.Format(domain.DateFormat))
		return fmt.Errorf("%w: %s-%s", ErrOutsideWorkingHours, start, end)
	}

	appointments, err := s.appointmentRepo.GetActiveByStaffAndDate(ctx, staffID, date)
	if err != nil {
		s.logger.Error("Check: failed to get appointments for staff=%d: %v", staffID, err)
		return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	if conflict := findConflict(appointments, start, end, excludeID); conflict != nil {
		s.logger.Warn("Check: interval %s-%s conflicts with appointment id=%d for staff=%d",
			start, end, conflict.ID, staffID)
		return &ConflictError{
			AppointmentID: conflict.ID,
			Start:         conflict.StartTime,
			End:           conflict.EndTime,
		}
	}

	return nil
}

// HasConflict возвращает true, если интервал конфликтует по любой причине
func (s *Service) HasConflict(ctx context.Context, staffID int64, date time.Time, start, end types.TimeString, excludeID *int64) (bool, error) {
	err := s.Check(ctx, staffID, date, start, end, excludeID)
	if err == nil {
		return false, nil
	}

	if errors.Is(err, ErrSchedulingConflict) || errors.Is(err, ErrOutsideWorkingHours) {
		return true, nil
	}

	return false, err
}
