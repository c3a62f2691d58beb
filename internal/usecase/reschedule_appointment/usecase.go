package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/CMP-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/CMP-SchedulingService/internal/service/conflicts"
)

// UseCase use case для переноса приёма
// Длительность приёма сохраняется; проверка конфликтов на новом интервале
// исключает сам переносимый приём
type UseCase struct {
	appointmentRepo AppointmentRepository
	conflictChecker ConflictChecker
	calculator      CapacityCalculator
	txManager       TransactionManager
	timeProvider    TimeProvider
	requestTimeout  time.Duration
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	conflictChecker ConflictChecker,
	calculator CapacityCalculator,
	txManager TransactionManager,
	requestTimeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		conflictChecker: conflictChecker,
		calculator:      calculator,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		requestTimeout:  requestTimeout,
		logger:          logger,
	}
}

// Execute выполняет use case переноса приёма
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%d, newDate=%s, newTime=%s",
		req.AppointmentID, req.NewDate.Format(domain.DateFormat), req.NewStartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateDate(req.NewDate, now); err != nil {
		uc.logger.Warn("RescheduleAppointment: date validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment
	var oldDate time.Time
	var staffID int64

	dbCtx, cancel := context.WithTimeout(ctx, uc.requestTimeout)
	defer cancel()

	// 2. Чтение, проверка конфликтов и перенос в сериализуемой транзакции
	err := uc.txManager.DoSerializable(dbCtx, func(txCtx context.Context) error {
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.1. Перенос доступен только из scheduled и confirmed
		if !appointment.CanBeRescheduled() {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d in status %s cannot be rescheduled",
				appointment.ID, appointment.Status)
			return fmt.Errorf("%w: status %s", ErrNotReschedulable, appointment.Status)
		}

		oldDate = appointment.Date
		staffID = appointment.StaffID

		// 2.2. Новый интервал с сохранением длительности
		newEnd, err := req.NewStartTime.AddMinutes(appointment.DurationMinutes)
		if err != nil {
			uc.logger.Warn("RescheduleAppointment: interval crosses midnight: %v", err)
			return fmt.Errorf("%w: appointment must end within the same day", ErrInvalidInput)
		}

		// 2.3. Проверяем новый интервал, исключая сам приём
		// (перенос внутри того же дня не конфликтует сам с собой)
		if err := uc.conflictChecker.Check(txCtx, appointment.StaffID, req.NewDate, req.NewStartTime, newEnd, &appointment.ID); err != nil {
			return err
		}

		// 2.4. Переносим приём
		if err := uc.appointmentRepo.Reschedule(txCtx, appointment.ID, req.NewDate, req.NewStartTime, newEnd, appointment.DurationMinutes); err != nil {
			uc.logger.Error("RescheduleAppointment: failed to reschedule appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to reschedule: %v", ErrInternal, err)
		}

		result, err = uc.appointmentRepo.GetByID(txCtx, appointment.ID)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to reread appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to reread appointment: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, uc.mapTxError(err)
	}

	uc.logger.Info("RescheduleAppointment: appointment id=%d moved to %s %s",
		result.ID, result.Date.Format(domain.DateFormat), result.StartTime)

	// 3. Пересчитываем загрузку обеих затронутых дат после коммита
	uc.triggerRecompute(ctx, staffID, oldDate)
	if !sameDay(oldDate, result.Date) {
		uc.triggerRecompute(ctx, staffID, result.Date)
	}

	return toResponse(result), nil
}

// mapTxError переводит ошибки транзакции в ошибки usecase
func (uc *UseCase) mapTxError(err error) error {
	var conflictErr *conflicts.ConflictError
	if errors.As(err, &conflictErr) {
		uc.logger.Warn("RescheduleAppointment: conflict with appointment id=%d", conflictErr.AppointmentID)
		return fmt.Errorf("%w: overlaps appointment id=%d (%s-%s)",
			ErrSchedulingConflict, conflictErr.AppointmentID, conflictErr.Start, conflictErr.End)
	}

	if errors.Is(err, conflicts.ErrOutsideWorkingHours) {
		return ErrOutsideWorkingHours
	}

	if errors.Is(err, context.DeadlineExceeded) {
		uc.logger.Error("RescheduleAppointment: storage timeout: %v", err)
		return ErrStorageTimeout
	}

	if errors.Is(err, ErrAppointmentNotFound) ||
		errors.Is(err, ErrNotReschedulable) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInternal) {
		return err
	}

	return fmt.Errorf("%w: %v", ErrInternal, err)
}

// triggerRecompute запускает синхронный пересчёт загрузки,
// при сбое ставит пару в очередь отложенных пересчётов
func (uc *UseCase) triggerRecompute(ctx context.Context, staffID int64, date time.Time) {
	if err := uc.calculator.Recompute(ctx, staffID, date); err != nil {
		uc.logger.Error("RescheduleAppointment: capacity recompute failed for staff=%d date=%s: %v",
			staffID, date.Format(domain.DateFormat), err)
		if enqErr := uc.calculator.Enqueue(staffID, date); enqErr != nil {
			uc.logger.Error("RescheduleAppointment: failed to enqueue recompute: %v", enqErr)
		}
	}
}

// sameDay проверяет, что две даты относятся к одному и тому же дню
func sameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// toResponse конвертирует доменную модель в response
func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:              a.ID,
		PatientID:       a.PatientID,
		StaffID:         a.StaffID,
		Date:            a.Date,
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		UpdatedAt:       a.UpdatedAt,
	}
}
