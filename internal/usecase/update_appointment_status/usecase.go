package update_appointment_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/CMP-SchedulingService/internal/infra/storage/appointment"
)

// UseCase use case для смены статуса приёма
// Переходы проверяются по state machine статусов: завершённые, отменённые
// и неявки - терминальные состояния
type UseCase struct {
	appointmentRepo AppointmentRepository
	calculator      CapacityCalculator
	txManager       TransactionManager
	requestTimeout  time.Duration
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	calculator CapacityCalculator,
	txManager TransactionManager,
	requestTimeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		calculator:      calculator,
		txManager:       txManager,
		requestTimeout:  requestTimeout,
		logger:          logger,
	}
}

// Execute выполняет use case смены статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointmentStatus: appointment=%d, newStatus=%s", req.AppointmentID, req.NewStatus)

	// 1. Валидация входных данных
	newStatus, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("UpdateAppointmentStatus: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	dbCtx, cancel := context.WithTimeout(ctx, uc.requestTimeout)
	defer cancel()

	// 2. Читаем приём и меняем статус в одной транзакции,
	// чтобы параллельные смены статуса не обошли state machine
	err = uc.txManager.Do(dbCtx, func(txCtx context.Context) error {
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointmentStatus: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointmentStatus: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.1. Проверяем допустимость перехода
		if !appointment.CanTransitionTo(newStatus) {
			uc.logger.Warn("UpdateAppointmentStatus: transition %s -> %s is not allowed for appointment id=%d",
				appointment.Status, newStatus, req.AppointmentID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, newStatus)
		}

		// 2.2. Отмена пишет причину и время, остальные переходы - только статус
		if newStatus == domain.StatusCancelled {
			err = uc.appointmentRepo.Cancel(txCtx, req.AppointmentID, *req.CancellationReason)
		} else {
			err = uc.appointmentRepo.UpdateStatus(txCtx, req.AppointmentID, newStatus)
		}
		if err != nil {
			uc.logger.Error("UpdateAppointmentStatus: failed to update appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		// 2.3. Перечитываем приём с обновлёнными полями
		result, err = uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			uc.logger.Error("UpdateAppointmentStatus: failed to reread appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to reread appointment: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrStorageTimeout
		}
		return nil, err
	}

	uc.logger.Info("UpdateAppointmentStatus: appointment id=%d is now %s", result.ID, result.Status)

	// 3. Смена статуса меняет загрузку (отмена освобождает минуты,
	// завершение фиксирует выручку) - пересчитываем после коммита
	uc.triggerRecompute(ctx, result.StaffID, result.Date)

	return toResponse(result), nil
}

// triggerRecompute запускает синхронный пересчёт загрузки,
// при сбое ставит пару в очередь отложенных пересчётов
func (uc *UseCase) triggerRecompute(ctx context.Context, staffID int64, date time.Time) {
	if err := uc.calculator.Recompute(ctx, staffID, date); err != nil {
		uc.logger.Error("UpdateAppointmentStatus: capacity recompute failed for staff=%d date=%s: %v",
			staffID, date.Format(domain.DateFormat), err)
		if enqErr := uc.calculator.Enqueue(staffID, date); enqErr != nil {
			uc.logger.Error("UpdateAppointmentStatus: failed to enqueue recompute: %v", enqErr)
		}
	}
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
		RevenueExpected: a.RevenueExpected,
		RevenueActual:   a.RevenueActual,
		UpdatedAt:       a.UpdatedAt,
	}
}
