package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	"github.com/m04kA/CMP-SchedulingService/internal/integrations/staffdirectory"
	"github.com/m04kA/CMP-SchedulingService/internal/service/conflicts"
)

// UseCase use case для создания приёма
type UseCase struct {
	appointmentRepo AppointmentRepository
	conflictChecker ConflictChecker
	planner         CapacityPlanner
	calculator      CapacityCalculator
	staffDirectory  StaffDirectoryClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	requestTimeout  time.Duration
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	conflictChecker ConflictChecker,
	planner CapacityPlanner,
	calculator CapacityCalculator,
	staffDirectory StaffDirectoryClient,
	txManager TransactionManager,
	requestTimeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		conflictChecker: conflictChecker,
		planner:         planner,
		calculator:      calculator,
		staffDirectory:  staffDirectory,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		requestTimeout:  requestTimeout,
		logger:          logger,
	}
}

// Execute выполняет use case создания приёма
// Проверка конфликтов и вставка выполняются в сериализуемой транзакции
// с блокировкой дня сотрудника, чтобы два параллельных запроса не заняли
// один интервал
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: patient=%d, staff=%d, type=%d, date=%s, time=%s",
		req.PatientID, req.StaffID, req.AppointmentTypeID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и проверяем дату
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем сотрудника из справочника
	staff, err := uc.staffDirectory.GetStaff(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffdirectory.ErrStaffNotFound) {
			uc.logger.Warn("CreateAppointment: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	if !staff.Active {
		uc.logger.Warn("CreateAppointment: staff id=%d is inactive", req.StaffID)
		return nil, ErrStaffInactive
	}

	// 4. Получаем тип приёма (длительность и цену)
	apptType, err := uc.staffDirectory.GetAppointmentType(ctx, req.AppointmentTypeID)
	if err != nil {
		if errors.Is(err, staffdirectory.ErrAppointmentTypeNotFound) {
			uc.logger.Warn("CreateAppointment: appointment type id=%d not found", req.AppointmentTypeID)
			return nil, ErrAppointmentTypeNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get appointment type id=%d: %v", req.AppointmentTypeID, err)
		return nil, fmt.Errorf("%w: failed to get appointment type: %v", ErrInternal, err)
	}

	// 5. Вычисляем интервал приёма
	duration := apptType.DurationMinutes
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: appointment type has no duration", ErrInvalidInput)
	}

	endTime, err := req.StartTime.AddMinutes(duration)
	if err != nil {
		uc.logger.Warn("CreateAppointment: interval crosses midnight: %v", err)
		return nil, fmt.Errorf("%w: appointment must end within the same day", ErrInvalidInput)
	}

	// 6. Быстрая проверка ёмкости по рассчитанной загрузке
	// Это отсечение очевидно переполненных дней до открытия транзакции;
	// окончательное слово за проверкой конфликтов под блокировкой
	hasCapacity, err := uc.planner.HasCapacity(ctx, req.StaffID, req.Date, duration)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to check capacity: %v", err)
		return nil, fmt.Errorf("%w: failed to check capacity: %v", ErrInternal, err)
	}
	if !hasCapacity {
		uc.logger.Warn("CreateAppointment: no capacity for staff=%d on %s",
			req.StaffID, req.Date.Format(domain.DateFormat))
		return nil, ErrNoCapacity
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	dbCtx, cancel := context.WithTimeout(ctx, uc.requestTimeout)
	defer cancel()

	// 7. Проверка конфликтов и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(dbCtx, func(txCtx context.Context) error {
		// 7.1. Проверяем интервал; чтение дня внутри транзакции берёт FOR UPDATE
		if err := uc.conflictChecker.Check(txCtx, req.StaffID, req.Date, req.StartTime, endTime, nil); err != nil {
			return err
		}

		// 7.2. Создаем приём
		appointment := &domain.Appointment{
			PatientID:         req.PatientID,
			StaffID:           req.StaffID,
			AppointmentTypeID: req.AppointmentTypeID,
			Date:              req.Date,
			StartTime:         req.StartTime,
			EndTime:           endTime,
			DurationMinutes:   duration,
			Status:            domain.StatusScheduled,
			Priority:          req.Priority,
			ReasonForVisit:    req.ReasonForVisit,
			LinkedRecordID:    req.LinkedRecordID,
			RevenueExpected:   getTypePrice(apptType),
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.mapTxError(err)
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// 8. Пересчитываем загрузку после коммита
	// Приём уже зафиксирован: сбой пересчёта логируется и уходит в очередь
	// повторов, но не откатывает бронирование
	uc.triggerRecompute(ctx, req.StaffID, req.Date)

	return toResponse(result), nil
}

// mapTxError переводит ошибки транзакции в ошибки usecase
func (uc *UseCase) mapTxError(err error) error {
	var conflictErr *conflicts.ConflictError
	if errors.As(err, &conflictErr) {
		uc.logger.Warn("CreateAppointment: conflict with appointment id=%d", conflictErr.AppointmentID)
		return fmt.Errorf("%w: overlaps appointment id=%d (%s-%s)",
			ErrSchedulingConflict, conflictErr.AppointmentID, conflictErr.Start, conflictErr.End)
	}

	if errors.Is(err, conflicts.ErrOutsideWorkingHours) {
		return ErrOutsideWorkingHours
	}

	if errors.Is(err, context.DeadlineExceeded) {
		uc.logger.Error("CreateAppointment: storage timeout: %v", err)
		return ErrStorageTimeout
	}

	if errors.Is(err, ErrInternal) {
		return err
	}

	return fmt.Errorf("%w: %v", ErrInternal, err)
}

// triggerRecompute запускает синхронный пересчёт загрузки,
// при сбое ставит пару в очередь отложенных пересчётов
func (uc *UseCase) triggerRecompute(ctx context.Context, staffID int64, date time.Time) {
	if err := uc.calculator.Recompute(ctx, staffID, date); err != nil {
		uc.logger.Error("CreateAppointment: capacity recompute failed for staff=%d date=%s: %v",
			staffID, date.Format(domain.DateFormat), err)
		if enqErr := uc.calculator.Enqueue(staffID, date); enqErr != nil {
			uc.logger.Error("CreateAppointment: failed to enqueue recompute: %v", enqErr)
		}
	}
}

// getTypePrice извлекает цену из типа приёма
// Если цена не указана (nil), возвращает 0.0
func getTypePrice(apptType *staffdirectory.AppointmentType) float64 {
	if apptType.Price == nil {
		return 0.0
	}
	return *apptType.Price
}

// toResponse конвертирует доменную модель в response
func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:                a.ID,
		PatientID:         a.PatientID,
		StaffID:           a.StaffID,
		AppointmentTypeID: a.AppointmentTypeID,
		Date:              a.Date,
		StartTime:         a.StartTime,
		EndTime:           a.EndTime,
		DurationMinutes:   a.DurationMinutes,
		Status:            string(a.Status),
		Priority:          a.Priority,
		ReasonForVisit:    a.ReasonForVisit,
		LinkedRecordID:    a.LinkedRecordID,
		RevenueExpected:   a.RevenueExpected,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}
