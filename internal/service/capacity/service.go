package capacity

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	"github.com/m04kA/CMP-SchedulingService/pkg/keymutex"
)

const recomputeQueueSize = 1024

// Config настройки калькулятора загрузки
type Config struct {
	// RetryInterval пауза между повторами отложенного пересчёта
	RetryInterval time.Duration
	// RetryAttempts максимум попыток пересчёта одной пары (сотрудник, дата)
	RetryAttempts int
}

// Service калькулятор загрузки: пересчитывает staff_capacity как чистую
// функцию от приёмов и доступности
// Пересчёты одной пары (сотрудник, дата) сериализуются через keymutex,
// чтобы конкурентные записи не чередовали чтение и запись
type Service struct {
	appointmentRepo AppointmentRepository
	capacityRepo    CapacityRepository
	availability    AvailabilityProvider
	locks           *keymutex.KeyMutex
	queue           chan domain.StaffDate
	cfg             Config
	logger          Logger
}

// NewService создает новый экземпляр калькулятора загрузки
func NewService(
	appointmentRepo AppointmentRepository,
	capacityRepo CapacityRepository,
	availability AvailabilityProvider,
	cfg Config,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		capacityRepo:    capacityRepo,
		availability:    availability,
		locks:           keymutex.New(),
		queue:           make(chan domain.StaffDate, recomputeQueueSize),
		cfg:             cfg,
		logger:          logger,
	}
}

// Recompute пересчитывает загрузку сотрудника на дату и перезаписывает
// запись staff_capacity целиком
// Идемпотентен: повторный вызов с теми же данными даёт ту же запись
func (s *Service) Recompute(ctx context.Context, staffID int64, date time.Time) error {
	key := lockKey(staffID, date)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	day, err := s.availability.ForDate(ctx, staffID, date)
	if err != nil {
		return fmt.Errorf("%w: Recompute - get availability: %v", ErrInternal, err)
	}

	appointments, err := s.appointmentRepo.GetByStaffAndDate(ctx, staffID, date)
	if err != nil {
		return fmt.Errorf("%w: Recompute - get appointments: %v", ErrInternal, err)
	}

	record := computeCapacity(staffID, date, day.TotalAvailableMinutes(), day.BlockedMinutes, appointments, time.Now().UTC())

	if err := s.capacityRepo.Upsert(ctx, record); err != nil {
		return fmt.Errorf("%w: Recompute - upsert capacity: %v", ErrInternal, err)
	}

	return nil
}

// Enqueue ставит пару (сотрудник, дата) в очередь отложенного пересчёта
// Вызывается после неудачного синхронного пересчёта: запись приёма уже
// зафиксирована, откатывать её из-за производной записи нельзя
func (s *Service) Enqueue(staffID int64, date time.Time) error {
	select {
	case s.queue <- domain.StaffDate{StaffID: staffID, Date: date}:
		return nil
	default:
		s.logger.Error("Enqueue: recompute queue is full, staff=%d date=%s will be picked up by reconcile",
			staffID, date.Format(domain.DateFormat))
		return ErrQueueFull
	}
}

// Run запускает воркер отложенных пересчётов
// Каждая пара пересчитывается до cfg.RetryAttempts раз с паузой
// cfg.RetryInterval; гарантия at-least-once, дубли безопасны
// благодаря идемпотентности пересчёта
func (s *Service) Run(ctx context.Context) {
	s.logger.Info("Run: recompute worker started (interval=%s, attempts=%d)",
		s.cfg.RetryInterval, s.cfg.RetryAttempts)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Run: recompute worker stopped")
			return
		case pair := <-s.queue:
			s.retryRecompute(ctx, pair)
		}
	}
}

// retryRecompute пересчитывает пару с повторами до исчерпания попыток
func (s *Service) retryRecompute(ctx context.Context, pair domain.StaffDate) {
	for attempt := 1; attempt <= s.cfg.RetryAttempts; attempt++ {
		err := s.Recompute(ctx, pair.StaffID, pair.Date)
		if err == nil {
			if attempt > 1 {
				s.logger.Info("retryRecompute: succeeded for staff=%d date=%s on attempt %d",
					pair.StaffID, pair.Date.Format(domain.DateFormat), attempt)
			}
			return
		}

		s.logger.Warn("retryRecompute: attempt %d/%d failed for staff=%d date=%s: %v",
			attempt, s.cfg.RetryAttempts, pair.StaffID, pair.Date.Format(domain.DateFormat), err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.cfg.RetryInterval):
		}
	}

	s.logger.Error("retryRecompute: gave up on staff=%d date=%s after %d attempts, waiting for reconcile",
		pair.StaffID, pair.Date.Format(domain.DateFormat), s.cfg.RetryAttempts)
}

// Reconcile сверочный проход: пересчитывает все пары (сотрудник, дата),
// по которым менялись приёмы начиная с указанного момента
// Закрывает дыры после сбоев отложенных пересчётов
func (s *Service) Reconcile(ctx context.Context, since time.Time) error {
	pairs, err := s.appointmentRepo.TouchedStaffDatesSince(ctx, since)
	if err != nil {
		return fmt.Errorf("%w: Reconcile - get touched staff dates: %v", ErrInternal, err)
	}

	var failed int
	for _, pair := range pairs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.Recompute(ctx, pair.StaffID, pair.Date); err != nil {
			failed++
			s.logger.Error("Reconcile: failed to recompute staff=%d date=%s: %v",
				pair.StaffID, pair.Date.Format(domain.DateFormat), err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: Reconcile - %d of %d recomputes failed", ErrInternal, failed, len(pairs))
	}

	s.logger.Info("Reconcile: recomputed %d staff-date pairs", len(pairs))
	return nil
}

func lockKey(staffID int64, date time.Time) string {
	return fmt.Sprintf("%d:%s", staffID, date.Format(domain.DateFormat))
}
