package conflicts

import (
	"context"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория приёмов
// Внутри транзакции выборка блокирует день сотрудника (FOR UPDATE)
type AppointmentRepository interface {
	GetActiveByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.Appointment, error)
}

// AvailabilityProvider интерфейс модели доступности
type AvailabilityProvider interface {
	Windows(ctx context.Context, staffID int64, date time.Time) ([]domain.AvailabilityWindow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
