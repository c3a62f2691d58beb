package capacity

import (
	"context"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	"github.com/m04kA/CMP-SchedulingService/internal/service/availability"
)

// AppointmentRepository интерфейс репозитория приёмов
// Выборка включает отменённые и неявки: калькулятор считает и их
type AppointmentRepository interface {
	GetByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.Appointment, error)
	TouchedStaffDatesSince(ctx context.Context, since time.Time) ([]domain.StaffDate, error)
}

// CapacityRepository интерфейс репозитория записей загрузки
type CapacityRepository interface {
	Upsert(ctx context.Context, c *domain.StaffCapacity) error
}

// AvailabilityProvider интерфейс модели доступности
type AvailabilityProvider interface {
	ForDate(ctx context.Context, staffID int64, date time.Time) (*availability.DayAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
