package get_calendar

import (
	"context"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	"github.com/m04kA/CMP-SchedulingService/internal/service/availability"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	GetWithFilter(ctx context.Context, filter domain.StaffAppointmentsFilter) ([]*domain.Appointment, error)
}

// CapacityRepository интерфейс репозитория записей загрузки
type CapacityRepository interface {
	GetRange(ctx context.Context, staffID int64, from, to time.Time) ([]*domain.StaffCapacity, error)
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.StaffCapacity, error)
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
