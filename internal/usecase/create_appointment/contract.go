package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	"github.com/m04kA/CMP-SchedulingService/internal/integrations/staffdirectory"
	"github.com/m04kA/CMP-SchedulingService/pkg/types"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// ConflictChecker интерфейс проверки конфликтов расписания
type ConflictChecker interface {
	Check(ctx context.Context, staffID int64, date time.Time, start, end types.TimeString, excludeID *int64) error
}

// CapacityPlanner интерфейс быстрой проверки ёмкости
type CapacityPlanner interface {
	HasCapacity(ctx context.Context, staffID int64, date time.Time, requiredMinutes int) (bool, error)
}

// CapacityCalculator интерфейс пересчёта загрузки
type CapacityCalculator interface {
	Recompute(ctx context.Context, staffID int64, date time.Time) error
	Enqueue(staffID int64, date time.Time) error
}

// StaffDirectoryClient интерфейс справочника персонала
type StaffDirectoryClient interface {
	GetStaff(ctx context.Context, staffID int64) (*staffdirectory.StaffMember, error)
	GetAppointmentType(ctx context.Context, typeID int64) (*staffdirectory.AppointmentType, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
