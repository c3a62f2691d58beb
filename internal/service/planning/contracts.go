package planning

import (
	"context"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	"github.com/m04kA/CMP-SchedulingService/internal/integrations/staffdirectory"
)

// CapacityRepository интерфейс репозитория записей загрузки
type CapacityRepository interface {
	GetByStaffAndDate(ctx context.Context, staffID int64, date time.Time) (*domain.StaffCapacity, error)
	GetByDate(ctx context.Context, date time.Time) ([]*domain.StaffCapacity, error)
	GetRange(ctx context.Context, staffID int64, from, to time.Time) ([]*domain.StaffCapacity, error)
}

// StaffDirectoryClient интерфейс справочника персонала
type StaffDirectoryClient interface {
	ListActiveStaffWithGracefulDegradation(ctx context.Context) ([]staffdirectory.StaffMember, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
