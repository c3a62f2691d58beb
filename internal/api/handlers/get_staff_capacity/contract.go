package get_staff_capacity

import (
	"context"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
)

type CapacityProvider interface {
	GetByStaffAndDate(ctx context.Context, staffID int64, date time.Time) (*domain.StaffCapacity, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
