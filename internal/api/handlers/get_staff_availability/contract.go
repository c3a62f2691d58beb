package get_staff_availability

import (
	"context"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/service/availability"
)

type AvailabilityProvider interface {
	ForDate(ctx context.Context, staffID int64, date time.Time) (*availability.DayAvailability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
