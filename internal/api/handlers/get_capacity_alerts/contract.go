package get_capacity_alerts

import (
	"context"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
)

type CapacityPlanner interface {
	GetCapacityAlerts(ctx context.Context, date time.Time) ([]domain.CapacityAlert, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
