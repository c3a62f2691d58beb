package forecast_capacity

import (
	"context"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/service/planning/models"
)

type CapacityPlanner interface {
	ForecastCapacity(ctx context.Context, staffID int64, date time.Time) (*models.CapacityForecast, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
