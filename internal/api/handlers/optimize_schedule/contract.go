package optimize_schedule

import (
	"context"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/service/planning/models"
)

type CapacityPlanner interface {
	OptimizeSchedule(ctx context.Context, date time.Time) ([]models.ScheduleSuggestion, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
