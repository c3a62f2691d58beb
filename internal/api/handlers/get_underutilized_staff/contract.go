package get_underutilized_staff

import (
	"context"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/service/planning/models"
)

type CapacityPlanner interface {
	GetUnderutilizedStaff(ctx context.Context, date time.Time, threshold float64) ([]models.UnderutilizedStaff, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
