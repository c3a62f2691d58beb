package get_clinic_capacity

import (
	"context"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/service/planning/models"
)

type CapacityPlanner interface {
	GetClinicCapacity(ctx context.Context, date time.Time) (*models.ClinicCapacity, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
