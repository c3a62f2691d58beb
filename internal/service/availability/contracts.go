package availability

import (
	"context"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetWeeklySchedule(ctx context.Context, staffID int64, weekday time.Weekday) ([]domain.WeeklyScheduleEntry, error)
	GetOverrides(ctx context.Context, staffID int64, date time.Time) ([]domain.ScheduleOverride, error)
	GetApprovedTimeOff(ctx context.Context, staffID int64, date time.Time) ([]domain.TimeOff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
