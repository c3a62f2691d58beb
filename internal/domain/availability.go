package domain

import (
	"time"

	"github.com/m04kA/CMP-SchedulingService/pkg/types"
)

// AvailabilityWindow represents a [start, end) time range on a given date
// during which a staff member can be booked
type AvailabilityWindow struct {
	StaffID int64
	Date    time.Time
	Start   types.TimeString
	End     types.TimeString
}

// DurationMinutes returns the length of the window in minutes
func (w AvailabilityWindow) DurationMinutes() int {
	minutes, err := w.Start.MinutesUntil(w.End)
	if err != nil || minutes < 0 {
		return 0
	}
	return minutes
}

// Contains returns true if [start, end) is fully inside the window
func (w AvailabilityWindow) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(w.Start) && !end.IsAfter(w.End)
}

// WeeklyScheduleEntry строка недельного расписания сотрудника
// Weekday в терминах time.Weekday (0 = воскресенье)
type WeeklyScheduleEntry struct {
	ID      int64
	StaffID int64
	Weekday time.Weekday
	Start   types.TimeString
	End     types.TimeString
}

// OverrideKind тип точечной правки расписания на конкретную дату
type OverrideKind string

const (
	// OverrideExtra добавляет рабочее окно в дополнение к недельному расписанию
	OverrideExtra OverrideKind = "extra"
	// OverrideBlocked вырезает период из рабочего времени (совещание, обед и т.п.)
	OverrideBlocked OverrideKind = "blocked"
)

// ScheduleOverride точечная правка расписания на конкретную дату
type ScheduleOverride struct {
	ID      int64
	StaffID int64
	Date    time.Time
	Start   types.TimeString
	End     types.TimeString
	Kind    OverrideKind
}

// TimeOff период отсутствия сотрудника
// Снижает доступность только при Approved = true
type TimeOff struct {
	ID        int64
	StaffID   int64
	StartDate time.Time
	EndDate   time.Time
	Approved  bool
	Reason    *string
}

// Covers returns true if the time-off period includes the given date
func (t TimeOff) Covers(date time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(truncateToDay(t.StartDate)) && !d.After(truncateToDay(t.EndDate))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
