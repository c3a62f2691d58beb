package get_calendar

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	switch req.View {
	case ViewDay, ViewWeek, ViewMonth:
	default:
		return fmt.Errorf("%w: unknown view %q", ErrInvalidInput, req.View)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// viewRange возвращает границы периода [from, to] для представления
// Неделя начинается с понедельника
func viewRange(view string, date time.Time) (time.Time, time.Time) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	switch view {
	case ViewWeek:
		offset := int(day.Weekday()) - int(time.Monday)
		if offset < 0 {
			offset += 7
		}
		from := day.AddDate(0, 0, -offset)
		return from, from.AddDate(0, 0, 6)
	case ViewMonth:
		from := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return from, from.AddDate(0, 1, -1)
	default:
		return day, day
	}
}
