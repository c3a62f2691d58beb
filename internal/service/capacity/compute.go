package capacity

import (
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
)

// computeCapacity чистая функция пересчёта загрузки
// Результат зависит только от входов, поэтому пересчёт идемпотентен
// и безопасен для повторов и сверочных проходов
func computeCapacity(
	staffID int64,
	date time.Time,
	totalAvailableMinutes int,
	blockedMinutes int,
	appointments []*domain.Appointment,
	now time.Time,
) *domain.StaffCapacity {
	result := &domain.StaffCapacity{
		StaffID:               staffID,
		Date:                  date,
		TotalAvailableMinutes: totalAvailableMinutes,
		BlockedMinutes:        blockedMinutes,
		LastCalculatedAt:      now,
	}

	for _, appt := range appointments {
		switch appt.Status {
		case domain.StatusCancelled:
			result.AppointmentsCancelled++
			continue
		case domain.StatusNoShow:
			result.NoShows++
		case domain.StatusCompleted:
			result.AppointmentsCompleted++
			result.CompletedMinutes += appt.DurationMinutes
			result.RevenueActual += appt.RevenueActual
		}

		// Все неотменённые приёмы когда-то были записаны
		result.AppointmentsScheduled++
		result.RevenueExpected += appt.RevenueExpected

		if appt.CountsAsBooked() {
			result.BookedMinutes += appt.DurationMinutes
		}
	}

	if totalAvailableMinutes > 0 {
		// Может превышать 100: овербукинг — сигнал для алертов, а не ошибка
		result.UtilizationPercentage = float64(result.BookedMinutes) / float64(totalAvailableMinutes) * 100
	} else if result.BookedMinutes > 0 {
		// Приёмы есть, а доступных минут нет: загрузка не определена
		result.UtilizationUndefined = true
	}

	return result
}
