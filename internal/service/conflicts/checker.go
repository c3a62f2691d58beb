package conflicts

import (
	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	"github.com/m04kA/CMP-SchedulingService/pkg/types"
)

// overlaps проверяет пересечение полуинтервалов [aStart, aEnd) и [bStart, bEnd)
// Используются строгие неравенства: граничащие интервалы
// (например, 09:00-09:30 и 09:30-10:00) пересечением НЕ считаются
func overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}

// findConflict ищет первый активный приём, пересекающийся с [start, end)
// excludeID исключает приём из проверки (сценарий переноса: приём не
// конфликтует сам с собой)
func findConflict(appointments []*domain.Appointment, start, end types.TimeString, excludeID *int64) *domain.Appointment {
	for _, appt := range appointments {
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}
		if !appt.IsActive() {
			continue
		}
		if overlaps(appt.StartTime, appt.EndTime, start, end) {
			return appt
		}
	}
	return nil
}

// containedInAnyWindow проверяет, что [start, end) целиком помещается
// хотя бы в одно окно доступности
func containedInAnyWindow(windows []domain.AvailabilityWindow, start, end types.TimeString) bool {
	for _, w := range windows {
		if w.Contains(start, end) {
			return true
		}
	}
	return false
}
