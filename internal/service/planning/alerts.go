package planning

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
)

// GetCapacityAlerts строит алерты по загрузке на дату:
//   - low_utilization: < LowUtilizationBound (high), иначе ниже
//     MediumUtilizationBound (medium)
//   - no_shows: доля неявок выше NoShowRateBound (high)
//   - high_utilization: загрузка выше 100% - овербукинг (high)
//
// Алерты сортируются по убыванию серьёзности, затем по ID сотрудника
func (s *Service) GetCapacityAlerts(ctx context.Context, date time.Time) ([]domain.CapacityAlert, error) {
	capacities, err := s.capacityRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCapacityAlerts - get capacities: %v", ErrInternal, err)
	}

	alerts := make([]domain.CapacityAlert, 0)
	for _, c := range capacities {
		alerts = append(alerts, s.alertsFor(c)...)
	}

	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].Severity.Rank() != alerts[j].Severity.Rank() {
			return alerts[i].Severity.Rank() < alerts[j].Severity.Rank()
		}
		return alerts[i].StaffID < alerts[j].StaffID
	})

	return alerts, nil
}

// alertsFor строит алерты по одной записи загрузки
func (s *Service) alertsFor(c *domain.StaffCapacity) []domain.CapacityAlert {
	alerts := make([]domain.CapacityAlert, 0, 2)

	if !c.UtilizationUndefined && c.TotalAvailableMinutes > 0 {
		switch {
		case c.UtilizationPercentage > 100:
			alerts = append(alerts, domain.CapacityAlert{
				StaffID:  c.StaffID,
				Date:     c.Date,
				Kind:     domain.AlertHighUtilization,
				Severity: domain.SeverityHigh,
				Message: fmt.Sprintf("загрузка %.1f%% превышает доступное время, день переполнен",
					c.UtilizationPercentage),
				Value: c.UtilizationPercentage,
			})
		case c.UtilizationPercentage < s.cfg.LowUtilizationBound:
			alerts = append(alerts, domain.CapacityAlert{
				StaffID:  c.StaffID,
				Date:     c.Date,
				Kind:     domain.AlertLowUtilization,
				Severity: domain.SeverityHigh,
				Message: fmt.Sprintf("загрузка %.1f%% ниже %.0f%%, расписание почти пустое",
					c.UtilizationPercentage, s.cfg.LowUtilizationBound),
				Value: c.UtilizationPercentage,
			})
		case c.UtilizationPercentage < s.cfg.MediumUtilizationBound:
			alerts = append(alerts, domain.CapacityAlert{
				StaffID:  c.StaffID,
				Date:     c.Date,
				Kind:     domain.AlertLowUtilization,
				Severity: domain.SeverityMedium,
				Message: fmt.Sprintf("загрузка %.1f%% ниже целевых %.0f%%",
					c.UtilizationPercentage, s.cfg.MediumUtilizationBound),
				Value: c.UtilizationPercentage,
			})
		}
	}

	if rate := c.NoShowRate(); rate > s.cfg.NoShowRateBound {
		alerts = append(alerts, domain.CapacityAlert{
			StaffID:  c.StaffID,
			Date:     c.Date,
			Kind:     domain.AlertNoShows,
			Severity: domain.SeverityHigh,
			Message: fmt.Sprintf("доля неявок %.0f%% превышает порог %.0f%%",
				rate*100, s.cfg.NoShowRateBound*100),
			Value: rate,
		})
	}

	return alerts
}
