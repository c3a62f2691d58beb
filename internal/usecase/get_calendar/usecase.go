package get_calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
)

// UseCase use case календарного представления
// Собирает приёмы, окна доступности и рассчитанную загрузку за период
type UseCase struct {
	appointmentRepo AppointmentRepository
	capacityRepo    CapacityRepository
	availability    AvailabilityProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	capacityRepo CapacityRepository,
	availability AvailabilityProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		capacityRepo:    capacityRepo,
		availability:    availability,
		logger:          logger,
	}
}

// Execute выполняет use case календаря
// Окна доступности включаются только в календарь конкретного сотрудника
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCalendar: validation failed: %v", err)
		return nil, err
	}

	from, to := viewRange(req.View, req.Date)
	uc.logger.Info("GetCalendar: view=%s, from=%s, to=%s",
		req.View, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	// 1. Приёмы за период (включая отменённые - календарь показывает историю)
	filter := domain.StaffAppointmentsFilter{
		StaffID:         req.StaffID,
		StartDate:       &from,
		EndDate:         &to,
		IncludeInactive: true,
	}

	appointments, err := uc.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 2. Записи загрузки за период
	capacities, err := uc.getCapacities(ctx, req.StaffID, from, to)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get capacities: %v", err)
		return nil, fmt.Errorf("%w: failed to get capacities: %v", ErrInternal, err)
	}

	// 3. Раскладываем по дням
	apptsByDay := groupAppointments(appointments)
	capsByDay := groupCapacities(capacities)

	days := make([]Day, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(domain.DateFormat)

		day := Day{
			Date:         d,
			Appointments: apptsByDay[key],
			Capacities:   capsByDay[key],
		}
		if day.Appointments == nil {
			day.Appointments = []AppointmentItem{}
		}
		if day.Capacities == nil {
			day.Capacities = []CapacityItem{}
		}

		// Окна доступности считаются на лету только для сотрудника
		if req.StaffID != nil {
			windows, err := uc.staffWindows(ctx, *req.StaffID, d)
			if err != nil {
				return nil, err
			}
			day.Windows = windows
		}

		days = append(days, day)
	}

	return &Response{
		View:    req.View,
		From:    from,
		To:      to,
		Days:    days,
		Summary: buildSummary(days),
	}, nil
}

// getCapacities выбирает записи загрузки: по сотруднику или по всей клинике
func (uc *UseCase) getCapacities(ctx context.Context, staffID *int64, from, to time.Time) ([]*domain.StaffCapacity, error) {
	if staffID != nil {
		return uc.capacityRepo.GetRange(ctx, *staffID, from, to)
	}
	return uc.capacityRepo.GetByDateRange(ctx, from, to)
}

// staffWindows собирает окна доступности сотрудника на дату
func (uc *UseCase) staffWindows(ctx context.Context, staffID int64, date time.Time) ([]WindowItem, error) {
	day, err := uc.availability.ForDate(ctx, staffID, date)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get availability for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	windows := make([]WindowItem, 0, len(day.Windows))
	for _, w := range day.Windows {
		windows = append(windows, WindowItem{Start: w.Start, End: w.End})
	}
	return windows, nil
}

// groupAppointments группирует приёмы по дате
func groupAppointments(appointments []*domain.Appointment) map[string][]AppointmentItem {
	grouped := make(map[string][]AppointmentItem)
	for _, a := range appointments {
		key := a.Date.Format(domain.DateFormat)
		grouped[key] = append(grouped[key], AppointmentItem{
			ID:              a.ID,
			PatientID:       a.PatientID,
			StaffID:         a.StaffID,
			StartTime:       a.StartTime,
			EndTime:         a.EndTime,
			DurationMinutes: a.DurationMinutes,
			Status:          string(a.Status),
			ReasonForVisit:  a.ReasonForVisit,
		})
	}
	return grouped
}

// groupCapacities группирует записи загрузки по дате
func groupCapacities(capacities []*domain.StaffCapacity) map[string][]CapacityItem {
	grouped := make(map[string][]CapacityItem)
	for _, c := range capacities {
		key := c.Date.Format(domain.DateFormat)
		grouped[key] = append(grouped[key], CapacityItem{
			StaffID:               c.StaffID,
			TotalAvailableMinutes: c.TotalAvailableMinutes,
			BookedMinutes:         c.BookedMinutes,
			UtilizationPercentage: c.UtilizationPercentage,
			UtilizationUndefined:  c.UtilizationUndefined,
		})
	}
	return grouped
}

// buildSummary строит сводку: среднее дневных средних, дни без записей
// загрузки в среднее не входят
func buildSummary(days []Day) Summary {
	summary := Summary{}

	var daySum float64
	var daysCounted int

	for _, day := range days {
		summary.TotalAppointments += len(day.Appointments)

		var utilSum float64
		var counted int
		for _, c := range day.Capacities {
			if c.UtilizationUndefined {
				continue
			}
			utilSum += c.UtilizationPercentage
			counted++
		}
		if counted > 0 {
			daySum += utilSum / float64(counted)
			daysCounted++
		}
	}

	if daysCounted > 0 {
		summary.AverageUtilization = daySum / float64(daysCounted)
	}

	return summary
}
