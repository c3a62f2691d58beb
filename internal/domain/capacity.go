package domain

import "time"

// StaffDate пара (сотрудник, дата), по которой требуется пересчёт загрузки
type StaffDate struct {
	StaffID int64
	Date    time.Time
}

// StaffCapacity производная запись загрузки сотрудника на дату
// Никогда не редактируется напрямую: пересчитывается калькулятором как чистая
// функция от приёмов, расписания и отпусков и перезаписывается целиком
type StaffCapacity struct {
	StaffID int64
	Date    time.Time

	TotalAvailableMinutes int
	BookedMinutes         int
	CompletedMinutes      int
	BlockedMinutes        int

	// UtilizationPercentage может превышать 100 (овербукинг - повод для алерта,
	// а не ошибка вычисления)
	UtilizationPercentage float64
	// UtilizationUndefined выставляется, когда доступных минут нет,
	// но приёмы при этом записаны (экстренная запись вне расписания)
	UtilizationUndefined bool

	AppointmentsScheduled int
	AppointmentsCompleted int
	AppointmentsCancelled int
	NoShows               int

	RevenueExpected float64
	RevenueActual   float64

	LastCalculatedAt time.Time
}

// AvailableMinutesRemaining returns the unbooked available minutes (never negative)
func (c *StaffCapacity) AvailableMinutesRemaining() int {
	remaining := c.TotalAvailableMinutes - c.BookedMinutes
	if remaining < 0 {
		return 0
	}
	return remaining
}

// NoShowRate returns the share of no-shows among scheduled appointments (0..1)
func (c *StaffCapacity) NoShowRate() float64 {
	if c.AppointmentsScheduled == 0 {
		return 0
	}
	return float64(c.NoShows) / float64(c.AppointmentsScheduled)
}

// IsOverbooked returns true if booked minutes exceed available minutes
func (c *StaffCapacity) IsOverbooked() bool {
	return c.BookedMinutes > c.TotalAvailableMinutes
}
