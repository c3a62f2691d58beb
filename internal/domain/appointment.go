package domain

import (
	"time"

	"github.com/m04kA/CMP-SchedulingService/pkg/types"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusCheckedIn  AppointmentStatus = "checked_in"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// Appointment represents a patient appointment with a staff member
type Appointment struct {
	ID                int64
	PatientID         int64
	StaffID           int64
	AppointmentTypeID int64
	Date              time.Time
	StartTime         types.TimeString
	EndTime           types.TimeString
	DurationMinutes   int
	Status            AppointmentStatus
	Priority          int

	ReasonForVisit *string
	LinkedRecordID *int64 // ID связанной медицинской записи (опционально)

	// Учётные суммы: ожидаемая выручка из прайса типа приёма,
	// фактическая — только после завершения приёма
	RevenueExpected float64
	RevenueActual   float64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment blocks its time slot
// (scheduled, confirmed, checked_in, in_progress)
func (a *Appointment) IsActive() bool {
	switch a.Status {
	case StatusScheduled, StatusConfirmed, StatusCheckedIn, StatusInProgress:
		return true
	default:
		return false
	}
}

// CountsAsBooked returns true if the appointment counts towards booked minutes
// (active statuses plus completed)
func (a *Appointment) CountsAsBooked() bool {
	return a.IsActive() || a.Status == StatusCompleted
}

// IsTerminal returns true if no further status transitions are allowed
func (a *Appointment) IsTerminal() bool {
	switch a.Status {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return !a.IsTerminal()
}

// CanBeRescheduled returns true if the appointment schedule can be changed
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// allowedTransitions допустимые переходы статусов
// Цепочка: scheduled → confirmed → checked_in → in_progress → completed
// Отмена доступна из любого нетерминального статуса,
// no_show — только из scheduled/confirmed (триггерится внешним планировщиком)
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled:  {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// CanTransitionTo returns true if the status transition is allowed
// by the appointment lifecycle state machine
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[a.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// StaffAppointmentsFilter фильтр для выборки приёмов персонала
type StaffAppointmentsFilter struct {
	StaffID         *int64             // Фильтр по сотруднику (опционально, если nil - все сотрудники)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые и no-show приёмы
}
