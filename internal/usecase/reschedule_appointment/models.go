package reschedule_appointment

import (
	"time"

	"github.com/m04kA/CMP-SchedulingService/pkg/types"
)

// Request модель запроса на перенос приёма
type Request struct {
	AppointmentID int64            // ID приёма
	NewDate       time.Time        // Новая дата
	NewStartTime  types.TimeString // Новое время начала
}

// Response модель ответа с перенесённым приёмом
type Response struct {
	ID              int64            // ID приёма
	PatientID       int64            // ID пациента
	StaffID         int64            // ID сотрудника
	Date            time.Time        // Новая дата
	StartTime       types.TimeString // Новое время начала
	EndTime         types.TimeString // Новое время окончания
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус приёма
	UpdatedAt       time.Time        // Время обновления
}
