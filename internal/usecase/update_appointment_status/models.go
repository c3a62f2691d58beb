package update_appointment_status

import (
	"time"

	"github.com/m04kA/CMP-SchedulingService/pkg/types"
)

// Request модель запроса на смену статуса приёма
type Request struct {
	AppointmentID      int64   // ID приёма
	NewStatus          string  // Целевой статус
	CancellationReason *string // Причина отмены (обязательна для cancelled)
}

// Response модель ответа с обновлённым приёмом
type Response struct {
	ID              int64            // ID приёма
	PatientID       int64            // ID пациента
	StaffID         int64            // ID сотрудника
	Date            time.Time        // Дата приёма
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания
	DurationMinutes int              // Длительность в минутах
	Status          string           // Новый статус
	RevenueExpected float64          // Ожидаемая выручка
	RevenueActual   float64          // Фактическая выручка (после завершения)
	UpdatedAt       time.Time        // Время обновления
}
