package create_appointment

import (
	"time"

	"github.com/m04kA/CMP-SchedulingService/pkg/types"
)

// Request модель запроса на создание приёма
type Request struct {
	PatientID         int64            // ID пациента
	StaffID           int64            // ID сотрудника
	AppointmentTypeID int64            // ID типа приёма (определяет длительность и цену)
	Date              time.Time        // Дата приёма (без времени)
	StartTime         types.TimeString // Время начала (например, "10:00")
	DurationMinutes   *int             // Переопределение длительности типа (опционально)
	Priority          int              // Приоритет записи
	ReasonForVisit    *string          // Причина обращения (опционально)
	LinkedRecordID    *int64           // Связанная медицинская запись (опционально)
}

// ConflictDetails детали конфликта для ответа с предложением альтернатив
type ConflictDetails struct {
	AppointmentID int64            // ID пересекающегося приёма
	Start         types.TimeString // Его время начала
	End           types.TimeString // Его время окончания
}

// Response модель ответа с созданным приёмом
type Response struct {
	ID                int64            // ID созданного приёма
	PatientID         int64            // ID пациента
	StaffID           int64            // ID сотрудника
	AppointmentTypeID int64            // ID типа приёма
	Date              time.Time        // Дата приёма
	StartTime         types.TimeString // Время начала
	EndTime           types.TimeString // Время окончания
	DurationMinutes   int              // Длительность в минутах
	Status            string           // Статус приёма
	Priority          int              // Приоритет
	ReasonForVisit    *string          // Причина обращения
	LinkedRecordID    *int64           // Связанная запись
	RevenueExpected   float64          // Ожидаемая выручка (цена типа приёма)

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
