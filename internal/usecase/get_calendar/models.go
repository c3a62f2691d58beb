package get_calendar

import (
	"time"

	"github.com/m04kA/CMP-SchedulingService/pkg/types"
)

// Представления календаря
const (
	ViewDay   = "day"
	ViewWeek  = "week"
	ViewMonth = "month"
)

// Request модель запроса календаря
type Request struct {
	StaffID *int64    // ID сотрудника (nil - вся клиника)
	View    string    // Представление: day, week, month
	Date    time.Time // Опорная дата представления
}

// AppointmentItem приём в календаре
type AppointmentItem struct {
	ID              int64            // ID приёма
	PatientID       int64            // ID пациента
	StaffID         int64            // ID сотрудника
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус приёма
	ReasonForVisit  *string          // Причина обращения
}

// WindowItem окно доступности в календаре
type WindowItem struct {
	Start types.TimeString // Начало окна
	End   types.TimeString // Конец окна
}

// CapacityItem запись загрузки в календаре
type CapacityItem struct {
	StaffID               int64   // ID сотрудника
	TotalAvailableMinutes int     // Доступные минуты
	BookedMinutes         int     // Занятые минуты
	UtilizationPercentage float64 // Процент загрузки
	UtilizationUndefined  bool    // Загрузка не определена (нет доступных минут)
}

// Day день календаря
type Day struct {
	Date         time.Time         // Дата
	Appointments []AppointmentItem // Приёмы дня
	Windows      []WindowItem      // Окна доступности (только для сотрудника)
	Capacities   []CapacityItem    // Записи загрузки
}

// Summary сводка по периоду
type Summary struct {
	TotalAppointments int // Всего приёмов за период
	// AverageUtilization среднее дневных средних по периоду
	AverageUtilization float64
}

// Response модель ответа с календарём
type Response struct {
	View    string    // Представление
	From    time.Time // Начало периода
	To      time.Time // Конец периода (включительно)
	Days    []Day     // Дни периода
	Summary Summary   // Сводка
}
