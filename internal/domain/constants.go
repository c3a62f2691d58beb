package domain

// Default capacity policy values
// Пороги, буферы и ставки задаются конфигурацией; здесь — значения по умолчанию
const (
	DefaultUnderutilizedThreshold = 75.0 // процент загрузки
	DefaultLowUtilizationBound    = 50.0 // ниже — алерт high, до medium-границы — medium
	DefaultMediumUtilizationBound = 75.0
	DefaultNoShowRateBound        = 0.15 // доля no-show от записанных приёмов
	DefaultSlotSizeMinutes        = 30   // размер слота для оценки свободной ёмкости
	DefaultForecastWindowDays     = 30   // глубина истории для прогноза
	DefaultForecastBuffer         = 1.10 // запас к прогнозируемому спросу
	DefaultAverageRevenuePerMin   = 2.0  // средняя ставка выручки за минуту приёма
)

// Business validation constants
const (
	MinAppointmentMinutes = 5
	MaxAppointmentMinutes = 480 // 8 часов
	MinPriority           = 0
	MaxPriority           = 2
	MaxReasonLength       = 500
	MaxCancelReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, блокирующие слот в календаре
// Завершённые, отменённые и no-show приёмы слот не занимают
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusCheckedIn,
	StatusInProgress,
}

// BookedStatuses статусы, попадающие в booked_minutes при расчёте загрузки
var BookedStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusCheckedIn,
	StatusInProgress,
	StatusCompleted,
}

// InactiveStatuses статусы неактивных приёмов
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
}
