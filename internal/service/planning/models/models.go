package models

import "time"

// UnderutilizedStaff сотрудник с загрузкой ниже порога на дату
type UnderutilizedStaff struct {
	StaffID               int64
	StaffName             string
	Date                  time.Time
	UtilizationPercentage float64
	AvailableMinutes      int
	// RevenuePotential оценка недополученной выручки по свободным минутам
	RevenuePotential float64
}

// ScheduleSuggestion рекомендация по дозаполнению расписания
// Priority 1 - сильная недозагрузка (< 50%), 2 - умеренная
type ScheduleSuggestion struct {
	StaffID               int64
	StaffName             string
	Date                  time.Time
	UtilizationPercentage float64
	AvailableMinutes      int
	SuggestedSlots        int
	RevenuePotential      float64
	Priority              int
}

// ClinicCapacity агрегированная загрузка клиники на дату
type ClinicCapacity struct {
	Date                  time.Time
	StaffCount            int
	TotalAppointments     int
	TotalAvailableMinutes int
	TotalBookedMinutes    int
	// AverageUtilization среднее по сотрудникам (невзвешенное по умолчанию)
	AverageUtilization float64
	// AvailableCapacity свободные минуты, пересчитанные в слоты
	AvailableCapacity int
	RevenueExpected   float64
	RevenueActual     float64
	// Degraded выставляется, когда справочник персонала недоступен
	// и агрегат построен только по рассчитанным записям загрузки
	Degraded bool
}

// CapacityForecast прогноз спроса по трейлинг-истории
type CapacityForecast struct {
	StaffID     int64
	Date        time.Time
	WindowDays  int
	SampledDays int
	// AverageUtilization средняя загрузка за выборку (без строк
	// с неопределённой загрузкой)
	AverageUtilization float64
	PredictedDemand    float64
	// RecommendedSlots слоты с запасом: ceil(спрос * буфер)
	RecommendedSlots  int
	AverageNoShowRate float64
}
