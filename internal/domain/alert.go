package domain

import "time"

// AlertKind вид алерта загрузки
type AlertKind string

const (
	AlertLowUtilization  AlertKind = "low_utilization"
	AlertHighUtilization AlertKind = "high_utilization"
	AlertNoShows         AlertKind = "no_shows"
)

// AlertSeverity важность алерта
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// Rank returns the sort weight of the severity (lower sorts first)
func (s AlertSeverity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	default:
		return 2
	}
}

// CapacityAlert алерт по загрузке сотрудника на дату
type CapacityAlert struct {
	StaffID  int64
	Date     time.Time
	Kind     AlertKind
	Severity AlertSeverity
	Message  string
	// Value значение метрики, вызвавшей алерт
	// (процент загрузки или доля no-show в процентах)
	Value float64
}
