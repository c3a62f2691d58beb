package get_calendar

import (
	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	getCalendar "github.com/m04kA/CMP-SchedulingService/internal/usecase/get_calendar"
)

// AppointmentItem приём в календаре
type AppointmentItem struct {
	ID              int64   `json:"id"`
	PatientID       int64   `json:"patientId"`
	StaffID         int64   `json:"staffId"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ReasonForVisit  *string `json:"reasonForVisit,omitempty"`
}

// WindowItem окно доступности
type WindowItem struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// CapacityItem запись загрузки
type CapacityItem struct {
	StaffID               int64   `json:"staffId"`
	TotalAvailableMinutes int     `json:"totalAvailableMinutes"`
	BookedMinutes         int     `json:"bookedMinutes"`
	UtilizationPercentage float64 `json:"utilizationPercentage"`
	UtilizationUndefined  bool    `json:"utilizationUndefined,omitempty"`
}

// DayItem день календаря
type DayItem struct {
	Date         string            `json:"date"`
	Appointments []AppointmentItem `json:"appointments"`
	Windows      []WindowItem      `json:"windows,omitempty"`
	Capacities   []CapacityItem    `json:"capacities"`
}

// SummaryItem сводка по периоду
type SummaryItem struct {
	TotalAppointments  int     `json:"totalAppointments"`
	AverageUtilization float64 `json:"averageUtilization"`
}

// CalendarResponse HTTP response model
type CalendarResponse struct {
	View    string      `json:"view"`
	From    string      `json:"from"`
	To      string      `json:"to"`
	Days    []DayItem   `json:"days"`
	Summary SummaryItem `json:"summary"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	days := make([]DayItem, 0, len(resp.Days))
	for _, d := range resp.Days {
		day := DayItem{
			Date:         d.Date.Format(domain.DateFormat),
			Appointments: make([]AppointmentItem, 0, len(d.Appointments)),
			Capacities:   make([]CapacityItem, 0, len(d.Capacities)),
		}

		for _, a := range d.Appointments {
			day.Appointments = append(day.Appointments, AppointmentItem{
				ID:              a.ID,
				PatientID:       a.PatientID,
				StaffID:         a.StaffID,
				StartTime:       a.StartTime.String(),
				EndTime:         a.EndTime.String(),
				DurationMinutes: a.DurationMinutes,
				Status:          a.Status,
				ReasonForVisit:  a.ReasonForVisit,
			})
		}

		for _, win := range d.Windows {
			day.Windows = append(day.Windows, WindowItem{
				Start: win.Start.String(),
				End:   win.End.String(),
			})
		}

		for _, c := range d.Capacities {
			day.Capacities = append(day.Capacities, CapacityItem{
				StaffID:               c.StaffID,
				TotalAvailableMinutes: c.TotalAvailableMinutes,
				BookedMinutes:         c.BookedMinutes,
				UtilizationPercentage: c.UtilizationPercentage,
				UtilizationUndefined:  c.UtilizationUndefined,
			})
		}

		days = append(days, day)
	}

	return &CalendarResponse{
		View: resp.View,
		From: resp.From.Format(domain.DateFormat),
		To:   resp.To.Format(domain.DateFormat),
		Days: days,
		Summary: SummaryItem{
			TotalAppointments:  resp.Summary.TotalAppointments,
			AverageUtilization: resp.Summary.AverageUtilization,
		},
	}
}
