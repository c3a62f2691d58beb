package reschedule_appointment

import (
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	rescheduleAppointment "github.com/m04kA/CMP-SchedulingService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/CMP-SchedulingService/pkg/types"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	NewDate      string `json:"newDate"`      // "2026-09-20"
	NewStartTime string `json:"newStartTime"` // "11:30"
}

// RescheduledAppointmentResponse HTTP response model
type RescheduledAppointmentResponse struct {
	ID              int64  `json:"id"`
	PatientID       int64  `json:"patientId"`
	StaffID         int64  `json:"staffId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(appointmentID int64) (*rescheduleAppointment.Request, error) {
	newDate, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, err
	}

	newStartTime, err := types.NewTimeStringFromString(r.NewStartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		NewDate:       newDate,
		NewStartTime:  newStartTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *RescheduledAppointmentResponse {
	return &RescheduledAppointmentResponse{
		ID:              resp.ID,
		PatientID:       resp.PatientID,
		StaffID:         resp.StaffID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
