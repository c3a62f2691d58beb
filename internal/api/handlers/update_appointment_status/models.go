package update_appointment_status

import (
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	updateStatus "github.com/m04kA/CMP-SchedulingService/internal/usecase/update_appointment_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// AppointmentStatusResponse HTTP response model
type AppointmentStatusResponse struct {
	ID              int64   `json:"id"`
	PatientID       int64   `json:"patientId"`
	StaffID         int64   `json:"staffId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	RevenueExpected float64 `json:"revenueExpected"`
	RevenueActual   float64 `json:"revenueActual"`
	UpdatedAt       string  `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *AppointmentStatusResponse {
	return &AppointmentStatusResponse{
		ID:              resp.ID,
		PatientID:       resp.PatientID,
		StaffID:         resp.StaffID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		RevenueExpected: resp.RevenueExpected,
		RevenueActual:   resp.RevenueActual,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
