package get_appointment

import (
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
)

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                 int64   `json:"id"`
	PatientID          int64   `json:"patientId"`
	StaffID            int64   `json:"staffId"`
	AppointmentTypeID  int64   `json:"appointmentTypeId"`
	Date               string  `json:"date"`
	StartTime          string  `json:"startTime"`
	EndTime            string  `json:"endTime"`
	DurationMinutes    int     `json:"durationMinutes"`
	Status             string  `json:"status"`
	Priority           int     `json:"priority"`
	ReasonForVisit     *string `json:"reasonForVisit,omitempty"`
	LinkedRecordID     *int64  `json:"linkedRecordId,omitempty"`
	RevenueExpected    float64 `json:"revenueExpected"`
	RevenueActual      float64 `json:"revenueActual"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// FromDomain конвертирует доменную модель в HTTP response
func FromDomain(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:                 a.ID,
		PatientID:          a.PatientID,
		StaffID:            a.StaffID,
		AppointmentTypeID:  a.AppointmentTypeID,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		EndTime:            a.EndTime.String(),
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		Priority:           a.Priority,
		ReasonForVisit:     a.ReasonForVisit,
		LinkedRecordID:     a.LinkedRecordID,
		RevenueExpected:    a.RevenueExpected,
		RevenueActual:      a.RevenueActual,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          a.UpdatedAt.Format(time.RFC3339),
	}

	if a.CancelledAt != nil {
		cancelledAt := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}
