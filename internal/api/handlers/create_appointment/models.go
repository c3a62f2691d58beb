package create_appointment

import (
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	createAppointment "github.com/m04kA/CMP-SchedulingService/internal/usecase/create_appointment"
	"github.com/m04kA/CMP-SchedulingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	PatientID         int64   `json:"patientId"`
	StaffID           int64   `json:"staffId"`
	AppointmentTypeID int64   `json:"appointmentTypeId"`
	Date              string  `json:"date"`      // "2026-09-15"
	StartTime         string  `json:"startTime"` // "10:00"
	DurationMinutes   *int    `json:"durationMinutes,omitempty"`
	Priority          int     `json:"priority,omitempty"`
	ReasonForVisit    *string `json:"reasonForVisit,omitempty"`
	LinkedRecordID    *int64  `json:"linkedRecordId,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                int64   `json:"id"`
	PatientID         int64   `json:"patientId"`
	StaffID           int64   `json:"staffId"`
	AppointmentTypeID int64   `json:"appointmentTypeId"`
	Date              string  `json:"date"`
	StartTime         string  `json:"startTime"`
	EndTime           string  `json:"endTime"`
	DurationMinutes   int     `json:"durationMinutes"`
	Status            string  `json:"status"`
	Priority          int     `json:"priority"`
	ReasonForVisit    *string `json:"reasonForVisit,omitempty"`
	LinkedRecordID    *int64  `json:"linkedRecordId,omitempty"`
	RevenueExpected   float64 `json:"revenueExpected"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		PatientID:         r.PatientID,
		StaffID:           r.StaffID,
		AppointmentTypeID: r.AppointmentTypeID,
		Date:              date,
		StartTime:         startTime,
		DurationMinutes:   r.DurationMinutes,
		Priority:          r.Priority,
		ReasonForVisit:    r.ReasonForVisit,
		LinkedRecordID:    r.LinkedRecordID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                resp.ID,
		PatientID:         resp.PatientID,
		StaffID:           resp.StaffID,
		AppointmentTypeID: resp.AppointmentTypeID,
		Date:              resp.Date.Format(domain.DateFormat),
		StartTime:         resp.StartTime.String(),
		EndTime:           resp.EndTime.String(),
		DurationMinutes:   resp.DurationMinutes,
		Status:            resp.Status,
		Priority:          resp.Priority,
		ReasonForVisit:    resp.ReasonForVisit,
		LinkedRecordID:    resp.LinkedRecordID,
		RevenueExpected:   resp.RevenueExpected,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         resp.UpdatedAt.Format(time.RFC3339),
	}
}
