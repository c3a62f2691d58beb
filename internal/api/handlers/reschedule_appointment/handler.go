package reschedule_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CMP-SchedulingService/internal/api/handlers"
	rescheduleAppointment "github.com/m04kA/CMP-SchedulingService/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidAppointmentID = "некорректный идентификатор приёма"
	msgInvalidDate          = "некорректный формат даты или времени"
	msgInvalidInput         = "некорректные данные запроса"
	msgAppointmentNotFound  = "приём не найден"
	msgNotReschedulable     = "приём в текущем статусе нельзя перенести"
	msgConflict             = "новый интервал пересекается с существующим приёмом"
	msgOutsideHours         = "новое время вне рабочих часов сотрудника"
	msgInvalidApptDate      = "некорректная дата переноса"
	msgStorageTimeout       = "хранилище не ответило вовремя, попробуйте позже"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil || appointmentID <= 0 {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid appointment ID: %s", vars["appointmentId"])
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, rescheduleAppointment.ErrNotReschedulable):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Not reschedulable: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgNotReschedulable)

		case errors.Is(err, rescheduleAppointment.ErrSchedulingConflict):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Scheduling conflict: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		case errors.Is(err, rescheduleAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Outside working hours: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgOutsideHours)

		case errors.Is(err, rescheduleAppointment.ErrInvalidDate):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid date: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgInvalidApptDate)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, rescheduleAppointment.ErrStorageTimeout):
			h.logger.Error("PATCH /appointments/{id}/reschedule - Storage timeout: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusGatewayTimeout, msgStorageTimeout)

		default:
			h.logger.Error("PATCH /appointments/{id}/reschedule - Failed to reschedule: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/reschedule - Appointment rescheduled: appointment_id=%d, date=%s, time=%s",
		result.ID, result.Date, result.StartTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
