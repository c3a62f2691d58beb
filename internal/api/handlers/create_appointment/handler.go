package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/CMP-SchedulingService/internal/api/handlers"
	createAppointment "github.com/m04kA/CMP-SchedulingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные запроса"
	msgStaffNotFound      = "сотрудник не найден"
	msgStaffInactive      = "сотрудник не принимает записи"
	msgTypeNotFound       = "тип приёма не найден"
	msgConflict           = "интервал пересекается с существующим приёмом"
	msgOutsideHours       = "время вне рабочих часов сотрудника"
	msgNoCapacity         = "у сотрудника нет свободного времени на эту дату"
	msgInvalidApptDate    = "некорректная дата приёма"
	msgStorageTimeout     = "хранилище не ответило вовремя, попробуйте позже"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSchedulingConflict):
			h.logger.Warn("POST /appointments - Scheduling conflict: staff_id=%d, date=%s", req.StaffID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: staff_id=%d, date=%s", req.StaffID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgOutsideHours)

		case errors.Is(err, createAppointment.ErrNoCapacity):
			h.logger.Warn("POST /appointments - No capacity: staff_id=%d, date=%s", req.StaffID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgNoCapacity)

		case errors.Is(err, createAppointment.ErrStaffNotFound):
			h.logger.Warn("POST /appointments - Staff not found: staff_id=%d", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrStaffInactive):
			h.logger.Warn("POST /appointments - Staff inactive: staff_id=%d", req.StaffID)
			handlers.RespondError(w, http.StatusConflict, msgStaffInactive)

		case errors.Is(err, createAppointment.ErrAppointmentTypeNotFound):
			h.logger.Warn("POST /appointments - Appointment type not found: type_id=%d", req.AppointmentTypeID)
			handlers.RespondNotFound(w, msgTypeNotFound)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: staff_id=%d, date=%s", req.StaffID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidApptDate)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrStorageTimeout):
			h.logger.Error("POST /appointments - Storage timeout: staff_id=%d, date=%s", req.StaffID, req.Date)
			handlers.RespondError(w, http.StatusGatewayTimeout, msgStorageTimeout)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: staff_id=%d, error=%v", req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, staff_id=%d",
		result.ID, req.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
