package get_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CMP-SchedulingService/internal/api/handlers"
	appointmentRepo "github.com/m04kA/CMP-SchedulingService/internal/infra/storage/appointment"
)

const (
	msgInvalidAppointmentID = "некорректный идентификатор приёма"
	msgAppointmentNotFound  = "приём не найден"
)

type Handler struct {
	appointments AppointmentProvider
	logger       Logger
}

func NewHandler(appointments AppointmentProvider, logger Logger) *Handler {
	return &Handler{
		appointments: appointments,
		logger:       logger,
	}
}

// Handle GET /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil || appointmentID <= 0 {
		h.logger.Warn("GET /appointments/{id} - Invalid appointment ID: %s", vars["appointmentId"])
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	appointment, err := h.appointments.GetByID(r.Context(), appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			h.logger.Warn("GET /appointments/{id} - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)
			return
		}
		h.logger.Error("GET /appointments/{id} - Failed to get appointment: appointment_id=%d, error=%v",
			appointmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(appointment))
}
