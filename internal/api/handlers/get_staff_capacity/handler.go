package get_staff_capacity

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/CMP-SchedulingService/internal/api/handlers"
	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	capacityRepo "github.com/m04kA/CMP-SchedulingService/internal/infra/storage/capacity"
)

const (
	msgInvalidStaffID   = "некорректный идентификатор сотрудника"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgCapacityNotFound = "загрузка на эту дату ещё не рассчитана"
)

// StaffCapacityResponse HTTP response model
type StaffCapacityResponse struct {
	StaffID               int64   `json:"staffId"`
	Date                  string  `json:"date"`
	TotalAvailableMinutes int     `json:"totalAvailableMinutes"`
	BookedMinutes         int     `json:"bookedMinutes"`
	CompletedMinutes      int     `json:"completedMinutes"`
	BlockedMinutes        int     `json:"blockedMinutes"`
	UtilizationPercentage float64 `json:"utilizationPercentage"`
	UtilizationUndefined  bool    `json:"utilizationUndefined,omitempty"`
	AppointmentsScheduled int     `json:"appointmentsScheduled"`
	AppointmentsCompleted int     `json:"appointmentsCompleted"`
	AppointmentsCancelled int     `json:"appointmentsCancelled"`
	NoShows               int     `json:"noShows"`
	RevenueExpected       float64 `json:"revenueExpected"`
	RevenueActual         float64 `json:"revenueActual"`
	LastCalculatedAt      string  `json:"lastCalculatedAt"`
}

type Handler struct {
	capacities CapacityProvider
	logger     Logger
}

func NewHandler(capacities CapacityProvider, logger Logger) *Handler {
	return &Handler{
		capacities: capacities,
		logger:     logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/capacity?date=2026-09-15
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil || staffID <= 0 {
		h.logger.Warn("GET /staff/{id}/capacity - Invalid staff ID: %s", vars["staffId"])
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /staff/{id}/capacity - Invalid date: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = parsed
	}

	capacity, err := h.capacities.GetByStaffAndDate(r.Context(), staffID, date)
	if err != nil {
		if errors.Is(err, capacityRepo.ErrCapacityNotFound) {
			h.logger.Warn("GET /staff/{id}/capacity - Capacity not found: staff_id=%d, date=%s",
				staffID, date.Format(domain.DateFormat))
			handlers.RespondNotFound(w, msgCapacityNotFound)
			return
		}
		h.logger.Error("GET /staff/{id}/capacity - Failed to get capacity: staff_id=%d, error=%v", staffID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, StaffCapacityResponse{
		StaffID:               capacity.StaffID,
		Date:                  capacity.Date.Format(domain.DateFormat),
		TotalAvailableMinutes: capacity.TotalAvailableMinutes,
		BookedMinutes:         capacity.BookedMinutes,
		CompletedMinutes:      capacity.CompletedMinutes,
		BlockedMinutes:        capacity.BlockedMinutes,
		UtilizationPercentage: capacity.UtilizationPercentage,
		UtilizationUndefined:  capacity.UtilizationUndefined,
		AppointmentsScheduled: capacity.AppointmentsScheduled,
		AppointmentsCompleted: capacity.AppointmentsCompleted,
		AppointmentsCancelled: capacity.AppointmentsCancelled,
		NoShows:               capacity.NoShows,
		RevenueExpected:       capacity.RevenueExpected,
		RevenueActual:         capacity.RevenueActual,
		LastCalculatedAt:      capacity.LastCalculatedAt.Format(time.RFC3339),
	})
}
