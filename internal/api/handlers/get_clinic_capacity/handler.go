package get_clinic_capacity

import (
	"net/http"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/api/handlers"
	"github.com/m04kA/CMP-SchedulingService/internal/domain"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

// ClinicCapacityResponse HTTP response model
type ClinicCapacityResponse struct {
	Date                  string  `json:"date"`
	StaffCount            int     `json:"staffCount"`
	TotalAppointments     int     `json:"totalAppointments"`
	TotalAvailableMinutes int     `json:"totalAvailableMinutes"`
	TotalBookedMinutes    int     `json:"totalBookedMinutes"`
	AverageUtilization    float64 `json:"averageUtilization"`
	AvailableCapacity     int     `json:"availableCapacity"`
	RevenueExpected       float64 `json:"revenueExpected"`
	RevenueActual         float64 `json:"revenueActual"`
	Degraded              bool    `json:"degraded,omitempty"`
}

type Handler struct {
	planner CapacityPlanner
	logger  Logger
}

func NewHandler(planner CapacityPlanner, logger Logger) *Handler {
	return &Handler{
		planner: planner,
		logger:  logger,
	}
}

// Handle GET /api/v1/capacity/clinic?date=2026-09-15
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /capacity/clinic - Invalid date: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = parsed
	}

	capacity, err := h.planner.GetClinicCapacity(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /capacity/clinic - Failed to get clinic capacity: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ClinicCapacityResponse{
		Date:                  capacity.Date.Format(domain.DateFormat),
		StaffCount:            capacity.StaffCount,
		TotalAppointments:     capacity.TotalAppointments,
		TotalAvailableMinutes: capacity.TotalAvailableMinutes,
		TotalBookedMinutes:    capacity.TotalBookedMinutes,
		AverageUtilization:    capacity.AverageUtilization,
		AvailableCapacity:     capacity.AvailableCapacity,
		RevenueExpected:       capacity.RevenueExpected,
		RevenueActual:         capacity.RevenueActual,
		Degraded:              capacity.Degraded,
	})
}
