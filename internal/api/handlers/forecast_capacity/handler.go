package forecast_capacity

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/CMP-SchedulingService/internal/api/handlers"
	"github.com/m04kA/CMP-SchedulingService/internal/domain"
)

const (
	msgInvalidStaffID = "некорректный идентификатор сотрудника"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
)

// ForecastResponse HTTP response model
type ForecastResponse struct {
	StaffID            int64   `json:"staffId"`
	Date               string  `json:"date"`
	WindowDays         int     `json:"windowDays"`
	SampledDays        int     `json:"sampledDays"`
	AverageUtilization float64 `json:"averageUtilization"`
	PredictedDemand    float64 `json:"predictedDemand"`
	RecommendedSlots   int     `json:"recommendedSlots"`
	AverageNoShowRate  float64 `json:"averageNoShowRate"`
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

// Handle GET /api/v1/staff/{staffId}/capacity/forecast?date=2026-09-15
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil || staffID <= 0 {
		h.logger.Warn("GET /staff/{id}/capacity/forecast - Invalid staff ID: %s", vars["staffId"])
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /staff/{id}/capacity/forecast - Invalid date: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = parsed
	}

	forecast, err := h.planner.ForecastCapacity(r.Context(), staffID, date)
	if err != nil {
		h.logger.Error("GET /staff/{id}/capacity/forecast - Failed to build forecast: staff_id=%d, error=%v",
			staffID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ForecastResponse{
		StaffID:            forecast.StaffID,
		Date:               forecast.Date.Format(domain.DateFormat),
		WindowDays:         forecast.WindowDays,
		SampledDays:        forecast.SampledDays,
		AverageUtilization: forecast.AverageUtilization,
		PredictedDemand:    forecast.PredictedDemand,
		RecommendedSlots:   forecast.RecommendedSlots,
		AverageNoShowRate:  forecast.AverageNoShowRate,
	})
}
