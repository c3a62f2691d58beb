package get_capacity_alerts

import (
	"net/http"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/api/handlers"
	"github.com/m04kA/CMP-SchedulingService/internal/domain"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

// AlertItem алерт в HTTP ответе
type AlertItem struct {
	StaffID  int64   `json:"staffId"`
	Date     string  `json:"date"`
	Kind     string  `json:"kind"`
	Severity string  `json:"severity"`
	Message  string  `json:"message"`
	Value    float64 `json:"value"`
}

// AlertsResponse HTTP response model
type AlertsResponse struct {
	Date   string      `json:"date"`
	Alerts []AlertItem `json:"alerts"`
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

// Handle GET /api/v1/capacity/alerts?date=2026-09-15
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /capacity/alerts - Invalid date: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = parsed
	}

	alerts, err := h.planner.GetCapacityAlerts(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /capacity/alerts - Failed to get alerts: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := AlertsResponse{
		Date:   date.Format(domain.DateFormat),
		Alerts: make([]AlertItem, 0, len(alerts)),
	}
	for _, a := range alerts {
		response.Alerts = append(response.Alerts, AlertItem{
			StaffID:  a.StaffID,
			Date:     a.Date.Format(domain.DateFormat),
			Kind:     string(a.Kind),
			Severity: string(a.Severity),
			Message:  a.Message,
			Value:    a.Value,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
