package get_underutilized_staff

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/api/handlers"
	"github.com/m04kA/CMP-SchedulingService/internal/domain"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidThreshold = "некорректный порог недозагрузки, ожидается число больше 0"
)

// StaffItem недозагруженный сотрудник в HTTP ответе
type StaffItem struct {
	StaffID               int64   `json:"staffId"`
	StaffName             string  `json:"staffName,omitempty"`
	UtilizationPercentage float64 `json:"utilizationPercentage"`
	AvailableMinutes      int     `json:"availableMinutes"`
	RevenuePotential      float64 `json:"revenuePotential"`
}

// UnderutilizedResponse HTTP response model
type UnderutilizedResponse struct {
	Date  string      `json:"date"`
	Staff []StaffItem `json:"staff"`
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

// Handle GET /api/v1/capacity/underutilized?date=2026-09-15&threshold=75
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /capacity/underutilized - Invalid date: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = parsed
	}

	// Порог опционален, 0 означает порог по умолчанию из конфигурации
	var threshold float64
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			h.logger.Warn("GET /capacity/underutilized - Invalid threshold: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidThreshold)
			return
		}
		threshold = parsed
	}

	staff, err := h.planner.GetUnderutilizedStaff(r.Context(), date, threshold)
	if err != nil {
		h.logger.Error("GET /capacity/underutilized - Failed to get underutilized staff: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := UnderutilizedResponse{
		Date:  date.Format(domain.DateFormat),
		Staff: make([]StaffItem, 0, len(staff)),
	}
	for _, s := range staff {
		response.Staff = append(response.Staff, StaffItem{
			StaffID:               s.StaffID,
			StaffName:             s.StaffName,
			UtilizationPercentage: s.UtilizationPercentage,
			AvailableMinutes:      s.AvailableMinutes,
			RevenuePotential:      s.RevenuePotential,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
