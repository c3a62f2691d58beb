package optimize_schedule

import (
	"net/http"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/api/handlers"
	"github.com/m04kA/CMP-SchedulingService/internal/domain"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

// SuggestionItem рекомендация в HTTP ответе
type SuggestionItem struct {
	StaffID               int64   `json:"staffId"`
	StaffName             string  `json:"staffName,omitempty"`
	UtilizationPercentage float64 `json:"utilizationPercentage"`
	AvailableMinutes      int     `json:"availableMinutes"`
	SuggestedSlots        int     `json:"suggestedSlots"`
	RevenuePotential      float64 `json:"revenuePotential"`
	Priority              int     `json:"priority"`
}

// SuggestionsResponse HTTP response model
type SuggestionsResponse struct {
	Date        string           `json:"date"`
	Suggestions []SuggestionItem `json:"suggestions"`
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

// Handle GET /api/v1/capacity/optimize?date=2026-09-15
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /capacity/optimize - Invalid date: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = parsed
	}

	suggestions, err := h.planner.OptimizeSchedule(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /capacity/optimize - Failed to build suggestions: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := SuggestionsResponse{
		Date:        date.Format(domain.DateFormat),
		Suggestions: make([]SuggestionItem, 0, len(suggestions)),
	}
	for _, s := range suggestions {
		response.Suggestions = append(response.Suggestions, SuggestionItem{
			StaffID:               s.StaffID,
			StaffName:             s.StaffName,
			UtilizationPercentage: s.UtilizationPercentage,
			AvailableMinutes:      s.AvailableMinutes,
			SuggestedSlots:        s.SuggestedSlots,
			RevenuePotential:      s.RevenuePotential,
			Priority:              s.Priority,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
