package get_staff_availability

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

// WindowItem окно доступности в HTTP ответе
type WindowItem struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	StaffID               int64        `json:"staffId"`
	Date                  string       `json:"date"`
	Windows               []WindowItem `json:"windows"`
	TotalAvailableMinutes int          `json:"totalAvailableMinutes"`
	BlockedMinutes        int          `json:"blockedMinutes"`
}

type Handler struct {
	availability AvailabilityProvider
	logger       Logger
}

func NewHandler(availability AvailabilityProvider, logger Logger) *Handler {
	return &Handler{
		availability: availability,
		logger:       logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/availability?date=2026-09-15
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil || staffID <= 0 {
		h.logger.Warn("GET /staff/{id}/availability - Invalid staff ID: %s", vars["staffId"])
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /staff/{id}/availability - Invalid date: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = parsed
	}

	day, err := h.availability.ForDate(r.Context(), staffID, date)
	if err != nil {
		h.logger.Error("GET /staff/{id}/availability - Failed to get availability: staff_id=%d, error=%v",
			staffID, err)
		handlers.RespondInternalError(w)
		return
	}

	response := AvailabilityResponse{
		StaffID:               staffID,
		Date:                  date.Format(domain.DateFormat),
		Windows:               make([]WindowItem, 0, len(day.Windows)),
		TotalAvailableMinutes: day.TotalAvailableMinutes(),
		BlockedMinutes:        day.BlockedMinutes,
	}
	for _, win := range day.Windows {
		response.Windows = append(response.Windows, WindowItem{
			Start: win.Start.String(),
			End:   win.End.String(),
		})
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
