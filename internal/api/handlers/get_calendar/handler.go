package get_calendar

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/api/handlers"
	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	getCalendar "github.com/m04kA/CMP-SchedulingService/internal/usecase/get_calendar"
)

const (
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStaffID = "некорректный идентификатор сотрудника"
	msgInvalidInput   = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar?view=week&date=2026-09-15&staffId=42
// view по умолчанию day, date по умолчанию сегодня, staffId опционален
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	view := query.Get("view")
	if view == "" {
		view = getCalendar.ViewDay
	}

	date := time.Now()
	if raw := query.Get("date"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /calendar - Invalid date: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = parsed
	}

	var staffID *int64
	if raw := query.Get("staffId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			h.logger.Warn("GET /calendar - Invalid staff ID: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		staffID = &parsed
	}

	result, err := h.useCase.Execute(r.Context(), &getCalendar.Request{
		StaffID: staffID,
		View:    view,
		Date:    date,
	})
	if err != nil {
		if errors.Is(err, getCalendar.ErrInvalidInput) {
			h.logger.Warn("GET /calendar - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("GET /calendar - Failed to build calendar: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
