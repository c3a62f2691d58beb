package update_appointment_status

import (
	"fmt"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
)

// validStatuses допустимые целевые статусы
var validStatuses = map[domain.AppointmentStatus]struct{}{
	domain.StatusConfirmed:  {},
	domain.StatusCheckedIn:  {},
	domain.StatusInProgress: {},
	domain.StatusCompleted:  {},
	domain.StatusCancelled:  {},
	domain.StatusNoShow:     {},
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (domain.AppointmentStatus, error) {
	if req.AppointmentID <= 0 {
		return "", fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	status := domain.AppointmentStatus(req.NewStatus)
	if _, ok := validStatuses[status]; !ok {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.NewStatus)
	}

	if status == domain.StatusCancelled {
		if req.CancellationReason == nil || *req.CancellationReason == "" {
			return "", fmt.Errorf("%w: cancellationReason is required for cancellation", ErrInvalidInput)
		}
	}

	return status, nil
}
