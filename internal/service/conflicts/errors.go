package conflicts

import (
	"errors"
	"fmt"

	"github.com/m04kA/CMP-SchedulingService/pkg/types"
)

var (
	// ErrSchedulingConflict возвращается при пересечении с существующим приёмом
	ErrSchedulingConflict = errors.New("conflicts: scheduling conflict")

	// ErrOutsideWorkingHours возвращается, когда интервал не помещается
	// целиком ни в одно окно доступности сотрудника
	ErrOutsideWorkingHours = errors.New("conflicts: interval is outside working hours")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("conflicts: internal error")
)

// ConflictError ошибка пересечения с конкретным приёмом
// Несёт ID пересекающегося приёма, чтобы вызывающий мог предложить альтернативы
type ConflictError struct {
	AppointmentID int64
	Start         types.TimeString
	End           types.TimeString
}

// Error реализует интерфейс error
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: overlaps appointment id=%d (%s-%s)",
		ErrSchedulingConflict, e.AppointmentID, e.Start, e.End)
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrSchedulingConflict)
func (e *ConflictError) Unwrap() error {
	return ErrSchedulingConflict
}
