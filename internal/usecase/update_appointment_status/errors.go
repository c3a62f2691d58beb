package update_appointment_status

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment_status: invalid input data")

	// ErrAppointmentNotFound возвращается, когда приём не найден
	ErrAppointmentNotFound = errors.New("update_appointment_status: appointment not found")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("update_appointment_status: invalid status transition")

	// ErrStorageTimeout возвращается при превышении таймаута операции с БД
	ErrStorageTimeout = errors.New("update_appointment_status: storage timeout")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment_status: internal error")
)
