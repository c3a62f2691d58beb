package reschedule_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInvalidDate возвращается при новой дате приёма в прошлом
	ErrInvalidDate = errors.New("reschedule_appointment: invalid appointment date")

	// ErrAppointmentNotFound возвращается, когда приём не найден
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrNotReschedulable возвращается, когда приём нельзя перенести
	// (перенос доступен только из scheduled и confirmed)
	ErrNotReschedulable = errors.New("reschedule_appointment: appointment cannot be rescheduled")

	// ErrSchedulingConflict возвращается при пересечении с существующим приёмом
	ErrSchedulingConflict = errors.New("reschedule_appointment: scheduling conflict")

	// ErrOutsideWorkingHours возвращается при переносе вне рабочих часов
	ErrOutsideWorkingHours = errors.New("reschedule_appointment: outside working hours")

	// ErrStorageTimeout возвращается при превышении таймаута операции с БД
	ErrStorageTimeout = errors.New("reschedule_appointment: storage timeout")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
