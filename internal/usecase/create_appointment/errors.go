package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInvalidDate возвращается при дате приёма в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrStaffNotFound возвращается, когда сотрудник не найден в справочнике
	ErrStaffNotFound = errors.New("create_appointment: staff not found")

	// ErrStaffInactive возвращается при записи к неактивному сотруднику
	ErrStaffInactive = errors.New("create_appointment: staff is inactive")

	// ErrAppointmentTypeNotFound возвращается, когда тип приёма не найден
	ErrAppointmentTypeNotFound = errors.New("create_appointment: appointment type not found")

	// ErrSchedulingConflict возвращается при пересечении с существующим приёмом
	ErrSchedulingConflict = errors.New("create_appointment: scheduling conflict")

	// ErrOutsideWorkingHours возвращается при записи вне рабочих часов
	ErrOutsideWorkingHours = errors.New("create_appointment: outside working hours")

	// ErrNoCapacity возвращается, когда у сотрудника не хватает свободных минут
	ErrNoCapacity = errors.New("create_appointment: no capacity left")

	// ErrStorageTimeout возвращается при превышении таймаута операции с БД
	ErrStorageTimeout = errors.New("create_appointment: storage timeout")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
