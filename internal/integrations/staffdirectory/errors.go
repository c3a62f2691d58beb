package staffdirectory

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден в справочнике
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrAppointmentTypeNotFound возвращается, когда тип приёма не найден
	ErrAppointmentTypeNotFound = errors.New("appointment type not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("staffdirectory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("staffdirectory client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что справочник недоступен и агрегированные представления
	// следует строить только по уже рассчитанным записям загрузки
	ErrServiceDegraded = errors.New("staffdirectory unavailable: graceful degradation applied")
)
