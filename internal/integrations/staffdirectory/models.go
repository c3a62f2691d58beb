package staffdirectory

// StaffMember модель сотрудника из справочника персонала
type StaffMember struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"` // doctor, nurse, therapist, ...
	Active   bool   `json:"active"`
}

// AppointmentType модель типа приёма из справочника
// Источник длительности и цены для движка бронирования
type AppointmentType struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price"` // nil = бесплатный приём
}

// ErrorResponse модель ошибки от справочника
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
