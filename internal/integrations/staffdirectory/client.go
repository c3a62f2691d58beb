package staffdirectory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент справочника персонала и типов приёмов (read-only)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента справочника
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetStaff получает сотрудника по ID
func (c *Client) GetStaff(ctx context.Context, staffID int64) (*StaffMember, error) {
	url := fmt.Sprintf("%s/internal/staff/%d", c.baseURL, staffID)

	var staff StaffMember
	if err := c.getJSON(ctx, url, &staff, ErrStaffNotFound); err != nil {
		return nil, err
	}

	return &staff, nil
}

// GetAppointmentType получает тип приёма по ID (длительность и цена)
func (c *Client) GetAppointmentType(ctx context.Context, typeID int64) (*AppointmentType, error) {
	url := fmt.Sprintf("%s/internal/appointment-types/%d", c.baseURL, typeID)

	var apptType AppointmentType
	if err := c.getJSON(ctx, url, &apptType, ErrAppointmentTypeNotFound); err != nil {
		return nil, err
	}

	return &apptType, nil
}

// ListActiveStaff получает список активных сотрудников клиники
func (c *Client) ListActiveStaff(ctx context.Context) ([]StaffMember, error) {
	url := fmt.Sprintf("%s/internal/staff?active=true", c.baseURL)

	var staff []StaffMember
	if err := c.getJSON(ctx, url, &staff, ErrStaffNotFound); err != nil {
		return nil, err
	}

	return staff, nil
}

// ListActiveStaffWithGracefulDegradation получает список активных сотрудников
// с graceful degradation: при недоступности справочника возвращает
// ErrServiceDegraded, чтобы агрегаты строились по уже рассчитанным записям загрузки
func (c *Client) ListActiveStaffWithGracefulDegradation(ctx context.Context) ([]StaffMember, error) {
	staff, err := c.ListActiveStaff(ctx)
	if err != nil {
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("StaffDirectory unavailable, applying graceful degradation: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}

	return staff, nil
}

// getJSON выполняет GET запрос и декодирует ответ
// notFound возвращается на 404
func (c *Client) getJSON(ctx context.Context, url string, out interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
