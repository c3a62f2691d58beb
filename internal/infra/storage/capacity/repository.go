package capacity

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	"github.com/m04kA/CMP-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/CMP-SchedulingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

var capacityColumns = []string{
	"staff_id",
	"capacity_date",
	"total_available_minutes",
	"booked_minutes",
	"completed_minutes",
	"blocked_minutes",
	"utilization_percentage",
	"utilization_undefined",
	"appointments_scheduled",
	"appointments_completed",
	"appointments_cancelled",
	"no_shows",
	"revenue_expected",
	"revenue_actual",
	"last_calculated_at",
}

// Repository репозиторий производных записей загрузки staff_capacity
// Одна строка на пару (staff_id, date); запись всегда перезаписывается целиком
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория загрузки
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert сохраняет запись загрузки целиком (last-writer-wins)
// Частичные обновления полей не поддерживаются: пересчёт идемпотентен
// и безопасен для повтора только при полной перезаписи строки
func (r *Repository) Upsert(ctx context.Context, c *domain.StaffCapacity) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff_capacity").
		Columns(capacityColumns...).
		Values(
			c.StaffID,
			c.Date,
			c.TotalAvailableMinutes,
			c.BookedMinutes,
			c.CompletedMinutes,
			c.BlockedMinutes,
			c.UtilizationPercentage,
			c.UtilizationUndefined,
			c.AppointmentsScheduled,
			c.AppointmentsCompleted,
			c.AppointmentsCancelled,
			c.NoShows,
			c.RevenueExpected,
			c.RevenueActual,
			c.LastCalculatedAt,
		).
		Suffix(`ON CONFLICT (staff_id, capacity_date) DO UPDATE SET
			total_available_minutes = EXCLUDED.total_available_minutes,
			booked_minutes = EXCLUDED.booked_minutes,
			completed_minutes = EXCLUDED.completed_minutes,
			blocked_minutes = EXCLUDED.blocked_minutes,
			utilization_percentage = EXCLUDED.utilization_percentage,
			utilization_undefined = EXCLUDED.utilization_undefined,
			appointments_scheduled = EXCLUDED.appointments_scheduled,
			appointments_completed = EXCLUDED.appointments_completed,
			appointments_cancelled = EXCLUDED.appointments_cancelled,
			no_shows = EXCLUDED.no_shows,
			revenue_expected = EXCLUDED.revenue_expected,
			revenue_actual = EXCLUDED.revenue_actual,
			last_calculated_at = EXCLUDED.last_calculated_at`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByStaffAndDate получает запись загрузки сотрудника на дату
func (r *Repository) GetByStaffAndDate(ctx context.Context, staffID int64, date time.Time) (*domain.StaffCapacity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(capacityColumns...).
		From("staff_capacity").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"capacity_date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndDate - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.StaffCapacity
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.StaffID,
		&c.Date,
		&c.TotalAvailableMinutes,
		&c.BookedMinutes,
		&c.CompletedMinutes,
		&c.BlockedMinutes,
		&c.UtilizationPercentage,
		&c.UtilizationUndefined,
		&c.AppointmentsScheduled,
		&c.AppointmentsCompleted,
		&c.AppointmentsCancelled,
		&c.NoShows,
		&c.RevenueExpected,
		&c.RevenueActual,
		&c.LastCalculatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCapacityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndDate - scan capacity: %v", ErrScanRow, err)
	}

	return &c, nil
}

// GetByDate получает записи загрузки всех сотрудников на дату
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.StaffCapacity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(capacityColumns...).
		From("staff_capacity").
		Where(squirrel.Eq{"capacity_date": date}).
		OrderBy("staff_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanCapacities(rows)
}

// GetRange получает записи загрузки сотрудника за период [from, to]
// Используется прогнозом по трейлинг-истории
func (r *Repository) GetRange(ctx context.Context, staffID int64, from, to time.Time) ([]*domain.StaffCapacity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(capacityColumns...).
		From("staff_capacity").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.GtOrEq{"capacity_date": from}).
		Where(squirrel.LtOrEq{"capacity_date": to}).
		OrderBy("capacity_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanCapacities(rows)
}

// GetByDateRange получает записи загрузки всех сотрудников за период [from, to]
// Используется календарным представлением
func (r *Repository) GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.StaffCapacity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(capacityColumns...).
		From("staff_capacity").
		Where(squirrel.GtOrEq{"capacity_date": from}).
		Where(squirrel.LtOrEq{"capacity_date": to}).
		OrderBy("capacity_date ASC, staff_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanCapacities(rows)
}

// scanCapacities сканирует результаты запроса в слайс записей загрузки
func (r *Repository) scanCapacities(rows *sql.Rows) ([]*domain.StaffCapacity, error) {
	capacities := make([]*domain.StaffCapacity, 0)

	for rows.Next() {
		var c domain.StaffCapacity

		err := rows.Scan(
			&c.StaffID,
			&c.Date,
			&c.TotalAvailableMinutes,
			&c.BookedMinutes,
			&c.CompletedMinutes,
			&c.BlockedMinutes,
			&c.UtilizationPercentage,
			&c.UtilizationUndefined,
			&c.AppointmentsScheduled,
			&c.AppointmentsCompleted,
			&c.AppointmentsCancelled,
			&c.NoShows,
			&c.RevenueExpected,
			&c.RevenueActual,
			&c.LastCalculatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanCapacities - scan row: %v", ErrScanRow, err)
		}

		capacities = append(capacities, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanCapacities - rows error: %v", ErrScanRow, err)
	}

	return capacities, nil
}
