package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	"github.com/m04kA/CMP-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/CMP-SchedulingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий расписаний: недельные графики, точечные правки
// на дату и отпуска
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeeklySchedule получает строки недельного графика сотрудника
// на указанный день недели, упорядоченные по времени начала
func (r *Repository) GetWeeklySchedule(ctx context.Context, staffID int64, weekday time.Weekday) ([]domain.WeeklyScheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "staff_id", "weekday", "start_time", "end_time").
		From("staff_schedules").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"weekday": int(weekday)}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.WeeklyScheduleEntry, 0)
	for rows.Next() {
		var entry domain.WeeklyScheduleEntry
		var weekdayInt int
		if err := rows.Scan(&entry.ID, &entry.StaffID, &weekdayInt, &entry.Start, &entry.End); err != nil {
			return nil, fmt.Errorf("%w: GetWeeklySchedule - scan row: %v", ErrScanRow, err)
		}
		entry.Weekday = time.Weekday(weekdayInt)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// GetOverrides получает точечные правки расписания сотрудника на дату
// (добавленные окна и вырезанные периоды), упорядоченные по времени начала
func (r *Repository) GetOverrides(ctx context.Context, staffID int64, date time.Time) ([]domain.ScheduleOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "staff_id", "override_date", "start_time", "end_time", "kind").
		From("schedule_overrides").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"override_date": date}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverrides - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverrides - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]domain.ScheduleOverride, 0)
	for rows.Next() {
		var o domain.ScheduleOverride
		if err := rows.Scan(&o.ID, &o.StaffID, &o.Date, &o.Start, &o.End, &o.Kind); err != nil {
			return nil, fmt.Errorf("%w: GetOverrides - scan row: %v", ErrScanRow, err)
		}
		overrides = append(overrides, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOverrides - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// GetApprovedTimeOff получает одобренные отпуска сотрудника, покрывающие дату
// Неодобренные заявки доступность не снижают и сюда не попадают
func (r *Repository) GetApprovedTimeOff(ctx context.Context, staffID int64, date time.Time) ([]domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "staff_id", "start_date", "end_date", "approved", "reason").
		From("time_off").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"approved": true}).
		Where(squirrel.LtOrEq{"start_date": date}).
		Where(squirrel.GtOrEq{"end_date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetApprovedTimeOff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetApprovedTimeOff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	periods := make([]domain.TimeOff, 0)
	for rows.Next() {
		var t domain.TimeOff
		if err := rows.Scan(&t.ID, &t.StaffID, &t.StartDate, &t.EndDate, &t.Approved, &t.Reason); err != nil {
			return nil, fmt.Errorf("%w: GetApprovedTimeOff - scan row: %v", ErrScanRow, err)
		}
		periods = append(periods, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetApprovedTimeOff - rows error: %v", ErrScanRow, err)
	}

	return periods, nil
}
