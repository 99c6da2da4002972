package closure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
	"github.com/m04kA/Restaurant-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Restaurant-BookingService/pkg/psqlbuilder"
)

const timestampFormat = "2006-01-02 15:04:05"

// toLocalWallClock переводит timestamp без таймзоны в локальное время.
// Колонки пишутся локальным временем стены, lib/pq читает их как UTC -
// без нормализации сравнение с интервалами брони даёт сдвиг на смещение зоны.
func toLocalWallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local)
}

// Repository репозиторий для работы с закрытиями зала
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория закрытий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое закрытие
func (r *Repository) Create(ctx context.Context, closure *domain.Closure) (*domain.Closure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("closures").
		Columns("start_at", "end_at", "reason").
		Values(
			closure.StartAt.Format(timestampFormat),
			closure.EndAt.Format(timestampFormat),
			closure.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&closure.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	closure.CreatedAt = createdAt.Time

	return closure, nil
}

// List получает все закрытия, отсортированные по началу интервала
func (r *Repository) List(ctx context.Context) ([]*domain.Closure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "start_at", "end_at", "reason", "created_at").
		From("closures").
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanClosures(rows)
}

// GetOverlapping получает закрытия, пересекающие интервал [start, end).
// Интервалы полуоткрытые: закрытие, начинающееся ровно в end, не попадает.
func (r *Repository) GetOverlapping(ctx context.Context, start, end time.Time) ([]*domain.Closure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "start_at", "end_at", "reason", "created_at").
		From("closures").
		Where(squirrel.Expr("start_at < ?::timestamp", end.Format(timestampFormat))).
		Where(squirrel.Expr("end_at > ?::timestamp", start.Format(timestampFormat))).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanClosures(rows)
}

// Delete удаляет закрытие и возвращает удалённую строку:
// вызывающему нужен интервал, чтобы сбросить кеш затронутых дат
func (r *Repository) Delete(ctx context.Context, id int64) (*domain.Closure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("closures").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, start_at, end_at, reason, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	var closure domain.Closure
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&closure.ID,
		&closure.StartAt,
		&closure.EndAt,
		&closure.Reason,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClosureNotFound
		}
		return nil, fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	closure.StartAt = toLocalWallClock(closure.StartAt)
	closure.EndAt = toLocalWallClock(closure.EndAt)
	closure.CreatedAt = createdAt.Time

	return &closure, nil
}

// scanClosures сканирует результаты запроса в слайс закрытий
func (r *Repository) scanClosures(rows *sql.Rows) ([]*domain.Closure, error) {
	closures := make([]*domain.Closure, 0)

	for rows.Next() {
		var closure domain.Closure
		var createdAt sql.NullTime

		err := rows.Scan(
			&closure.ID,
			&closure.StartAt,
			&closure.EndAt,
			&closure.Reason,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanClosures - scan row: %v", ErrScanRow, err)
		}

		closure.StartAt = toLocalWallClock(closure.StartAt)
		closure.EndAt = toLocalWallClock(closure.EndAt)
		closure.CreatedAt = createdAt.Time

		closures = append(closures, &closure)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanClosures - rows error: %v", ErrScanRow, err)
	}

	return closures, nil
}
