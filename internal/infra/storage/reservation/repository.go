package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
	"github.com/m04kA/Restaurant-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Restaurant-BookingService/pkg/psqlbuilder"
)

var selectColumns = []string{
	"id",
	"cancel_token",
	"reservation_date",
	"start_time",
	"duration_minutes",
	"guests",
	"guest_name",
	"guest_email",
	"guest_phone",
	"is_walkin",
	"status",
	"reminder_sent",
	"notes",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Вставка в рамках проверки вместимости обязана идти в той же транзакции,
// что и чтение занятости даты — иначе возможен овербукинг.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"cancel_token",
			"reservation_date",
			"start_time",
			"duration_minutes",
			"guests",
			"guest_name",
			"guest_email",
			"guest_phone",
			"is_walkin",
			"status",
			"notes",
		).
		Values(
			reservation.CancelToken,
			reservation.Date.Format(domain.DateFormat),
			reservation.StartTime,
			reservation.DurationMinutes,
			reservation.Guests,
			reservation.GuestName,
			reservation.GuestEmail,
			reservation.GuestPhone,
			reservation.IsWalkIn,
			reservation.Status,
			reservation.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByToken получает бронирование по токену отмены
func (r *Repository) GetByToken(ctx context.Context, token string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From("reservations").
		Where(squirrel.Eq{"cancel_token": token}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByToken")
}

// GetForDate получает все бронирования на дату, включая отменённые.
// Фильтрация по статусам выполняется на стороне Go при подсчёте занятости.
//
// Если вызов идёт внутри транзакции, строки даты блокируются через FOR UPDATE:
// конкурентные проверки вместимости на одну дату выстраиваются в очередь.
func (r *Repository) GetForDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From("reservations").
		Where(squirrel.Eq{"reservation_date": date.Format(domain.DateFormat)}).
		OrderBy("start_time ASC, id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetWithFilter получает бронирования за день с фильтрацией для админ-листинга
//
// Примеры использования:
//
// 1. Активные бронирования на дату:
//    filter := domain.DayReservationsFilter{Date: date}
//
// 2. Все бронирования включая отменённые:
//    filter := domain.DayReservationsFilter{Date: date, IncludeCancelled: true}
//
// 3. Только no-show:
//    status := domain.StatusNoShow
//    filter := domain.DayReservationsFilter{Date: date, Status: &status}
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.DayReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From("reservations").
		Where(squirrel.Eq{"reservation_date": filter.Date.Format(domain.DateFormat)}).
		OrderBy("start_time ASC, id ASC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// CountVisits считает визиты гостя для программы лояльности:
// подтверждённые и no-show бронирования, walk-in записи не учитываются
func (r *Repository) CountVisits(ctx context.Context, email string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"guest_email": email}).
		Where(squirrel.Eq{"is_walkin": false}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountVisits - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountVisits - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CancelByToken атомарно переводит бронирование в cancelled.
// Условие status != cancelled гарантирует, что переход увидит ровно один
// вызов: повторная отмена получает ErrReservationNotFound и разбирается
// на уровне сервиса как идемпотентный no-op.
func (r *Repository) CancelByToken(ctx context.Context, token string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"cancel_token": token}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		Suffix("RETURNING " + strings.Join(selectColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CancelByToken - build update query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "CancelByToken")
}

// UpdateStatus переводит бронирование из статуса from в статус to.
// Условие на текущий статус делает переход compare-and-swap: конкурентная
// отмена не может быть перезаписана. Несовпадение статуса и отсутствие строки
// одинаково дают ErrReservationNotFound, вызывающий различает их через GetByID.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": string(from)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// GetDueReminders выбирает подтверждённые онлайн-бронирования, начинающиеся
// в окне [from, to), о которых ещё не отправлено напоминание
func (r *Repository) GetDueReminders(ctx context.Context, from, to time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Момент начала собирается в SQL из даты и времени; границы окна передаются
	// текстом, чтобы сравнение шло в timestamp без участия таймзоны сессии
	query, args, err := psqlbuilder.Select(selectColumns...).
		From("reservations").
		Where(squirrel.Eq{"status": string(domain.StatusConfirmed)}).
		Where(squirrel.Eq{"is_walkin": false}).
		Where(squirrel.Eq{"reminder_sent": false}).
		Where(squirrel.Expr("(reservation_date + start_time) >= ?::timestamp", from.Format("2006-01-02 15:04:05"))).
		Where(squirrel.Expr("(reservation_date + start_time) < ?::timestamp", to.Format("2006-01-02 15:04:05"))).
		OrderBy("reservation_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDueReminders - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDueReminders - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// MarkReminderSent помечает напоминание отправленным.
// Нулевое число затронутых строк не считается ошибкой: флаг мог выставить
// параллельный проход.
func (r *Repository) MarkReminderSent(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("reminder_sent", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"reminder_sent": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkReminderSent - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// scanOne сканирует одну строку результата в бронирование
func (r *Repository) scanOne(row *sql.Row, method string) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.CancelToken,
		&reservation.Date,
		&reservation.StartTime,
		&reservation.DurationMinutes,
		&reservation.Guests,
		&reservation.GuestName,
		&reservation.GuestEmail,
		&reservation.GuestPhone,
		&reservation.IsWalkIn,
		&reservation.Status,
		&reservation.ReminderSent,
		&reservation.Notes,
		&reservation.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, method, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var reservation domain.Reservation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&reservation.ID,
			&reservation.CancelToken,
			&reservation.Date,
			&reservation.StartTime,
			&reservation.DurationMinutes,
			&reservation.Guests,
			&reservation.GuestName,
			&reservation.GuestEmail,
			&reservation.GuestPhone,
			&reservation.IsWalkIn,
			&reservation.Status,
			&reservation.ReminderSent,
			&reservation.Notes,
			&reservation.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		reservation.CreatedAt = createdAt.Time
		reservation.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
