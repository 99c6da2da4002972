package policy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
	"github.com/m04kA/Restaurant-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Restaurant-BookingService/pkg/psqlbuilder"
)

// Политика зала хранится одной строкой с фиксированным id
const policyRowID = 1

// Repository репозиторий для работы с политикой зала
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политики
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает текущую политику зала
func (r *Repository) Get(ctx context.Context) (*domain.VenuePolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"open_time",
		"close_time",
		"slot_step_minutes",
		"closed_weekday",
		"daytime_seating_minutes",
		"evening_seating_minutes",
		"evening_start",
		"reservable_cap",
		"total_cap",
		"walkin_buffer",
		"max_party_size",
		"updated_at",
	).
		From("venue_policy").
		Where(squirrel.Eq{"id": policyRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var policy domain.VenuePolicy
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.ID,
		&policy.OpenTime,
		&policy.CloseTime,
		&policy.SlotStepMinutes,
		&policy.ClosedWeekday,
		&policy.DaytimeSeatingMinutes,
		&policy.EveningSeatingMinutes,
		&policy.EveningFrom,
		&policy.ReservableSeats,
		&policy.TotalSeats,
		&policy.WalkInBuffer,
		&policy.MaxPartySize,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan policy: %v", ErrScanRow, err)
	}

	policy.UpdatedAt = updatedAt.Time

	return &policy, nil
}

// Update обновляет политику зала целиком
func (r *Repository) Update(ctx context.Context, policy *domain.VenuePolicy) (*domain.VenuePolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("venue_policy").
		Set("open_time", policy.OpenTime).
		Set("close_time", policy.CloseTime).
		Set("slot_step_minutes", policy.SlotStepMinutes).
		Set("closed_weekday", policy.ClosedWeekday).
		Set("daytime_seating_minutes", policy.DaytimeSeatingMinutes).
		Set("evening_seating_minutes", policy.EveningSeatingMinutes).
		Set("evening_start", policy.EveningFrom).
		Set("reservable_cap", policy.ReservableSeats).
		Set("total_cap", policy.TotalSeats).
		Set("walkin_buffer", policy.WalkInBuffer).
		Set("max_party_size", policy.MaxPartySize).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": policyRowID}).
		Suffix("RETURNING id, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&policy.ID, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	policy.UpdatedAt = updatedAt.Time

	return policy, nil
}
