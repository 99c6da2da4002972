package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
	policyRepo "github.com/m04kA/Restaurant-BookingService/internal/infra/storage/policy"
	"github.com/m04kA/Restaurant-BookingService/internal/service/policy/models"
	"github.com/m04kA/Restaurant-BookingService/pkg/types"
)

// Service сервис для работы с политикой зала
type Service struct {
	policyRepo PolicyRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса политики
func NewService(policyRepo PolicyRepository, logger Logger) *Service {
	return &Service{
		policyRepo: policyRepo,
		logger:     logger,
	}
}

// Current возвращает действующую политику зала в доменном виде.
// Используется use case-ами бронирования; если строка политики ещё
// не создана, действует политика по умолчанию.
func (s *Service) Current(ctx context.Context) (*domain.VenuePolicy, error) {
	policy, err := s.policyRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			s.logger.Warn("Current: venue policy row is missing, falling back to defaults")
			fallback := domain.DefaultPolicy()
			return &fallback, nil
		}
		s.logger.Error("Current: repository error: %v", err)
		return nil, fmt.Errorf("%w: Current - repository error: %v", ErrInternal, err)
	}

	return policy, nil
}

// Get получает политику зала для админ-панели
func (s *Service) Get(ctx context.Context) (*models.PolicyResponse, error) {
	policy, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	return models.FromDomainPolicy(policy), nil
}

// Update обновляет политику зала
// Переданы могут быть не все поля - остальные сохраняют текущее значение
func (s *Service) Update(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("Update: updating venue policy")

	policy, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	if err := applyUpdate(policy, req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	if err := validatePolicy(policy); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.policyRepo.Update(ctx, policy)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: venue policy updated")
	return models.FromDomainPolicy(updated), nil
}

// applyUpdate накладывает переданные поля запроса на текущую политику
func applyUpdate(policy *domain.VenuePolicy, req *models.UpdatePolicyRequest) error {
	if req.OpenTime != nil {
		t, err := types.NewTimeStringFromString(*req.OpenTime)
		if err != nil {
			return fmt.Errorf("%w: invalid openTime: %v", ErrInvalidInput, err)
		}
		policy.OpenTime = t
	}
	if req.CloseTime != nil {
		t, err := types.NewTimeStringFromString(*req.CloseTime)
		if err != nil {
			return fmt.Errorf("%w: invalid closeTime: %v", ErrInvalidInput, err)
		}
		policy.CloseTime = t
	}
	if req.EveningFrom != nil {
		t, err := types.NewTimeStringFromString(*req.EveningFrom)
		if err != nil {
			return fmt.Errorf("%w: invalid eveningFrom: %v", ErrInvalidInput, err)
		}
		policy.EveningFrom = t
	}
	if req.SlotStepMinutes != nil {
		policy.SlotStepMinutes = *req.SlotStepMinutes
	}
	if req.NoClosedWeekday {
		policy.ClosedWeekday = nil
	} else if req.ClosedWeekday != nil {
		weekday := *req.ClosedWeekday
		policy.ClosedWeekday = &weekday
	}
	if req.DaytimeSeatingMinutes != nil {
		policy.DaytimeSeatingMinutes = *req.DaytimeSeatingMinutes
	}
	if req.EveningSeatingMinutes != nil {
		policy.EveningSeatingMinutes = *req.EveningSeatingMinutes
	}
	if req.ReservableSeats != nil {
		policy.ReservableSeats = *req.ReservableSeats
	}
	if req.TotalSeats != nil {
		policy.TotalSeats = *req.TotalSeats
	}
	if req.WalkInBuffer != nil {
		policy.WalkInBuffer = *req.WalkInBuffer
	}
	if req.MaxPartySize != nil {
		policy.MaxPartySize = *req.MaxPartySize
	}

	return nil
}

// validatePolicy проверяет согласованность политики целиком.
// Порядок open/close не проверяется: close <= open означает день без слотов.
func validatePolicy(policy *domain.VenuePolicy) error {
	if policy.SlotStepMinutes < domain.MinSlotStepMinutes || policy.SlotStepMinutes > domain.MaxSlotStepMinutes {
		return fmt.Errorf("%w: slotStepMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
	}
	if policy.DaytimeSeatingMinutes < domain.MinSeatingMinutes || policy.DaytimeSeatingMinutes > domain.MaxSeatingMinutes {
		return fmt.Errorf("%w: daytimeSeatingMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSeatingMinutes, domain.MaxSeatingMinutes)
	}
	if policy.EveningSeatingMinutes < domain.MinSeatingMinutes || policy.EveningSeatingMinutes > domain.MaxSeatingMinutes {
		return fmt.Errorf("%w: eveningSeatingMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSeatingMinutes, domain.MaxSeatingMinutes)
	}
	if policy.ClosedWeekday != nil && (*policy.ClosedWeekday < 0 || *policy.ClosedWeekday > 6) {
		return fmt.Errorf("%w: closedWeekday must be between 0 and 6", ErrInvalidInput)
	}
	if policy.ReservableSeats < 0 {
		return fmt.Errorf("%w: reservableSeats must not be negative", ErrInvalidInput)
	}
	if policy.TotalSeats < policy.ReservableSeats {
		return fmt.Errorf("%w: totalSeats must not be less than reservableSeats", ErrInvalidInput)
	}
	if policy.WalkInBuffer < 0 {
		return fmt.Errorf("%w: walkInBuffer must not be negative", ErrInvalidInput)
	}
	if policy.MaxPartySize < 1 {
		return fmt.Errorf("%w: maxPartySize must be positive", ErrInvalidInput)
	}

	return nil
}
