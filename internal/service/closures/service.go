package closures

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
	closureRepo "github.com/m04kA/Restaurant-BookingService/internal/infra/storage/closure"
	"github.com/m04kA/Restaurant-BookingService/internal/service/closures/models"
)

// Service сервис управления закрытиями зала (банкеты, техработы).
// Закрытие блокирует новые онлайн-брони в интервале, уже созданные
// бронирования не трогает.
type Service struct {
	closureRepo ClosureRepository
	slotsCache  SlotsCache
	logger      Logger
}

// NewService создает новый экземпляр сервиса закрытий
func NewService(closureRepo ClosureRepository, slotsCache SlotsCache, logger Logger) *Service {
	return &Service{
		closureRepo: closureRepo,
		slotsCache:  slotsCache,
		logger:      logger,
	}
}

// Create создает закрытие зала
func (s *Service) Create(ctx context.Context, req *models.CreateClosureRequest) (*models.ClosureResponse, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	closure := &domain.Closure{
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
		Reason:  strings.TrimSpace(req.Reason),
	}

	created, err := s.closureRepo.Create(ctx, closure)
	if err != nil {
		s.logger.Error("Create: failed to create closure: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created closure id=%d [%s, %s)",
		created.ID,
		created.StartAt.Format(domain.DateTimeFormat),
		created.EndAt.Format(domain.DateTimeFormat),
	)

	// Слоты в интервале перестали быть доступными
	s.invalidateRange(ctx, "Create", created.StartAt, created.EndAt)

	return models.FromDomainClosure(created), nil
}

// List возвращает все закрытия, отсортированные по началу интервала
func (s *Service) List(ctx context.Context) (*models.ClosureListResponse, error) {
	closures, err := s.closureRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: failed to list closures: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.ClosureListResponse{
		Closures: make([]models.ClosureResponse, 0, len(closures)),
	}
	for _, c := range closures {
		resp.Closures = append(resp.Closures, *models.FromDomainClosure(c))
	}

	return resp, nil
}

// Delete удаляет закрытие по идентификатору
func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.closureRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, closureRepo.ErrClosureNotFound) {
			s.logger.Warn("Delete: closure id=%d not found", id)
			return ErrClosureNotFound
		}
		s.logger.Error("Delete: failed to delete closure id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted closure id=%d", deleted.ID)

	// Интервал снова открыт для бронирования
	s.invalidateRange(ctx, "Delete", deleted.StartAt, deleted.EndAt)

	return nil
}

// invalidateRange сбрасывает кеш слотов на всех датах интервала.
// Неудача не откатывает запись: кеш досчитается по TTL.
func (s *Service) invalidateRange(ctx context.Context, method string, from, to time.Time) {
	if s.slotsCache == nil {
		return
	}

	if err := s.slotsCache.InvalidateRange(ctx, from, to); err != nil {
		s.logger.Warn("%s: failed to invalidate slots cache: %v", method, err)
	}
}

// validateCreateRequest проверяет входные данные запроса на создание
func validateCreateRequest(req *models.CreateClosureRequest) error {
	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}

	if !req.EndAt.After(req.StartAt) {
		return fmt.Errorf("%w: [%s, %s)", ErrInvalidRange,
			req.StartAt.Format(domain.DateTimeFormat),
			req.EndAt.Format(domain.DateTimeFormat),
		)
	}

	if len(req.Reason) > domain.MaxClosureReasonLength {
		return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxClosureReasonLength)
	}

	return nil
}
