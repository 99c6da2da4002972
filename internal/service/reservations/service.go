package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Restaurant-BookingService/internal/domain"
	reservationRepo "github.com/m04kA/Restaurant-BookingService/internal/infra/storage/reservation"
	"github.com/m04kA/Restaurant-BookingService/internal/notify"
	"github.com/m04kA/Restaurant-BookingService/internal/service/reservations/models"
)

// Service сервис для работы с существующими бронированиями:
// отмена по токену, неявки, списки за день, статус лояльности
type Service struct {
	reservationRepo ReservationRepository
	notifier        Notifier
	slotsCache      SlotsCache
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	notifier Notifier,
	slotsCache SlotsCache,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		notifier:        notifier,
		slotsCache:      slotsCache,
		logger:          logger,
	}
}

// CancelByToken отменяет бронирование по токену отмены.
// Повторная отмена идемпотентна: уже отменённая бронь отдаёт успех без
// побочных эффектов. Условное обновление в репозитории гарантирует, что
// переход видит ровно один из конкурентных вызовов, поэтому письмо об
// отмене не может быть отправлено дважды.
func (s *Service) CancelByToken(ctx context.Context, token string) (*models.CancelResponse, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	s.logger.Info("CancelByToken: cancel requested")

	cancelled, err := s.reservationRepo.CancelByToken(ctx, token)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			// Перехода не было: либо брони нет, либо она уже отменена
			existing, getErr := s.reservationRepo.GetByToken(ctx, token)
			if getErr != nil {
				if errors.Is(getErr, reservationRepo.ErrReservationNotFound) {
					s.logger.Warn("CancelByToken: reservation not found")
					return nil, ErrReservationNotFound
				}
				s.logger.Error("CancelByToken: repository error: %v", getErr)
				return nil, fmt.Errorf("%w: CancelByToken - repository error: %v", ErrInternal, getErr)
			}

			s.logger.Info("CancelByToken: reservation id=%d already cancelled", existing.ID)
			return models.CancelResponseFrom(existing, true), nil
		}
		s.logger.Error("CancelByToken: repository error: %v", err)
		return nil, fmt.Errorf("%w: CancelByToken - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CancelByToken: successfully cancelled reservation id=%d", cancelled.ID)

	// Места освободились: сбрасываем кеш слотов на дату
	if s.slotsCache != nil {
		if err := s.slotsCache.InvalidateDate(ctx, cancelled.Date); err != nil {
			s.logger.Warn("CancelByToken: failed to invalidate slots cache: %v", err)
		}
	}

	// Письмо об отмене: неудача не откатывает отмену
	s.sendCancellation(ctx, cancelled)

	return models.CancelResponseFrom(cancelled, false), nil
}

// sendCancellation отправляет письмо об отмене. Walk-in записи и их
// синтетический адрес уведомлений не получают.
func (s *Service) sendCancellation(ctx context.Context, reservation *domain.Reservation) {
	if s.notifier == nil || reservation.IsWalkIn || reservation.GuestEmail == domain.WalkInGuestEmail {
		return
	}

	subject, body := notify.CancellationMessage(reservation)
	if err := s.notifier.Send(ctx, reservation.GuestEmail, subject, body); err != nil {
		s.logger.Warn("CancelByToken: failed to send cancellation email to %s: %v", reservation.GuestEmail, err)
		return
	}

	s.logger.Info("CancelByToken: cancellation email sent to %s", reservation.GuestEmail)
}

// MarkNoShow помечает подтверждённое бронирование как неявку.
// Разрешён единственный переход confirmed -> no_show: неявка продолжает
// занимать места и засчитывается в историю визитов гостя.
func (s *Service) MarkNoShow(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("MarkNoShow: marking reservation id=%d", id)

	err := s.reservationRepo.UpdateStatus(ctx, id, domain.StatusConfirmed, domain.StatusNoShow)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			// Отличаем отсутствие брони от неподходящего статуса
			existing, getErr := s.reservationRepo.GetByID(ctx, id)
			if getErr != nil {
				if errors.Is(getErr, reservationRepo.ErrReservationNotFound) {
					s.logger.Warn("MarkNoShow: reservation id=%d not found", id)
					return nil, ErrReservationNotFound
				}
				s.logger.Error("MarkNoShow: repository error for reservation id=%d: %v", id, getErr)
				return nil, fmt.Errorf("%w: MarkNoShow - repository error: %v", ErrInternal, getErr)
			}

			s.logger.Warn("MarkNoShow: reservation id=%d has status=%s, transition denied", id, existing.Status)
			return nil, ErrInvalidStatusTransition
		}
		s.logger.Error("MarkNoShow: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: MarkNoShow - repository error: %v", ErrInternal, err)
	}

	updated, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("MarkNoShow: failed to reload reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: MarkNoShow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkNoShow: reservation id=%d marked as no-show", id)
	return models.FromDomainReservation(updated), nil
}

// GetDayReservations возвращает бронирования за день со статусом лояльности
// каждого гостя. Лояльность пересчитывается заново на каждую выдачу, по
// одному запросу на уникальный email.
func (s *Service) GetDayReservations(ctx context.Context, req *models.DayListRequest) (*models.DayListResponse, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	s.logger.Info("GetDayReservations: date=%s, includeCancelled=%v",
		req.Date.Format(domain.DateFormat), req.IncludeCancelled)

	filter := domain.DayReservationsFilter{
		Date:             req.Date,
		IncludeCancelled: req.IncludeCancelled,
	}

	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetDayReservations: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	reservations, err := s.reservationRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetDayReservations: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetDayReservations - repository error: %v", ErrInternal, err)
	}

	resp := &models.DayListResponse{
		Date:         req.Date.Format(domain.DateFormat),
		Reservations: make([]models.ReservationResponse, 0, len(reservations)),
	}

	visitsByEmail := make(map[string]int)

	for _, reservation := range reservations {
		item := models.FromDomainReservation(reservation)

		// Лояльность показывается для реальных гостей независимо от статуса строки
		if !reservation.IsWalkIn && reservation.GuestEmail != domain.WalkInGuestEmail {
			visits, ok := visitsByEmail[reservation.GuestEmail]
			if !ok {
				visits, err = s.reservationRepo.CountVisits(ctx, reservation.GuestEmail)
				if err != nil {
					s.logger.Error("GetDayReservations: failed to count visits for %s: %v", reservation.GuestEmail, err)
					return nil, fmt.Errorf("%w: GetDayReservations - repository error: %v", ErrInternal, err)
				}
				visitsByEmail[reservation.GuestEmail] = visits
			}
			item.Loyalty = models.FromDomainLoyalty(domain.LoyaltyFor(visits))
		}

		if reservation.IsActive() {
			if reservation.IsWalkIn {
				resp.WalkInGuests += reservation.Guests
			} else {
				resp.ReservedGuests += reservation.Guests
			}
		}

		resp.Reservations = append(resp.Reservations, *item)
	}

	resp.TotalGuests = resp.ReservedGuests + resp.WalkInGuests

	s.logger.Info("GetDayReservations: returning %d reservations for %s",
		len(resp.Reservations), req.Date.Format(domain.DateFormat))

	return resp, nil
}

// LoyaltyFor возвращает текущий статус лояльности гостя по email
func (s *Service) LoyaltyFor(ctx context.Context, email string) (*models.LoyaltyResponse, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if email == domain.WalkInGuestEmail {
		return nil, fmt.Errorf("%w: email is reserved", ErrInvalidInput)
	}

	s.logger.Info("LoyaltyFor: email=%s", email)

	visits, err := s.reservationRepo.CountVisits(ctx, email)
	if err != nil {
		s.logger.Error("LoyaltyFor: failed to count visits for %s: %v", email, err)
		return nil, fmt.Errorf("%w: LoyaltyFor - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLoyalty(domain.LoyaltyFor(visits)), nil
}
