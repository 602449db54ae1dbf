// Package reservation содержит бизнес-логику управления бронями клиентов.
package reservation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/barberos/barbershop-backend/internal/models"
)

// Repository определяет методы для работы с бронями в хранилище.
type Repository interface {
	// GetShopByOwner возвращает барбершоп по UID владельца.
	GetShopByOwner(ctx context.Context, ownerUID string) (*models.Barbershop, error)
	// CreateReservation добавляет новую бронь и возвращает её ID.
	CreateReservation(ctx context.Context, res models.Reservation) (int64, error)
	// ListReservations возвращает действующие брони барбершопа.
	ListReservations(ctx context.Context, shopID int64) ([]*models.Reservation, error)
	// CancelReservation помечает бронь отменённой.
	CancelReservation(ctx context.Context, shopID, reservationID int64) (int64, error)
}

// Publisher описывает публикацию событий о новых бронях.
type Publisher interface {
	// PublishReservationCreated отправляет событие о созданной брони.
	PublishReservationCreated(res *models.Reservation) error
}

// Service реализует бизнес-логику работы с бронями.
// Публикация событий опциональна: при nil publisher события не отправляются.
type Service struct {
	repo      Repository
	publisher Publisher
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, publisher Publisher, log *slog.Logger) *Service {
	return &Service{repo: repo, publisher: publisher, log: log}
}

// Create записывает бронь в барбершоп владельца и возвращает ID записи.
// Время брони выравнивается вниз до 30-минутного слота;
// занятый слот приводит к repository.ErrReservationSlotTaken.
func (s *Service) Create(ctx context.Context, ownerUID string, req models.CreateReservationRequest) (int64, error) {
	shop, err := s.repo.GetShopByOwner(ctx, ownerUID)
	if err != nil {
		return 0, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return 0, fmt.Errorf("invalid date: %w", err)
	}
	slot, err := time.Parse("15:04", req.Time)
	if err != nil {
		return 0, fmt.Errorf("invalid time: %w", err)
	}

	res := models.Reservation{
		ShopID:     shop.ID,
		ClientName: req.ClientName,
		Date:       date,
		Time:       RoundToSlot(slot),
		Details:    req.Details,
		IsActive:   true,
	}

	id, err := s.repo.CreateReservation(ctx, res)
	if err != nil {
		return 0, err
	}
	res.ID = id

	s.log.Info("created new reservation", slog.Int64("id", id), slog.Int64("shop_id", shop.ID))

	if s.publisher != nil {
		if err := s.publisher.PublishReservationCreated(&res); err != nil {
			s.log.Warn("failed to publish reservation event", slog.Int64("id", id), slog.Any("err", err))
		}
	}
	return id, nil
}

// List возвращает действующие брони барбершопа владельца
// в порядке даты и времени.
func (s *Service) List(ctx context.Context, ownerUID string) ([]*models.Reservation, error) {
	shop, err := s.repo.GetShopByOwner(ctx, ownerUID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListReservations(ctx, shop.ID)
}

// Cancel помечает бронь отменённой и возвращает количество затронутых записей.
func (s *Service) Cancel(ctx context.Context, ownerUID string, reservationID int64) (int64, error) {
	shop, err := s.repo.GetShopByOwner(ctx, ownerUID)
	if err != nil {
		return 0, err
	}
	return s.repo.CancelReservation(ctx, shop.ID, reservationID)
}

// RoundToSlot выравнивает время брони вниз до получасового слота.
func RoundToSlot(t time.Time) time.Time {
	minutes := (t.Minute() / 30) * 30
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minutes, 0, 0, t.Location())
}
