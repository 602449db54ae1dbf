// Package barber содержит бизнес-логику управления барберами барбершопа.
package barber

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/barberos/barbershop-backend/internal/models"
)

// Repository определяет методы для работы с барберами в хранилище.
type Repository interface {
	// GetShopByOwner возвращает барбершоп по UID владельца.
	GetShopByOwner(ctx context.Context, ownerUID string) (*models.Barbershop, error)
	// CreateBarber добавляет нового барбера и возвращает его ID.
	CreateBarber(ctx context.Context, barber models.Barber) (int64, error)
	// ListBarbers возвращает действующих барберов барбершопа.
	ListBarbers(ctx context.Context, shopID int64) ([]*models.Barber, error)
	// DeactivateBarber помечает барбера неработающим.
	DeactivateBarber(ctx context.Context, shopID, barberID int64) (int64, error)
}

// Service реализует бизнес-логику работы с барберами.
// Все операции ограничены барбершопом аутентифицированного владельца.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create добавляет барбера в барбершоп владельца и возвращает ID записи.
func (s *Service) Create(ctx context.Context, ownerUID string, req models.CreateBarberRequest) (int64, error) {
	shop, err := s.repo.GetShopByOwner(ctx, ownerUID)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.CreateBarber(ctx, models.Barber{
		ShopID: shop.ID,
		Name:   req.Name,
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("created new barber", slog.Int64("id", id), slog.Int64("shop_id", shop.ID))
	return id, nil
}

// List возвращает действующих барберов барбершопа владельца.
func (s *Service) List(ctx context.Context, ownerUID string) ([]*models.Barber, error) {
	shop, err := s.repo.GetShopByOwner(ctx, ownerUID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListBarbers(ctx, shop.ID)
}

// Deactivate помечает барбера неработающим и возвращает количество
// затронутых записей.
func (s *Service) Deactivate(ctx context.Context, ownerUID string, barberID int64) (int64, error) {
	shop, err := s.repo.GetShopByOwner(ctx, ownerUID)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.DeactivateBarber(ctx, shop.ID, barberID)
	if err != nil {
		return 0, fmt.Errorf("deactivate barber %d: %w", barberID, err)
	}
	return count, nil
}
