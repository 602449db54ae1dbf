// Package haircut содержит бизнес-логику учёта стрижек и агрегирования выручки.
package haircut

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/barberos/barbershop-backend/internal/models"
)

// Периоды агрегирования выручки.
const (
	PeriodDaily   = "daily"
	PeriodMonthly = "monthly"
)

// ErrUnknownPeriod запрошен неизвестный период агрегирования.
var ErrUnknownPeriod = errors.New("unknown balance period")

// Repository определяет методы для работы со стрижками в хранилище.
type Repository interface {
	// GetShopByOwner возвращает барбершоп по UID владельца.
	GetShopByOwner(ctx context.Context, ownerUID string) (*models.Barbershop, error)
	// GetBarber возвращает барбера по ID в пределах барбершопа.
	GetBarber(ctx context.Context, shopID, barberID int64) (*models.Barber, error)
	// CreateHaircut добавляет новую стрижку и возвращает её ID.
	CreateHaircut(ctx context.Context, haircut models.Haircut) (int64, error)
	// ListHaircutsRange возвращает стрижки за период [from, to).
	ListHaircutsRange(ctx context.Context, shopID int64, from, to time.Time) ([]*models.Haircut, error)
	// CountBalance агрегирует выручку за период [from, to).
	CountBalance(ctx context.Context, shopID int64, from, to time.Time) (*models.BalanceStats, error)
	// DeleteAllHaircuts удаляет все стрижки барбершопа.
	DeleteAllHaircuts(ctx context.Context, shopID int64) (int64, error)
}

// Cache описывает методы для кэширования агрегатов выручки.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы со стрижками, включая кеширование агрегатов.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// Create записывает стрижку в барбершоп владельца и возвращает ID записи.
// Барбер обязан принадлежать тому же барбершопу.
func (s *Service) Create(ctx context.Context, ownerUID string, req models.CreateHaircutRequest) (int64, error) {
	shop, err := s.repo.GetShopByOwner(ctx, ownerUID)
	if err != nil {
		return 0, err
	}
	if _, err = s.repo.GetBarber(ctx, shop.ID, req.BarberID); err != nil {
		return 0, err
	}

	id, err := s.repo.CreateHaircut(ctx, models.Haircut{
		ShopID:        shop.ID,
		BarberID:      req.BarberID,
		ClientName:    req.ClientName,
		PaymentMethod: req.PaymentMethod,
		Amount:        req.Amount,
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("created new haircut", slog.Int64("id", id), slog.Int64("shop_id", shop.ID))
	s.invalidateBalance(shop.ID)
	return id, nil
}

// Balance возвращает агрегаты выручки барбершопа за период:
// daily — с начала текущего дня, monthly — с начала текущего месяца.
// Агрегат кешируется на короткое время, запись стрижки сбрасывает кеш.
func (s *Service) Balance(ctx context.Context, ownerUID, period string) (*models.BalanceStats, error) {
	shop, err := s.repo.GetShopByOwner(ctx, ownerUID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var from time.Time
	switch period {
	case PeriodDaily:
		from = today
	case PeriodMonthly:
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return nil, ErrUnknownPeriod
	}
	to := today.AddDate(0, 0, 1)

	cacheKey := balanceCacheKey(shop.ID, period)
	var cached *models.BalanceStats
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read balance cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	stats, err := s.repo.CountBalance(ctx, shop.ID, from, to)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, stats, time.Minute); err != nil {
		s.log.Warn("failed to cache balance", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return stats, nil
}

// Report возвращает стрижки за период [startDate, endDate] включительно
// вместе с агрегатами выручки. Даты приходят в формате 2006-01-02.
func (s *Service) Report(ctx context.Context, ownerUID, startDate, endDate string) ([]*models.Haircut, *models.BalanceStats, error) {
	shop, err := s.repo.GetShopByOwner(ctx, ownerUID)
	if err != nil {
		return nil, nil, err
	}

	from, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid end date: %w", err)
	}
	to := end.AddDate(0, 0, 1)

	haircuts, err := s.repo.ListHaircutsRange(ctx, shop.ID, from, to)
	if err != nil {
		return nil, nil, err
	}
	stats, err := s.repo.CountBalance(ctx, shop.ID, from, to)
	if err != nil {
		return nil, nil, err
	}
	return haircuts, stats, nil
}

// List возвращает стрижки барбершопа за текущий день.
func (s *Service) List(ctx context.Context, ownerUID string) ([]*models.Haircut, error) {
	shop, err := s.repo.GetShopByOwner(ctx, ownerUID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.repo.ListHaircutsRange(ctx, shop.ID, today, today.AddDate(0, 0, 1))
}

// DeleteAll удаляет все стрижки барбершопа и возвращает количество удалённых записей.
func (s *Service) DeleteAll(ctx context.Context, ownerUID string) (int64, error) {
	shop, err := s.repo.GetShopByOwner(ctx, ownerUID)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.DeleteAllHaircuts(ctx, shop.ID)
	if err != nil {
		return 0, err
	}

	s.log.Info("deleted all haircuts", slog.Int64("shop_id", shop.ID), slog.Int64("count", count))
	s.invalidateBalance(shop.ID)
	return count, nil
}

func (s *Service) invalidateBalance(shopID int64) {
	for _, period := range []string{PeriodDaily, PeriodMonthly} {
		key := balanceCacheKey(shopID, period)
		if err := s.cache.Invalidate(key); err != nil {
			s.log.Warn("failed to invalidate balance cache", slog.String("key", key), slog.Any("err", err))
		}
	}
}

func balanceCacheKey(shopID int64, period string) string {
	return fmt.Sprintf("balance:%d:%s", shopID, period)
}
