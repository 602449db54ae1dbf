// Package license содержит бизнес-логику лицензирования: активацию лицензии
// на машине и решение шлюза авторизации для каждого защищённого запроса.
//
// Лицензия привязывается к одной машине на всё время жизни, машина держит
// не более одной действительной лицензии. Единственный путь привязки —
// сервис активации; шлюз только читает привязку и никогда её не создаёт.
package license

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/barberos/barbershop-backend/internal/models"
	"github.com/barberos/barbershop-backend/internal/storage/repository"
)

// Ошибки активации. Каждая ветка алгоритма активации завершается
// своей ошибкой, чтобы обработчик мог выбрать корректный HTTP-статус.
var (
	// ErrLicenseNotFound лицензия с таким ключом не существует.
	ErrLicenseNotFound = errors.New("license not found")
	// ErrLicenseExpired срок действия лицензии истёк.
	ErrLicenseExpired = errors.New("license expired")
	// ErrLicenseInactive лицензия деактивирована и не подлежит привязке.
	ErrLicenseInactive = errors.New("license is inactive")
	// ErrLicenseInUse лицензия уже привязана к другой машине.
	ErrLicenseInUse = errors.New("license is in use on another machine")
	// ErrMachineHasLicense у машины уже есть другая действительная лицензия.
	ErrMachineHasLicense = errors.New("machine already has a different active license")
)

// Store описывает контракт хранилища лицензий и барбершопов.
type Store interface {
	// GetLicenseByKey возвращает лицензию по ключу или repository.ErrLicenseNotFound.
	GetLicenseByKey(ctx context.Context, key string) (*models.License, error)
	// GetActiveLicenseByMachine возвращает активную лицензию машины
	// или repository.ErrLicenseNotFound, если её нет.
	GetActiveLicenseByMachine(ctx context.Context, machineID string) (*models.License, error)
	// BindLicense атомарно привязывает лицензию к машине,
	// возвращает false, если привязка не записана.
	BindLicense(ctx context.Context, key, machineID string, activatedAt time.Time) (bool, error)
	// SetLicenseActive обновляет флаг активности лицензии.
	SetLicenseActive(ctx context.Context, id int64, active bool) error
	// GetShopWithLicenseByOwner возвращает барбершоп владельца с лицензией
	// или repository.ErrShopNotFound.
	GetShopWithLicenseByOwner(ctx context.Context, ownerUID string) (*models.ShopWithLicense, error)
}

// ActivationResult описывает успешный исход активации.
type ActivationResult struct {
	Message          string // Сообщение для клиента
	AlreadyActivated bool   // Повторная активация той же пары (ключ, машина)
}

// Service реализует активацию лицензий и решение шлюза авторизации.
type Service struct {
	store       Store
	exemptPaths []string
	log         *slog.Logger
}

// New создает новый экземпляр Service.
// exemptPaths — префиксы путей, на которых шлюз пропускает запросы без проверки.
func New(store Store, exemptPaths []string, log *slog.Logger) *Service {
	return &Service{
		store:       store,
		exemptPaths: exemptPaths,
		log:         log,
	}
}

// Activate привязывает лицензию с ключом licenseKey к машине machineID.
//
// Проверки выполняются по порядку, первая сработавшая решает исход:
//  1. у машины уже есть действительная лицензия — тот же ключ означает
//     повторную активацию (идемпотентный успех), другой ключ — конфликт;
//  2. лицензии с таким ключом нет — ErrLicenseNotFound;
//  3. срок лицензии истёк — ErrLicenseExpired, истёкшие лицензии
//     не активируются даже на свободной машине;
//  4. лицензия деактивирована — ErrLicenseInactive;
//  5. лицензия привязана к другой машине — ErrLicenseInUse;
//  6. иначе привязка записывается атомарно.
//
// Машинная проверка идёт первой, чтобы уже корректно привязанная машина
// завершала запрос, не трогая строку целевой лицензии.
func (s *Service) Activate(ctx context.Context, licenseKey, machineID string) (*ActivationResult, error) {
	const op = "license.Activate"
	now := time.Now().UTC()

	bound, err := s.store.GetActiveLicenseByMachine(ctx, machineID)
	switch {
	case err == nil:
		if !bound.IsExpired(now) {
			if bound.Key == licenseKey {
				return &ActivationResult{
					Message:          "license already activated for this machine",
					AlreadyActivated: true,
				}, nil
			}
			return nil, fmt.Errorf("%s: %w", op, ErrMachineHasLicense)
		}
		// Истёкшая привязка машину не занимает, активация продолжается.
	case errors.Is(err, repository.ErrLicenseNotFound):
	default:
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lic, err := s.store.GetLicenseByKey(ctx, licenseKey)
	if err != nil {
		if errors.Is(err, repository.ErrLicenseNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrLicenseNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if lic.IsExpired(now) {
		return nil, fmt.Errorf("%s: %w", op, ErrLicenseExpired)
	}
	if !lic.IsActive {
		return nil, fmt.Errorf("%s: %w", op, ErrLicenseInactive)
	}
	if lic.IsBound() && *lic.MachineID != machineID {
		return nil, fmt.Errorf("%s: %w", op, ErrLicenseInUse)
	}

	ok, err := s.store.BindLicense(ctx, licenseKey, machineID, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		// Гонку за лицензию выиграла другая активация:
		// перечитываем строку и классифицируем исход по записанной привязке.
		current, err := s.store.GetLicenseByKey(ctx, licenseKey)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if current.IsBound() && *current.MachineID == machineID {
			return &ActivationResult{
				Message:          "license already activated for this machine",
				AlreadyActivated: true,
			}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, ErrLicenseInUse)
	}

	s.log.Info("license activated",
		slog.String("license_key", licenseKey),
		slog.String("machine_id", machineID))

	return &ActivationResult{Message: "license activated successfully"}, nil
}
