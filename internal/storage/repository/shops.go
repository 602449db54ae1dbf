package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/barberos/barbershop-backend/internal/models"
)

// GetShopByOwner возвращает барбершоп по UID владельца.
// Если барбершопа нет, возвращает ErrShopNotFound.
func (s *Storage) GetShopByOwner(ctx context.Context, ownerUID string) (*models.Barbershop, error) {
	const op = "storage.GetShopByOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, owner_uid, license_id, created_at
			  FROM barbershops
			  WHERE owner_uid = $1`
	shop := &models.Barbershop{}
	row := s.DB.QueryRowContext(ctx, query, ownerUID)
	if err := row.Scan(&shop.ID, &shop.Name, &shop.OwnerUID, &shop.LicenseID, &shop.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrShopNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return shop, nil
}

// GetShopWithLicenseByOwner возвращает барбершоп владельца вместе с его лицензией.
// Шлюз авторизации читает обе записи одной выборкой с JOIN.
// Если барбершопа нет, возвращает ErrShopNotFound.
func (s *Storage) GetShopWithLicenseByOwner(ctx context.Context, ownerUID string) (*models.ShopWithLicense, error) {
	const op = "storage.GetShopWithLicenseByOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT b.id, b.name, b.owner_uid, b.license_id, b.created_at,
			      l.id, l.key, l.machine_id, l.is_active, l.activated_at, l.expires_at, l.created_at
			  FROM barbershops b
			  JOIN licenses l ON l.id = b.license_id
			  WHERE b.owner_uid = $1`
	res := &models.ShopWithLicense{}
	var machineID sql.NullString
	var activatedAt sql.NullTime
	row := s.DB.QueryRowContext(ctx, query, ownerUID)
	if err := row.Scan(
		&res.Shop.ID, &res.Shop.Name, &res.Shop.OwnerUID, &res.Shop.LicenseID, &res.Shop.CreatedAt,
		&res.License.ID, &res.License.Key, &machineID, &res.License.IsActive,
		&activatedAt, &res.License.ExpiresAt, &res.License.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrShopNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if machineID.Valid {
		res.License.MachineID = &machineID.String
	}
	if activatedAt.Valid {
		res.License.ActivatedAt = &activatedAt.Time
	}
	return res, nil
}

// EnsureShop гарантирует, что у владельца есть барбершоп с лицензией,
// создавая обе записи в одной транзакции при первом входе.
// Лицензия создаётся активной, непривязанной, со сроком действия expiresAt.
// Уникальное ограничение на owner_uid защищает от гонки двух первых входов:
// проигравший откатывает транзакцию (вместе со вставленной лицензией)
// и возвращает запись победителя.
func (s *Storage) EnsureShop(ctx context.Context, ownerUID, name string, expiresAt time.Time) (*models.Barbershop, error) {
	const op = "storage.EnsureShop"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if shop, err := s.GetShopByOwner(ctx, ownerUID); err == nil {
		return shop, nil
	} else if !errors.Is(err, ErrShopNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var licenseID int64
	licenseQuery := `INSERT INTO licenses (key, is_active, expires_at)
			  VALUES ($1, TRUE, $2)
			  RETURNING id;`
	if err = tx.QueryRowContext(ctx, licenseQuery, uuid.NewString(), expiresAt).Scan(&licenseID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	shop := &models.Barbershop{}
	shopQuery := `INSERT INTO barbershops (name, owner_uid, license_id)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (owner_uid) DO NOTHING
			  RETURNING id, name, owner_uid, license_id, created_at;`
	err = tx.QueryRowContext(ctx, shopQuery, name, ownerUID, licenseID).Scan(
		&shop.ID, &shop.Name, &shop.OwnerUID, &shop.LicenseID, &shop.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Гонку выиграл другой вход: откат удаляет нашу лицензию,
		// строку победителя читаем отдельно.
		_ = tx.Rollback()
		return s.GetShopByOwner(ctx, ownerUID)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return shop, nil
}
