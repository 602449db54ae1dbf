package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/barberos/barbershop-backend/internal/models"
)

// CreateLicense сохраняет новую лицензию и возвращает её ID.
// Используется административным путём и тестами; в пути первого входа
// лицензия создаётся внутри транзакции EnsureShop.
func (s *Storage) CreateLicense(ctx context.Context, lic models.License) (int64, error) {
	const op = "storage.CreateLicense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO licenses (key, machine_id, is_active, activated_at, expires_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		lic.Key, lic.MachineID, lic.IsActive, lic.ActivatedAt, lic.ExpiresAt).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetLicenseByKey возвращает лицензию по её ключу.
// Если лицензии нет, возвращает ErrLicenseNotFound.
func (s *Storage) GetLicenseByKey(ctx context.Context, key string) (*models.License, error) {
	const op = "storage.GetLicenseByKey"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, key, machine_id, is_active, activated_at, expires_at, created_at
			  FROM licenses
			  WHERE key = $1`
	return s.scanLicense(s.DB.QueryRowContext(ctx, query, key), op)
}

// GetActiveLicenseByMachine возвращает активную лицензию, привязанную к машине.
// Неактивные лицензии не учитываются; если подходящей записи нет,
// возвращает ErrLicenseNotFound — вызывающие различают "нет записи"
// и "запись есть, но неактивна" выбором метода выборки.
func (s *Storage) GetActiveLicenseByMachine(ctx context.Context, machineID string) (*models.License, error) {
	const op = "storage.GetActiveLicenseByMachine"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, key, machine_id, is_active, activated_at, expires_at, created_at
			  FROM licenses
			  WHERE machine_id = $1 AND is_active = TRUE`
	return s.scanLicense(s.DB.QueryRowContext(ctx, query, machineID), op)
}

// BindLicense атомарно привязывает лицензию к машине.
// Обновление срабатывает, только если лицензия ещё не привязана
// или уже привязана к этой же машине, — сравнение и запись выполняются
// одним UPDATE, поэтому из двух конкурентных активаций побеждает одна.
// Возвращает false, если условие не выполнилось и привязка не записана.
func (s *Storage) BindLicense(ctx context.Context, key, machineID string, activatedAt time.Time) (bool, error) {
	const op = "storage.BindLicense"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE licenses
			  SET machine_id = $2,
			      activated_at = $3
			  WHERE key = $1
			    AND (machine_id IS NULL OR machine_id = $2)`
	res, err := s.DB.ExecContext(ctx, query, key, machineID, activatedAt)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return affected > 0, nil
}

// SetLicenseActive обновляет флаг активности лицензии.
// Единственный вызывающий в системе выключает флаг; обратного перехода нет.
func (s *Storage) SetLicenseActive(ctx context.Context, id int64, active bool) error {
	const op = "storage.SetLicenseActive"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE licenses
			  SET is_active = $2
			  WHERE id = $1`
	if _, err := s.DB.ExecContext(ctx, query, id, active); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) scanLicense(row *sql.Row, op string) (*models.License, error) {
	lic := &models.License{}
	var machineID sql.NullString
	var activatedAt sql.NullTime
	if err := row.Scan(&lic.ID, &lic.Key, &machineID, &lic.IsActive,
		&activatedAt, &lic.ExpiresAt, &lic.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrLicenseNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if machineID.Valid {
		lic.MachineID = &machineID.String
	}
	if activatedAt.Valid {
		lic.ActivatedAt = &activatedAt.Time
	}
	return lic, nil
}
