package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/barberos/barbershop-backend/internal/models"
)

// CreateBarber сохраняет нового барбера и возвращает его ID.
func (s *Storage) CreateBarber(ctx context.Context, barber models.Barber) (int64, error) {
	const op = "storage.CreateBarber"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO barbers (shop_id, name, is_active)
			  VALUES ($1, $2, TRUE)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query, barber.ShopID, barber.Name).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetBarber возвращает барбера по ID в пределах барбершопа.
// Если барбера нет или он принадлежит другому барбершопу, возвращает ErrBarberNotFound.
func (s *Storage) GetBarber(ctx context.Context, shopID, barberID int64) (*models.Barber, error) {
	const op = "storage.GetBarber"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, shop_id, name, is_active, created_at
			  FROM barbers
			  WHERE id = $1 AND shop_id = $2`
	b := &models.Barber{}
	row := s.DB.QueryRowContext(ctx, query, barberID, shopID)
	if err := row.Scan(&b.ID, &b.ShopID, &b.Name, &b.IsActive, &b.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrBarberNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

// ListBarbers возвращает всех действующих барберов барбершопа.
func (s *Storage) ListBarbers(ctx context.Context, shopID int64) ([]*models.Barber, error) {
	const op = "storage.ListBarbers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, shop_id, name, is_active, created_at
			  FROM barbers
			  WHERE shop_id = $1 AND is_active = TRUE
			  ORDER BY name`
	rows, err := s.DB.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Barber
	for rows.Next() {
		var b models.Barber
		if err = rows.Scan(&b.ID, &b.ShopID, &b.Name, &b.IsActive, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeactivateBarber помечает барбера неработающим и возвращает количество
// затронутых записей. Записи о барберах не удаляются, чтобы сохранить историю стрижек.
func (s *Storage) DeactivateBarber(ctx context.Context, shopID, barberID int64) (int64, error) {
	const op = "storage.DeactivateBarber"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE barbers
			  SET is_active = FALSE
			  WHERE id = $1 AND shop_id = $2`
	res, err := s.DB.ExecContext(ctx, query, barberID, shopID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}
