package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/barberos/barbershop-backend/internal/models"
)

// CreateReservation сохраняет новую бронь и возвращает её ID.
// Пара (барбершоп, дата, время) уникальна: при занятом слоте
// возвращает ErrReservationSlotTaken.
func (s *Storage) CreateReservation(ctx context.Context, res models.Reservation) (int64, error) {
	const op = "storage.CreateReservation"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO reservations (shop_id, client_name, date, time, details, is_active)
			  VALUES ($1, $2, $3, $4, $5, TRUE)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query, res.ShopID, res.ClientName,
		res.Date, res.Time, res.Details).Scan(&newID); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrReservationSlotTaken)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListReservations возвращает действующие брони барбершопа
// в порядке даты и времени.
func (s *Storage) ListReservations(ctx context.Context, shopID int64) ([]*models.Reservation, error) {
	const op = "storage.ListReservations"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, shop_id, client_name, date, time, details, is_active, created_at
			  FROM reservations
			  WHERE shop_id = $1 AND is_active = TRUE
			  ORDER BY date, time`
	rows, err := s.DB.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Reservation
	for rows.Next() {
		var r models.Reservation
		var details sql.NullString
		if err = rows.Scan(&r.ID, &r.ShopID, &r.ClientName, &r.Date, &r.Time,
			&details, &r.IsActive, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if details.Valid {
			r.Details = &details.String
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CancelReservation помечает бронь отменённой и возвращает количество
// затронутых записей. Отменённые брони освобождают слот для новых записей.
func (s *Storage) CancelReservation(ctx context.Context, shopID, reservationID int64) (int64, error) {
	const op = "storage.CancelReservation"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE reservations
			  SET is_active = FALSE
			  WHERE id = $1 AND shop_id = $2 AND is_active = TRUE`
	res, err := s.DB.ExecContext(ctx, query, reservationID, shopID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}
