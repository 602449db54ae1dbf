package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/barberos/barbershop-backend/internal/models"
)

// CreateHaircut сохраняет новую стрижку и возвращает её ID.
func (s *Storage) CreateHaircut(ctx context.Context, haircut models.Haircut) (int64, error) {
	const op = "storage.CreateHaircut"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO haircuts (shop_id, barber_id, client_name, payment_method, amount)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query, haircut.ShopID, haircut.BarberID,
		haircut.ClientName, haircut.PaymentMethod, haircut.Amount).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListHaircutsRange возвращает стрижки барбершопа за период [from, to)
// в порядке создания, вместе с именем барбера.
func (s *Storage) ListHaircutsRange(ctx context.Context, shopID int64, from, to time.Time) ([]*models.Haircut, error) {
	const op = "storage.ListHaircutsRange"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT h.id, h.shop_id, h.barber_id, b.name, h.client_name,
			      h.payment_method, h.amount, h.created_at
			  FROM haircuts h
			  JOIN barbers b ON b.id = h.barber_id
			  WHERE h.shop_id = $1 AND h.created_at >= $2 AND h.created_at < $3
			  ORDER BY h.created_at`
	rows, err := s.DB.QueryContext(ctx, query, shopID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Haircut
	for rows.Next() {
		var h models.Haircut
		var clientName sql.NullString
		if err = rows.Scan(&h.ID, &h.ShopID, &h.BarberID, &h.BarberName,
			&clientName, &h.PaymentMethod, &h.Amount, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if clientName.Valid {
			h.ClientName = &clientName.String
		}
		result = append(result, &h)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountBalance агрегирует выручку барбершопа за период [from, to):
// общая сумма, число стрижек и разбивка по способам оплаты.
func (s *Storage) CountBalance(ctx context.Context, shopID int64, from, to time.Time) (*models.BalanceStats, error) {
	const op = "storage.CountBalance"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      COALESCE(SUM(amount), 0),
			      COUNT(*),
			      COALESCE(SUM(amount) FILTER (WHERE payment_method = 'CASH'), 0),
			      COALESCE(SUM(amount) FILTER (WHERE payment_method = 'YAPE'), 0)
			  FROM haircuts
			  WHERE shop_id = $1 AND created_at >= $2 AND created_at < $3`
	stats := &models.BalanceStats{}
	row := s.DB.QueryRowContext(ctx, query, shopID, from, to)
	if err := row.Scan(&stats.TotalIncome, &stats.TotalCuts,
		&stats.CashTotal, &stats.YapeTotal); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

// DeleteAllHaircuts удаляет все стрижки барбершопа и возвращает
// количество удалённых записей.
func (s *Storage) DeleteAllHaircuts(ctx context.Context, shopID int64) (int64, error) {
	const op = "storage.DeleteAllHaircuts"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM haircuts
			  WHERE shop_id = $1`
	res, err := s.DB.ExecContext(ctx, query, shopID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}
