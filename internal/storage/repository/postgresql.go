// Package repository реализует хранилище данных на основе PostgreSQL
// для управления лицензиями, барбершопами, барберами, стрижками и бронями.
// Предоставляет методы создания, чтения, обновления и агрегирования записей,
// а также работу с пользователями.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки хранилища, по которым ветвится бизнес-логика.
// "Не найдено" отличается от прочих ошибок, потому что сервис активации
// и шлюз авторизации выбирают по этому признаку разные исходы.
var (
	// ErrLicenseNotFound запись лицензии не найдена.
	ErrLicenseNotFound = errors.New("license not found")
	// ErrUserNotFound пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrShopNotFound барбершоп не найден.
	ErrShopNotFound = errors.New("barbershop not found")
	// ErrBarberNotFound барбер не найден.
	ErrBarberNotFound = errors.New("barber not found")
	// ErrReservationSlotTaken слот брони уже занят.
	ErrReservationSlotTaken = errors.New("reservation slot already taken")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с лицензиями и сущностями барбершопа.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'licenses'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table licenses missing or query error: %w", err)
	}
	return nil
}

// isUniqueViolation сообщает, вызвана ли ошибка нарушением уникального ограничения.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
