// Package auth содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/barberos/barbershop-backend/internal/lib/jwt"
	"github.com/barberos/barbershop-backend/internal/lib/password"
	"github.com/barberos/barbershop-backend/internal/models"
)

// ErrInvalidCredentials неверное имя пользователя или пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// EnsureShop гарантирует, что у владельца есть барбершоп с лицензией,
	// создавая обе записи в одной транзакции при первом входе.
	EnsureShop(ctx context.Context, ownerUID, name string, expiresAt time.Time) (*models.Barbershop, error)
}

// Service отвечает за регистрацию, авторизацию и создание
// пары барбершоп+лицензия при первом входе.
type Service struct {
	users               UserRepository
	jwtMaker            jwt.Maker
	licenseValidityDays int
}

// New создает новый экземпляр Service.
// licenseValidityDays — срок действия лицензии, выдаваемой при первом входе.
func New(users UserRepository, jwtMaker jwt.Maker, licenseValidityDays int) *Service {
	return &Service{
		users:               users,
		jwtMaker:            jwtMaker,
		licenseValidityDays: licenseValidityDays,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью "user".
func (s *Service) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         "user", // дефолтная роль при регистрации
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя, гарантирует наличие его барбершопа
// с лицензией и генерирует JWT.
//
// Создание барбершопа и лицензии выполняется синхронно при успешном входе:
// после возврата токена у арендатора заведомо есть учётная запись с лицензией.
// Привязка к машине на этом пути не выполняется — её делает сервис активации.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}

	expiresAt := time.Now().UTC().AddDate(0, 0, s.licenseValidityDays)
	shopName := fmt.Sprintf("Barbershop of %s", user.Username)
	if _, err := s.users.EnsureShop(ctx, user.UID, shopName, expiresAt); err != nil {
		return "", err
	}

	return s.jwtMaker.GenerateToken(user.Username, user.Role, user.UID)
}

// ValidateToken проверяет JWT и возвращает данные пользователя и признак валидности.
func (s *Service) ValidateToken(_ context.Context, token string) (*models.User, bool, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, false, err
	}
	user := &models.User{
		Username: claims.Username,
		Role:     claims.Role,
		UID:      claims.UserUID,
	}
	return user, true, nil
}
