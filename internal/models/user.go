package models

import "time"

// User описывает учётную запись пользователя сервиса.
type User struct {
	UID          string    // UUID пользователя
	Email        string    // Электронная почта
	Username     string    // Имя пользователя
	PasswordHash string    // bcrypt-хэш пароля
	Role         string    // Роль пользователя
	CreatedAt    time.Time // Момент регистрации
}

// RegisterRequest используется для приёма данных регистрации из JSON-запроса.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`       // Электронная почта
	Username string `json:"username" validate:"required,alphanum"` // Имя пользователя
	Password string `json:"password" validate:"required,min=8"`    // Пароль
}

// LoginRequest используется для приёма данных входа из JSON-запроса.
type LoginRequest struct {
	Username string `json:"username" validate:"required,alphanum"` // Имя пользователя
	Password string `json:"password" validate:"required"`          // Пароль
}
