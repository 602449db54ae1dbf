package models

import "time"

// Barber описывает барбера, работающего в барбершопе.
type Barber struct {
	ID        int64     `json:"id"`         // Внутренний идентификатор
	ShopID    int64     `json:"-"`          // Барбершоп, в котором работает барбер
	Name      string    `json:"name"`       // Имя барбера
	IsActive  bool      `json:"is_active"`  // Работает ли барбер в данный момент
	CreatedAt time.Time `json:"created_at"` // Момент создания записи
}

// CreateBarberRequest используется для приёма данных нового барбера из JSON-запроса.
type CreateBarberRequest struct {
	Name string `json:"name" validate:"required"` // Имя барбера
}
