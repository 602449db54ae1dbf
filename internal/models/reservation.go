package models

import "time"

// Reservation описывает бронь клиента на стрижку.
// Время брони всегда выровнено вниз до 30-минутного слота,
// пара (барбершоп, дата, время) уникальна.
type Reservation struct {
	ID         int64     // Внутренний идентификатор
	ShopID     int64     // Барбершоп, в котором сделана бронь
	ClientName string    // Имя клиента
	Date       time.Time // Дата брони (без времени)
	Time       time.Time // Время брони, выровненное до 30 минут
	Details    *string   // Дополнительные пожелания, опционально
	IsActive   bool      // Действующая ли бронь
	CreatedAt  time.Time // Момент создания
}

// ReservationResponse — представление брони для JSON-ответов:
// дата и время отдаются строками в том же формате, в котором принимаются.
type ReservationResponse struct {
	ID         int64   `json:"id"`
	ClientName string  `json:"client_name"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	Details    *string `json:"details,omitempty"`
	IsActive   bool    `json:"is_active"`
}

// ToResponse конвертирует бронь в представление для JSON-ответа.
func (r *Reservation) ToResponse() ReservationResponse {
	return ReservationResponse{
		ID:         r.ID,
		ClientName: r.ClientName,
		Date:       r.Date.Format("2006-01-02"),
		Time:       r.Time.Format("15:04"),
		Details:    r.Details,
		IsActive:   r.IsActive,
	}
}

// CreateReservationRequest используется для приёма данных новой брони из JSON-запроса.
// Дата и время приходят строками, чтобы их можно было валидировать и парсить вручную.
type CreateReservationRequest struct {
	ClientName string  `json:"client_name" validate:"required"`              // Имя клиента
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"` // Дата в формате 2006-01-02
	Time       string  `json:"time" validate:"required,datetime=15:04"`      // Время в формате 15:04
	Details    *string `json:"details,omitempty"`                            // Пожелания, опционально
}
