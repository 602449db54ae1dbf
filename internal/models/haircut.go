package models

import "time"

// Способы оплаты стрижки.
const (
	PaymentCash = "CASH" // Наличные
	PaymentYape = "YAPE" // Перевод через Yape
)

// Haircut описывает оплаченную стрижку.
// Сумма хранится в центах, чтобы избежать ошибок с плавающей точкой.
type Haircut struct {
	ID            int64     `json:"id"`                    // Внутренний идентификатор
	ShopID        int64     `json:"-"`                     // Барбершоп, в котором сделана стрижка
	BarberID      int64     `json:"barber_id"`             // Барбер, выполнивший стрижку
	BarberName    string    `json:"barber_name"`           // Имя барбера, заполняется при выборке с JOIN
	ClientName    *string   `json:"client_name,omitempty"` // Имя клиента, nil — анонимный клиент
	PaymentMethod string    `json:"payment_method"`        // Способ оплаты: CASH или YAPE
	Amount        int64     `json:"amount"`                // Сумма в центах
	CreatedAt     time.Time `json:"created_at"`            // Момент оплаты
}

// CreateHaircutRequest используется для приёма данных новой стрижки из JSON-запроса.
type CreateHaircutRequest struct {
	BarberID      int64   `json:"barber_id" validate:"required"`                     // Барбер
	ClientName    *string `json:"client_name,omitempty"`                             // Имя клиента, опционально
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=CASH YAPE"` // Способ оплаты
	Amount        int64   `json:"amount" validate:"required,gt=0"`                   // Сумма в центах (>0)
}

// BalanceStats агрегирует выручку барбершопа за период.
type BalanceStats struct {
	TotalIncome int64 `json:"totalIncome"` // Общая выручка в центах
	TotalCuts   int64 `json:"totalCuts"`   // Количество стрижек
	CashTotal   int64 `json:"cashTotal"`   // Выручка наличными
	YapeTotal   int64 `json:"yapeTotal"`   // Выручка через Yape
}
