// Package models содержит доменные структуры барбершоп-сервиса:
// лицензии, барбершопы, барберов, стрижки и брони,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// License представляет запись лицензии с привязкой к машине.
// Поле MachineID может быть nil — это означает, что лицензия
// ещё не активирована ни на одной машине.
type License struct {
	ID          int64      // Внутренний идентификатор записи
	Key         string     // Уникальный ключ лицензии (UUID)
	MachineID   *string    // Идентификатор машины, nil — лицензия не привязана
	IsActive    bool       // Активна ли лицензия
	ActivatedAt *time.Time // Момент привязки к машине, nil — привязки не было
	ExpiresAt   time.Time  // Срок действия лицензии, не меняется после создания
	CreatedAt   time.Time  // Момент создания записи
}

// IsBound сообщает, привязана ли лицензия к какой-либо машине.
func (l *License) IsBound() bool {
	return l.MachineID != nil && *l.MachineID != ""
}

// IsExpired сообщает, истёк ли срок действия лицензии на момент now.
func (l *License) IsExpired(now time.Time) bool {
	return !l.ExpiresAt.After(now)
}

// IsValid сообщает, действительна ли лицензия: активна и не истекла.
func (l *License) IsValid(now time.Time) bool {
	return l.IsActive && !l.IsExpired(now)
}

// ActivateRequest используется для приёма тела запроса активации лицензии.
type ActivateRequest struct {
	LicenseKey string `json:"license_key" validate:"required,uuid"` // Ключ лицензии
	MachineID  string `json:"machine_id" validate:"required"`       // Идентификатор машины
}
